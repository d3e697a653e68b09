package dom_test

import (
	"bytes"
	"errors"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html"

	"github.com/goliatone/go-fluidui/pkg/dom"
	"github.com/goliatone/go-fluidui/pkg/fileio"
)

const sampleDocument = `<!DOCTYPE html>
<html>
<head><title>  Original
  Title </title><meta charset="utf-8"></head>
<body>
  <div id="root" class="shell">
    <p data-x="abc">One</p>
    <p data-x="ABC">Two</p>
    <span data-x="abcdef">Three</span>
    <div data-x="xyzabc"><a href="/docs?a=1&amp;b=2">Docs</a></div>
    <img src="logo.png" alt="">
  </div>
  <script>if (a < b) { console.log("x") }</script>
</body>
</html>`

func mustParse(t *testing.T, text string, opts ...dom.Option) *dom.Utility {
	t.Helper()
	u, err := dom.Parse(text, opts...)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	t.Cleanup(func() { _ = u.Close() })
	return u
}

func TestUtility_TitleRoundTrip(t *testing.T) {
	u := mustParse(t, sampleDocument)

	if got := u.Title(); got != "Original Title" {
		t.Fatalf("title = %q", got)
	}
	if err := u.SetTitle("New Title"); err != nil {
		t.Fatalf("set title: %v", err)
	}
	if got := u.Title(); got != "New Title" {
		t.Fatalf("title after set = %q", got)
	}
}

func TestUtility_SetTitleCreatesElement(t *testing.T) {
	u := mustParse(t, `<html><head></head><body><p>x</p></body></html>`)
	if got := u.Title(); got != "" {
		t.Fatalf("expected empty title, got %q", got)
	}
	if err := u.SetTitle("Created"); err != nil {
		t.Fatalf("set title: %v", err)
	}
	if got := u.Title(); got != "Created" {
		t.Fatalf("title = %q", got)
	}
}

func TestUtility_SetTitleAfterCloseFails(t *testing.T) {
	var logs bytes.Buffer
	u := mustParse(t, sampleDocument, dom.WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	_ = u.Close()

	err := u.SetTitle("x")
	if !errors.Is(err, dom.ErrMutation) {
		t.Fatalf("expected ErrMutation, got %v", err)
	}
	if !strings.Contains(logs.String(), "set title") {
		t.Fatalf("expected logged failure, got %q", logs.String())
	}
}

func TestUtility_InitRootAppElement(t *testing.T) {
	u := mustParse(t, `<html><body><main></main></body></html>`)

	first, err := u.InitRootAppElement()
	if err != nil {
		t.Fatalf("init root: %v", err)
	}
	second, err := u.InitRootAppElement()
	if err != nil {
		t.Fatalf("init root again: %v", err)
	}
	if first != second {
		t.Fatalf("expected the existing #app element to be reused")
	}
	if got := dom.Attr(first, "id"); got != dom.RootAppID {
		t.Fatalf("id = %q", got)
	}
}

func TestParseFile_MissingFile(t *testing.T) {
	var logs bytes.Buffer
	_, err := dom.ParseFile(filepath.Join(t.TempDir(), "missing.html"),
		dom.WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	if !errors.Is(err, dom.ErrIO) {
		t.Fatalf("expected ErrIO, got %v", err)
	}
	if !strings.Contains(logs.String(), "severity=critical") {
		t.Fatalf("expected critical log, got %q", logs.String())
	}
}

func TestParseReader_ReaderFailure(t *testing.T) {
	_, err := dom.ParseReader(failingReader{}, dom.WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))))
	if !errors.Is(err, dom.ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestUtility_WriteToFile(t *testing.T) {
	mem := fileio.NewMemory(nil)
	u := mustParse(t, sampleDocument, dom.WithFileSystem(mem))

	if err := u.WriteToFile("out/index-tmp.html"); err != nil {
		t.Fatalf("write: %v", err)
	}
	written := mem.Files["out/index-tmp.html"]
	if !strings.Contains(written, "<title>Original Title</title>") {
		t.Fatalf("unexpected output:\n%s", written)
	}
}

type shape struct {
	Tag   string
	Attrs []string
}

func structure(t *testing.T, text string) []shape {
	t.Helper()
	u := mustParse(t, text)
	var out []shape
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			attrs := make([]string, 0, len(n.Attr))
			for _, a := range n.Attr {
				attrs = append(attrs, a.Key+"="+a.Val)
			}
			sort.Strings(attrs)
			out = append(out, shape{Tag: n.Data, Attrs: attrs})
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(u.Document())
	return out
}

func TestSerialize_RoundTripKeepsStructure(t *testing.T) {
	u := mustParse(t, sampleDocument)
	text, err := u.Serialize()
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}

	if diff := cmp.Diff(structure(t, sampleDocument), structure(t, text)); diff != "" {
		t.Fatalf("structure mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(text, `if (a < b) { console.log("x") }`) {
		t.Fatalf("script content should be kept verbatim:\n%s", text)
	}
}

func TestSerialize_PrettyLayout(t *testing.T) {
	u := mustParse(t, `<html><head></head><body><ul><li>One</li><li>Two <b>bold</b></li></ul><br></body></html>`)
	text, err := u.Serialize()
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	want := strings.Join([]string{
		"<html>",
		"  <head></head>",
		"  <body>",
		"    <ul>",
		"      <li>One</li>",
		"      <li>",
		"        Two",
		"        <b>bold</b>",
		"      </li>",
		"    </ul>",
		"    <br>",
		"  </body>",
		"</html>",
		"",
	}, "\n")
	if diff := cmp.Diff(want, text); diff != "" {
		t.Fatalf("pretty output mismatch (-want +got):\n%s", diff)
	}
}

func TestSerializeNode(t *testing.T) {
	u := mustParse(t, `<body><p class="a&quot;b">x &amp; y</p></body>`)
	p := u.FindElementsByTagName("p")
	defer p.Release()

	got, err := dom.SerializeNode(p.At(0))
	if err != nil {
		t.Fatalf("serialize node: %v", err)
	}
	if want := "<p class=\"a&#34;b\">x &amp; y</p>\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSerialize_CallbackFailure(t *testing.T) {
	u := mustParse(t, sampleDocument)
	err := dom.SerializeCallback(u.Document(), func([]byte) error { return errors.New("disk full") })
	if !errors.Is(err, dom.ErrSerialize) {
		t.Fatalf("expected ErrSerialize, got %v", err)
	}
}

func TestSerialize_AfterClose(t *testing.T) {
	u := mustParse(t, sampleDocument, dom.WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))))
	_ = u.Close()
	if _, err := u.Serialize(); !errors.Is(err, dom.ErrSerialize) {
		t.Fatalf("expected ErrSerialize, got %v", err)
	}
}
