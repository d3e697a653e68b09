package dom_test

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/goliatone/go-fluidui/pkg/dom"
)

func attributeDocument(n, m int) string {
	var sb strings.Builder
	sb.WriteString("<html><head><meta data-x=\"abc\"></head><body>")
	for i := 0; i < n; i++ {
		sb.WriteString(`<i data-x="abc"></i>`)
	}
	for i := 0; i < m; i++ {
		sb.WriteString(`<b data-x="abcdef"></b>`)
	}
	sb.WriteString(`<u data-x="zabc"></u><u data-y="abc"></u></body></html>`)
	return sb.String()
}

func TestFindElementsByAttribute_MatchTypes(t *testing.T) {
	const n, m = 3, 4
	u := mustParse(t, attributeDocument(n, m))

	tests := []struct {
		match dom.MatchType
		value string
		want  int
	}{
		{match: dom.Equals, value: "abc", want: n},
		{match: dom.StartsWith, value: "abc", want: n + m},
		{match: dom.Contains, value: "abc", want: n + m + 1},
		{match: dom.EndsWith, value: "def", want: m},
		{match: dom.EndsWith, value: "abc", want: n + 1},
	}
	for _, tt := range tests {
		t.Run(tt.match.String()+"/"+tt.value, func(t *testing.T) {
			c := u.FindElementsByAttribute("data-x", tt.value, tt.match)
			defer c.Release()
			if got := c.Len(); got != tt.want {
				t.Fatalf("len = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFindElementsByAttribute_CaseHandling(t *testing.T) {
	u := mustParse(t, `<body><p DATA-X="ABC"></p><p data-x="abc"></p></body>`)

	insensitive := u.FindElementsByAttribute("data-x", "abc", dom.Equals)
	defer insensitive.Release()
	if got := insensitive.Len(); got != 2 {
		t.Fatalf("case-insensitive len = %d, want 2", got)
	}

	sensitive := u.FindElementsByAttribute("data-x", "abc", dom.Equals, dom.CaseSensitive())
	defer sensitive.Release()
	if got := sensitive.Len(); got != 1 {
		t.Fatalf("case-sensitive len = %d, want 1", got)
	}
}

func TestFindElementsByTagName_CountsBodyDivs(t *testing.T) {
	text := `<html><head></head><body>
<div><div></div><section><div></div></section></div>
<DIV></DIV><p>div</p>
</body></html>`
	u := mustParse(t, text)

	c := u.FindElementsByTagName("div")
	defer c.Release()
	if got, want := c.Len(), strings.Count(strings.ToLower(text), "<div>"); got != want {
		t.Fatalf("len = %d, want %d", got, want)
	}
	if c.At(0) == nil || c.At(c.Len()) != nil {
		t.Fatalf("At bounds are wrong")
	}
}

func TestFindElementsByTagName_GrowsPastInitialCapacity(t *testing.T) {
	u := mustParse(t, "<body>"+strings.Repeat("<span></span>", 300)+"</body>")
	c := u.FindElementsByTagName("span")
	defer c.Release()
	if got := c.Len(); got != 300 {
		t.Fatalf("len = %d, want 300", got)
	}
}

func TestCollection_ReleaseExactlyOnce(t *testing.T) {
	u := mustParse(t, sampleDocument)
	c := u.FindElementsByTagName("p")
	if u.Outstanding() != 1 {
		t.Fatalf("outstanding = %d, want 1", u.Outstanding())
	}
	if err := c.Release(); err != nil {
		t.Fatalf("release: %v", err)
	}
	if err := c.Release(); !errors.Is(err, dom.ErrReleased) {
		t.Fatalf("expected ErrReleased, got %v", err)
	}
	if c.Len() != 0 || c.Elements() != nil {
		t.Fatalf("released collection should be empty")
	}
	if u.Outstanding() != 0 {
		t.Fatalf("outstanding = %d, want 0", u.Outstanding())
	}
}

func TestUtility_CloseReleasesCollections(t *testing.T) {
	u, err := dom.Parse(sampleDocument)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	a := u.FindElementsByTagName("p")
	b := u.FindElementsByAttribute("data-x", "abc", dom.Contains)

	if err := u.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !a.Released() || !b.Released() {
		t.Fatalf("close must release outstanding collections")
	}
	if err := u.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

func TestWithElementsByTagName_ReleasesOnError(t *testing.T) {
	u := mustParse(t, sampleDocument)
	var seen *dom.Collection
	boom := errors.New("boom")

	err := u.WithElementsByTagName("p", func(c *dom.Collection) error {
		seen = c
		if c.Len() != 2 {
			t.Errorf("len = %d, want 2", c.Len())
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected callback error, got %v", err)
	}
	if !seen.Released() || u.Outstanding() != 0 {
		t.Fatalf("collection should be released after the callback")
	}
}

func TestWithElementsByAttribute(t *testing.T) {
	u := mustParse(t, sampleDocument)
	var hrefs []string
	err := u.WithElementsByAttribute("href", "/docs", dom.StartsWith, func(c *dom.Collection) error {
		for _, n := range c.Elements() {
			hrefs = append(hrefs, dom.Attr(n, "href"))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(hrefs) != 1 || hrefs[0] != "/docs?a=1&b=2" {
		t.Fatalf("hrefs = %v", hrefs)
	}
}

func TestQueries_DegradeToEmptyAfterClose(t *testing.T) {
	var logs bytes.Buffer
	u, err := dom.Parse(sampleDocument, dom.WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	_ = u.Close()

	c := u.FindElementsByTagName("p")
	if c.Len() != 0 {
		t.Fatalf("expected empty collection")
	}
	if err := c.Release(); err != nil {
		t.Fatalf("release: %v", err)
	}
	if !strings.Contains(logs.String(), dom.ErrQuery.Error()) {
		t.Fatalf("expected query error log, got %q", logs.String())
	}
}

func TestFindElementsByAttribute_RequiresName(t *testing.T) {
	var logs bytes.Buffer
	u := mustParse(t, sampleDocument, dom.WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	c := u.FindElementsByAttribute(" ", "x", dom.Equals)
	defer c.Release()
	if c.Len() != 0 || logs.Len() == 0 {
		t.Fatalf("expected empty result and a logged error")
	}
}

func TestTagNameToID(t *testing.T) {
	if dom.TagNameToID("DIV") == dom.TagUndefined {
		t.Fatalf("div should be known")
	}
	if got := dom.TagName(dom.TagNameToID("span")); got != "span" {
		t.Fatalf("round trip = %q", got)
	}
	for _, name := range []string{"my-widget", "href", ""} {
		if id := dom.TagNameToID(name); id != dom.TagUndefined {
			t.Fatalf("%q should be undefined, got %v", name, id)
		}
	}
}

func TestParseMatchType(t *testing.T) {
	for name, want := range map[string]dom.MatchType{
		"equals": dom.Equals, "contains": dom.Contains,
		"starts-with": dom.StartsWith, "ends-with": dom.EndsWith,
	} {
		got, err := dom.ParseMatchType(name)
		if err != nil || got != want {
			t.Fatalf("%s: got %v, %v", name, got, err)
		}
	}
	if _, err := dom.ParseMatchType("regex"); err == nil {
		t.Fatalf("expected error for unknown match type")
	}
}
