package widget_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-fluidui/pkg/component"
	"github.com/goliatone/go-fluidui/pkg/widget"
)

func sequentialIDs() widget.SessionOption {
	n := 0
	return widget.WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("w%d", n)
	})
}

// outline flattens the visible graph into "depth:type:text" rows.
func outline(g *widget.Graph) []string {
	var rows []string
	g.Walk(func(_, depth int, w widget.Widget) bool {
		rows = append(rows, fmt.Sprintf("%d:%s:%s", depth, w.Type, w.Text))
		return true
	})
	return rows
}

func TestNewSession_CreatesRootLayout(t *testing.T) {
	s := widget.NewSession(sequentialIDs(), widget.WithRootLayout(widget.Horizontal))
	root, ok := s.Graph().Vertex(s.Root())
	if !ok {
		t.Fatalf("root missing")
	}
	if root.Type != widget.Layout || root.Layout != widget.Horizontal || root.ID != "w1" {
		t.Fatalf("unexpected root: %+v", root)
	}
	if s.Graph().Root() != s.Root() {
		t.Fatalf("graph root %d != session root %d", s.Graph().Root(), s.Root())
	}
}

func TestSession_TypedHelpers(t *testing.T) {
	s := widget.NewSession(sequentialIDs())
	row, err := s.AddLayout(s.Root(), widget.Horizontal)
	if err != nil {
		t.Fatalf("add layout: %v", err)
	}
	steps := []func() (int, error){
		func() (int, error) { return s.AddLabel(row, "Name") },
		func() (int, error) { return s.AddSpan(row, "value") },
		func() (int, error) { return s.AddParagraph(s.Root(), "para") },
		func() (int, error) { return s.AddText(s.Root(), "bare") },
		func() (int, error) { return s.AddLink(s.Root(), "docs", "/docs") },
		func() (int, error) { return s.AddMarkdown(s.Root(), "# Title") },
		func() (int, error) { return s.AddHTML(s.Root(), "<hr>") },
	}
	for i, step := range steps {
		if _, err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	want := []string{
		"0:layout:",
		"1:layout:",
		"2:label:Name",
		"2:span:value",
		"1:paragraph:para",
		"1:text:bare",
		"1:link:docs",
		"1:markdown:# Title",
		"1:html:<hr>",
	}
	if diff := cmp.Diff(want, outline(s.Graph())); diff != "" {
		t.Fatalf("outline mismatch (-want +got):\n%s", diff)
	}
	if _, err := s.AddText(99, "x"); !errors.Is(err, widget.ErrUnknownVertex) {
		t.Fatalf("expected ErrUnknownVertex, got %v", err)
	}
}

func TestSession_ImportMarkup(t *testing.T) {
	s := widget.NewSession(sequentialIDs())
	markup := `
<section data-orientation="horizontal" class="panel">
  <label for="n">Name</label>
  <p>Hello <a href="/x" @click="go">there</a></p>
</section>
<div hidden><span>secret</span></div>
<span v-if="false">gone</span>
<custom-card title="c"><b>bold</b> <custom-card>inner</custom-card></custom-card>
<br>
text tail
`
	if err := s.ImportMarkup(s.Root(), markup); err != nil {
		t.Fatalf("import: %v", err)
	}
	want := []string{
		"0:layout:",
		"1:layout:",
		"2:label:",
		"3:text:Name",
		"2:paragraph:",
		"3:text:Hello",
		"3:link:",
		"4:text:there",
		`1:html:<custom-card title="c"><b>bold</b> <custom-card>inner</custom-card></custom-card>`,
		"1:html:<br>",
		"1:text:text tail",
	}
	if diff := cmp.Diff(want, outline(s.Graph())); diff != "" {
		t.Fatalf("outline mismatch (-want +got):\n%s", diff)
	}
	if err := s.Graph().Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	var section, link widget.Widget
	s.Graph().Each(func(_ int, w widget.Widget) {
		switch w.Type {
		case widget.Layout:
			if w.Attr("class") == "panel" {
				section = w
			}
		case widget.Link:
			link = w
		}
	})
	if section.Layout != widget.Horizontal {
		t.Fatalf("section orientation = %v", section.Layout)
	}
	if diff := cmp.Diff(map[string]string{"href": "/x"}, link.Attributes); diff != "" {
		t.Fatalf("link attributes mismatch (-want +got):\n%s", diff)
	}
}

func TestSession_ImportMarkupHiddenEdges(t *testing.T) {
	s := widget.NewSession(sequentialIDs())
	if err := s.ImportMarkup(s.Root(), `<div hidden><span>secret</span></div><p>shown</p>`); err != nil {
		t.Fatalf("import: %v", err)
	}
	children := s.Graph().Children(s.Root())
	if len(children) != 2 {
		t.Fatalf("children = %d", len(children))
	}
	if children[0].Edge.Visible || !children[1].Edge.Visible {
		t.Fatalf("unexpected edge visibility: %+v", children)
	}
	// The hidden subtree is still stored.
	if got := len(s.Graph().Children(children[0].ID)); got != 1 {
		t.Fatalf("hidden subtree children = %d", got)
	}
}

type card struct {
	component.Base
	composed int
}

func (c *card) Compose() error {
	c.composed++
	c.SetMarkup(`<div class="card"><p>` + c.Name() + `</p></div>`)
	c.SetStyle(".card { padding: 1rem; }")
	return nil
}

type broken struct {
	component.Base
}

func (b *broken) Compose() error { return errors.New("boom") }

func TestSession_AddComponent(t *testing.T) {
	s := widget.NewSession(sequentialIDs())
	outer := &card{}
	outer.SetName("Outer")
	inner := &card{}
	inner.SetName("Inner")
	if err := outer.AddChild(inner); err != nil {
		t.Fatalf("add child: %v", err)
	}

	id, err := s.AddComponent(s.Root(), outer)
	if err != nil {
		t.Fatalf("add component: %v", err)
	}
	wrapper, _ := s.Graph().Vertex(id)
	if wrapper.Attr("data-component") != "Outer" {
		t.Fatalf("wrapper attributes = %v", wrapper.Attributes)
	}
	if outer.composed != 1 || inner.composed != 1 {
		t.Fatalf("composed = %d/%d", outer.composed, inner.composed)
	}
	want := []string{
		"0:layout:",
		"1:layout:",
		"2:layout:",
		"3:paragraph:",
		"4:text:Outer",
		"2:layout:",
		"3:layout:",
		"4:paragraph:",
		"5:text:Inner",
	}
	if diff := cmp.Diff(want, outline(s.Graph())); diff != "" {
		t.Fatalf("outline mismatch (-want +got):\n%s", diff)
	}
	if got := len(s.Styles()); got != 2 {
		t.Fatalf("styles = %d", got)
	}

	bad := &broken{}
	bad.SetName("Broken")
	if _, err := s.AddComponent(s.Root(), bad); err == nil {
		t.Fatalf("expected render failure")
	}
}
