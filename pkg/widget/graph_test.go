package widget_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-fluidui/pkg/widget"
)

func newTree(t *testing.T) (*widget.Graph, []int) {
	t.Helper()
	g := widget.NewGraph()
	ids := []int{
		g.AddVertex(widget.Widget{ID: "root", Type: widget.Layout, Visible: true}),
		g.AddVertex(widget.Widget{ID: "a", Type: widget.Paragraph, Visible: true}),
		g.AddVertex(widget.Widget{ID: "b", Type: widget.Layout, Visible: true}),
		g.AddVertex(widget.Widget{ID: "b1", Type: widget.Span, Visible: true}),
		g.AddVertex(widget.Widget{ID: "b2", Type: widget.Span, Visible: true}),
	}
	for _, e := range []struct {
		from, to int
		visible  bool
	}{
		{ids[0], ids[1], true},
		{ids[0], ids[2], true},
		{ids[2], ids[3], true},
		{ids[2], ids[4], false},
	} {
		if err := g.AddEdge(e.from, e.to, widget.Edge{Visible: e.visible}); err != nil {
			t.Fatalf("add edge %d->%d: %v", e.from, e.to, err)
		}
	}
	return g, ids
}

func TestGraph_RejectsInvalidEdges(t *testing.T) {
	g, ids := newTree(t)
	orphan := g.AddVertex(widget.Widget{ID: "orphan", Visible: true})
	loose := g.AddVertex(widget.Widget{ID: "loose", Visible: true})
	if err := g.AddEdge(orphan, loose, widget.Edge{Visible: true}); err != nil {
		t.Fatalf("detached edge: %v", err)
	}

	cases := []struct {
		name     string
		from, to int
		want     error
	}{
		{"unknown source", 99, ids[1], widget.ErrUnknownVertex},
		{"unknown target", ids[0], 99, widget.ErrUnknownVertex},
		{"self loop", ids[1], ids[1], widget.ErrSelfLoop},
		{"into root", ids[1], ids[0], widget.ErrRootTarget},
		{"second parent", ids[1], ids[3], widget.ErrSecondParent},
		{"cycle", loose, orphan, widget.ErrCycle},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := g.AddEdge(tc.from, tc.to, widget.Edge{Visible: true})
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestGraph_WalkHonoursConjunctiveVisibility(t *testing.T) {
	g, ids := newTree(t)
	deep := g.AddVertex(widget.Widget{ID: "deep", Visible: true})
	if err := g.AddEdge(ids[4], deep, widget.Edge{Visible: true}); err != nil {
		t.Fatalf("add edge: %v", err)
	}
	hiddenWidget := g.AddVertex(widget.Widget{ID: "hidden-widget", Visible: false})
	if err := g.AddEdge(ids[1], hiddenWidget, widget.Edge{Visible: true}); err != nil {
		t.Fatalf("add edge: %v", err)
	}

	var visited []string
	var depths []int
	g.Walk(func(id, depth int, w widget.Widget) bool {
		visited = append(visited, w.ID)
		depths = append(depths, depth)
		return true
	})
	if diff := cmp.Diff([]string{"root", "a", "b", "b1"}, visited); diff != "" {
		t.Fatalf("walk mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 1, 1, 2}, depths); diff != "" {
		t.Fatalf("depth mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{ids[3]}, g.VisibleChildren(ids[2])); diff != "" {
		t.Fatalf("visible children mismatch (-want +got):\n%s", diff)
	}
}

func TestGraph_WalkSkipsSubtree(t *testing.T) {
	g, _ := newTree(t)
	var visited []string
	g.Walk(func(_, _ int, w widget.Widget) bool {
		visited = append(visited, w.ID)
		return w.ID != "b"
	})
	if diff := cmp.Diff([]string{"root", "a", "b"}, visited); diff != "" {
		t.Fatalf("walk mismatch (-want +got):\n%s", diff)
	}
}

func TestGraph_ChildrenKeepInsertionOrder(t *testing.T) {
	g, ids := newTree(t)
	want := []widget.Child{
		{ID: ids[3], Edge: widget.Edge{Visible: true}},
		{ID: ids[4], Edge: widget.Edge{Visible: false}},
	}
	if diff := cmp.Diff(want, g.Children(ids[2])); diff != "" {
		t.Fatalf("children mismatch (-want +got):\n%s", diff)
	}
	if g.Parent(ids[3]) != ids[2] || g.Parent(ids[0]) != widget.NoVertex {
		t.Fatalf("unexpected parents")
	}
}

func TestGraph_Validate(t *testing.T) {
	g, _ := newTree(t)
	if err := g.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	g.AddVertex(widget.Widget{ID: "orphan", Visible: true})
	if err := g.Validate(); !errors.Is(err, widget.ErrUnreachable) {
		t.Fatalf("expected ErrUnreachable, got %v", err)
	}
	if err := widget.NewGraph().Validate(); !errors.Is(err, widget.ErrNoRoot) {
		t.Fatalf("expected ErrNoRoot, got %v", err)
	}
}

func TestGraph_VertexRoundTrip(t *testing.T) {
	g, ids := newTree(t)
	w, ok := g.Vertex(ids[1])
	if !ok || w.NodeID != ids[1] {
		t.Fatalf("vertex = %+v, %v", w, ok)
	}
	w.Text = "changed"
	if err := g.SetVertex(ids[1], w); err != nil {
		t.Fatalf("set vertex: %v", err)
	}
	got, _ := g.Vertex(ids[1])
	if got.Text != "changed" {
		t.Fatalf("text = %q", got.Text)
	}
	if err := g.SetVertex(42, w); !errors.Is(err, widget.ErrUnknownVertex) {
		t.Fatalf("expected ErrUnknownVertex, got %v", err)
	}
	if g.Len() != 5 || g.Root() != ids[0] {
		t.Fatalf("len = %d root = %d", g.Len(), g.Root())
	}
}
