package widget

import (
	"errors"
	"fmt"

	"github.com/emirpasic/gods/maps/treemap"
)

var (
	ErrUnknownVertex = errors.New("widget: unknown vertex")
	ErrSelfLoop      = errors.New("widget: edge from a vertex to itself")
	ErrSecondParent  = errors.New("widget: vertex already has a parent")
	ErrRootTarget    = errors.New("widget: edge into the root")
	ErrCycle         = errors.New("widget: edge would create a cycle")
	ErrUnreachable   = errors.New("widget: vertex not reachable from the root")
	ErrNoRoot        = errors.New("widget: graph has no root")
)

// NoVertex is returned where a vertex id is absent.
const NoVertex = -1

type link struct {
	child int
	edge  Edge
}

// Graph stores widgets keyed by vertex id. The first vertex added is the root.
type Graph struct {
	vertices *treemap.Map
	children map[int][]link
	parents  map[int]int
	root     int
	next     int
	styles   []string
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		vertices: treemap.NewWithIntComparator(),
		children: make(map[int][]link),
		parents:  make(map[int]int),
		root:     NoVertex,
	}
}

// AddVertex stores w and returns its id. w.NodeID is overwritten with the id.
func (g *Graph) AddVertex(w Widget) int {
	id := g.next
	g.next++
	w.NodeID = id
	g.vertices.Put(id, w)
	if g.root == NoVertex {
		g.root = id
	}
	return id
}

// AddStyle records a style sheet that travels with the graph to the
// generator. Empty fragments are ignored.
func (g *Graph) AddStyle(style string) {
	if style != "" {
		g.styles = append(g.styles, style)
	}
}

// Styles returns the recorded style sheets in insertion order.
func (g *Graph) Styles() []string {
	return append([]string(nil), g.styles...)
}

// Vertex returns the widget stored under id.
func (g *Graph) Vertex(id int) (Widget, bool) {
	v, ok := g.vertices.Get(id)
	if !ok {
		return Widget{}, false
	}
	return v.(Widget), true
}

// SetVertex replaces the widget stored under id.
func (g *Graph) SetVertex(id int, w Widget) error {
	if _, ok := g.vertices.Get(id); !ok {
		return fmt.Errorf("%w: %d", ErrUnknownVertex, id)
	}
	w.NodeID = id
	g.vertices.Put(id, w)
	return nil
}

// Has reports whether id is a vertex.
func (g *Graph) Has(id int) bool {
	_, ok := g.vertices.Get(id)
	return ok
}

// AddEdge links parent to child. The graph stays a tree: a child has one
// parent, the root has none and no edge may close a cycle.
func (g *Graph) AddEdge(from, to int, e Edge) error {
	if !g.Has(from) {
		return fmt.Errorf("%w: %d", ErrUnknownVertex, from)
	}
	if !g.Has(to) {
		return fmt.Errorf("%w: %d", ErrUnknownVertex, to)
	}
	if from == to {
		return fmt.Errorf("%w: %d", ErrSelfLoop, from)
	}
	if to == g.root {
		return fmt.Errorf("%w: %d -> %d", ErrRootTarget, from, to)
	}
	if p, ok := g.parents[to]; ok {
		return fmt.Errorf("%w: %d is a child of %d", ErrSecondParent, to, p)
	}
	for cur, ok := from, true; ok; cur, ok = g.parents[cur] {
		if cur == to {
			return fmt.Errorf("%w: %d -> %d", ErrCycle, from, to)
		}
	}
	g.parents[to] = from
	g.children[from] = append(g.children[from], link{child: to, edge: e})
	return nil
}

// Child is a child vertex id with the edge that reaches it.
type Child struct {
	ID   int
	Edge Edge
}

// Children lists the children of id in insertion order.
func (g *Graph) Children(id int) []Child {
	links := g.children[id]
	out := make([]Child, 0, len(links))
	for _, l := range links {
		out = append(out, Child{ID: l.child, Edge: l.edge})
	}
	return out
}

// Parent returns the parent of id, or NoVertex.
func (g *Graph) Parent(id int) int {
	if p, ok := g.parents[id]; ok {
		return p
	}
	return NoVertex
}

// Root is the id of the first vertex, or NoVertex for an empty graph.
func (g *Graph) Root() int { return g.root }

// Len is the number of vertices.
func (g *Graph) Len() int { return g.vertices.Size() }

// Each visits every vertex in id order, reachable or not.
func (g *Graph) Each(fn func(id int, w Widget)) {
	g.vertices.Each(func(key, value any) {
		fn(key.(int), value.(Widget))
	})
}

// Walk visits the visible widgets depth-first from the root, children in
// insertion order. A widget is visible when it and every edge on its path
// from the root are visible. Returning false from fn skips the subtree.
func (g *Graph) Walk(fn func(id, depth int, w Widget) bool) {
	if g.root == NoVertex {
		return
	}
	g.walk(g.root, 0, fn)
}

func (g *Graph) walk(id, depth int, fn func(id, depth int, w Widget) bool) {
	w, ok := g.Vertex(id)
	if !ok || !w.Visible {
		return
	}
	if !fn(id, depth, w) {
		return
	}
	for _, l := range g.children[id] {
		if l.edge.Visible {
			g.walk(l.child, depth+1, fn)
		}
	}
}

// VisibleChildren lists the children of id reachable through a visible edge
// whose widget is itself visible.
func (g *Graph) VisibleChildren(id int) []int {
	var out []int
	for _, l := range g.children[id] {
		if !l.edge.Visible {
			continue
		}
		if w, ok := g.Vertex(l.child); ok && w.Visible {
			out = append(out, l.child)
		}
	}
	return out
}

// Validate checks that every vertex is reachable from the root.
func (g *Graph) Validate() error {
	if g.root == NoVertex {
		return ErrNoRoot
	}
	var err error
	g.Each(func(id int, _ Widget) {
		if err != nil || id == g.root {
			return
		}
		cur := id
		for steps := 0; steps <= g.Len(); steps++ {
			p, ok := g.parents[cur]
			if !ok {
				err = fmt.Errorf("%w: %d", ErrUnreachable, id)
				return
			}
			if p == g.root {
				return
			}
			cur = p
		}
		err = fmt.Errorf("%w: %d", ErrCycle, id)
	})
	return err
}
