package widget

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/goliatone/go-fluidui/pkg/component"
)

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLogger sets the session logger.
func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithIDGenerator replaces the uuid generator used for widget ids.
func WithIDGenerator(fn func() string) SessionOption {
	return func(s *Session) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithRootLayout sets the orientation of the root layout.
func WithRootLayout(layout LayoutType) SessionOption {
	return func(s *Session) {
		s.rootLayout = layout
	}
}

// Session composes a widget graph. Style fragments collected from added
// components are stored on the graph.
type Session struct {
	graph      *Graph
	root       int
	rootLayout LayoutType
	logger     *slog.Logger
	newID      func() string
}

// NewSession creates the graph with its root Layout.
func NewSession(options ...SessionOption) *Session {
	s := &Session{
		graph:  NewGraph(),
		logger: slog.Default(),
		newID:  func() string { return uuid.NewString() },
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	s.root = s.graph.AddVertex(Widget{
		ID:      s.newID(),
		Type:    Layout,
		Visible: true,
		Layout:  s.rootLayout,
	})
	return s
}

// Graph exposes the composed graph.
func (s *Session) Graph() *Graph { return s.graph }

// Root is the id of the root Layout.
func (s *Session) Root() int { return s.root }

// Styles returns the style fragments collected from components, in order.
func (s *Session) Styles() []string {
	return s.graph.Styles()
}

// AddStyle records a style fragment for the generator.
func (s *Session) AddStyle(style string) {
	s.graph.AddStyle(style)
}

// Add inserts w under parent. An empty ID is filled with a generated one.
func (s *Session) Add(parent int, w Widget, visible bool) (int, error) {
	if !s.graph.Has(parent) {
		return NoVertex, fmt.Errorf("%w: %d", ErrUnknownVertex, parent)
	}
	if w.ID == "" {
		w.ID = s.newID()
	}
	id := s.graph.AddVertex(w)
	if err := s.graph.AddEdge(parent, id, Edge{Visible: visible}); err != nil {
		return NoVertex, err
	}
	return id, nil
}

// AddLayout adds a visible Layout.
func (s *Session) AddLayout(parent int, layout LayoutType) (int, error) {
	return s.Add(parent, Widget{Type: Layout, Visible: true, Layout: layout}, true)
}

// AddText adds a bare text node.
func (s *Session) AddText(parent int, text string) (int, error) {
	return s.Add(parent, Widget{Type: TextElement, Visible: true, Text: text}, true)
}

// AddLabel adds a label.
func (s *Session) AddLabel(parent int, text string) (int, error) {
	return s.Add(parent, Widget{Type: Label, Visible: true, Text: text}, true)
}

// AddParagraph adds a paragraph.
func (s *Session) AddParagraph(parent int, text string) (int, error) {
	return s.Add(parent, Widget{Type: Paragraph, Visible: true, Text: text}, true)
}

// AddSpan adds an inline span.
func (s *Session) AddSpan(parent int, text string) (int, error) {
	return s.Add(parent, Widget{Type: Span, Visible: true, Text: text}, true)
}

// AddLink adds an anchor pointing at href.
func (s *Session) AddLink(parent int, text, href string) (int, error) {
	return s.Add(parent, Widget{
		Type:       Link,
		Visible:    true,
		Text:       text,
		Attributes: map[string]string{"href": href},
	}, true)
}

// AddMarkdown adds a block rendered from markdown source.
func (s *Session) AddMarkdown(parent int, source string) (int, error) {
	return s.Add(parent, Widget{Type: Markdown, Visible: true, Text: source}, true)
}

// AddHTML adds a raw markup block.
func (s *Session) AddHTML(parent int, markup string) (int, error) {
	return s.Add(parent, Widget{Type: Html, Visible: true, Text: markup}, true)
}

// AddComponent renders c, imports its markup under parent and records its
// style fragment. It returns the id of the Layout wrapping the component.
func (s *Session) AddComponent(parent int, c component.Component) (int, error) {
	if err := component.Render(c); err != nil {
		s.logger.Error("widget: render component", "component", c.ComponentBase().Name(), "error", err)
		return NoVertex, fmt.Errorf("widget: render component %q: %w", c.ComponentBase().Name(), err)
	}
	b := c.ComponentBase()
	id, err := s.Add(parent, Widget{
		Type:       Layout,
		Visible:    true,
		Attributes: map[string]string{"data-component": b.Name()},
	}, true)
	if err != nil {
		return NoVertex, err
	}
	if err := s.ImportMarkupWith(id, b.Markup(), b.Values()); err != nil {
		return id, err
	}
	s.AddStyle(b.Style())
	for _, child := range b.Children() {
		if _, err := s.AddComponent(id, child); err != nil {
			return id, err
		}
	}
	return id, nil
}
