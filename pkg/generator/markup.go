package generator

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/go-fluidui/pkg/widget"
)

// MarkupName is the registry name of the markup generator.
const MarkupName = "markup"

// Markup builds the page as an html.Node tree and renders it.
type Markup struct {
	settings settings
	markdown goldmark.Markdown
}

var _ Generator = (*Markup)(nil)

// NewMarkup returns a markup generator.
func NewMarkup(options ...Option) *Markup {
	return &Markup{
		settings: newSettings(options),
		markdown: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

func (m *Markup) Name() string { return MarkupName }

// GenerateHTML renders a full document for g.
func (m *Markup) GenerateHTML(g *widget.Graph) (string, error) {
	body, err := m.bodyNode(g)
	if err != nil {
		m.settings.logger.Error("generator: markup", "error", err)
		return fail(m.settings.title, err)
	}

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	root := element(atom.Html, nil)
	if t := m.settings.theme; t != nil {
		if t.Theme != "" {
			root.Attr = append(root.Attr, html.Attribute{Key: "data-theme", Val: t.Theme})
		}
		if t.Variant != "" {
			root.Attr = append(root.Attr, html.Attribute{Key: "data-theme-variant", Val: t.Variant})
		}
	}
	doc.AppendChild(root)
	root.AppendChild(m.head(g.Styles()))

	bodyEl := element(atom.Body, nil)
	app := element(atom.Div, []html.Attribute{{Key: "id", Val: "app"}})
	app.AppendChild(body)
	bodyEl.AppendChild(app)
	for _, src := range m.settings.scripts {
		bodyEl.AppendChild(element(atom.Script, []html.Attribute{{Key: "src", Val: src}}))
	}
	root.AppendChild(bodyEl)

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		m.settings.logger.Error("generator: markup render", "error", err)
		return fail(m.settings.title, err)
	}
	buf.WriteByte('\n')
	return buf.String(), nil
}

// RenderBody renders only the visible widget tree, without the document
// shell.
func (m *Markup) RenderBody(g *widget.Graph) (string, error) {
	body, err := m.bodyNode(g)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, body); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// head emits the configured styles followed by the graph styles.
func (m *Markup) head(graphStyles []string) *html.Node {
	head := element(atom.Head, nil)
	head.AppendChild(element(atom.Meta, []html.Attribute{{Key: "charset", Val: "utf-8"}}))
	title := element(atom.Title, nil)
	title.AppendChild(&html.Node{Type: html.TextNode, Data: m.settings.title})
	head.AppendChild(title)
	if css := themeCSS(m.settings.theme); css != "" {
		head.AppendChild(styleNode(css))
	}
	for _, style := range append(append([]string(nil), m.settings.styles...), graphStyles...) {
		head.AppendChild(styleNode(style))
	}
	return head
}

func (m *Markup) bodyNode(g *widget.Graph) (*html.Node, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if g.Root() == widget.NoVertex {
		return nil, widget.ErrNoRoot
	}
	root, ok := g.Vertex(g.Root())
	if !ok {
		return nil, fmt.Errorf("%w: %d", widget.ErrUnknownVertex, g.Root())
	}
	if root.Type != widget.Layout {
		return nil, fmt.Errorf("generator: root must be a layout, got %s", root.Type)
	}
	if !root.Visible {
		return element(atom.Div, attributes(root, layoutClass(root))), nil
	}
	holder := element(atom.Div, nil)
	if err := m.appendWidget(holder, g, g.Root()); err != nil {
		return nil, err
	}
	body := holder.FirstChild
	holder.RemoveChild(body)
	return body, nil
}

// appendWidget renders vertex id and its visible subtree under parent.
func (m *Markup) appendWidget(parent *html.Node, g *widget.Graph, id int) error {
	w, _ := g.Vertex(id)
	var container *html.Node

	switch w.Type {
	case widget.Layout:
		container = element(atom.Div, attributes(w, layoutClass(w)))
	case widget.Label:
		container = element(atom.Label, attributes(w, ""))
	case widget.Paragraph:
		container = element(atom.P, attributes(w, ""))
	case widget.Span:
		container = element(atom.Span, attributes(w, ""))
	case widget.Link:
		container = element(atom.A, attributes(w, ""))
	case widget.TextElement:
		parent.AppendChild(&html.Node{Type: html.TextNode, Data: w.Text})
		return nil
	case widget.Markdown:
		var buf bytes.Buffer
		if err := m.markdown.Convert([]byte(w.Text), &buf); err != nil {
			return fmt.Errorf("generator: markdown widget %d: %w", id, err)
		}
		container = element(atom.Div, []html.Attribute{{Key: "class", Val: "fluid-markdown"}})
		if err := appendFragment(container, SanitizeHTML(buf.String())); err != nil {
			return fmt.Errorf("generator: markdown widget %d: %w", id, err)
		}
		parent.AppendChild(container)
		return nil
	case widget.Html:
		markup := w.Text
		if !m.settings.trusted {
			markup = SanitizeHTML(markup)
		}
		if err := appendFragment(parent, markup); err != nil {
			return fmt.Errorf("generator: html widget %d: %w", id, err)
		}
		return nil
	default:
		m.settings.logger.Warn("generator: skipping widget", "id", id, "type", w.Type.String())
		return nil
	}

	if w.Text != "" {
		container.AppendChild(&html.Node{Type: html.TextNode, Data: w.Text})
	}
	for _, child := range g.VisibleChildren(id) {
		if err := m.appendWidget(container, g, child); err != nil {
			return err
		}
	}
	parent.AppendChild(container)
	return nil
}

func layoutClass(w widget.Widget) string {
	return "fluid-layout fluid-" + w.Layout.String()
}

func element(a atom.Atom, attrs []html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func styleNode(css string) *html.Node {
	n := element(atom.Style, nil)
	n.AppendChild(&html.Node{Type: html.TextNode, Data: css})
	return n
}

// attributes emits the widget attributes in key order, merging class with
// baseClass and dropping unsafe hrefs.
func attributes(w widget.Widget, baseClass string) []html.Attribute {
	keys := make([]string, 0, len(w.Attributes))
	for key := range w.Attributes {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var attrs []html.Attribute
	class := baseClass
	for _, key := range keys {
		value := w.Attributes[key]
		switch {
		case key == "class":
			class = strings.TrimSpace(class + " " + value)
			continue
		case key == "href" && unsafeURL(value):
			continue
		case strings.HasPrefix(key, "on"):
			continue
		}
		attrs = append(attrs, html.Attribute{Key: key, Val: value})
	}
	if class != "" {
		attrs = append([]html.Attribute{{Key: "class", Val: class}}, attrs...)
	}
	return attrs
}

func unsafeURL(u string) bool {
	scheme := strings.ToLower(strings.TrimSpace(u))
	return strings.HasPrefix(scheme, "javascript:") || strings.HasPrefix(scheme, "vbscript:")
}

func appendFragment(parent *html.Node, markup string) error {
	if strings.TrimSpace(markup) == "" {
		return nil
	}
	holder := element(atom.Div, nil)
	nodes, err := html.ParseFragment(strings.NewReader(markup), holder)
	if err != nil {
		return err
	}
	for _, n := range nodes {
		parent.AppendChild(n)
	}
	return nil
}
