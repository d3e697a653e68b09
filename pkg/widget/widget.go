// Package widget models the composed UI as a directed graph of widgets. The
// graph is a tree rooted at a Layout; edges carry visibility.
package widget

import (
	"fmt"
	"strings"
)

// Type identifies what a widget renders as.
type Type int

const (
	Undefined Type = iota
	Layout
	TextElement
	Label
	Paragraph
	Span
	Link
	Markdown
	Html
)

func (t Type) String() string {
	switch t {
	case Undefined:
		return "undefined"
	case Layout:
		return "layout"
	case TextElement:
		return "text"
	case Label:
		return "label"
	case Paragraph:
		return "paragraph"
	case Span:
		return "span"
	case Link:
		return "link"
	case Markdown:
		return "markdown"
	case Html:
		return "html"
	}
	return fmt.Sprintf("type(%d)", int(t))
}

// LayoutType is the direction a Layout stacks its children.
type LayoutType int

const (
	Vertical LayoutType = iota
	Horizontal
)

func (l LayoutType) String() string {
	if l == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// ParseLayoutType accepts "horizontal"/"row" and "vertical"/"column".
func ParseLayoutType(s string) (LayoutType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "vertical", "column":
		return Vertical, nil
	case "horizontal", "row":
		return Horizontal, nil
	}
	return Vertical, fmt.Errorf("widget: unknown layout type %q", s)
}

// Widget is a graph vertex. Text holds the literal content for text-like
// widgets, the markdown source for Markdown and raw markup for Html.
type Widget struct {
	ID         string
	NodeID     int
	Type       Type
	Visible    bool
	Layout     LayoutType
	Text       string
	Attributes map[string]string
}

// Attr returns the attribute value or "".
func (w Widget) Attr(key string) string {
	return w.Attributes[key]
}

// Edge connects a parent to a child.
type Edge struct {
	Visible bool
}
