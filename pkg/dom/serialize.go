package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Callback receives serialized chunks in order. Returning an error aborts
// serialization.
type Callback func(chunk []byte) error

const indentUnit = "  "

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "keygen": true, "link": true,
	"meta": true, "param": true, "source": true, "track": true, "wbr": true,
}

// verbatimElements are rendered as-is: their text is either literal or
// whitespace-significant.
var verbatimElements = map[string]bool{
	"iframe": true, "listing": true, "noembed": true, "noframes": true,
	"noscript": true, "plaintext": true, "pre": true, "script": true,
	"style": true, "textarea": true, "xmp": true,
}

// Serialize pretty-prints the whole document.
func (u *Utility) Serialize() (string, error) {
	var sb strings.Builder
	if err := u.SerializeTo(&sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// SerializeTo streams the pretty-printed document into w.
func (u *Utility) SerializeTo(w io.Writer) error {
	if u.doc == nil {
		u.logger.Error("dom: failed to serialize document", "severity", "critical", "error", ErrClosed)
		return fmt.Errorf("%w: %w", ErrSerialize, ErrClosed)
	}
	err := SerializeCallback(u.doc, func(chunk []byte) error {
		_, err := w.Write(chunk)
		return err
	})
	if err != nil {
		u.logger.Error("dom: failed to serialize document", "severity", "critical", "error", err)
		return err
	}
	return nil
}

// SerializeNode pretty-prints a single node and its subtree.
func SerializeNode(n *html.Node) (string, error) {
	var sb strings.Builder
	err := SerializeCallback(n, func(chunk []byte) error {
		sb.Write(chunk)
		return nil
	})
	if err != nil {
		return "", err
	}
	return sb.String(), nil
}

// SerializeCallback pretty-prints n, handing each chunk to cb.
func SerializeCallback(n *html.Node, cb Callback) error {
	if n == nil {
		return fmt.Errorf("%w: nil node", ErrSerialize)
	}
	if cb == nil {
		return fmt.Errorf("%w: nil callback", ErrSerialize)
	}
	s := &serializer{cb: cb}
	s.node(n, 0)
	if s.err != nil {
		return fmt.Errorf("%w: %w", ErrSerialize, s.err)
	}
	return nil
}

type serializer struct {
	cb  Callback
	err error
}

func (s *serializer) emit(parts ...string) {
	if s.err != nil {
		return
	}
	for _, part := range parts {
		if part == "" {
			continue
		}
		if err := s.cb([]byte(part)); err != nil {
			s.err = err
			return
		}
	}
}

func (s *serializer) line(depth int, parts ...string) {
	s.emit(strings.Repeat(indentUnit, depth))
	s.emit(parts...)
	s.emit("\n")
}

func (s *serializer) node(n *html.Node, depth int) {
	if s.err != nil {
		return
	}
	switch n.Type {
	case html.DocumentNode:
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			s.node(child, depth)
		}
	case html.DoctypeNode:
		s.line(depth, "<!DOCTYPE ", n.Data, ">")
	case html.CommentNode:
		s.line(depth, "<!--", n.Data, "-->")
	case html.TextNode:
		if text := collapse(n.Data); text != "" {
			s.line(depth, html.EscapeString(text))
		}
	case html.ElementNode:
		s.element(n, depth)
	case html.RawNode:
		s.line(depth, n.Data)
	}
}

func (s *serializer) element(n *html.Node, depth int) {
	open := openTag(n)
	if voidElements[n.Data] {
		s.line(depth, open)
		return
	}
	if verbatimElements[n.Data] {
		var buf bytes.Buffer
		if err := html.Render(&buf, n); err != nil {
			s.err = err
			return
		}
		s.line(depth, buf.String())
		return
	}

	closeTag := "</" + n.Data + ">"

	if text, ok := onlyText(n); ok {
		s.line(depth, open, html.EscapeString(text), closeTag)
		return
	}

	s.line(depth, open)
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		s.node(child, depth+1)
	}
	s.line(depth, closeTag)
}

// onlyText reports whether n holds nothing but text, returning it collapsed.
func onlyText(n *html.Node) (string, bool) {
	var sb strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != html.TextNode {
			return "", false
		}
		sb.WriteString(child.Data)
	}
	return collapse(sb.String()), true
}

func collapse(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

func openTag(n *html.Node) string {
	var sb strings.Builder
	sb.WriteString("<")
	sb.WriteString(n.Data)
	for _, attr := range n.Attr {
		sb.WriteString(" ")
		if attr.Namespace != "" {
			sb.WriteString(attr.Namespace)
			sb.WriteString(":")
		}
		sb.WriteString(attr.Key)
		sb.WriteString(`="`)
		sb.WriteString(html.EscapeString(attr.Val))
		sb.WriteString(`"`)
	}
	sb.WriteString(">")
	return sb.String()
}
