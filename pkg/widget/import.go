package widget

import (
	"errors"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/wavetermdev/htmltoken"
)

var layoutTags = map[string]bool{
	"div":     true,
	"section": true,
	"main":    true,
	"header":  true,
	"footer":  true,
	"nav":     true,
}

var typedTags = map[string]Type{
	"p":     Paragraph,
	"span":  Span,
	"label": Label,
	"a":     Link,
}

var voidTags = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

type frame struct {
	tag string
	id  int
}

// rawCapture accumulates the outer markup of an unknown element.
type rawCapture struct {
	parent  int
	visible bool
	tag     string
	depth   int
	buf     strings.Builder
}

// ImportMarkup tokenizes markup and adds the resulting widgets under parent.
// Layout tags, p, span, label and a map to typed widgets; any other element
// is kept whole as an Html widget. Elements marked hidden, or whose v-if or
// v-show condition is false, are attached through an invisible edge.
func (s *Session) ImportMarkup(parent int, markup string) error {
	return s.ImportMarkupWith(parent, markup, nil)
}

// ImportMarkupWith is ImportMarkup with v-if and v-show conditions evaluated
// against values.
func (s *Session) ImportMarkupWith(parent int, markup string, values map[string]any) error {
	if !s.graph.Has(parent) {
		return fmt.Errorf("%w: %d", ErrUnknownVertex, parent)
	}
	tokens := htmltoken.NewTokenizer(strings.NewReader(markup))
	stack := []frame{{id: parent}}
	var raw *rawCapture

	current := func() int { return stack[len(stack)-1].id }

	for {
		tokenType := tokens.Next()
		if tokenType == htmltoken.ErrorToken {
			if err := tokens.Err(); err != nil && !errors.Is(err, io.EOF) {
				s.logger.Warn("widget: import markup", "error", err)
				return fmt.Errorf("widget: import markup: %w", err)
			}
			break
		}
		token := tokens.Token()

		if raw != nil {
			switch tokenType {
			case htmltoken.StartTagToken:
				raw.buf.WriteString(openTag(token, false))
				if token.Data == raw.tag {
					raw.depth++
				}
			case htmltoken.SelfClosingTagToken:
				raw.buf.WriteString(openTag(token, true))
			case htmltoken.EndTagToken:
				raw.buf.WriteString("</" + token.Data + ">")
				if token.Data == raw.tag {
					raw.depth--
				}
			case htmltoken.TextToken:
				raw.buf.WriteString(html.EscapeString(token.Data))
			}
			if raw.depth == 0 {
				if _, err := s.Add(raw.parent, Widget{Type: Html, Visible: true, Text: raw.buf.String()}, raw.visible); err != nil {
					return err
				}
				raw = nil
			}
			continue
		}

		switch tokenType {
		case htmltoken.StartTagToken, htmltoken.SelfClosingTagToken:
			tag := token.Data
			visible := !s.hidden(token, values)
			selfClosing := tokenType == htmltoken.SelfClosingTagToken || voidTags[tag]

			w, known := s.widgetFor(token)
			if !known {
				if selfClosing {
					if _, err := s.Add(current(), Widget{Type: Html, Visible: true, Text: openTag(token, tokenType == htmltoken.SelfClosingTagToken)}, visible); err != nil {
						return err
					}
					continue
				}
				raw = &rawCapture{parent: current(), visible: visible, tag: tag, depth: 1}
				raw.buf.WriteString(openTag(token, false))
				continue
			}
			id, err := s.Add(current(), w, visible)
			if err != nil {
				return err
			}
			if !selfClosing {
				stack = append(stack, frame{tag: tag, id: id})
			}
		case htmltoken.EndTagToken:
			// Close the nearest matching element; stray end tags are ignored.
			for i := len(stack) - 1; i > 0; i-- {
				if stack[i].tag == token.Data {
					stack = stack[:i]
					break
				}
			}
		case htmltoken.TextToken:
			text := strings.Join(strings.Fields(token.Data), " ")
			if text == "" {
				continue
			}
			if _, err := s.AddText(current(), text); err != nil {
				return err
			}
		}
	}

	if raw != nil {
		// Unterminated unknown element: keep what was captured.
		if _, err := s.Add(raw.parent, Widget{Type: Html, Visible: true, Text: raw.buf.String()}, raw.visible); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) widgetFor(token htmltoken.Token) (Widget, bool) {
	tag := token.Data
	w := Widget{Visible: true, Attributes: keptAttributes(token)}
	if layoutTags[tag] {
		w.Type = Layout
		layout, err := ParseLayoutType(w.Attributes["data-orientation"])
		if err != nil {
			s.logger.Warn("widget: import markup", "tag", tag, "error", err)
		}
		w.Layout = layout
		return w, true
	}
	t, ok := typedTags[tag]
	if !ok {
		return Widget{}, false
	}
	w.Type = t
	return w, true
}

// hidden reports whether the element starts invisible. Conditions that do
// not parse leave the element visible.
func (s *Session) hidden(token htmltoken.Token, values map[string]any) bool {
	for _, a := range token.Attr {
		key := strings.ToLower(a.Key)
		switch key {
		case "hidden":
			return true
		case "v-if", "v-show":
			ok, err := EvalCondition(a.Val, values)
			if err != nil {
				s.logger.Warn("widget: import markup", "tag", token.Data, "directive", key, "error", err)
				continue
			}
			if !ok {
				return true
			}
		}
	}
	return false
}

// keptAttributes drops framework directives, event handlers and hidden.
func keptAttributes(token htmltoken.Token) map[string]string {
	var out map[string]string
	for _, a := range token.Attr {
		key := strings.ToLower(a.Key)
		switch {
		case key == "" || key == "hidden":
			continue
		case strings.HasPrefix(key, "v-"), strings.HasPrefix(key, "@"), strings.HasPrefix(key, ":"):
			continue
		case strings.HasPrefix(key, "on"):
			continue
		}
		if out == nil {
			out = make(map[string]string, len(token.Attr))
		}
		out[key] = a.Val
	}
	return out
}

func openTag(token htmltoken.Token, selfClosing bool) string {
	var sb strings.Builder
	sb.WriteString("<" + token.Data)
	for _, a := range token.Attr {
		sb.WriteString(" " + a.Key)
		if a.Val != "" {
			sb.WriteString(`="` + html.EscapeString(a.Val) + `"`)
		}
	}
	if selfClosing {
		sb.WriteString("/")
	}
	sb.WriteString(">")
	return sb.String()
}
