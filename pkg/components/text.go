// Package components holds the concrete components shipped with fluidui.
package components

import (
	"fmt"
	"html"

	"github.com/goliatone/go-fluidui/pkg/component"
	"github.com/goliatone/go-fluidui/pkg/inputs"
)

// Input names declared by TextDisplay.
const (
	TextInput  = "text"
	SizeInput  = "size"
	StyleInput = "style"
	ColorInput = "color"
)

// TextDisplay shows a run of text with a size, style and color.
type TextDisplay struct {
	component.Base
}

// NewTextDisplay declares the four string inputs and composes the markup.
func NewTextDisplay(text string, size TextSize, style TextStyle, color TextColor, options ...component.Option) *TextDisplay {
	t := &TextDisplay{}
	t.Init(options...)
	t.SetName("TextDisplay")
	t.AddInputValue(inputs.String(TextInput, text))
	t.AddInputValue(inputs.String(SizeInput, size.String()))
	t.AddInputValue(inputs.String(StyleInput, style.String()))
	t.AddInputValue(inputs.String(ColorInput, color.String()))
	t.compose()
	return t
}

// Text returns the text input, or "" when it is not declared.
func (t *TextDisplay) Text() string {
	return t.input(TextInput)
}

// Size returns the size input.
func (t *TextDisplay) Size() TextSize { return TextSize(t.input(SizeInput)) }

// TextStyle returns the style input.
func (t *TextDisplay) TextStyle() TextStyle { return TextStyle(t.input(StyleInput)) }

// Color returns the color input.
func (t *TextDisplay) Color() TextColor { return TextColor(t.input(ColorInput)) }

func (t *TextDisplay) input(name string) string {
	if v, ok := t.InputValue(name); ok {
		return v.Text()
	}
	return ""
}

// Compose renders the inputs into markup. It never fails.
func (t *TextDisplay) Compose() error {
	t.compose()
	return nil
}

// compose uses a heading element for h1 to h6 and a paragraph otherwise.
func (t *TextDisplay) compose() {
	tag := "p"
	if size := t.Size(); size.Heading() {
		tag = size.String()
	}
	t.SetMarkup(fmt.Sprintf(`<%s class="fluid-text fluid-text-%s fluid-text-%s" style="color: %s">%s</%s>`,
		tag,
		html.EscapeString(t.Size().String()),
		html.EscapeString(t.TextStyle().String()),
		html.EscapeString(t.Color().String()),
		html.EscapeString(t.Text()),
		tag,
	))
}

// Render is a no-op; the markup is composed at construction.
func (t *TextDisplay) Render() error {
	return nil
}
