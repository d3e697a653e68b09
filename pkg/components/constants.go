package components

import (
	"fmt"
	"strings"
)

// TextSize is the typographic size of a TextDisplay.
type TextSize string

const (
	SizeH1      TextSize = "h1"
	SizeH2      TextSize = "h2"
	SizeH3      TextSize = "h3"
	SizeH4      TextSize = "h4"
	SizeH5      TextSize = "h5"
	SizeH6      TextSize = "h6"
	SizeSmall   TextSize = "small"
	SizeMedium  TextSize = "medium"
	SizeLarge   TextSize = "large"
	SizeRegular TextSize = "regular"
)

var textSizes = []TextSize{
	SizeH1, SizeH2, SizeH3, SizeH4, SizeH5, SizeH6,
	SizeSmall, SizeMedium, SizeLarge, SizeRegular,
}

func (s TextSize) String() string { return string(s) }

// Heading reports whether the size maps to a heading element.
func (s TextSize) Heading() bool {
	switch s {
	case SizeH1, SizeH2, SizeH3, SizeH4, SizeH5, SizeH6:
		return true
	}
	return false
}

// ParseTextSize resolves a size name, ignoring case.
func ParseTextSize(s string) (TextSize, error) {
	return parseEnum("text size", s, textSizes)
}

// TextSizes lists every size in declaration order.
func TextSizes() []TextSize {
	return append([]TextSize(nil), textSizes...)
}

// TextStyle is the font treatment of a TextDisplay.
type TextStyle string

const (
	StyleNormal        TextStyle = "normal"
	StyleItalic        TextStyle = "italic"
	StyleBold          TextStyle = "bold"
	StyleUnderline     TextStyle = "underline"
	StyleStrikethrough TextStyle = "strikethrough"
	StyleUppercase     TextStyle = "uppercase"
	StyleLowercase     TextStyle = "lowercase"
	StyleCapitalize    TextStyle = "capitalize"
	StyleOverline      TextStyle = "overline"
	StyleSmallcaps     TextStyle = "smallcaps"
	StyleSuperscript   TextStyle = "superscript"
	StyleSubscript     TextStyle = "subscript"
)

var textStyles = []TextStyle{
	StyleNormal, StyleItalic, StyleBold, StyleUnderline, StyleStrikethrough,
	StyleUppercase, StyleLowercase, StyleCapitalize, StyleOverline,
	StyleSmallcaps, StyleSuperscript, StyleSubscript,
}

func (s TextStyle) String() string { return string(s) }

// ParseTextStyle resolves a style name, ignoring case.
func ParseTextStyle(s string) (TextStyle, error) {
	return parseEnum("text style", s, textStyles)
}

// TextStyles lists every style in declaration order.
func TextStyles() []TextStyle {
	return append([]TextStyle(nil), textStyles...)
}

// TextColor is a named CSS color.
type TextColor string

const (
	ColorBlack   TextColor = "black"
	ColorWhite   TextColor = "white"
	ColorRed     TextColor = "red"
	ColorGreen   TextColor = "green"
	ColorBlue    TextColor = "blue"
	ColorYellow  TextColor = "yellow"
	ColorOrange  TextColor = "orange"
	ColorPurple  TextColor = "purple"
	ColorPink    TextColor = "pink"
	ColorBrown   TextColor = "brown"
	ColorGray    TextColor = "gray"
	ColorCyan    TextColor = "cyan"
	ColorMagenta TextColor = "magenta"
	ColorLime    TextColor = "lime"
	ColorMaroon  TextColor = "maroon"
	ColorNavy    TextColor = "navy"
	ColorOlive   TextColor = "olive"
	ColorTeal    TextColor = "teal"
	ColorViolet  TextColor = "violet"
	ColorIndigo  TextColor = "indigo"
)

var textColors = []TextColor{
	ColorBlack, ColorWhite, ColorRed, ColorGreen, ColorBlue, ColorYellow,
	ColorOrange, ColorPurple, ColorPink, ColorBrown, ColorGray, ColorCyan,
	ColorMagenta, ColorLime, ColorMaroon, ColorNavy, ColorOlive, ColorTeal,
	ColorViolet, ColorIndigo,
}

func (c TextColor) String() string { return string(c) }

// ParseTextColor resolves a color name, ignoring case.
func ParseTextColor(s string) (TextColor, error) {
	return parseEnum("text color", s, textColors)
}

// TextColors lists every color in declaration order.
func TextColors() []TextColor {
	return append([]TextColor(nil), textColors...)
}

// JavaScriptEvent names a DOM event a component can listen to.
type JavaScriptEvent string

const (
	EventClick       JavaScriptEvent = "click"
	EventDblClick    JavaScriptEvent = "dblclick"
	EventMouseDown   JavaScriptEvent = "mousedown"
	EventMouseUp     JavaScriptEvent = "mouseup"
	EventMouseMove   JavaScriptEvent = "mousemove"
	EventMouseOver   JavaScriptEvent = "mouseover"
	EventMouseOut    JavaScriptEvent = "mouseout"
	EventKeyDown     JavaScriptEvent = "keydown"
	EventKeyUp       JavaScriptEvent = "keyup"
	EventKeyPress    JavaScriptEvent = "keypress"
	EventLoad        JavaScriptEvent = "load"
	EventUnload      JavaScriptEvent = "unload"
	EventAbort       JavaScriptEvent = "abort"
	EventError       JavaScriptEvent = "error"
	EventResize      JavaScriptEvent = "resize"
	EventScroll      JavaScriptEvent = "scroll"
	EventSelect      JavaScriptEvent = "select"
	EventChange      JavaScriptEvent = "change"
	EventSubmit      JavaScriptEvent = "submit"
	EventReset       JavaScriptEvent = "reset"
	EventFocus       JavaScriptEvent = "focus"
	EventBlur        JavaScriptEvent = "blur"
	EventInput       JavaScriptEvent = "input"
	EventContextMenu JavaScriptEvent = "contextmenu"
	EventDrag        JavaScriptEvent = "drag"
	EventDragEnd     JavaScriptEvent = "dragend"
	EventDragEnter   JavaScriptEvent = "dragenter"
	EventDragLeave   JavaScriptEvent = "dragleave"
	EventDragOver    JavaScriptEvent = "dragover"
	EventDragStart   JavaScriptEvent = "dragstart"
	EventDrop        JavaScriptEvent = "drop"
	EventCopy        JavaScriptEvent = "copy"
	EventCut         JavaScriptEvent = "cut"
	EventPaste       JavaScriptEvent = "paste"
	EventWheel       JavaScriptEvent = "wheel"
	EventTouchStart  JavaScriptEvent = "touchstart"
	EventTouchMove   JavaScriptEvent = "touchmove"
	EventTouchEnd    JavaScriptEvent = "touchend"
	EventTouchCancel JavaScriptEvent = "touchcancel"
)

var javaScriptEvents = []JavaScriptEvent{
	EventClick, EventDblClick, EventMouseDown, EventMouseUp, EventMouseMove,
	EventMouseOver, EventMouseOut, EventKeyDown, EventKeyUp, EventKeyPress,
	EventLoad, EventUnload, EventAbort, EventError, EventResize, EventScroll,
	EventSelect, EventChange, EventSubmit, EventReset, EventFocus, EventBlur,
	EventInput, EventContextMenu, EventDrag, EventDragEnd, EventDragEnter,
	EventDragLeave, EventDragOver, EventDragStart, EventDrop, EventCopy,
	EventCut, EventPaste, EventWheel, EventTouchStart, EventTouchMove,
	EventTouchEnd, EventTouchCancel,
}

func (e JavaScriptEvent) String() string { return string(e) }

// Attribute returns the inline handler attribute, e.g. "onclick".
func (e JavaScriptEvent) Attribute() string { return "on" + string(e) }

// ParseJavaScriptEvent resolves an event name. A leading "on" is accepted.
func ParseJavaScriptEvent(s string) (JavaScriptEvent, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if ev, err := parseEnum("javascript event", name, javaScriptEvents); err == nil {
		return ev, nil
	}
	return parseEnum("javascript event", strings.TrimPrefix(name, "on"), javaScriptEvents)
}

// JavaScriptEvents lists every event in declaration order.
func JavaScriptEvents() []JavaScriptEvent {
	return append([]JavaScriptEvent(nil), javaScriptEvents...)
}

func parseEnum[T ~string](kind, s string, known []T) (T, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for _, v := range known {
		if string(v) == want {
			return v, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("components: unknown %s %q", kind, s)
}
