package dom

import (
	"strings"
	"sync"

	"golang.org/x/net/html/atom"
)

// TagID identifies a known HTML tag.
type TagID = atom.Atom

// TagUndefined is returned for names that are not known HTML tags.
const TagUndefined TagID = 0

var knownTags = []string{
	"a", "abbr", "acronym", "address", "applet", "area", "article", "aside",
	"audio", "b", "base", "basefont", "bdi", "bdo", "bgsound", "big", "blink",
	"blockquote", "body", "br", "button", "canvas", "caption", "center", "cite",
	"code", "col", "colgroup", "command", "data", "datalist", "dd", "del",
	"details", "dfn", "dialog", "dir", "div", "dl", "dt", "em", "embed",
	"fieldset", "figcaption", "figure", "font", "footer", "form", "frame",
	"frameset", "h1", "h2", "h3", "h4", "h5", "h6", "head", "header", "hgroup",
	"hr", "html", "i", "iframe", "image", "img", "input", "ins", "isindex",
	"kbd", "keygen", "label", "legend", "li", "link", "listing", "main", "map",
	"mark", "marquee", "math", "menu", "menuitem", "meta", "meter", "nav",
	"nobr", "noembed", "noframes", "noscript", "object", "ol", "optgroup",
	"option", "output", "p", "param", "picture", "plaintext", "pre",
	"progress", "q", "rb", "rp", "rt", "rtc", "ruby", "s", "samp", "script",
	"search", "section", "select", "slot", "small", "source", "span", "strike",
	"strong", "style", "sub", "summary", "sup", "svg", "table", "tbody", "td",
	"template", "textarea", "tfoot", "th", "thead", "time", "title", "tr",
	"track", "tt", "u", "ul", "var", "video", "wbr", "xmp",
}

var (
	tagTableOnce sync.Once
	tagTable     map[string]TagID
)

func tags() map[string]TagID {
	tagTableOnce.Do(func() {
		tagTable = make(map[string]TagID, len(knownTags))
		for _, name := range knownTags {
			if id := atom.Lookup([]byte(name)); id != 0 {
				tagTable[name] = id
			}
		}
	})
	return tagTable
}

// TagNameToID maps a tag name to its identifier. Lookups are case-insensitive
// and unknown names return TagUndefined.
func TagNameToID(name string) TagID {
	id, ok := tags()[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return TagUndefined
	}
	return id
}

// TagName is the inverse of TagNameToID.
func TagName(id TagID) string {
	if id == TagUndefined {
		return ""
	}
	return id.String()
}
