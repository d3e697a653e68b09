package component

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/goliatone/go-fluidui/pkg/fileio"
)

// DescriptorExt is the file extension of component descriptors.
const DescriptorExt = ".vue"

// DefaultBaseDir is where NewFromName looks for descriptors.
const DefaultBaseDir = "./web/vue"

// Descriptor holds the three fragments extracted from a descriptor source.
// Missing sections are empty strings.
type Descriptor struct {
	Name     string
	Markup   string
	Style    string
	Behavior string
}

// ParseDescriptor extracts the markup, style and behavior fragments. Parsing
// is tolerant: a missing section yields an empty fragment, never an error.
func ParseDescriptor(content string) Descriptor {
	return Descriptor{
		Markup:   tagContent(content, "template"),
		Style:    tagContent(content, "style"),
		Behavior: defaultExportBody(content),
	}
}

// LoadDescriptor reads path through files and parses it. The descriptor name
// is the file stem.
func LoadDescriptor(files fileio.FileSystem, path string) (Descriptor, error) {
	if files == nil {
		files = fileio.Default
	}
	content, err := files.ReadFileAsString(path)
	if err != nil {
		return Descriptor{}, fmt.Errorf("%w: could not open %s: %w", ErrIO, path, err)
	}
	desc := ParseDescriptor(content)
	desc.Name = Stem(path)
	return desc, nil
}

// Stem returns the file name without directory and extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

var tagPatterns = map[string]*regexp.Regexp{
	"template": regexp.MustCompile(`(?i)<(/?)template\b[^>]*>`),
	"style":    regexp.MustCompile(`(?i)<(/?)style\b[^>]*>`),
}

// tagContent returns the inner content of the first tagName element. Nested
// elements of the same name are balanced so they stay inside the fragment.
func tagContent(content, tagName string) string {
	pattern, ok := tagPatterns[tagName]
	if !ok {
		pattern = regexp.MustCompile(`(?i)<(/?)` + regexp.QuoteMeta(tagName) + `\b[^>]*>`)
	}
	matches := pattern.FindAllStringSubmatchIndex(content, -1)

	start, depth, firstClose := -1, 0, -1
	for _, m := range matches {
		closing := m[3] > m[2]
		if start < 0 {
			if closing {
				continue
			}
			start, depth = m[1], 1
			continue
		}
		if !closing {
			depth++
			continue
		}
		if firstClose < 0 {
			firstClose = m[0]
		}
		depth--
		if depth == 0 {
			return content[start:m[0]]
		}
	}
	if start >= 0 && firstClose >= 0 {
		return content[start:firstClose]
	}
	return ""
}

var (
	exportDefaultOpen = regexp.MustCompile(`(?i)export\s+default\s*\{`)
	exportDefaultLazy = regexp.MustCompile(`(?i)export\s+default\s*\{([\s\S]*?)\}`)
)

// defaultExportBody returns the body of the first `export default { ... }`
// object. Braces inside strings and comments are ignored. When the object is
// never closed it falls back to the text up to the first closing brace.
func defaultExportBody(content string) string {
	loc := exportDefaultOpen.FindStringIndex(content)
	if loc == nil {
		return ""
	}
	if end := matchingBrace(content, loc[1]); end >= 0 {
		return content[loc[1]:end]
	}
	if m := exportDefaultLazy.FindStringSubmatch(content); m != nil {
		return m[1]
	}
	return ""
}

// matchingBrace scans from start, just after an opening brace, and returns
// the index of the brace that closes it, or -1.
func matchingBrace(s string, start int) int {
	depth := 1
	for i := start; i < len(s); i++ {
		switch c := s[i]; c {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		case '"', '\'', '`':
			i = skipString(s, i, c)
			if i < 0 {
				return -1
			}
		case '/':
			if i+1 >= len(s) {
				continue
			}
			switch s[i+1] {
			case '/':
				nl := strings.IndexByte(s[i:], '\n')
				if nl < 0 {
					return -1
				}
				i += nl
			case '*':
				end := strings.Index(s[i+2:], "*/")
				if end < 0 {
					return -1
				}
				i += end + 3
			}
		}
	}
	return -1
}

func skipString(s string, i int, quote byte) int {
	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case quote:
			return j
		case '\n':
			if quote != '`' {
				return j
			}
		}
	}
	return -1
}
