// Package dom parses, queries, mutates and serializes the HTML documents that
// drive the UI. A Utility owns exactly one parsed document together with every
// element collection returned by its queries.
//
// A Utility is not safe for concurrent use.
package dom

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/go-fluidui/pkg/fileio"
)

// Option configures a Utility before parsing.
type Option func(*config)

type config struct {
	logger *slog.Logger
	files  fileio.FileSystem
}

// WithLogger sets the logger used for critical and query diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithFileSystem swaps the file collaborator used by ParseFile and
// WriteToFile.
func WithFileSystem(files fileio.FileSystem) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.files = files
		}
	}
}

func newConfig(options []Option) config {
	cfg := config{
		logger: slog.Default(),
		files:  fileio.Default,
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Utility wraps one parsed HTML document.
type Utility struct {
	logger *slog.Logger
	files  fileio.FileSystem

	doc         *html.Node
	collections map[*Collection]struct{}
}

// Parse builds a Utility from HTML text.
func Parse(text string, options ...Option) (*Utility, error) {
	return ParseReader(strings.NewReader(text), options...)
}

// ParseFile reads path through the configured file system and parses it.
func ParseFile(path string, options ...Option) (*Utility, error) {
	cfg := newConfig(options)
	text, err := cfg.files.ReadFileAsString(path)
	if err != nil {
		cfg.logger.Error("dom: read document", "severity", "critical", "path", path, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return parse(strings.NewReader(text), cfg)
}

// ParseReader parses the document streamed from r.
func ParseReader(r io.Reader, options ...Option) (*Utility, error) {
	return parse(r, newConfig(options))
}

func parse(r io.Reader, cfg config) (*Utility, error) {
	if r == nil {
		cfg.logger.Error("dom: failed to create parser", "severity", "critical")
		return nil, fmt.Errorf("%w: nil reader", ErrParse)
	}
	doc, err := html.Parse(r)
	if err != nil {
		cfg.logger.Error("dom: failed to create document", "severity", "critical", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if doc == nil {
		cfg.logger.Error("dom: failed to create document", "severity", "critical")
		return nil, fmt.Errorf("%w: empty document", ErrParse)
	}
	return &Utility{
		logger:      cfg.logger,
		files:       cfg.files,
		doc:         doc,
		collections: make(map[*Collection]struct{}),
	}, nil
}

// Document exposes the root node. It is nil after Close.
func (u *Utility) Document() *html.Node {
	return u.doc
}

// Closed reports whether Close has run.
func (u *Utility) Closed() bool {
	return u.doc == nil
}

// Close releases every outstanding collection and then the document. It is
// safe to call more than once.
func (u *Utility) Close() error {
	if u.doc == nil {
		return nil
	}
	for c := range u.collections {
		c.release()
	}
	u.collections = nil
	u.doc = nil
	return nil
}

// Outstanding counts collections that have not been released.
func (u *Utility) Outstanding() int {
	return len(u.collections)
}

// Head returns the head element, or nil.
func (u *Utility) Head() *html.Node {
	return findFirst(u.doc, atom.Head)
}

// Body returns the body element, or nil.
func (u *Utility) Body() *html.Node {
	return findFirst(u.doc, atom.Body)
}

// Title returns the title text with whitespace collapsed, or "" when the
// document has no title.
func (u *Utility) Title() string {
	title := findFirst(u.doc, atom.Title)
	if title == nil {
		return ""
	}
	return strings.Join(strings.Fields(TextContent(title)), " ")
}

// SetTitle replaces the title text, creating the title element inside head
// when it is missing.
func (u *Utility) SetTitle(text string) error {
	if u.doc == nil {
		u.logger.Error("dom: set title", "error", ErrClosed)
		return fmt.Errorf("%w: %w", ErrMutation, ErrClosed)
	}
	title := findFirst(u.doc, atom.Title)
	if title == nil {
		head := u.Head()
		if head == nil {
			u.logger.Error("dom: set title", "error", "document has no head element")
			return fmt.Errorf("%w: document has no head element", ErrMutation)
		}
		title = &html.Node{Type: html.ElementNode, DataAtom: atom.Title, Data: "title"}
		head.AppendChild(title)
	}
	for child := title.FirstChild; child != nil; {
		next := child.NextSibling
		title.RemoveChild(child)
		child = next
	}
	title.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return nil
}

// RootAppID is the id of the element the UI mounts into.
const RootAppID = "app"

// InitRootAppElement returns the mount element with id "app", appending an
// empty div to body when none exists.
func (u *Utility) InitRootAppElement() (*html.Node, error) {
	body := u.Body()
	if body == nil {
		u.logger.Error("dom: init root app element", "error", "document has no body element")
		return nil, fmt.Errorf("%w: document has no body element", ErrMutation)
	}
	var found *html.Node
	walkElements(body, func(n *html.Node) bool {
		if Attr(n, "id") == RootAppID {
			found = n
			return false
		}
		return true
	})
	if found != nil {
		return found, nil
	}
	root := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Div,
		Data:     "div",
		Attr:     []html.Attribute{{Key: "id", Val: RootAppID}},
	}
	body.AppendChild(root)
	return root, nil
}

// Render returns the compact html.Render output of the whole document.
func (u *Utility) Render() (string, error) {
	if u.doc == nil {
		return "", fmt.Errorf("%w: %w", ErrSerialize, ErrClosed)
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, u.doc); err != nil {
		u.logger.Error("dom: render document", "severity", "critical", "error", err)
		return "", fmt.Errorf("%w: %w", ErrSerialize, err)
	}
	return buf.String(), nil
}

// WriteToFile serializes the document and writes it through the configured
// file system.
func (u *Utility) WriteToFile(path string) error {
	text, err := u.Serialize()
	if err != nil {
		return err
	}
	if err := u.files.WriteToFile(path, text); err != nil {
		u.logger.Error("dom: write document", "path", path, "error", err)
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

func findFirst(root *html.Node, a atom.Atom) *html.Node {
	var found *html.Node
	walkElements(root, func(n *html.Node) bool {
		if n.DataAtom == a {
			found = n
			return false
		}
		return true
	})
	return found
}

// walkElements visits element nodes depth-first in document order until fn
// returns false.
func walkElements(root *html.Node, fn func(*html.Node) bool) bool {
	if root == nil {
		return true
	}
	if root.Type == html.ElementNode && !fn(root) {
		return false
	}
	for child := root.FirstChild; child != nil; child = child.NextSibling {
		if !walkElements(child, fn) {
			return false
		}
	}
	return true
}
