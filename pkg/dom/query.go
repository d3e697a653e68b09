package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// MatchType selects how an attribute value is compared.
type MatchType int

const (
	Equals MatchType = iota
	Contains
	StartsWith
	EndsWith
)

func (m MatchType) String() string {
	switch m {
	case Equals:
		return "equals"
	case Contains:
		return "contains"
	case StartsWith:
		return "starts-with"
	case EndsWith:
		return "ends-with"
	}
	return fmt.Sprintf("match(%d)", int(m))
}

// ParseMatchType maps the textual names used by the CLI back to a MatchType.
func ParseMatchType(s string) (MatchType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "equals", "eq":
		return Equals, nil
	case "contains":
		return Contains, nil
	case "starts-with", "startswith", "prefix":
		return StartsWith, nil
	case "ends-with", "endswith", "suffix":
		return EndsWith, nil
	}
	return Equals, fmt.Errorf("dom: unknown match type %q", s)
}

// QueryOption tweaks an attribute query.
type QueryOption func(*queryConfig)

type queryConfig struct {
	ignoreCase bool
}

// CaseSensitive compares attribute values exactly. Queries ignore case by
// default.
func CaseSensitive() QueryOption {
	return func(cfg *queryConfig) {
		cfg.ignoreCase = false
	}
}

// IgnoreCase sets value case folding explicitly.
func IgnoreCase(ignore bool) QueryOption {
	return func(cfg *queryConfig) {
		cfg.ignoreCase = ignore
	}
}

const initialCollectionCap = 128

// Collection is an owned list of elements returned by a query. It stays valid
// while its Utility is open and must be released exactly once.
type Collection struct {
	owner    *Utility
	nodes    []*html.Node
	released bool
}

func (u *Utility) newCollection() *Collection {
	c := &Collection{
		owner: u,
		nodes: make([]*html.Node, 0, initialCollectionCap),
	}
	if u.collections != nil {
		u.collections[c] = struct{}{}
	}
	return c
}

// Len is the number of elements, 0 once released.
func (c *Collection) Len() int {
	if c == nil || c.released {
		return 0
	}
	return len(c.nodes)
}

// At returns the element at index i, or nil when out of range.
func (c *Collection) At(i int) *html.Node {
	if c == nil || c.released || i < 0 || i >= len(c.nodes) {
		return nil
	}
	return c.nodes[i]
}

// Elements returns a copy of the element list.
func (c *Collection) Elements() []*html.Node {
	if c == nil || c.released {
		return nil
	}
	return append([]*html.Node(nil), c.nodes...)
}

// Released reports whether Release already ran.
func (c *Collection) Released() bool {
	return c == nil || c.released
}

// Release hands the collection back to its Utility. A second call returns
// ErrReleased.
func (c *Collection) Release() error {
	if c == nil {
		return nil
	}
	if c.released {
		return ErrReleased
	}
	if c.owner != nil && c.owner.collections != nil {
		delete(c.owner.collections, c)
	}
	c.release()
	return nil
}

func (c *Collection) release() {
	c.released = true
	c.nodes = nil
}

// FindElementsByTagName collects body elements named tag in document order.
// Failures are logged and yield an empty collection; the caller owns the
// result either way.
func (u *Utility) FindElementsByTagName(tag string) *Collection {
	c := u.newCollection()
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		u.queryError("find elements by tag name", fmt.Errorf("tag name is required"))
		return c
	}
	body := u.Body()
	if body == nil {
		u.queryError("find elements by tag name", u.missingBody())
		return c
	}
	id := TagNameToID(tag)
	walkElements(body, func(n *html.Node) bool {
		if n == body {
			return true
		}
		if id != TagUndefined && n.DataAtom == id || strings.EqualFold(n.Data, tag) {
			c.nodes = append(c.nodes, n)
		}
		return true
	})
	return c
}

// FindElementsByAttribute collects body elements whose attribute name matches
// value using match. Values compare case-insensitively unless CaseSensitive
// is passed.
func (u *Utility) FindElementsByAttribute(name, value string, match MatchType, options ...QueryOption) *Collection {
	cfg := queryConfig{ignoreCase: true}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	c := u.newCollection()
	name = strings.TrimSpace(name)
	if name == "" {
		u.queryError("find elements by attribute", fmt.Errorf("attribute name is required"))
		return c
	}
	matcher, err := attributeMatcher(match, value, cfg.ignoreCase)
	if err != nil {
		u.queryError("find elements by attribute", err)
		return c
	}
	body := u.Body()
	if body == nil {
		u.queryError("find elements by attribute", u.missingBody())
		return c
	}
	walkElements(body, func(n *html.Node) bool {
		if n == body {
			return true
		}
		for _, attr := range n.Attr {
			if strings.EqualFold(attr.Key, name) && matcher(attr.Val) {
				c.nodes = append(c.nodes, n)
				break
			}
		}
		return true
	})
	return c
}

// WithElementsByTagName runs fn over a tag query and releases the collection
// on every exit path.
func (u *Utility) WithElementsByTagName(tag string, fn func(*Collection) error) error {
	c := u.FindElementsByTagName(tag)
	defer c.Release()
	return fn(c)
}

// WithElementsByAttribute runs fn over an attribute query and releases the
// collection on every exit path.
func (u *Utility) WithElementsByAttribute(name, value string, match MatchType, fn func(*Collection) error, options ...QueryOption) error {
	c := u.FindElementsByAttribute(name, value, match, options...)
	defer c.Release()
	return fn(c)
}

func attributeMatcher(match MatchType, want string, ignoreCase bool) (func(string) bool, error) {
	norm := func(s string) string { return s }
	if ignoreCase {
		norm = strings.ToLower
	}
	want = norm(want)
	switch match {
	case Equals:
		return func(got string) bool { return norm(got) == want }, nil
	case Contains:
		return func(got string) bool { return strings.Contains(norm(got), want) }, nil
	case StartsWith:
		return func(got string) bool { return strings.HasPrefix(norm(got), want) }, nil
	case EndsWith:
		return func(got string) bool { return strings.HasSuffix(norm(got), want) }, nil
	}
	return nil, fmt.Errorf("unsupported match type %s", match)
}

func (u *Utility) missingBody() error {
	if u.doc == nil {
		return ErrClosed
	}
	return fmt.Errorf("document has no body element")
}

func (u *Utility) queryError(op string, err error) {
	u.logger.Error("dom: "+op, "error", fmt.Errorf("%w: %w", ErrQuery, err))
}
