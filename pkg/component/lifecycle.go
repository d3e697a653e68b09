package component

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/goliatone/go-fluidui/pkg/dom"
)

// Renderer lets a component replace the default render hook, which calls
// Compose.
type Renderer interface {
	Render() error
}

// Mounter lets a component handle the mounted event itself. Implementations
// decide whether to forward to children with PropagateMounted.
type Mounter interface {
	Mounted()
}

// Updater lets a component handle the updated event itself. Implementations
// decide whether to forward to children with PropagateUpdated.
type Updater interface {
	Updated()
}

// ScopeNamer supplies the default scope instead of the type name.
type ScopeNamer interface {
	ScopeName() string
}

// Render runs the component's render hook.
func Render(c Component) error {
	if r, ok := c.(Renderer); ok {
		return r.Render()
	}
	return c.Compose()
}

// RenderTree renders c and then its children depth-first in insertion order,
// stopping at the first failure.
func RenderTree(c Component) error {
	if err := Render(c); err != nil {
		return fmt.Errorf("component: render %q: %w", c.ComponentBase().Name(), err)
	}
	for _, child := range c.ComponentBase().children {
		if err := RenderTree(child); err != nil {
			return err
		}
	}
	return nil
}

// Mount delivers the mounted event to c.
func Mount(c Component) {
	if m, ok := c.(Mounter); ok {
		m.Mounted()
		return
	}
	PropagateMounted(c)
}

// PropagateMounted delivers the mounted event to each child in order.
func PropagateMounted(c Component) {
	for _, child := range c.ComponentBase().children {
		Mount(child)
	}
}

// Update delivers the updated event to c.
func Update(c Component) {
	if u, ok := c.(Updater); ok {
		u.Updated()
		return
	}
	PropagateUpdated(c)
}

// PropagateUpdated delivers the updated event to each child in order.
func PropagateUpdated(c Component) {
	for _, child := range c.ComponentBase().children {
		Update(child)
	}
}

// SetScope overrides the scope used for props and scoped names.
func (b *Base) SetScope(scope string) {
	b.scope = scope
}

// Scope returns the component scope. Until one is set it is derived once from
// the concrete type and cached.
func Scope(c Component) string {
	b := c.ComponentBase()
	if b.scope == "" {
		b.scope = defaultScope(c)
	}
	return b.scope
}

func defaultScope(c Component) string {
	if n, ok := c.(ScopeNamer); ok {
		if name := identifier(n.ScopeName()); name != "" {
			return name
		}
	}
	t := reflect.TypeOf(c)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if name := identifier(t.Name()); name != "" {
		return name
	}
	return "Component"
}

func identifier(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}

// ScopedName prefixes name with the component scope.
func ScopedName(c Component, name string) string {
	return Scope(c) + "-" + name
}

// Prop describes one generated prop.
type Prop struct {
	Key     string
	Type    string
	Default string
}

// Props derives a prop for every declared input, keyed by scope_name.
func Props(c Component) []Prop {
	scope := Scope(c)
	values := c.ComponentBase().InputValues()
	props := make([]Prop, 0, len(values))
	for _, v := range values {
		props = append(props, Prop{
			Key:     scope + "_" + v.Name(),
			Type:    v.PropType(),
			Default: v.DefaultLiteral(),
		})
	}
	return props
}

// GenerateProps renders Props as a props object block.
func GenerateProps(c Component) string {
	var sb strings.Builder
	sb.WriteString("props: {\n")
	for _, p := range Props(c) {
		sb.WriteString("  " + p.Key + ": {\n")
		if p.Type != "" {
			sb.WriteString("    type: " + p.Type + ",\n")
		}
		sb.WriteString("    default: " + p.Default + "\n")
		sb.WriteString("  },\n")
	}
	sb.WriteString("}\n")
	return sb.String()
}

// Document parses the markup fragment for inspection. The caller closes the
// returned Utility.
func Document(c Component) (*dom.Utility, error) {
	b := c.ComponentBase()
	return dom.Parse(b.markup, dom.WithLogger(b.log()))
}
