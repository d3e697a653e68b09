// Package component implements the component abstraction: descriptor
// fragments, typed input declarations, owned children, a registry of named
// functions and lifecycle propagation.
//
// Concrete components embed Base and implement Compose. Go has no virtual
// dispatch through embedding, so lifecycle entry points are package functions
// (Render, Mount, Update, Scope) that honour optional hook interfaces.
package component

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"

	"github.com/goliatone/go-fluidui/pkg/fileio"
	"github.com/goliatone/go-fluidui/pkg/inputs"
)

var (
	// ErrIO signals a descriptor file could not be read.
	ErrIO = errors.New("component: io error")
	// ErrFunctionNotFound is returned when calling an unregistered function.
	ErrFunctionNotFound = errors.New("component: function not found")
	// ErrNilChild is returned when adding a nil child.
	ErrNilChild = errors.New("component: child is nil")
	// ErrAlreadyOwned is returned when a child already has a parent.
	ErrAlreadyOwned = errors.New("component: child already owned")
	// ErrCycle is returned when adding a child would create a cycle.
	ErrCycle = errors.New("component: child would create a cycle")
)

// Component is implemented by every concrete component. Compose populates the
// component's markup, inputs and children.
type Component interface {
	Compose() error
	ComponentBase() *Base
}

// Option configures a Base.
type Option func(*Base)

// WithLogger sets the logger used for dispatch and lifecycle diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Base) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithFileSystem swaps the collaborator used to read descriptors.
func WithFileSystem(files fileio.FileSystem) Option {
	return func(b *Base) {
		if files != nil {
			b.files = files
		}
	}
}

// WithBaseDir sets the directory NewFromName and LoadName resolve against.
func WithBaseDir(dir string) Option {
	return func(b *Base) {
		if dir != "" {
			b.baseDir = dir
		}
	}
}

// WithScope overrides the type-derived scope.
func WithScope(scope string) Option {
	return func(b *Base) {
		b.scope = scope
	}
}

// Base carries the state shared by all components. The zero value is ready to
// use; Init applies options.
type Base struct {
	name     string
	markup   string
	style    string
	behavior string

	state     map[string]string
	functions map[string]func()
	children  []Component
	parent    *Base
	inputs    *inputs.Set
	scope     string

	logger  *slog.Logger
	files   fileio.FileSystem
	baseDir string
}

// ComponentBase returns b, letting any struct that embeds Base satisfy
// Component.
func (b *Base) ComponentBase() *Base {
	return b
}

// Init applies options. It may be called more than once.
func (b *Base) Init(options ...Option) {
	for _, opt := range options {
		if opt != nil {
			opt(b)
		}
	}
}

func (b *Base) log() *slog.Logger {
	if b.logger == nil {
		return slog.Default()
	}
	return b.logger
}

func (b *Base) fs() fileio.FileSystem {
	if b.files == nil {
		return fileio.Default
	}
	return b.files
}

// Logger returns the component logger.
func (b *Base) Logger() *slog.Logger {
	return b.log()
}

// FileSystem returns the collaborator used to read descriptors.
func (b *Base) FileSystem() fileio.FileSystem {
	return b.fs()
}

// LoadFile reads the descriptor at path. The component takes the file stem
// as its name.
func (b *Base) LoadFile(path string) error {
	desc, err := LoadDescriptor(b.fs(), path)
	if err != nil {
		b.log().Error("component: load descriptor", "path", path, "error", err)
		return err
	}
	b.apply(desc)
	return nil
}

// LoadString parses descriptor text directly.
func (b *Base) LoadString(content, name string) {
	desc := ParseDescriptor(content)
	desc.Name = name
	b.apply(desc)
}

// LoadName resolves <baseDir>/<name>.vue and loads it.
func (b *Base) LoadName(name string) error {
	dir := b.baseDir
	if dir == "" {
		dir = DefaultBaseDir
	}
	return b.LoadFile(filepath.Join(dir, name+DescriptorExt))
}

func (b *Base) apply(desc Descriptor) {
	b.name = desc.Name
	b.markup = desc.Markup
	b.style = desc.Style
	b.behavior = desc.Behavior
}

func (b *Base) Name() string { return b.name }

// SetName renames the component.
func (b *Base) SetName(name string) { b.name = name }

// Markup is the template fragment.
func (b *Base) Markup() string { return b.markup }

// SetMarkup replaces the template fragment, typically from Compose.
func (b *Base) SetMarkup(markup string) { b.markup = markup }

// Style is the style fragment.
func (b *Base) Style() string { return b.style }

// SetStyle replaces the style fragment.
func (b *Base) SetStyle(style string) { b.style = style }

// Behavior is the body of the default export object.
func (b *Base) Behavior() string { return b.behavior }

// SetBehavior replaces the behavior fragment.
func (b *Base) SetBehavior(behavior string) { b.behavior = behavior }

// Descriptor returns the current fragments.
func (b *Base) Descriptor() Descriptor {
	return Descriptor{Name: b.name, Markup: b.markup, Style: b.style, Behavior: b.behavior}
}

func (b *Base) SetState(key, value string) {
	if b.state == nil {
		b.state = make(map[string]string)
	}
	b.state[key] = value
}

// State returns the value stored under key, or "".
func (b *Base) State(key string) string {
	return b.state[key]
}

// Values merges input values and state into one map for evaluating markup
// conditions. State wins over an input of the same name. Among inputs
// sharing a name the first in set order wins.
func (b *Base) Values() map[string]any {
	out := make(map[string]any, len(b.state)+b.inputSet().Len())
	for _, v := range b.InputValues() {
		if _, seen := out[v.Name()]; !seen {
			out[v.Name()] = v.Interface()
		}
	}
	for k, v := range b.state {
		out[k] = v
	}
	return out
}

func (b *Base) inputSet() *inputs.Set {
	if b.inputs == nil {
		b.inputs = inputs.NewSet()
	}
	return b.inputs
}

// AddInputValue declares an input. An equal declaration is ignored; a
// same-name declaration with another value is kept alongside the first.
func (b *Base) AddInputValue(v inputs.Value) bool {
	return b.inputSet().Add(v)
}

// InputValues returns every declaration in set order.
func (b *Base) InputValues() []inputs.Value {
	return b.inputSet().Values()
}

// InputValue returns the first declaration named name.
func (b *Base) InputValue(name string) (inputs.Value, bool) {
	return b.inputSet().Lookup(name)
}

// Inputs exposes the underlying set.
func (b *Base) Inputs() *inputs.Set {
	return b.inputSet()
}

// AddFunction registers fn under name, replacing any previous entry.
func (b *Base) AddFunction(name string, fn func()) {
	if fn == nil {
		return
	}
	if b.functions == nil {
		b.functions = make(map[string]func())
	}
	b.functions[name] = fn
}

// CallFunction runs the function registered under name. A missing entry is
// logged and reported through ErrFunctionNotFound; it never panics.
func (b *Base) CallFunction(name string) error {
	fn, ok := b.functions[name]
	if !ok {
		err := fmt.Errorf("%w: %q", ErrFunctionNotFound, name)
		b.log().Error("component: call function", "component", b.name, "function", name, "error", err)
		return err
	}
	fn()
	return nil
}

// HasFunction reports whether name is registered.
func (b *Base) HasFunction(name string) bool {
	_, ok := b.functions[name]
	return ok
}

// FunctionNames lists registered functions in sorted order.
func (b *Base) FunctionNames() []string {
	names := make([]string, 0, len(b.functions))
	for name := range b.functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AddChild appends child to the owned children. A child can have only one
// parent and may not be an ancestor of b.
func (b *Base) AddChild(child Component) error {
	if child == nil || child.ComponentBase() == nil {
		return ErrNilChild
	}
	cb := child.ComponentBase()
	if cb.parent != nil {
		return fmt.Errorf("%w: %q", ErrAlreadyOwned, cb.name)
	}
	for ancestor := b; ancestor != nil; ancestor = ancestor.parent {
		if ancestor == cb {
			return fmt.Errorf("%w: %q", ErrCycle, cb.name)
		}
	}
	cb.parent = b
	b.children = append(b.children, child)
	return nil
}

// Children returns the owned children in insertion order.
func (b *Base) Children() []Component {
	return append([]Component(nil), b.children...)
}

// Parent returns the owning component base, or nil for a root.
func (b *Base) Parent() *Base {
	return b.parent
}

// Add attaches child to parent and hands it back.
func Add[T Component](parent Component, child T) (T, error) {
	if err := parent.ComponentBase().AddChild(child); err != nil {
		var zero T
		return zero, err
	}
	return child, nil
}

// Static is a descriptor-only component whose Compose is a no-op.
type Static struct {
	Base
}

// Compose keeps the fragments loaded from the descriptor.
func (s *Static) Compose() error {
	return nil
}

// New returns an empty Static component.
func New(options ...Option) *Static {
	s := &Static{}
	s.Init(options...)
	return s
}

// NewFromFile loads a Static component from a descriptor file.
func NewFromFile(path string, options ...Option) (*Static, error) {
	s := New(options...)
	if err := s.LoadFile(path); err != nil {
		return nil, err
	}
	return s, nil
}

// NewFromString builds a Static component from descriptor text.
func NewFromString(content, name string, options ...Option) *Static {
	s := New(options...)
	s.LoadString(content, name)
	return s
}

// NewFromName loads <baseDir>/<name>.vue.
func NewFromName(name string, options ...Option) (*Static, error) {
	s := New(options...)
	if err := s.LoadName(name); err != nil {
		return nil, err
	}
	return s, nil
}
