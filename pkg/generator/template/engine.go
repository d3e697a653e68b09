// Package template renders page templates with pongo2. The built-in page
// template ships embedded, so an engine with no options can still render a
// complete document.
package template

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
)

//go:embed templates/*.html
var embedded embed.FS

const (
	// DefaultPage is the name of the embedded page template.
	DefaultPage = "page"
	// DefaultExtension is appended to template names given without one.
	DefaultExtension = ".html"
)

var ErrEngine = errors.New("template: engine error")

// FilterFunc is a template filter over plain Go values.
type FilterFunc func(input, param any) (any, error)

// Renderer renders a named page template. The template generator depends on
// nothing else.
type Renderer interface {
	RenderTemplate(name string, data map[string]any, out ...io.Writer) (string, error)
}

// Option configures an Engine.
type Option func(*Engine)

// WithBaseDir looks templates up in dir before any other source.
func WithBaseDir(dir string) Option {
	return func(e *Engine) {
		e.dir = strings.TrimSpace(dir)
	}
}

// WithFS looks templates up in files, after the base directory.
func WithFS(files fs.FS) Option {
	return func(e *Engine) {
		e.files = files
	}
}

// WithExtension sets the extension added to names that carry none.
func WithExtension(ext string) Option {
	return func(e *Engine) {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			return
		}
		if ext[0] != '.' {
			ext = "." + ext
		}
		e.ext = ext
	}
}

// WithFilter makes fn available as `{{ value|name }}`.
func WithFilter(name string, fn FilterFunc) Option {
	return func(e *Engine) {
		if name = strings.TrimSpace(name); name != "" && fn != nil {
			e.filters[name] = fn
		}
	}
}

// WithGlobals adds values every template sees. Render data shadows them.
func WithGlobals(globals map[string]any) Option {
	return func(e *Engine) {
		for key, value := range globals {
			e.globals[key] = value
		}
	}
}

// Engine renders templates from, in lookup order, the base directory, the
// configured fs.FS and the embedded templates. Parsed templates are cached.
type Engine struct {
	dir     string
	files   fs.FS
	ext     string
	filters map[string]FilterFunc
	globals pongo2.Context

	set   *pongo2.TemplateSet
	mu    sync.Mutex
	cache map[string]*pongo2.Template
}

var _ Renderer = (*Engine)(nil)

// New builds an engine. pongo2 filters are process-wide: a filter name
// registered by an earlier engine is replaced.
func New(options ...Option) (*Engine, error) {
	e := &Engine{
		ext:     DefaultExtension,
		filters: make(map[string]FilterFunc),
		globals: pongo2.Context{},
		cache:   make(map[string]*pongo2.Template),
	}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}

	var loaders []pongo2.TemplateLoader
	if e.dir != "" {
		local, err := pongo2.NewLocalFileSystemLoader(e.dir)
		if err != nil {
			return nil, fmt.Errorf("%w: template dir %q: %w", ErrEngine, e.dir, err)
		}
		loaders = append(loaders, local)
	}
	if e.files != nil {
		loaders = append(loaders, pongo2.NewFSLoader(e.files))
	}
	builtin, err := fs.Sub(embedded, "templates")
	if err != nil {
		return nil, fmt.Errorf("%w: embedded templates: %w", ErrEngine, err)
	}
	loaders = append(loaders, pongo2.NewFSLoader(builtin))

	e.set = pongo2.NewSet("fluidui", loaders...)
	e.set.Globals.Update(e.globals)

	builtinFilters.Do(func() {
		if !pongo2.FilterExists("trim") {
			_ = pongo2.RegisterFilter("trim", trimFilter)
		}
	})
	for name, fn := range e.filters {
		if err := installFilter(name, fn); err != nil {
			return nil, fmt.Errorf("%w: filter %q: %w", ErrEngine, name, err)
		}
	}
	return e, nil
}

// RenderTemplate renders the named template with data and copies the result
// to every writer in out.
func (e *Engine) RenderTemplate(name string, data map[string]any, out ...io.Writer) (string, error) {
	if path.Ext(name) == "" {
		name += e.ext
	}
	tmpl, err := e.lookup(name)
	if err != nil {
		return "", err
	}

	ctx := pongo2.Context{}
	ctx.Update(data)
	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(ctx, &buf); err != nil {
		return "", fmt.Errorf("%w: execute %q: %w", ErrEngine, name, err)
	}
	page := buf.String()
	for _, w := range out {
		if _, err := io.WriteString(w, page); err != nil {
			return "", fmt.Errorf("%w: write %q: %w", ErrEngine, name, err)
		}
	}
	return page, nil
}

func (e *Engine) lookup(name string) (*pongo2.Template, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.cache[name]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("%w: load %q: %w", ErrEngine, name, err)
	}
	e.cache[name] = tmpl
	return tmpl, nil
}

var builtinFilters sync.Once

func installFilter(name string, fn FilterFunc) error {
	filter := func(in, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var arg any
		if param != nil {
			arg = param.Interface()
		}
		result, err := fn(in.Interface(), arg)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:" + name, OrigError: err}
		}
		return pongo2.AsValue(result), nil
	}
	if pongo2.FilterExists(name) {
		return pongo2.ReplaceFilter(name, filter)
	}
	return pongo2.RegisterFilter(name, filter)
}

func trimFilter(in, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}
