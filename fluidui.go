// Package fluidui composes widgets into a page, generates its HTML and shows
// it in a window shell that page script can call back into.
package fluidui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"sync"
	"time"

	"github.com/goliatone/go-fluidui/internal/config"
	"github.com/goliatone/go-fluidui/pkg/generator"
	"github.com/goliatone/go-fluidui/pkg/shell"
	"github.com/goliatone/go-fluidui/pkg/widget"
)

var (
	// ErrInit wraps failures creating the shell.
	ErrInit = errors.New("fluidui: initialization failed")
	// ErrNoGenerator is returned by Generate when no generator was supplied.
	ErrNoGenerator = errors.New("fluidui: generator is not initialized")
)

const (
	// CountBinding answers with the request and a random id.
	CountBinding = "count"
	// ComputeBinding resolves asynchronously with ComputeResult.
	ComputeBinding = "compute"
	ComputeResult  = `"42"`

	DefaultComputeDelay = time.Second
)

// CountResponse is the JSON answer of the count binding.
type CountResponse struct {
	Method string `json:"method"`
	ID     string `json:"id"`
}

// Option configures a FluidUI.
type Option func(*FluidUI)

// WithSize overrides the window size.
func WithSize(width, height int) Option {
	return func(f *FluidUI) {
		f.width, f.height = width, height
	}
}

// WithShell sets the factory used to create the window shell.
func WithShell(factory shell.Factory, opts ...shell.Option) Option {
	return func(f *FluidUI) {
		if factory != nil {
			f.factory = factory
		}
		f.shellOpts = append(f.shellOpts, opts...)
	}
}

// WithLogger sets the logger, which is also handed to the shell.
func WithLogger(logger *slog.Logger) Option {
	return func(f *FluidUI) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithSession composes into an existing session.
func WithSession(session *widget.Session) Option {
	return func(f *FluidUI) {
		if session != nil {
			f.session = session
		}
	}
}

// WithComputeDelay sets how long the compute binding waits before resolving.
func WithComputeDelay(d time.Duration) Option {
	return func(f *FluidUI) {
		if d >= 0 {
			f.computeDelay = d
		}
	}
}

// FluidUI owns a composition session, a generator and the shell showing the
// generated page.
type FluidUI struct {
	title        string
	width        int
	height       int
	gen          generator.Generator
	factory      shell.Factory
	shellOpts    []shell.Option
	logger       *slog.Logger
	session      *widget.Session
	computeDelay time.Duration

	shell     shell.Shell
	bindOnce  sync.Once
	bindErr   error
	lastPage  string
	pageMutex sync.Mutex
}

// New creates the shell, titles it and sizes it. The session root is an
// empty vertical layout unless WithSession supplies one.
func New(title string, gen generator.Generator, opts ...Option) (*FluidUI, error) {
	defaults := config.Default()
	f := &FluidUI{
		title:        title,
		width:        defaults.Width,
		height:       defaults.Height,
		gen:          gen,
		factory:      shell.HeadlessFactory,
		logger:       slog.Default(),
		computeDelay: DefaultComputeDelay,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	if f.session == nil {
		f.session = widget.NewSession(widget.WithLogger(f.logger))
	}

	sh, err := f.factory(append([]shell.Option{shell.WithLogger(f.logger)}, f.shellOpts...)...)
	if err != nil {
		f.logger.Error("fluidui: failed to initialize shell", "severity", "critical", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrInit, err)
	}
	if sh == nil {
		f.logger.Error("fluidui: shell factory returned nil", "severity", "critical")
		return nil, fmt.Errorf("%w: nil shell", ErrInit)
	}
	f.shell = sh
	sh.SetTitle(title)
	sh.SetSize(f.width, f.height, shell.HintNone)
	return f, nil
}

// Session exposes the composition session.
func (f *FluidUI) Session() *widget.Session { return f.session }

// Shell exposes the window shell.
func (f *FluidUI) Shell() shell.Shell { return f.shell }

// Generate renders the graph, registers the page bindings and hands the page
// to the shell. A generator error still shows the returned error page.
func (f *FluidUI) Generate() error {
	if f.gen == nil {
		f.logger.Error(ErrNoGenerator.Error(), "severity", "critical")
		return ErrNoGenerator
	}
	page, genErr := f.gen.GenerateHTML(f.session.Graph())
	if genErr != nil {
		f.logger.Error("fluidui: generate", "generator", f.gen.Name(), "error", genErr)
	}

	f.bindOnce.Do(func() { f.bindErr = f.bind() })
	if f.bindErr != nil {
		return f.bindErr
	}

	f.pageMutex.Lock()
	f.lastPage = page
	f.pageMutex.Unlock()
	f.shell.SetHTML(page)
	return genErr
}

// Page returns the last generated page.
func (f *FluidUI) Page() string {
	f.pageMutex.Lock()
	defer f.pageMutex.Unlock()
	return f.lastPage
}

func (f *FluidUI) bind() error {
	if err := f.shell.Bind(CountBinding, f.count); err != nil {
		return fmt.Errorf("fluidui: bind %s: %w", CountBinding, err)
	}
	if err := f.shell.BindAsync(ComputeBinding, f.compute); err != nil {
		return fmt.Errorf("fluidui: bind %s: %w", ComputeBinding, err)
	}
	return nil
}

func (f *FluidUI) count(req string) (string, error) {
	f.logger.Info("fluidui: request", "binding", CountBinding, "request", req)
	out, err := json.Marshal(CountResponse{Method: req, ID: randomID()})
	if err != nil {
		return "", fmt.Errorf("fluidui: encode %s response: %w", CountBinding, err)
	}
	return string(out), nil
}

// compute resolves later from its own goroutine; nothing waits on it.
func (f *FluidUI) compute(id, req string) {
	f.logger.Info("fluidui: request", "binding", ComputeBinding, "id", id, "request", req)
	go func() {
		time.Sleep(f.computeDelay)
		if err := f.shell.Resolve(id, 0, ComputeResult); err != nil {
			f.logger.Warn("fluidui: resolve", "binding", ComputeBinding, "id", id, "error", err)
		}
	}()
}

// Run blocks in the shell loop until ctx is done or the shell returns.
func (f *FluidUI) Run(ctx context.Context) error {
	if f.shell == nil {
		f.logger.Error("fluidui: not initialized", "severity", "critical")
		return ErrInit
	}
	return f.shell.Run(ctx)
}

// Close releases the shell.
func (f *FluidUI) Close() error {
	if f.shell == nil {
		return nil
	}
	return f.shell.Close()
}

func randomID() string {
	return strconv.Itoa(1000 + rand.IntN(9000))
}
