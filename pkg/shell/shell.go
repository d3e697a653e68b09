// Package shell defines the window shell that displays a generated page and
// routes calls from page script back into Go.
package shell

import (
	"context"
	"errors"
	"log/slog"

	"github.com/goliatone/go-fluidui/pkg/fileio"
)

var (
	ErrClosed           = errors.New("shell: closed")
	ErrUnknownBinding   = errors.New("shell: unknown binding")
	ErrDuplicateBinding = errors.New("shell: binding already registered")
	ErrUnknownRequest   = errors.New("shell: unknown async request")
)

// SizeHint qualifies SetSize.
type SizeHint int

const (
	HintNone SizeHint = iota
	HintMin
	HintMax
	HintFixed
)

func (h SizeHint) String() string {
	switch h {
	case HintMin:
		return "min"
	case HintMax:
		return "max"
	case HintFixed:
		return "fixed"
	}
	return "none"
}

// SyncFunc answers a call with a JSON result.
type SyncFunc func(req string) (string, error)

// AsyncFunc starts work for request id. The result is delivered later with
// Resolve.
type AsyncFunc func(id, req string)

// Shell is the window the UI runs in. Requests and results cross the
// boundary as JSON text.
type Shell interface {
	SetTitle(title string)
	SetSize(width, height int, hint SizeHint)
	Bind(name string, fn SyncFunc) error
	BindAsync(name string, fn AsyncFunc) error
	SetHTML(html string)
	Run(ctx context.Context) error
	Resolve(id string, status int, payload string) error
	Close() error
}

// Factory creates a shell. A failure aborts initialization.
type Factory func(options ...Option) (Shell, error)

// Resolution is a delivered async result. Status 0 means success.
type Resolution struct {
	ID      string `json:"id"`
	Status  int    `json:"status"`
	Payload string `json:"result"`
}

// Option configures a shell. Options a shell has no use for are ignored.
type Option func(*options)

type options struct {
	logger      *slog.Logger
	files       fileio.FileSystem
	output      string
	addr        string
	openBrowser bool
	opener      func(url string) error
}

// DefaultAddr is where the Preview shell listens by default.
const DefaultAddr = "127.0.0.1:8710"

func newOptions(opts []Option) options {
	o := options{
		logger: slog.Default(),
		files:  fileio.Default,
		addr:   DefaultAddr,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithLogger sets the shell logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithFileSystem sets where the Headless shell writes its page.
func WithFileSystem(files fileio.FileSystem) Option {
	return func(o *options) {
		if files != nil {
			o.files = files
		}
	}
}

// WithOutput makes Headless.Run write the page to path.
func WithOutput(path string) Option {
	return func(o *options) {
		o.output = path
	}
}

// WithAddr sets the Preview listen address. Port 0 picks a free port.
func WithAddr(addr string) Option {
	return func(o *options) {
		if addr != "" {
			o.addr = addr
		}
	}
}

// WithOpenBrowser opens the Preview page in the default browser on Run.
func WithOpenBrowser(open bool) Option {
	return func(o *options) {
		o.openBrowser = open
	}
}

// WithBrowserOpener replaces the function used to open the browser.
func WithBrowserOpener(fn func(url string) error) Option {
	return func(o *options) {
		if fn != nil {
			o.opener = fn
		}
	}
}
