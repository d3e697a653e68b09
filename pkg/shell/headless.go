package shell

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Call records one method invocation on a Headless shell.
type Call struct {
	Method string
	Args   []any
}

// Headless is a shell without a window. It records every call and, when an
// output path is set, writes the page on Run.
type Headless struct {
	opts options

	mu       sync.Mutex
	calls    []Call
	title    string
	width    int
	height   int
	hint     SizeHint
	html     string
	syncFns  map[string]SyncFunc
	asyncFns map[string]AsyncFunc
	results  map[string]chan Resolution
	resolved map[string]Resolution
	closed   bool
}

var _ Shell = (*Headless)(nil)

// NewHeadless returns a Headless shell.
func NewHeadless(opts ...Option) *Headless {
	return &Headless{
		opts:     newOptions(opts),
		syncFns:  make(map[string]SyncFunc),
		asyncFns: make(map[string]AsyncFunc),
		results:  make(map[string]chan Resolution),
		resolved: make(map[string]Resolution),
	}
}

// HeadlessFactory adapts NewHeadless to Factory.
func HeadlessFactory(opts ...Option) (Shell, error) {
	return NewHeadless(opts...), nil
}

func (h *Headless) record(method string, args ...any) {
	h.calls = append(h.calls, Call{Method: method, Args: args})
}

func (h *Headless) SetTitle(title string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("SetTitle", title)
	h.title = title
}

func (h *Headless) SetSize(width, height int, hint SizeHint) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("SetSize", width, height, hint)
	h.width, h.height, h.hint = width, height, hint
}

func (h *Headless) Bind(name string, fn SyncFunc) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("Bind", name)
	if err := h.checkBind(name); err != nil {
		return err
	}
	h.syncFns[name] = fn
	return nil
}

func (h *Headless) BindAsync(name string, fn AsyncFunc) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("BindAsync", name)
	if err := h.checkBind(name); err != nil {
		return err
	}
	h.asyncFns[name] = fn
	return nil
}

func (h *Headless) checkBind(name string) error {
	if h.closed {
		return ErrClosed
	}
	_, isSync := h.syncFns[name]
	_, isAsync := h.asyncFns[name]
	if isSync || isAsync {
		return fmt.Errorf("%w: %q", ErrDuplicateBinding, name)
	}
	return nil
}

func (h *Headless) SetHTML(html string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("SetHTML", len(html))
	h.html = html
}

// Run writes the page to the output path, if any, and returns.
func (h *Headless) Run(ctx context.Context) error {
	h.mu.Lock()
	h.record("Run")
	closed, page, output := h.closed, h.html, h.opts.output
	h.mu.Unlock()

	if closed {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if output == "" {
		return nil
	}
	if err := h.opts.files.WriteToFile(output, page); err != nil {
		h.opts.logger.Error("shell: write page", "path", output, "error", err)
		return fmt.Errorf("shell: write page: %w", err)
	}
	h.opts.logger.Info("shell: page written", "path", output)
	return nil
}

// Resolve delivers the result of async request id.
func (h *Headless) Resolve(id string, status int, payload string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("Resolve", id, status, payload)
	ch, ok := h.results[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRequest, id)
	}
	res := Resolution{ID: id, Status: status, Payload: payload}
	h.resolved[id] = res
	delete(h.results, id)
	ch <- res
	close(ch)
	return nil
}

func (h *Headless) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("Close")
	h.closed = true
	return nil
}

// Invoke calls a binding the way page script would. Sync bindings return
// their result; async bindings return the request id to Wait on.
func (h *Headless) Invoke(name, req string) (string, error) {
	h.mu.Lock()
	syncFn, isSync := h.syncFns[name]
	asyncFn, isAsync := h.asyncFns[name]
	var id string
	if isAsync {
		id = uuid.NewString()
		h.results[id] = make(chan Resolution, 1)
	}
	h.mu.Unlock()

	switch {
	case isSync:
		return syncFn(req)
	case isAsync:
		asyncFn(id, req)
		return id, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownBinding, name)
}

// Wait blocks until async request id is resolved or ctx is done.
func (h *Headless) Wait(ctx context.Context, id string) (Resolution, error) {
	h.mu.Lock()
	if res, ok := h.resolved[id]; ok {
		h.mu.Unlock()
		return res, nil
	}
	ch, ok := h.results[id]
	h.mu.Unlock()
	if !ok {
		return Resolution{}, fmt.Errorf("%w: %q", ErrUnknownRequest, id)
	}
	select {
	case res := <-ch:
		return res, nil
	case <-ctx.Done():
		return Resolution{}, ctx.Err()
	}
}

// Calls returns the recorded calls in order.
func (h *Headless) Calls() []Call {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Call(nil), h.calls...)
}

// Title returns the last title set.
func (h *Headless) Title() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.title
}

// Size returns the last size set.
func (h *Headless) Size() (width, height int, hint SizeHint) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.width, h.height, h.hint
}

// HTML returns the last page set.
func (h *Headless) HTML() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.html
}

// Bindings lists the sync and async binding names, each sorted.
func (h *Headless) Bindings() (syncNames, asyncNames []string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for name := range h.syncFns {
		syncNames = append(syncNames, name)
	}
	for name := range h.asyncFns {
		asyncNames = append(asyncNames, name)
	}
	sort.Strings(syncNames)
	sort.Strings(asyncNames)
	return syncNames, asyncNames
}
