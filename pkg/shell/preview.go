package shell

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/skratchdot/open-golang/open"
)

const (
	maxRequestBytes = 1 << 20
	writeWait       = 2 * time.Second
	shutdownTimeout = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:   4 * 1024,
	WriteBufferSize:  4 * 1024,
	HandshakeTimeout: 1 * time.Second,
	CheckOrigin:      func(r *http.Request) bool { return true },
}

// Preview serves the page over HTTP so it can be viewed in a browser. Sync
// bindings answer POST /bind/{name} directly. Async bindings answer with a
// request id and deliver the result over the /ws websocket.
type Preview struct {
	opts   options
	router *mux.Router

	mu       sync.RWMutex
	title    string
	width    int
	height   int
	html     string
	syncFns  map[string]SyncFunc
	asyncFns map[string]AsyncFunc
	conns    map[*websocket.Conn]*sync.Mutex
	pending  []Resolution
	closed   bool
	done     chan struct{}
	addr     string
}

var _ Shell = (*Preview)(nil)

// NewPreview returns a Preview shell. It does not listen until Run.
func NewPreview(opts ...Option) *Preview {
	p := &Preview{
		opts:     newOptions(opts),
		syncFns:  make(map[string]SyncFunc),
		asyncFns: make(map[string]AsyncFunc),
		conns:    make(map[*websocket.Conn]*sync.Mutex),
		done:     make(chan struct{}),
	}
	if p.opts.opener == nil {
		p.opts.opener = open.Run
	}
	r := mux.NewRouter()
	r.HandleFunc("/", p.handlePage).Methods(http.MethodGet)
	r.HandleFunc("/bind/{name}", p.handleBind).Methods(http.MethodPost)
	r.HandleFunc("/ws", p.handleWS)
	p.router = r
	return p
}

// PreviewFactory adapts NewPreview to Factory.
func PreviewFactory(opts ...Option) (Shell, error) {
	return NewPreview(opts...), nil
}

// Handler exposes the routes, e.g. for httptest.
func (p *Preview) Handler() http.Handler {
	return p.router
}

// Addr is the address Run listens on, once it has started.
func (p *Preview) Addr() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.addr
}

func (p *Preview) SetTitle(title string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.title = title
}

// SetSize is kept for the page; a browser tab cannot be resized.
func (p *Preview) SetSize(width, height int, _ SizeHint) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.width, p.height = width, height
}

func (p *Preview) Bind(name string, fn SyncFunc) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.checkBind(name); err != nil {
		return err
	}
	p.syncFns[name] = fn
	return nil
}

func (p *Preview) BindAsync(name string, fn AsyncFunc) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.checkBind(name); err != nil {
		return err
	}
	p.asyncFns[name] = fn
	return nil
}

func (p *Preview) checkBind(name string) error {
	if p.closed {
		return ErrClosed
	}
	_, isSync := p.syncFns[name]
	_, isAsync := p.asyncFns[name]
	if isSync || isAsync {
		return fmt.Errorf("%w: %q", ErrDuplicateBinding, name)
	}
	return nil
}

func (p *Preview) SetHTML(html string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.html = html
}

// Run listens, optionally opens the browser and serves until ctx is done or
// Close is called.
func (p *Preview) Run(ctx context.Context) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrClosed
	}
	p.mu.Unlock()

	listener, err := net.Listen("tcp", p.opts.addr)
	if err != nil {
		p.opts.logger.Error("shell: listen", "addr", p.opts.addr, "error", err)
		return fmt.Errorf("shell: listen on %s: %w", p.opts.addr, err)
	}
	p.mu.Lock()
	p.addr = listener.Addr().String()
	p.mu.Unlock()

	server := &http.Server{
		Handler:           p.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Serve(listener)
	}()

	url := "http://" + listener.Addr().String() + "/"
	p.opts.logger.Info("shell: preview listening", "url", url)
	if p.opts.openBrowser {
		if err := p.opts.opener(url); err != nil {
			p.opts.logger.Warn("shell: open browser", "url", url, "error", err)
		}
	}

	select {
	case <-ctx.Done():
	case <-p.done:
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			p.opts.logger.Error("shell: serve", "error", err)
			return fmt.Errorf("shell: serve: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shell: shutdown: %w", err)
	}
	return nil
}

// Resolve sends the result of async request id to every connected page.
// Results arriving before any page connects are queued.
func (p *Preview) Resolve(id string, status int, payload string) error {
	res := Resolution{ID: id, Status: status, Payload: payload}
	msg, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("shell: encode resolution: %w", err)
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrClosed
	}
	if len(p.conns) == 0 {
		p.pending = append(p.pending, res)
		p.mu.Unlock()
		return nil
	}
	conns := make(map[*websocket.Conn]*sync.Mutex, len(p.conns))
	for c, lock := range p.conns {
		conns[c] = lock
	}
	p.mu.Unlock()

	var sendErr error
	for c, lock := range conns {
		if err := writeMessage(c, lock, msg); err != nil {
			p.opts.logger.Warn("shell: deliver resolution", "id", id, "error", err)
			p.dropConn(c)
			sendErr = err
		}
	}
	return sendErr
}

func (p *Preview) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	close(p.done)
	for c := range p.conns {
		_ = c.Close()
	}
	p.conns = make(map[*websocket.Conn]*sync.Mutex)
	return nil
}

func (p *Preview) handlePage(w http.ResponseWriter, _ *http.Request) {
	p.mu.RLock()
	page := injectBridge(p.html, p.bindingNames())
	p.mu.RUnlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = io.WriteString(w, page)
}

type bindResponse struct {
	ID     string `json:"id,omitempty"`
	Status int    `json:"status"`
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

func (p *Preview) handleBind(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, bindResponse{Status: 1, Error: err.Error()})
		return
	}
	req := string(body)
	if strings.TrimSpace(req) == "" {
		req = "[]"
	}

	p.mu.RLock()
	syncFn, isSync := p.syncFns[name]
	asyncFn, isAsync := p.asyncFns[name]
	p.mu.RUnlock()

	switch {
	case isSync:
		result, err := syncFn(req)
		if err != nil {
			p.opts.logger.Error("shell: binding failed", "binding", name, "error", err)
			writeJSON(w, http.StatusInternalServerError, bindResponse{Status: 1, Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, bindResponse{Status: 0, Result: result})
	case isAsync:
		id := uuid.NewString()
		asyncFn(id, req)
		writeJSON(w, http.StatusAccepted, bindResponse{ID: id})
	default:
		writeJSON(w, http.StatusNotFound, bindResponse{Status: 1, Error: fmt.Sprintf("%v: %q", ErrUnknownBinding, name)})
	}
}

func (p *Preview) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		p.opts.logger.Warn("shell: websocket upgrade", "error", err)
		return
	}
	lock := &sync.Mutex{}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		_ = conn.Close()
		return
	}
	p.conns[conn] = lock
	pending := p.pending
	p.pending = nil
	p.mu.Unlock()

	for _, res := range pending {
		msg, _ := json.Marshal(res)
		if err := writeMessage(conn, lock, msg); err != nil {
			p.dropConn(conn)
			return
		}
	}

	// Drain reads so close frames are processed.
	go func() {
		defer p.dropConn(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (p *Preview) dropConn(c *websocket.Conn) {
	p.mu.Lock()
	delete(p.conns, c)
	p.mu.Unlock()
	_ = c.Close()
}

func (p *Preview) bindingNames() []string {
	names := make([]string, 0, len(p.syncFns)+len(p.asyncFns))
	for name := range p.syncFns {
		names = append(names, name)
	}
	for name := range p.asyncFns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func writeMessage(c *websocket.Conn, lock *sync.Mutex, msg []byte) error {
	lock.Lock()
	defer lock.Unlock()
	_ = c.SetWriteDeadline(time.Now().Add(writeWait))
	return c.WriteMessage(websocket.TextMessage, msg)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
