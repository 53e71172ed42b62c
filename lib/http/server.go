// Package http provides the HTTP server the dev server runs on
package http

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pdiomede/BurnIt/fs"
	"github.com/pdiomede/BurnIt/lib/atexit"
	"github.com/pkg/errors"
)

// Middleware function signature required by chi.Router.Use()
type Middleware func(http.Handler) http.Handler

// Config contains options for the http Server
type Config struct {
	ListenAddr         string        // Port to listen on, eg ":8000"
	ServerReadTimeout  time.Duration // Timeout for server reading data, 0 for none
	ServerWriteTimeout time.Duration // Timeout for server writing data, 0 for none
	MaxHeaderBytes     int           // Maximum size of request header, 0 for the net/http default
	AllowOrigin        string        // AllowOrigin sets the Access-Control-Allow-Origin header, "" disables CORS
	AllowMethods       string        // AllowMethods sets the Access-Control-Allow-Methods header
	AllowHeaders       string        // AllowHeaders sets the Access-Control-Allow-Headers header
}

// DefaultCfg is the default values used for Config
func DefaultCfg() Config {
	return Config{
		ListenAddr:   ":8000",
		AllowOrigin:  "*",
		AllowMethods: "GET, POST, OPTIONS",
		AllowHeaders: "Content-Type",
	}
}

// Server contains info about the running http server
type Server struct {
	wg           sync.WaitGroup
	mux          chi.Router
	cfg          Config
	listener     net.Listener
	httpServer   *http.Server
	mu           sync.Mutex
	serveErr     error
	atexitHandle atexit.FnHandle
	shutdownOnce sync.Once
}

// Option allows customizing the server
type Option func(*Server)

// WithConfig option applies the Config to the server, overriding defaults
func WithConfig(cfg Config) Option {
	return func(s *Server) {
		s.cfg = cfg
	}
}

// NewServer instantiates a new http server and binds its listener
//
// The returned error wraps the error from the bind so callers can
// classify it with IsAddrInUse.
func NewServer(ctx context.Context, options ...Option) (*Server, error) {
	s := &Server{
		mux: chi.NewRouter(),
		cfg: DefaultCfg(),
	}

	for _, opt := range options {
		opt(s)
	}

	// Build base router
	s.mux.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})
	s.mux.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	s.mux.Use(MiddlewareCORS(s.cfg.AllowOrigin, s.cfg.AllowMethods, s.cfg.AllowHeaders))

	listener, err := net.Listen("tcp", s.cfg.ListenAddr)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to listen on %q", s.cfg.ListenAddr)
	}
	s.listener = listener
	s.httpServer = &http.Server{
		Handler:        s.mux,
		ReadTimeout:    s.cfg.ServerReadTimeout,
		WriteTimeout:   s.cfg.ServerWriteTimeout,
		MaxHeaderBytes: s.cfg.MaxHeaderBytes,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
		// Send OPTIONS * through the router so it gets the CORS headers
		DisableGeneralOptionsHandler: true,
	}
	fs.Debugf(nil, "Bound listener on %s", listener.Addr())

	return s, nil
}

func (s *Server) serve() {
	defer s.wg.Done()
	err := s.httpServer.Serve(s.listener)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		fs.Errorf(nil, "%s: unexpected error: %s", s.listener.Addr(), err.Error())
		s.mu.Lock()
		s.serveErr = err
		s.mu.Unlock()
	}
}

// Serve starts the HTTP server on the listener in the background
func (s *Server) Serve() {
	s.wg.Add(1)
	go s.serve()
	// Install an atexit handler to shutdown gracefully
	s.mu.Lock()
	s.atexitHandle = atexit.Register(func() { _ = s.Shutdown() })
	s.mu.Unlock()
}

// Wait blocks while the server is serving requests
//
// It returns the error which stopped the server, or nil if it was
// shut down.
func (s *Server) Wait() error {
	s.wg.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.serveErr
}

// Router returns the server base router
func (s *Server) Router() chi.Router {
	return s.mux
}

// Addr returns the address the server is listening on
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Port returns the TCP port the server is listening on
func (s *Server) Port() int {
	if addr, ok := s.listener.Addr().(*net.TCPAddr); ok {
		return addr.Port
	}
	_, port, err := net.SplitHostPort(s.listener.Addr().String())
	if err != nil {
		return 0
	}
	n, _ := strconv.Atoi(port)
	return n
}

// Time to wait to Shutdown an HTTP server
const gracefulShutdownTime = 10 * time.Second

// Shutdown gracefully shuts down the server and releases the listener
//
// It is safe to call more than once.
func (s *Server) Shutdown() error {
	var err error
	s.shutdownOnce.Do(func() {
		// Stop the atexit handler
		s.mu.Lock()
		if s.atexitHandle != nil {
			atexit.Unregister(s.atexitHandle)
			s.atexitHandle = nil
		}
		s.mu.Unlock()
		expiry := time.Now().Add(gracefulShutdownTime)
		ctx, cancel := context.WithDeadline(context.Background(), expiry)
		defer cancel()
		if err = s.httpServer.Shutdown(ctx); err != nil {
			fs.Logf(nil, "error shutting down server: %s", err)
		}
		// Shutdown only closes the listener if Serve was called
		_ = s.listener.Close()
		s.wg.Wait()
	})
	return err
}
