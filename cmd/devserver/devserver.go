// Package devserver implements the local development server for the
// web app: static files from a directory with permissive CORS.
package devserver

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/pdiomede/BurnIt/fs"
	fslog "github.com/pdiomede/BurnIt/fs/log"
	libhttp "github.com/pdiomede/BurnIt/lib/http"
	"github.com/pdiomede/BurnIt/lib/http/serve"
	"github.com/pdiomede/BurnIt/lib/terminal"
	"github.com/skratchdot/open-golang/open"
	"github.com/spf13/pflag"
)

// DefaultPort is the port served on if none is given
const DefaultPort = 8000

// Options contains options for the dev server
type Options struct {
	Port          int    // TCP port to listen on, on all interfaces
	Root          string // directory to serve
	NoOpenBrowser bool   // don't open the URL in a browser
}

// DefaultOpt is the default values used for Options
var DefaultOpt = Options{
	Port: DefaultPort,
	Root: ".",
}

// AddFlags adds flags for the dev server
func AddFlags(flagSet *pflag.FlagSet, opt *Options) {
	flagSet.BoolVarP(&opt.NoOpenBrowser, "no-open-browser", "", opt.NoOpenBrowser, "Don't open the browser at the serving URL")
}

// openURL opens the URL passed in with the system's default browser
var openURL = open.Start

// Server contains everything to run the dev server
type Server struct {
	opt    Options
	server *libhttp.Server
	url    string
}

// Start binds the port, starts serving in the background, prints the
// serving URL and opens it in the browser.
//
// Use s.Shutdown() and s.Wait() to stop the server.
func Start(ctx context.Context, opt Options) (*Server, error) {
	defer fslog.Trace(nil, "start dev server on port %d", opt.Port)()
	s, err := newServer(ctx, opt)
	if err != nil {
		return nil, err
	}
	s.Serve()
	return s, nil
}

func newServer(ctx context.Context, opt Options) (*Server, error) {
	cfg := libhttp.DefaultCfg()
	cfg.ListenAddr = net.JoinHostPort("", strconv.Itoa(opt.Port))
	server, err := libhttp.NewServer(ctx, libhttp.WithConfig(cfg))
	if err != nil {
		return nil, err
	}

	router := server.Router()
	router.Handle("/*", serve.Files(opt.Root))

	return &Server{
		opt:    opt,
		server: server,
		url:    fmt.Sprintf("http://localhost:%d", server.Port()),
	}, nil
}

// Serve runs the http server in the background and tells the user
// where to find it.
func (s *Server) Serve() {
	s.server.Serve()
	fs.Infof(nil, "Listening on %s", s.server.Addr())

	terminal.Printf("🚀 Server running at %s\n", terminal.Colour(terminal.GreenFg, s.url))
	terminal.Printf("📱 Open %s in your browser\n", s.url)
	terminal.Printf("Press Ctrl+C to stop the server\n")

	if !s.opt.NoOpenBrowser {
		openBrowser(s.url)
	}
}

// openBrowser tries to open url in the default browser.
//
// Failure is only logged at debug level.
func openBrowser(url string) {
	if err := openURL(url); err != nil {
		fs.Debugf(nil, "Failed to open browser: %v", err)
	}
}

// URL returns the URL the server can be reached at
func (s *Server) URL() string {
	return s.url
}

// Port returns the port the server is listening on
func (s *Server) Port() int {
	return s.server.Port()
}

// Wait blocks until the server has stopped
func (s *Server) Wait() error {
	return s.server.Wait()
}

// Shutdown stops the server and releases the port
func (s *Server) Shutdown() error {
	return s.server.Shutdown()
}
