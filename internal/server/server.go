package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"mime"
	"net"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/garfunkel/nastie/internal/store"
	"github.com/garfunkel/nastie/internal/view"
)

// defaultTitle is used when no custom title is configured.
const defaultTitle = "nastie"

// indexTemplate is the dashboard page within the assets filesystem.
const indexTemplate = "templates/index.html"

// Server handles HTTP requests for the nastie dashboard.
//
// Server provides three endpoints:
//   - GET /: Renders the jail listing from the current snapshot
//   - GET /static/<file>: Serves embedded static assets
//   - GET /api/jails: Returns the current snapshot as JSON
//
// The server is designed for graceful shutdown via context cancellation.
type Server struct {
	snapshot   *store.Snapshot
	assets     fs.FS
	host       string
	port       int
	title      string
	tmpl       *template.Template
	httpServer *http.Server
	logger     *slog.Logger
}

// indexData is the template context for the dashboard page.
type indexData struct {
	Title string
	Jails map[string]view.Jail
}

// New creates a new HTTP [Server].
//
// The dashboard template is parsed from assets immediately, so a broken or
// missing template fails here rather than on the first request. An empty
// title defaults to "nastie". The server is not started until
// [Server.Start] is called.
func New(snapshot *store.Snapshot, assets fs.FS, host string, port int, title string, logger *slog.Logger) (*Server, error) {
	tmpl, err := template.ParseFS(assets, indexTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dashboard template: %w", err)
	}

	if title == "" {
		title = defaultTitle
	}

	return &Server{
		snapshot: snapshot,
		assets:   assets,
		host:     host,
		port:     port,
		title:    title,
		tmpl:     tmpl,
		logger:   logger,
	}, nil
}

// routes builds the request multiplexer for all dashboard endpoints.
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/jails", s.handleJails)
	mux.HandleFunc("/static/", s.handleStatic)
	mux.HandleFunc("/", s.handleIndex)

	return mux
}

// Start begins serving HTTP requests in a background goroutine.
//
// Start is non-blocking and returns immediately after confirming the server
// is listening. The server will continue running until the context is
// cancelled, at which point it initiates a graceful shutdown with a 5-second
// timeout.
//
// Returns an error if the server fails to bind to the configured address.
func (s *Server) Start(ctx context.Context) error {
	// create listener first to verify the address is available synchronously
	addr := net.JoinHostPort(s.host, strconv.Itoa(s.port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to bind to %s: %w", addr, err)
	}

	s.httpServer = &http.Server{
		Handler: s.routes(),
		// BaseContext derives all request contexts from the server context.
		// When ctx is cancelled, all request contexts are also cancelled,
		// enabling graceful shutdown of in-flight handlers.
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	s.logger.Info("dashboard listening", "addr", addr)

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger.Error("http server error", "error", err)
		}
	}()

	// shutdown on context cancellation
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("http server shutdown error", "error", err)
		}
	}()

	return nil
}

// handleIndex renders the dashboard page from the current snapshot.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	data := indexData{
		Title: s.title,
		Jails: s.snapshot.Current(),
	}

	// render to a buffer first so a template failure yields a clean 500
	// instead of a half-written page
	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, data); err != nil {
		s.logger.Error("failed to render dashboard", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		s.logger.Error("failed to write dashboard response", "error", err)
	}
}

// handleStatic serves one embedded asset from the static directory.
//
// Unknown files are a 404; files without a recognizable extension are a 400,
// since the response would have no content type.
func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := path.Clean("static/" + strings.TrimPrefix(r.URL.Path, "/static/"))
	if !strings.HasPrefix(name, "static/") {
		// path escaped the static directory
		http.NotFound(w, r)
		return
	}

	content, err := fs.ReadFile(s.assets, name)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	ext := path.Ext(name)
	if ext == "" {
		http.Error(w, "Missing file extension", http.StatusBadRequest)
		return
	}
	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		http.Error(w, "Unknown file extension", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", contentType)
	if _, err := w.Write(content); err != nil {
		s.logger.Error("failed to write static response", "error", err, "file", name)
	}
}

// handleJails returns the current snapshot as JSON.
func (s *Server) handleJails(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")

	if err := json.NewEncoder(w).Encode(s.snapshot.Current()); err != nil {
		s.logger.Error("failed to encode jails response", "error", err)
	}
}
