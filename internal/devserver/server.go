// Package devserver serves the extension directory for local testing.
package devserver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/at-ishikawa/smarttranslator/internal/assets"
)

const (
	DefaultPort = 5000
	pageTitle   = "Smart Translator - Chrome Extension Development"
)

var mimeTypes = map[string]string{
	".html": "text/html",
	".js":   "text/javascript",
	".css":  "text/css",
	".json": "application/json",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
	".ico":  "image/x-icon",
}

// ContentType maps a file name to its MIME type by extension.
func ContentType(name string) string {
	if mimeType, ok := mimeTypes[strings.ToLower(path.Ext(name))]; ok {
		return mimeType
	}
	return "application/octet-stream"
}

type Config struct {
	Port int
	Root string
	// InstructionsFile replaces the embedded instructions markdown.
	InstructionsFile string
	// TemplateDirectory overrides the embedded page template.
	TemplateDirectory string
}

type Server struct {
	cfg          Config
	files        fs.FS
	instructions []byte
	router       chi.Router
}

func New(cfg Config) (*Server, error) {
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.Root == "" {
		cfg.Root = "."
	}
	instructions, err := renderInstructions(cfg)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:          cfg,
		files:        os.DirFS(cfg.Root),
		instructions: instructions,
	}
	s.router = s.buildRouter()
	return s, nil
}

func renderInstructions(cfg Config) ([]byte, error) {
	markdown, err := assets.Instructions(cfg.InstructionsFile)
	if err != nil {
		return nil, fmt.Errorf("assets.Instructions() > %w", err)
	}
	var body bytes.Buffer
	if err := goldmark.New(goldmark.WithExtensions(extension.GFM)).Convert(markdown, &body); err != nil {
		return nil, fmt.Errorf("goldmark.Convert() > %w", err)
	}

	page, err := assets.ParsePageTemplate(cfg.TemplateDirectory)
	if err != nil {
		return nil, fmt.Errorf("assets.ParsePageTemplate() > %w", err)
	}
	var html bytes.Buffer
	if err := page.ExecuteTemplate(&html, assets.PageTemplateName, struct {
		Title string
		Port  int
		Body  template.HTML
	}{
		Title: pageTitle,
		Port:  cfg.Port,
		Body:  template.HTML(body.String()),
	}); err != nil {
		return nil, fmt.Errorf("ExecuteTemplate(page) > %w", err)
	}
	return html.Bytes(), nil
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(middleware.NoCache)
	// Preflight requests are answered with 200 by cors itself.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.HandleFunc("/*", s.serveFile)
	return r
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) serveFile(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
	if name == "" {
		name = "index.html"
	}

	content, err := fs.ReadFile(s.files, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if name == "index.html" {
				writeBody(w, http.StatusOK, "text/html", s.instructions)
				return
			}
			writeBody(w, http.StatusNotFound, "text/plain", []byte("404 Not Found"))
			return
		}
		slog.Default().Error("failed to read a file", slog.String("name", name), slog.Any("error", err))
		writeBody(w, http.StatusInternalServerError, "text/plain", []byte("Server Error: "+err.Error()))
		return
	}
	writeBody(w, http.StatusOK, ContentType(name), content)
}

func writeBody(w http.ResponseWriter, status int, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		slog.Default().Debug("failed to write a response", slog.Any("error", err))
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		slog.Default().Debug("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("elapsed", time.Since(start)),
		)
	})
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Default().Info("Development server running",
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.cfg.Port)),
			slog.String("root", s.cfg.Root),
		)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server.ListenAndServe() > %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server.Shutdown() > %w", err)
		}
		slog.Default().Info("Server closed")
		return nil
	}
}
