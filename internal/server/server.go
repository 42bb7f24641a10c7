// Package server republishes previously generated analysis artifacts over
// HTTP so agents and tooling can read them without filesystem access.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/phelan/cairn/internal/adr"
	"github.com/phelan/cairn/internal/capability"
)

// Server serves the artifacts under a repository's .ai-context and docs
// directories. It performs no analysis of its own.
type Server struct {
	base string
	log  *slog.Logger
}

// New creates a server rooted at base. A nil logger falls back to the
// default slog logger.
func New(base string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{base: base, log: logger}
}

// Handler builds the router for every artifact endpoint.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/mcp/system", s.handleSystem)
	r.Get("/mcp/components/{name}", s.handleComponent)
	r.Get("/mcp/apis/{name}", s.handleAPI)
	r.Get("/mcp/adrs", s.handleADRs)
	r.Get("/mcp/capabilities", s.handleCapabilities)

	return r
}

func (s *Server) handleSystem(w http.ResponseWriter, r *http.Request) {
	s.serveArtifact(w, r, filepath.Join(s.base, ".ai-context", "system.yaml"))
}

func (s *Server) handleComponent(w http.ResponseWriter, r *http.Request) {
	name, ok := cleanName(chi.URLParam(r, "name"))
	if !ok {
		http.Error(w, "invalid component name", http.StatusBadRequest)
		return
	}
	s.serveArtifact(w, r, filepath.Join(s.base, ".ai-context", "components", name+".yaml"))
}

func (s *Server) handleAPI(w http.ResponseWriter, r *http.Request) {
	name, ok := cleanName(chi.URLParam(r, "name"))
	if !ok {
		http.Error(w, "invalid api name", http.StatusBadRequest)
		return
	}
	s.serveArtifact(w, r, filepath.Join(s.base, ".ai-context", "contracts", name+".openapi.yaml"))
}

func (s *Server) handleADRs(w http.ResponseWriter, r *http.Request) {
	var names []string
	for _, path := range adr.List(filepath.Join(s.base, "docs", "adr")) {
		names = append(names, filepath.Base(path))
	}
	s.writeJSON(w, map[string][]string{"adrs": names})
}

func (s *Server) handleCapabilities(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, capability.Build(s.base))
}

// serveArtifact republishes a generated file verbatim; a missing artifact
// is a 404, never an error.
func (s *Server) serveArtifact(w http.ResponseWriter, r *http.Request, path string) {
	if _, err := os.Stat(path); err != nil {
		s.log.Info("artifact not found", "path", path)
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	http.ServeFile(w, r, path)
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("encoding response", "error", err)
	}
}

// cleanName rejects artifact names that could escape the artifact
// directory.
func cleanName(name string) (string, bool) {
	if name == "" || strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return "", false
	}
	return name, true
}
