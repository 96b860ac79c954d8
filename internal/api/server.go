package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MikeSquared-Agency/convoview/internal/archive"
)

// Options configures the HTTP surface.
type Options struct {
	Port           int
	AttachmentsDir string
	CORSOrigin     string
}

type Server struct {
	router  *chi.Mux
	archive *archive.Archive
	opts    Options
	logger  *slog.Logger
	http    *http.Server
}

func NewServer(a *archive.Archive, opts Options, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(corsMiddleware(opts.CORSOrigin))

	s := &Server{
		router:  router,
		archive: a,
		opts:    opts,
		logger:  logger,
		http: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}

	router.Get("/health", s.health)
	router.Get("/conversations", s.listConversations)
	router.Get("/conversation/{id}", s.getConversation)
	router.Get("/conversation/{id}/canonical", s.getCanonical)
	router.Get("/api/attachment/*", s.getAttachment)
	router.Get("/debug/{id}", s.debugConversation)

	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("API server starting", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listConversations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.archive.Summaries(r.URL.Query().Get("q")))
}

func (s *Server) getConversation(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.archive.Find(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "Conversation not found")
		return
	}
	writeJSON(w, http.StatusOK, entry.Messages())
}

func (s *Server) getCanonical(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.archive.Find(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "Conversation not found")
		return
	}
	writeJSON(w, http.StatusOK, entry.Canonical)
}

func (s *Server) getAttachment(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "*")
	if unescaped, err := url.PathUnescape(raw); err == nil {
		raw = unescaped
	}
	name := filepath.Base(raw)
	if raw == "" || name == "." || name == ".." || name == string(filepath.Separator) {
		writeError(w, http.StatusNotFound, "Attachment not found")
		return
	}

	root, err := os.OpenRoot(s.opts.AttachmentsDir)
	if err != nil {
		s.logger.Warn("attachments dir unavailable", "dir", s.opts.AttachmentsDir, "error", err)
		writeError(w, http.StatusNotFound, "Attachment not found")
		return
	}
	defer root.Close()

	f, err := root.Open(name)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("attachment open failed", "name", name, "error", err)
		}
		writeError(w, http.StatusNotFound, "Attachment not found")
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() {
		writeError(w, http.StatusNotFound, "Attachment not found")
		return
	}

	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	http.ServeContent(w, r, name, info.ModTime(), f)
}

// debugConversation logs the first message node of a conversation.
func (s *Server) debugConversation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	entry, ok := s.archive.Find(id)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, "Conversation not found")
		return
	}

	nodeID, node, ok := entry.FirstMessageNode()
	if !ok {
		fmt.Fprint(w, "No message nodes found")
		return
	}

	s.logger.Info("debug message node", "conversation_id", id, "node_id", nodeID, "node", node)
	fmt.Fprintf(w, "Logged message node %s", nodeID)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
