package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/RooCodeInc/convo-viewer/internal"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server exposes the viewer over a local HTTP API. All state lives in the
// controller; handlers only translate between HTTP and its actions.
type Server struct {
	router *chi.Mux
	ctrl   *internal.Controller
}

// New creates a server around the given controller.
func New(ctrl *internal.Controller) *Server {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{router: router, ctrl: ctrl}

	router.Get("/health", s.health)
	router.Get("/api/tasks", s.tasks)
	router.Get("/api/conversation", s.conversation)
	router.Post("/api/tasks/{id}/select", s.selectTask)
	router.Post("/api/selection/clear", s.clearSelection)
	router.Post("/api/source/{source}", s.switchSource)
	router.Post("/api/toggles/condensed", s.toggleCondensed)
	router.Post("/api/toggles/expand", s.toggleExpand)
	router.Post("/api/local", s.uploadLocal)

	return s
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves the API on addr until the listener fails.
func (s *Server) Start(addr string) error {
	internal.LogInfo("Viewer API listening on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) tasks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"source": s.ctrl.ActiveSource(),
		"tasks":  s.ctrl.Tasks(),
	})
}

func (s *Server) conversation(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ctrl.View())
}

func (s *Server) selectTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.ctrl.SelectTask(id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.ctrl.View())
}

func (s *Server) clearSelection(w http.ResponseWriter, r *http.Request) {
	s.ctrl.ClearSelection()
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func (s *Server) switchSource(w http.ResponseWriter, r *http.Request) {
	source, err := internal.ParseSource(chi.URLParam(r, "source"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := s.ctrl.SwitchSource(source); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"source": source,
		"tasks":  s.ctrl.Tasks(),
	})
}

func (s *Server) toggleCondensed(w http.ResponseWriter, r *http.Request) {
	hidden := s.ctrl.ToggleCondensed()
	writeJSON(w, http.StatusOK, map[string]bool{"condensedHidden": hidden})
}

func (s *Server) toggleExpand(w http.ResponseWriter, r *http.Request) {
	expanded := s.ctrl.ToggleExpandAll()
	writeJSON(w, http.StatusOK, map[string]bool{"expandAll": expanded})
}

func (s *Server) uploadLocal(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 64<<20))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := s.ctrl.LoadLocalConversation(data); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.ctrl.View())
}

// writeError maps the error taxonomy onto status codes: unknown task ids are
// 404, rejected local files are 400, everything else is a fetch failure.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusBadGateway
	var lf *internal.LocalFileError
	if internal.IsNotFound(err) {
		status = http.StatusNotFound
	} else if errors.As(err, &lf) {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		internal.LogWarn("Failed to encode response: %v", err)
	}
}
