// Package server exposes the registry over a JSON HTTP API. It is a thin
// wrapper: all tree work happens through build, serialize, deserialize and
// diff inside the registry.
package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"treesync/internal/registry"
	"treesync/internal/tree"
)

type RegisterRequest struct {
	ProjectPath string `json:"project_path"`
	ProjectName string `json:"project_name,omitempty"`
}

type RegisterResponse struct {
	ProjectID    string `json:"project_id"`
	Message      string `json:"message"`
	RegisteredAt string `json:"registered_at"`
}

type SyncRequest struct {
	ProjectID  string       `json:"project_id"`
	ClientTree *tree.Record `json:"client_tree"`
}

type SyncResponse struct {
	ProjectID        string   `json:"project_id"`
	ServerHasProject bool     `json:"server_has_project"`
	TreesMatch       bool     `json:"trees_match"`
	ChangedFiles     []string `json:"changed_files"`
	SyncCompletedAt  string   `json:"sync_completed_at"`
}

type HealthResponse struct {
	Status        string `json:"status"`
	Message       string `json:"message"`
	ProjectsCount int    `json:"projects_count"`
	Uptime        string `json:"uptime"`
}

type ProjectInfo struct {
	ProjectID    string `json:"project_id"`
	ProjectName  string `json:"project_name"`
	ProjectPath  string `json:"project_path"`
	RegisteredAt string `json:"registered_at"`
	LastSync     string `json:"last_sync"`
	FileCount    int    `json:"file_count"`
}

type ProjectListResponse struct {
	ProjectsCount int           `json:"projects_count"`
	Projects      []ProjectInfo `json:"projects"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

type Server struct {
	reg     *registry.Registry
	log     *slog.Logger
	started time.Time
}

func New(reg *registry.Registry, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{reg: reg, log: logger, started: time.Now()}
}

// Handler returns the route table for the API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /register", s.handleRegister)
	mux.HandleFunc("POST /sync", s.handleSync)
	mux.HandleFunc("GET /projects", s.handleProjects)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:        "healthy",
		Message:       "treesync server is running",
		ProjectsCount: s.reg.Len(),
		Uptime:        formatUptime(time.Since(s.started)),
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ProjectPath == "" {
		writeError(w, http.StatusBadRequest, "project_path is required")
		return
	}

	p, err := s.reg.Register(req.ProjectPath, req.ProjectName)
	if err != nil {
		s.log.Warn("register failed", "path", req.ProjectPath, "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.log.Info("project registered", "id", p.ID, "files", p.FileCount)
	writeJSON(w, http.StatusOK, RegisterResponse{
		ProjectID:    p.ID,
		Message:      fmt.Sprintf("Project registered successfully: %s", filepath.Base(p.Path)),
		RegisteredAt: p.RegisteredAt.Format(time.RFC3339),
	})
}

func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	var req SyncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ProjectID == "" {
		writeError(w, http.StatusBadRequest, "project_id is required")
		return
	}

	outcome, err := s.reg.Sync(req.ProjectID, req.ClientTree)
	if err != nil {
		s.log.Error("sync failed", "id", req.ProjectID, "error", err)
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Tree synchronization failed: %v", err))
		return
	}

	s.log.Info("sync completed",
		"id", req.ProjectID,
		"match", outcome.TreesMatch,
		"changed", len(outcome.ChangedFiles))

	writeJSON(w, http.StatusOK, SyncResponse{
		ProjectID:        req.ProjectID,
		ServerHasProject: outcome.ServerHasProject,
		TreesMatch:       outcome.TreesMatch,
		ChangedFiles:     outcome.ChangedFiles,
		SyncCompletedAt:  time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	projects := s.reg.List()
	infos := make([]ProjectInfo, 0, len(projects))
	for _, p := range projects {
		infos = append(infos, ProjectInfo{
			ProjectID:    p.ID,
			ProjectName:  p.Name,
			ProjectPath:  p.Path,
			RegisteredAt: p.RegisteredAt.Format(time.RFC3339),
			LastSync:     p.LastSync.Format(time.RFC3339),
			FileCount:    p.FileCount,
		})
	}
	writeJSON(w, http.StatusOK, ProjectListResponse{
		ProjectsCount: len(infos),
		Projects:      infos,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

func formatUptime(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
}

// ListenAndServe runs the API on addr until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	s.log.Info("listening", "addr", addr)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	return srv.ListenAndServe()
}
