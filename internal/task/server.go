package task

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MarianoPoeta/magnus/pkg/cerr"
)

type Server struct {
	repo Repository
}

func NewServer(repo Repository) *Server {
	return &Server{repo: repo}
}

func (s *Server) RegisterRoutes(r chi.Router) {
	r.Get("/tasks", s.handleList)
	r.Get("/tasks/{id}", s.handleGet)
	r.Patch("/tasks/{id}", s.handleUpdate)
}

// handleList accepts budgetId, role, status and type query filters. When a
// role filter is present the result is ordered as that role's work queue.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	f := Filter{
		BudgetID: q.Get("budgetId"),
		Role:     Role(q.Get("role")),
		Status:   Status(q.Get("status")),
		Type:     Type(q.Get("type")),
	}
	if f.Status != "" && !f.Status.Valid() {
		cerr.SetNewJSONError(ctx, cerr.InvalidArgument, "unknown task status", nil)
		return
	}
	if f.Type != "" && !f.Type.Valid() {
		cerr.SetNewJSONError(ctx, cerr.InvalidArgument, "unknown task type", nil)
		return
	}

	tasks, err := s.repo.List(ctx, f)
	if err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	if f.Role != "" {
		tasks = SortForRole(tasks, f.Role)
	}
	if tasks == nil {
		tasks = []*Task{}
	}
	cerr.SetJSONResponse(ctx, tasks)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	t, err := s.repo.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	cerr.SetJSONResponse(ctx, t)
}

type updateTaskRequest struct {
	Status     *Status `json:"status"`
	AssignedTo *string `json:"assignedTo"`
	Notes      *string `json:"notes"`
}

// handleUpdate patches the mutable operational fields. Generated structure
// (type, dependencies, requirements, schedule) is not writable here.
func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		cerr.SetNewJSONError(ctx, cerr.InvalidArgument, "invalid task payload", err)
		return
	}
	if req.Status != nil && !req.Status.Valid() {
		cerr.SetNewJSONError(ctx, cerr.InvalidArgument, "unknown task status", nil)
		return
	}

	t, err := s.repo.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}

	if req.Status != nil {
		t.Status = *req.Status
	}
	if req.AssignedTo != nil {
		t.AssignedTo = *req.AssignedTo
	}
	if req.Notes != nil {
		t.Notes = *req.Notes
	}
	t.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, t); err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	cerr.SetJSONResponse(ctx, t)
}
