package budget

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/oklog/ulid/v2"

	"github.com/MarianoPoeta/magnus/pkg/cerr"
)

// TransitionFunc receives the budget together with its previous and new
// status whenever a status write lands, before the write is persisted. The
// workflow wiring implements it; its errors propagate unchanged to the API
// caller.
type TransitionFunc func(ctx context.Context, b *Budget, previous, next Status) error

type Server struct {
	repo       Repository
	transition TransitionFunc
}

func NewServer(repo Repository, transition TransitionFunc) *Server {
	return &Server{repo: repo, transition: transition}
}

func (s *Server) RegisterRoutes(r chi.Router) {
	r.Get("/budgets", s.handleList)
	r.Post("/budgets", s.handleCreate)
	r.Get("/budgets/{id}", s.handleGet)
	r.Put("/budgets/{id}/status", s.handleUpdateStatus)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	status := Status(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		cerr.SetNewJSONError(ctx, cerr.InvalidArgument, "unknown budget status", nil)
		return
	}
	budgets, err := s.repo.List(ctx, status)
	if err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	if budgets == nil {
		budgets = []*Budget{}
	}
	cerr.SetJSONResponse(ctx, budgets)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	b, err := s.repo.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	cerr.SetJSONResponse(ctx, b)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var b Budget
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		cerr.SetNewJSONError(ctx, cerr.InvalidArgument, "invalid budget payload", err)
		return
	}
	if err := b.Validate(); err != nil {
		cerr.SetNewJSONError(ctx, cerr.InvalidArgument, err.Error(), err)
		return
	}
	if b.Status == "" {
		b.Status = StatusDraft
	}
	if !b.Status.Valid() {
		cerr.SetNewJSONError(ctx, cerr.InvalidArgument, "unknown budget status", nil)
		return
	}
	now := time.Now()
	b.ID = ulid.Make().String()
	b.CreatedAt = now
	b.UpdatedAt = now
	if err := s.repo.Create(ctx, &b); err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	cerr.SetJSONResponseWithStatus(ctx, http.StatusCreated, &b)
}

type updateStatusRequest struct {
	Status Status `json:"status"`
}

// handleUpdateStatus is the only write path for the status field, so the
// previous and new values it hands to the transition hook are consistent
// with what gets persisted.
func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		cerr.SetNewJSONError(ctx, cerr.InvalidArgument, "invalid status payload", err)
		return
	}
	if !req.Status.Valid() {
		cerr.SetNewJSONError(ctx, cerr.InvalidArgument, "unknown budget status", nil)
		return
	}

	b, err := s.repo.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}

	previous := b.Status
	b.Status = req.Status
	b.UpdatedAt = time.Now()

	if s.transition != nil {
		if err := s.transition(ctx, b, previous, req.Status); err != nil {
			cerr.SetJSONError(ctx, err)
			return
		}
	}

	if err := s.repo.Update(ctx, b); err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	cerr.SetJSONResponse(ctx, b)
}
