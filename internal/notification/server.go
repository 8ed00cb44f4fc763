package notification

import (
	"net/http"

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
	r.Get("/notifications", s.handleList)
	r.Put("/notifications/{id}/read", s.handleMarkRead)
	r.Delete("/notifications/{id}", s.handleDelete)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	role := Role(r.URL.Query().Get("role"))
	notifications, err := s.repo.List(ctx, role)
	if err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	if notifications == nil {
		notifications = []*Notification{}
	}
	cerr.SetJSONResponse(ctx, notifications)
}

func (s *Server) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	n, err := s.repo.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	n.Read = true
	if err := s.repo.Update(ctx, n); err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	cerr.SetJSONResponse(ctx, n)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := s.repo.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	cerr.SetJSONResponse(ctx, map[string]bool{"deleted": true})
}
