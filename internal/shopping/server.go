package shopping

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MarianoPoeta/magnus/internal/budget"
	"github.com/MarianoPoeta/magnus/internal/task"
	"github.com/MarianoPoeta/magnus/pkg/cerr"
)

// Server exposes the consolidated shopping projection. Item ids are minted
// per consolidation, so the server keeps the last projection it handed out
// and resolves purchase updates against that snapshot. Updates are not
// written back to the source requirements; the next consolidation re-derives
// purchase state from the tasks.
type Server struct {
	budgetRepo budget.Repository
	taskRepo   task.Repository

	mu   sync.Mutex
	last []*Item
}

func NewServer(budgetRepo budget.Repository, taskRepo task.Repository) *Server {
	return &Server{budgetRepo: budgetRepo, taskRepo: taskRepo}
}

func (s *Server) RegisterRoutes(r chi.Router) {
	r.Get("/shopping-list", s.handleList)
	r.Get("/shopping-list/progress", s.handleProgress)
	r.Get("/shopping-list/by-category", s.handleByCategory)
	r.Put("/shopping-list/{itemId}", s.handleUpdateStatus)
}

// parseWindow reads the start/end query parameters, defaulting to the coming
// week. Dates accept 2006-01-02 or RFC 3339.
func parseWindow(r *http.Request) (time.Time, time.Time, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 7)

	var err error
	if v := r.URL.Query().Get("start"); v != "" {
		if start, err = parseDate(v); err != nil {
			return time.Time{}, time.Time{}, cerr.NewError(cerr.InvalidArgument, "invalid start date", err)
		}
	}
	if v := r.URL.Query().Get("end"); v != "" {
		if end, err = parseDate(v); err != nil {
			return time.Time{}, time.Time{}, cerr.NewError(cerr.InvalidArgument, "invalid end date", err)
		}
		// A bare end date means the whole day is inside the window.
		if end.Hour() == 0 && end.Minute() == 0 && end.Second() == 0 {
			end = end.Add(24*time.Hour - time.Nanosecond)
		}
	}
	return start, end, nil
}

func parseDate(v string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, v)
}

func (s *Server) consolidate(r *http.Request) ([]*Item, error) {
	ctx := r.Context()
	start, end, err := parseWindow(r)
	if err != nil {
		return nil, err
	}
	budgets, err := s.budgetRepo.List(ctx, budget.StatusConfirmed)
	if err != nil {
		return nil, err
	}
	tasks, err := s.taskRepo.List(ctx, task.Filter{Type: task.TypeShopping})
	if err != nil {
		return nil, err
	}

	items := Consolidate(budgets, tasks, start, end)

	s.mu.Lock()
	s.last = items
	s.mu.Unlock()
	return items, nil
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	items, err := s.consolidate(r)
	if err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	if items == nil {
		items = []*Item{}
	}
	cerr.SetJSONResponse(ctx, items)
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	items, err := s.consolidate(r)
	if err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	cerr.SetJSONResponse(ctx, GetProgress(items))
}

func (s *Server) handleByCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	items, err := s.consolidate(r)
	if err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	cerr.SetJSONResponse(ctx, GroupByCategory(items))
}

type updateItemRequest struct {
	PurchasedQuantity float64 `json:"purchasedQuantity"`
	PurchasedBy       string  `json:"purchasedBy"`
}

func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	itemID := chi.URLParam(r, "itemId")

	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		cerr.SetNewJSONError(ctx, cerr.InvalidArgument, "invalid shopping item payload", err)
		return
	}
	if req.PurchasedQuantity < 0 {
		cerr.SetNewJSONError(ctx, cerr.InvalidArgument, "purchased quantity must not be negative", nil)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for _, item := range s.last {
		if item.ID == itemID {
			found = true
			break
		}
	}
	if !found {
		cerr.SetNewJSONError(ctx, cerr.NotFound, "shopping item not found", nil)
		return
	}

	s.last = UpdateStatus(s.last, itemID, req.PurchasedQuantity, req.PurchasedBy)
	cerr.SetJSONResponse(ctx, s.last)
}
