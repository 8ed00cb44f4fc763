package cooking

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MarianoPoeta/magnus/internal/budget"
	"github.com/MarianoPoeta/magnus/internal/task"
	"github.com/MarianoPoeta/magnus/pkg/cerr"
)

const defaultUpcomingLimit = 5

type Server struct {
	budgetRepo budget.Repository
	taskRepo   task.Repository
}

func NewServer(budgetRepo budget.Repository, taskRepo task.Repository) *Server {
	return &Server{budgetRepo: budgetRepo, taskRepo: taskRepo}
}

func (s *Server) RegisterRoutes(r chi.Router) {
	r.Get("/cooking-schedules", s.handleList)
	r.Get("/cooking-schedules/day", s.handleDay)
	r.Get("/cooking-schedules/upcoming", s.handleUpcoming)
}

func (s *Server) build(r *http.Request, start, end time.Time) ([]*task.CookingSchedule, error) {
	ctx := r.Context()
	budgets, err := s.budgetRepo.List(ctx, budget.StatusConfirmed)
	if err != nil {
		return nil, err
	}
	tasks, err := s.taskRepo.List(ctx, task.Filter{Type: task.TypeCooking})
	if err != nil {
		return nil, err
	}
	return Build(budgets, tasks, start, end), nil
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

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start, end, err := parseWindow(r)
	if err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	schedules, err := s.build(r, start, end)
	if err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	if schedules == nil {
		schedules = []*task.CookingSchedule{}
	}
	cerr.SetJSONResponse(ctx, schedules)
}

func (s *Server) handleDay(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	v := r.URL.Query().Get("date")
	if v == "" {
		cerr.SetNewJSONError(ctx, cerr.InvalidArgument, "date query parameter is required", nil)
		return
	}
	day, err := parseDate(v)
	if err != nil {
		cerr.SetNewJSONError(ctx, cerr.InvalidArgument, "invalid date", err)
		return
	}

	schedules, err := s.build(r, day, day.Add(24*time.Hour-time.Nanosecond))
	if err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	out := ScheduleForDay(schedules, day)
	if out == nil {
		out = []*task.CookingSchedule{}
	}
	cerr.SetJSONResponse(ctx, out)
}

func (s *Server) handleUpcoming(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	limit := defaultUpcomingLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			cerr.SetNewJSONError(ctx, cerr.InvalidArgument, "limit must be a positive integer", err)
			return
		}
		limit = n
	}

	now := time.Now()
	schedules, err := s.build(r, now, now.AddDate(0, 0, 30))
	if err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	out := Upcoming(schedules, now, limit)
	if out == nil {
		out = []*task.CookingSchedule{}
	}
	cerr.SetJSONResponse(ctx, out)
}
