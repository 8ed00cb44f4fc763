package budget_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarianoPoeta/magnus/internal/budget"
	budgetrepo "github.com/MarianoPoeta/magnus/internal/budget/repositoryimpl"
	"github.com/MarianoPoeta/magnus/pkg/cerr"
	"github.com/MarianoPoeta/magnus/pkg/clog"
	"github.com/MarianoPoeta/magnus/pkg/storage"
)

type transitionRecorder struct {
	calls []struct{ previous, next budget.Status }
}

func (r *transitionRecorder) fn(ctx context.Context, b *budget.Budget, previous, next budget.Status) error {
	r.calls = append(r.calls, struct{ previous, next budget.Status }{previous, next})
	return nil
}

func newTestServer(t *testing.T) (*chi.Mux, budget.Repository, *transitionRecorder) {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	repo := budgetrepo.NewYAMLRepository(store)

	recorder := &transitionRecorder{}
	srv := budget.NewServer(repo, recorder.fn)

	r := chi.NewRouter()
	r.Use(clog.SlogChiMiddleware(), cerr.NewJSONResponseChiMiddleware())
	srv.RegisterRoutes(r)
	return r, repo, recorder
}

func seedBudget(t *testing.T, repo budget.Repository, status budget.Status) *budget.Budget {
	t.Helper()
	b := &budget.Budget{
		ID:         "b1",
		ClientName: "Acme",
		Status:     status,
		EventDate:  time.Date(2026, 10, 15, 20, 0, 0, 0, time.UTC),
		GuestCount: 25,
	}
	require.NoError(t, repo.Create(context.Background(), b))
	return b
}

func TestCreateBudget(t *testing.T) {
	router, _, _ := newTestServer(t)

	body := `{"clientName":"Acme","eventDate":"2026-10-15T20:00:00Z","guestCount":25}`
	req := httptest.NewRequest(http.MethodPost, "/budgets", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var created budget.Budget
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, budget.StatusDraft, created.Status)
	assert.Equal(t, 25, created.GuestCount)
}

func TestCreateBudgetRejectsInvalid(t *testing.T) {
	router, _, _ := newTestServer(t)

	body := `{"clientName":"Acme","eventDate":"2026-10-15T20:00:00Z","guestCount":0}`
	req := httptest.NewRequest(http.MethodPost, "/budgets", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetBudgetNotFound(t *testing.T) {
	router, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/budgets/missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListBudgetsByStatus(t *testing.T) {
	router, repo, _ := newTestServer(t)
	seedBudget(t, repo, budget.StatusConfirmed)

	req := httptest.NewRequest(http.MethodGet, "/budgets?status=confirmed", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var budgets []*budget.Budget
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &budgets))
	assert.Len(t, budgets, 1)

	req = httptest.NewRequest(http.MethodGet, "/budgets?status=pending", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &budgets))
	assert.Empty(t, budgets)
}

func TestUpdateStatusInvokesTransition(t *testing.T) {
	router, repo, recorder := newTestServer(t)
	seedBudget(t, repo, budget.StatusPending)

	req := httptest.NewRequest(http.MethodPut, "/budgets/b1/status", strings.NewReader(`{"status":"confirmed"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, recorder.calls, 1)
	assert.Equal(t, budget.StatusPending, recorder.calls[0].previous)
	assert.Equal(t, budget.StatusConfirmed, recorder.calls[0].next)

	got, err := repo.Get(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, budget.StatusConfirmed, got.Status)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	router, repo, recorder := newTestServer(t)
	seedBudget(t, repo, budget.StatusPending)

	req := httptest.NewRequest(http.MethodPut, "/budgets/b1/status", strings.NewReader(`{"status":"party"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, recorder.calls)
}
