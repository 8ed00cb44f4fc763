package repositoryimpl

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarianoPoeta/magnus/internal/budget"
	"github.com/MarianoPoeta/magnus/pkg/cerr"
	"github.com/MarianoPoeta/magnus/pkg/storage"
)

func newRepo(t *testing.T) *YAMLRepository {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return NewYAMLRepository(store)
}

func sampleBudget(id string, status budget.Status) *budget.Budget {
	return &budget.Budget{
		ID:         id,
		Name:       "Evento",
		ClientName: "Acme",
		Status:     status,
		EventDate:  time.Date(2026, 10, 15, 20, 0, 0, 0, time.UTC),
		GuestCount: 25,
	}
}

func TestCreateAndGet(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	b := sampleBudget("b1", budget.StatusPending)
	require.NoError(t, repo.Create(ctx, b))

	got, err := repo.Get(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, b.ClientName, got.ClientName)
	assert.Equal(t, b.Status, got.Status)
	assert.Equal(t, b.GuestCount, got.GuestCount)
	assert.True(t, b.EventDate.Equal(got.EventDate))
}

func TestCreateDuplicate(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, sampleBudget("b1", budget.StatusPending)))
	err := repo.Create(ctx, sampleBudget("b1", budget.StatusPending))
	require.Error(t, err)

	var cerrErr *cerr.Error
	require.ErrorAs(t, err, &cerrErr)
	assert.Equal(t, cerr.AlreadyExists, cerrErr.Code)
}

func TestGetNotFound(t *testing.T) {
	repo := newRepo(t)

	_, err := repo.Get(context.Background(), "missing")
	require.Error(t, err)

	var cerrErr *cerr.Error
	require.ErrorAs(t, err, &cerrErr)
	assert.Equal(t, cerr.NotFound, cerrErr.Code)
}

func TestListFiltersByStatus(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, sampleBudget("b1", budget.StatusConfirmed)))
	require.NoError(t, repo.Create(ctx, sampleBudget("b2", budget.StatusPending)))
	require.NoError(t, repo.Create(ctx, sampleBudget("b3", budget.StatusConfirmed)))

	confirmed, err := repo.List(ctx, budget.StatusConfirmed)
	require.NoError(t, err)
	assert.Len(t, confirmed, 2)

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestUpdate(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	b := sampleBudget("b1", budget.StatusPending)
	require.NoError(t, repo.Create(ctx, b))

	b.Status = budget.StatusConfirmed
	require.NoError(t, repo.Update(ctx, b))

	got, err := repo.Get(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, budget.StatusConfirmed, got.Status)
}

func TestUpdateMissing(t *testing.T) {
	repo := newRepo(t)

	err := repo.Update(context.Background(), sampleBudget("ghost", budget.StatusPending))
	require.Error(t, err)

	var cerrErr *cerr.Error
	require.ErrorAs(t, err, &cerrErr)
	assert.Equal(t, cerr.NotFound, cerrErr.Code)
}

func TestDelete(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, sampleBudget("b1", budget.StatusPending)))
	require.NoError(t, repo.Delete(ctx, "b1"))

	_, err := repo.Get(ctx, "b1")
	assert.Error(t, err)
}
