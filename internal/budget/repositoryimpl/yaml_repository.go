package repositoryimpl

import (
	"context"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/MarianoPoeta/magnus/internal/budget"
	"github.com/MarianoPoeta/magnus/pkg/cerr"
	"github.com/MarianoPoeta/magnus/pkg/storage"
)

const budgetsPrefix = "budgets"

type YAMLRepository struct {
	storage storage.Storage
}

func NewYAMLRepository(s storage.Storage) *YAMLRepository {
	return &YAMLRepository{storage: s}
}

func path(id string) string {
	return fmt.Sprintf("%s/%s.yaml", budgetsPrefix, id)
}

func (r *YAMLRepository) Create(ctx context.Context, b *budget.Budget) error {
	exists, err := r.storage.Exists(ctx, path(b.ID))
	if err != nil {
		return cerr.WrapStorageWriteError("budget", err)
	}
	if exists {
		return cerr.NewError(cerr.AlreadyExists, "budget already exists", nil)
	}
	data, err := yaml.Marshal(b)
	if err != nil {
		return cerr.NewError(cerr.Internal, "server error", fmt.Errorf("failed to marshal budget: %w", err))
	}
	if err := r.storage.Write(ctx, path(b.ID), data); err != nil {
		return cerr.WrapStorageWriteError("budget", err)
	}
	return nil
}

func (r *YAMLRepository) Get(ctx context.Context, id string) (*budget.Budget, error) {
	data, err := r.storage.Read(ctx, path(id))
	if err != nil {
		return nil, cerr.WrapStorageReadError("budget", err)
	}
	var b budget.Budget
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, cerr.NewError(cerr.Internal, "server error", fmt.Errorf("failed to unmarshal budget: %w", err))
	}
	return &b, nil
}

func (r *YAMLRepository) List(ctx context.Context, status budget.Status) ([]*budget.Budget, error) {
	paths, err := r.storage.List(ctx, budgetsPrefix)
	if err != nil {
		return nil, cerr.WrapStorageReadError("budgets", err)
	}

	sort.Strings(paths)

	var all []*budget.Budget
	for _, p := range paths {
		data, err := r.storage.Read(ctx, p)
		if err != nil {
			continue
		}
		var b budget.Budget
		if err := yaml.Unmarshal(data, &b); err != nil {
			continue
		}
		if status != "" && b.Status != status {
			continue
		}
		all = append(all, &b)
	}
	return all, nil
}

func (r *YAMLRepository) Update(ctx context.Context, b *budget.Budget) error {
	exists, err := r.storage.Exists(ctx, path(b.ID))
	if err != nil {
		return cerr.WrapStorageWriteError("budget", err)
	}
	if !exists {
		return cerr.NewError(cerr.NotFound, "budget not found", nil)
	}
	data, err := yaml.Marshal(b)
	if err != nil {
		return cerr.NewError(cerr.Internal, "server error", fmt.Errorf("failed to marshal budget: %w", err))
	}
	if err := r.storage.Write(ctx, path(b.ID), data); err != nil {
		return cerr.WrapStorageWriteError("budget", err)
	}
	return nil
}

func (r *YAMLRepository) Delete(ctx context.Context, id string) error {
	if err := r.storage.Delete(ctx, path(id)); err != nil {
		return cerr.WrapStorageDeleteError("budget", err)
	}
	return nil
}
