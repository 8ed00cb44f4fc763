package task

import "context"

// Filter narrows List results; zero values match everything.
type Filter struct {
	BudgetID string
	Role     Role
	Status   Status
	Type     Type
}

type Repository interface {
	Create(ctx context.Context, t *Task) error
	Get(ctx context.Context, id string) (*Task, error)
	List(ctx context.Context, f Filter) ([]*Task, error)
	Update(ctx context.Context, t *Task) error
	Delete(ctx context.Context, id string) error
}
