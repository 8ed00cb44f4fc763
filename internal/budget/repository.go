package budget

import "context"

type Repository interface {
	Create(ctx context.Context, b *Budget) error
	Get(ctx context.Context, id string) (*Budget, error)
	List(ctx context.Context, status Status) ([]*Budget, error)
	Update(ctx context.Context, b *Budget) error
	Delete(ctx context.Context, id string) error
}
