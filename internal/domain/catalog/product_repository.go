package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/salesdesk/backend/internal/domain/shared"
)

// ProductRepository defines persistence operations for the Product aggregate
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindBySKU(ctx context.Context, sku string) (*Product, error)
	FindByName(ctx context.Context, name string) (*Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Product, error)
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsBySKU(ctx context.Context, sku string) (bool, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
}
