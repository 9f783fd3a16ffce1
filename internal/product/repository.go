package product

import (
	"context"

	"github.com/hieudt/minipos/internal/model"
	"github.com/hieudt/minipos/internal/product/dto"
)

type Repository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id string) (*model.Product, error)
	FindBySKU(ctx context.Context, sku string) (*model.Product, error)
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	Update(ctx context.Context, id string, input *dto.UpdateProductInput) error
	// SoftDelete flips status to deleted; product rows are never removed.
	SoftDelete(ctx context.Context, id string) error
}
