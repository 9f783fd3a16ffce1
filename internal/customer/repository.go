package customer

import (
	"context"

	"github.com/hieudt/minipos/internal/customer/dto"
	"github.com/hieudt/minipos/internal/model"
)

type Repository interface {
	Create(ctx context.Context, customer *model.Customer) error
	FindByID(ctx context.Context, id string) (*model.Customer, error)
	FindAll(ctx context.Context, filters *dto.CustomerFilters) ([]model.Customer, int, error)
	Update(ctx context.Context, id string, input *dto.UpdateCustomerInput) error
	Delete(ctx context.Context, id string) error
}
