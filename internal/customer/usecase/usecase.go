package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hieudt/minipos/internal/apperr"
	"github.com/hieudt/minipos/internal/customer"
	"github.com/hieudt/minipos/internal/customer/dto"
	"github.com/hieudt/minipos/internal/model"
)

type customerUseCase struct {
	repo   customer.Repository
	logger *zap.Logger
}

func NewCustomerUseCase(repo customer.Repository, log *zap.Logger) customer.UseCase {
	return &customerUseCase{repo: repo, logger: log}
}

func (uc *customerUseCase) CreateCustomer(ctx context.Context, input *dto.CreateCustomerInput) (*model.Customer, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: customer name is required", apperr.ErrInvalidRequest)
	}

	now := time.Now()
	c := &model.Customer{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name: input.Name,
	}
	if input.Phone != "" {
		c.Phone = &input.Phone
	}
	if input.Email != "" {
		c.Email = &input.Email
	}
	if input.Address != "" {
		c.Address = &input.Address
	}

	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (uc *customerUseCase) GetCustomer(ctx context.Context, id string) (*model.Customer, error) {
	c, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.ErrCustomerNotFound
	}
	return c, nil
}

func (uc *customerUseCase) ListCustomers(ctx context.Context, filters *dto.CustomerFilters) ([]model.Customer, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *customerUseCase) UpdateCustomer(ctx context.Context, id string, input *dto.UpdateCustomerInput) (*model.Customer, error) {
	if err := uc.repo.Update(ctx, id, input); err != nil {
		return nil, err
	}
	return uc.GetCustomer(ctx, id)
}

func (uc *customerUseCase) DeleteCustomer(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}
