package order

import (
	"context"

	"github.com/hieudt/minipos/internal/model"
	"github.com/hieudt/minipos/internal/order/dto"
)

type UseCase interface {
	CreateOrder(ctx context.Context, input *dto.CreateOrderInput) (*model.Order, error)
	GetOrder(ctx context.Context, id string) (*model.Order, error)
	ListOrders(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int, error)
	CancelOrder(ctx context.Context, id, actorID string) error
	UpdateOrderStatus(ctx context.Context, id string, input *dto.UpdateOrderStatusInput) error
}
