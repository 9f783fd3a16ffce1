package order

import (
	"context"

	"github.com/hieudt/minipos/internal/model"
	"github.com/hieudt/minipos/internal/order/dto"
)

type Repository interface {
	// Create persists the order, its items, and one export movement per
	// line in a single transaction. The conditional decrement inside the
	// ledger is the authoritative oversell guard; on any failure nothing
	// is persisted.
	Create(ctx context.Context, order *model.Order, items []model.OrderItem) error

	FindByID(ctx context.Context, id string) (*model.Order, error)
	GetOrderItems(ctx context.Context, orderID string) ([]model.OrderItem, error)
	FindAll(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int, error)

	// Cancel reverses every line's stock effect and flips the order to
	// cancelled, atomically. Cancelling an already-cancelled order is a
	// no-op; it never re-credits stock.
	Cancel(ctx context.Context, id, actorID string) error

	UpdateStatus(ctx context.Context, id string, input *dto.UpdateOrderStatusInput) error
}
