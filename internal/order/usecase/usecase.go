package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hieudt/minipos/internal/apperr"
	"github.com/hieudt/minipos/internal/broker"
	"github.com/hieudt/minipos/internal/model"
	"github.com/hieudt/minipos/internal/order"
	"github.com/hieudt/minipos/internal/order/dto"
	"github.com/hieudt/minipos/internal/product"
)

type orderUseCase struct {
	repo     order.Repository
	products product.Repository
	events   broker.Publisher
	logger   *zap.Logger
}

func NewOrderUseCase(repo order.Repository, products product.Repository, events broker.Publisher, log *zap.Logger) order.UseCase {
	return &orderUseCase{
		repo:     repo,
		products: products,
		events:   events,
		logger:   log,
	}
}

func (uc *orderUseCase) CreateOrder(ctx context.Context, input *dto.CreateOrderInput) (*model.Order, error) {
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("%w: order items are required", apperr.ErrInvalidRequest)
	}

	now := time.Now()
	orderID := uuid.New().String()

	var finalAmount float64
	items := make([]model.OrderItem, 0, len(input.Items))

	for _, line := range input.Items {
		if line.ProductID == "" || line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: product_id and a positive quantity are required", apperr.ErrInvalidRequest)
		}

		p, err := uc.products.FindByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil || !p.IsActive() {
			return nil, fmt.Errorf("%w: product %s", apperr.ErrProductNotFound, line.ProductID)
		}

		// Friendly early rejection; the conditional decrement inside the
		// creation transaction remains the authoritative guard against
		// concurrent orders on the same product.
		if p.StockQuantity < line.Quantity {
			return nil, &apperr.InsufficientStockError{
				ProductName: p.Name,
				Available:   p.StockQuantity,
				Requested:   line.Quantity,
			}
		}

		unitPrice := p.Price
		totalPrice := unitPrice * float64(line.Quantity)
		finalAmount += totalPrice

		items = append(items, model.OrderItem{
			ID:         uuid.New().String(),
			OrderID:    orderID,
			ProductID:  line.ProductID,
			Name:       p.Name,
			Quantity:   line.Quantity,
			UnitPrice:  unitPrice,
			TotalPrice: totalPrice,
		})
	}

	ord := &model.Order{
		ID:            orderID,
		CreatedBy:     input.ActorID,
		FinalAmount:   finalAmount,
		PaymentStatus: model.PaymentStatusPending,
		OrderStatus:   model.OrderStatusConfirmed,
		Note:          input.Note,
		CreatedAt:     now,
	}
	if input.CustomerID != "" {
		ord.CustomerID = &input.CustomerID
	}

	if err := uc.repo.Create(ctx, ord, items); err != nil {
		return nil, err
	}

	persisted, err := uc.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if uc.events != nil {
		if err := uc.events.Publish(ctx, broker.EventOrderCreated, persisted); err != nil {
			uc.logger.Error("failed to publish order created event",
				zap.String("order_id", orderID), zap.Error(err))
		}
	}

	return persisted, nil
}

func (uc *orderUseCase) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	ord, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, apperr.ErrOrderNotFound
	}

	items, err := uc.repo.GetOrderItems(ctx, id)
	if err != nil {
		return nil, err
	}
	ord.Items = items
	return ord, nil
}

func (uc *orderUseCase) ListOrders(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *orderUseCase) CancelOrder(ctx context.Context, id, actorID string) error {
	if err := uc.repo.Cancel(ctx, id, actorID); err != nil {
		return err
	}

	if uc.events != nil {
		payload := map[string]string{"order_id": id, "cancelled_by": actorID}
		if err := uc.events.Publish(ctx, broker.EventOrderCancelled, payload); err != nil {
			uc.logger.Error("failed to publish order cancelled event",
				zap.String("order_id", id), zap.Error(err))
		}
	}
	return nil
}

func (uc *orderUseCase) UpdateOrderStatus(ctx context.Context, id string, input *dto.UpdateOrderStatusInput) error {
	if input.OrderStatus == "" && input.PaymentStatus == "" && input.Note == "" {
		return apperr.ErrNothingToUpdate
	}
	if input.OrderStatus != "" && !model.IsValidOrderStatus(input.OrderStatus) {
		return fmt.Errorf("%w: order_status %q", apperr.ErrInvalidStatus, input.OrderStatus)
	}
	if input.PaymentStatus != "" && !model.IsValidPaymentStatus(input.PaymentStatus) {
		return fmt.Errorf("%w: payment_status %q", apperr.ErrInvalidStatus, input.PaymentStatus)
	}
	return uc.repo.UpdateStatus(ctx, id, input)
}
