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
	"github.com/hieudt/minipos/internal/product"
	"github.com/hieudt/minipos/internal/stockin"
	"github.com/hieudt/minipos/internal/stockin/dto"
)

type stockInUseCase struct {
	repo     stockin.Repository
	products product.Repository
	events   broker.Publisher
	logger   *zap.Logger
}

func NewStockInUseCase(repo stockin.Repository, products product.Repository, events broker.Publisher, log *zap.Logger) stockin.UseCase {
	return &stockInUseCase{
		repo:     repo,
		products: products,
		events:   events,
		logger:   log,
	}
}

func (uc *stockInUseCase) CreateStockIn(ctx context.Context, input *dto.CreateStockInInput) (*model.StockInOrder, error) {
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("%w: stock-in items are required", apperr.ErrInvalidRequest)
	}

	status := input.Status
	if status == "" {
		status = model.StockInStatusDraft
	}
	if status != model.StockInStatusDraft && status != model.StockInStatusConfirmed {
		return nil, fmt.Errorf("%w: a receipt is created as %q or %q, got %q",
			apperr.ErrInvalidStatus, model.StockInStatusDraft, model.StockInStatusConfirmed, status)
	}

	now := time.Now()
	receiptID := uuid.New().String()

	var totalAmount float64
	items := make([]model.StockInItem, 0, len(input.Items))

	for _, line := range input.Items {
		if line.ProductID == "" || line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: product_id and a positive quantity are required", apperr.ErrInvalidRequest)
		}
		if line.UnitCost < 0 {
			return nil, fmt.Errorf("%w: unit_cost must not be negative", apperr.ErrInvalidRequest)
		}

		p, err := uc.products.FindByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil || !p.IsActive() {
			return nil, fmt.Errorf("%w: product %s", apperr.ErrProductNotFound, line.ProductID)
		}

		totalPrice := line.UnitCost * float64(line.Quantity)
		totalAmount += totalPrice

		items = append(items, model.StockInItem{
			ID:             uuid.New().String(),
			StockInOrderID: receiptID,
			ProductID:      line.ProductID,
			Quantity:       line.Quantity,
			UnitCost:       line.UnitCost,
			TotalPrice:     totalPrice,
		})
	}

	receipt := &model.StockInOrder{
		ID:          receiptID,
		CreatedBy:   input.ActorID,
		TotalAmount: totalAmount,
		Status:      status,
		Note:        input.Note,
		CreatedAt:   now,
	}
	if input.SupplierID != "" {
		receipt.SupplierID = &input.SupplierID
	}

	if err := uc.repo.Create(ctx, receipt, items); err != nil {
		return nil, err
	}

	persisted, err := uc.GetStockIn(ctx, receiptID)
	if err != nil {
		return nil, err
	}

	if status == model.StockInStatusConfirmed && uc.events != nil {
		if err := uc.events.Publish(ctx, broker.EventStockInConfirmed, persisted); err != nil {
			uc.logger.Error("failed to publish stock-in confirmed event",
				zap.String("receipt_id", receiptID), zap.Error(err))
		}
	}

	return persisted, nil
}

func (uc *stockInUseCase) GetStockIn(ctx context.Context, id string) (*model.StockInOrder, error) {
	receipt, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperr.ErrReceiptNotFound
	}

	items, err := uc.repo.GetStockInItems(ctx, id)
	if err != nil {
		return nil, err
	}
	receipt.Items = items
	return receipt, nil
}

func (uc *stockInUseCase) ListStockIns(ctx context.Context, filters *dto.StockInFilters) ([]model.StockInOrder, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *stockInUseCase) UpdateStockInStatus(ctx context.Context, id, newStatus, actorID string) error {
	if !model.IsValidStockInStatus(newStatus) {
		return fmt.Errorf("%w: stock-in status %q", apperr.ErrInvalidStatus, newStatus)
	}

	if err := uc.repo.UpdateStatus(ctx, id, newStatus, actorID); err != nil {
		return err
	}

	if newStatus == model.StockInStatusConfirmed && uc.events != nil {
		payload := map[string]string{"receipt_id": id, "confirmed_by": actorID}
		if err := uc.events.Publish(ctx, broker.EventStockInConfirmed, payload); err != nil {
			uc.logger.Error("failed to publish stock-in confirmed event",
				zap.String("receipt_id", id), zap.Error(err))
		}
	}
	return nil
}
