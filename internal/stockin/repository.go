package stockin

import (
	"context"

	"github.com/hieudt/minipos/internal/model"
	"github.com/hieudt/minipos/internal/stockin/dto"
)

type Repository interface {
	// Create persists the receipt and its items atomically. When the
	// receipt is created already confirmed, the same transaction applies
	// one import movement per line and overwrites each product's
	// cost_price with the line's unit_cost. Draft receipts have no
	// inventory effect.
	Create(ctx context.Context, receipt *model.StockInOrder, items []model.StockInItem) error

	FindByID(ctx context.Context, id string) (*model.StockInOrder, error)
	GetStockInItems(ctx context.Context, receiptID string) ([]model.StockInItem, error)
	FindAll(ctx context.Context, filters *dto.StockInFilters) ([]model.StockInOrder, int, error)

	// UpdateStatus applies ledger and cost_price effects only on a
	// genuine draft-to-confirmed transition; re-confirming is rejected so
	// stock is never double-credited. Cancellation is a status flip and
	// never reverses a confirmed receipt's stock.
	UpdateStatus(ctx context.Context, id, newStatus, actorID string) error
}
