package ledger

import (
	"context"

	"github.com/hieudt/minipos/internal/ledger/dto"
	"github.com/hieudt/minipos/internal/model"
)

type UseCase interface {
	// AdjustStock applies a manual signed correction (cycle count,
	// damage, shrinkage) with reference_type=adjustment.
	AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*model.InventoryTransaction, error)

	ListTransactions(ctx context.Context, filters *dto.TransactionFilters) ([]model.InventoryTransaction, int, error)
}
