package ledger

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/hieudt/minipos/internal/ledger/dto"
	"github.com/hieudt/minipos/internal/model"
)

// Repository is the single choke point for stock_quantity changes. Every
// movement pairs the product update with an appended audit row; both
// happen on the same transaction handle or not at all.
type Repository interface {
	// ApplyMovement runs inside a transaction owned by the caller, so a
	// workflow can combine several movements with its own writes into one
	// atomic unit.
	ApplyMovement(ctx context.Context, tx *sqlx.Tx, input *dto.ApplyMovementInput) (*model.InventoryTransaction, error)

	// Adjust applies a single standalone movement in its own transaction.
	Adjust(ctx context.Context, input *dto.ApplyMovementInput) (*model.InventoryTransaction, error)

	ListTransactions(ctx context.Context, filters *dto.TransactionFilters) ([]model.InventoryTransaction, int, error)
}
