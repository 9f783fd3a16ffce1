package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/hieudt/minipos/internal/apperr"
	"github.com/hieudt/minipos/internal/ledger/dto"
	"github.com/hieudt/minipos/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

// ApplyMovement mutates products.stock_quantity and appends the audit
// row on the caller's transaction. Exports use a conditional decrement
// so the database, not application logic, serializes concurrent
// movements on the same product: if the guard fails, zero rows are
// affected and the whole unit of work aborts without partial state.
func (r *PGRepository) ApplyMovement(ctx context.Context, tx *sqlx.Tx, input *dto.ApplyMovementInput) (*model.InventoryTransaction, error) {
	if input.Quantity == 0 {
		return nil, fmt.Errorf("%w: movement quantity must be non-zero", apperr.ErrInvalidRequest)
	}

	now := time.Now()
	movementType := model.MovementTypeImport
	magnitude := input.Quantity

	if input.Quantity < 0 {
		movementType = model.MovementTypeExport
		magnitude = -input.Quantity

		res, err := tx.ExecContext(ctx,
			`UPDATE products
			 SET stock_quantity = stock_quantity - $1, updated_at = $2
			 WHERE id = $3 AND status = 'active' AND stock_quantity >= $1`,
			magnitude, now, input.ProductID)
		if err != nil {
			return nil, apperr.Storage("ledger.export", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return nil, apperr.Storage("ledger.export", err)
		}
		if affected == 0 {
			return nil, r.resolveExportFailure(ctx, tx, input.ProductID, magnitude)
		}
	} else {
		res, err := tx.ExecContext(ctx,
			`UPDATE products
			 SET stock_quantity = stock_quantity + $1, updated_at = $2
			 WHERE id = $3`,
			magnitude, now, input.ProductID)
		if err != nil {
			return nil, apperr.Storage("ledger.import", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return nil, apperr.Storage("ledger.import", err)
		}
		if affected == 0 {
			return nil, fmt.Errorf("%w: product %s", apperr.ErrProductNotFound, input.ProductID)
		}
	}

	movement := &model.InventoryTransaction{
		ID:            uuid.New().String(),
		ProductID:     input.ProductID,
		Type:          movementType,
		Quantity:      magnitude,
		ReferenceType: input.ReferenceType,
		CreatedAt:     now,
		Note:          input.Note,
	}
	if input.ReferenceID != "" {
		movement.ReferenceID = &input.ReferenceID
	}
	if input.ActorID != "" {
		movement.CreatedBy = &input.ActorID
	}

	_, err := tx.NamedExecContext(ctx, `
		INSERT INTO inventory_transactions (
			id, product_id, type, quantity, reference_type, reference_id,
			note, created_by, created_at
		)
		VALUES (
			:id, :product_id, :type, :quantity, :reference_type, :reference_id,
			:note, :created_by, :created_at
		)`, movement)
	if err != nil {
		return nil, apperr.Storage("ledger.append", err)
	}

	return movement, nil
}

// resolveExportFailure re-reads the product inside the same transaction
// to tell an unknown/inactive product apart from genuine shortage, and
// to name the product in the error.
func (r *PGRepository) resolveExportFailure(ctx context.Context, tx *sqlx.Tx, productID string, requested int) error {
	var p struct {
		Name          string `db:"name"`
		StockQuantity int    `db:"stock_quantity"`
		Status        string `db:"status"`
	}
	err := tx.GetContext(ctx, &p,
		`SELECT name, stock_quantity, status FROM products WHERE id = $1`, productID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: product %s", apperr.ErrProductNotFound, productID)
	}
	if err != nil {
		return apperr.Storage("ledger.resolve", err)
	}
	if p.Status != model.ProductStatusActive {
		return fmt.Errorf("%w: product %s", apperr.ErrProductNotFound, productID)
	}
	return &apperr.InsufficientStockError{
		ProductName: p.Name,
		Available:   p.StockQuantity,
		Requested:   requested,
	}
}

func (r *PGRepository) Adjust(ctx context.Context, input *dto.ApplyMovementInput) (*model.InventoryTransaction, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, apperr.Storage("ledger.adjust", err)
	}
	defer tx.Rollback()

	movement, err := r.ApplyMovement(ctx, tx, input)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, apperr.Storage("ledger.adjust", err)
	}
	return movement, nil
}

func (r *PGRepository) ListTransactions(ctx context.Context, f *dto.TransactionFilters) ([]model.InventoryTransaction, int, error) {
	items := []model.InventoryTransaction{}
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.ProductID != "" {
		conditions = append(conditions, "t.product_id = :product_id")
		args["product_id"] = f.ProductID
	}
	if f.Type != "" {
		conditions = append(conditions, "t.type = :type")
		args["type"] = f.Type
	}
	if f.ReferenceType != "" {
		conditions = append(conditions, "t.reference_type = :reference_type")
		args["reference_type"] = f.ReferenceType
	}
	if f.ReferenceID != "" {
		conditions = append(conditions, "t.reference_id = :reference_id")
		args["reference_id"] = f.ReferenceID
	}
	if f.DateFrom != "" {
		conditions = append(conditions, "t.created_at::date >= :date_from")
		args["date_from"] = f.DateFrom
	}
	if f.DateTo != "" {
		conditions = append(conditions, "t.created_at::date <= :date_to")
		args["date_to"] = f.DateTo
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM inventory_transactions t" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, apperr.Storage("ledger.count", err)
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := `
		SELECT t.id, t.product_id, t.type, t.quantity, t.reference_type,
		       t.reference_id, t.note, t.created_by, t.created_at,
		       p.name AS product_name, p.sku AS product_sku
		FROM inventory_transactions t
		JOIN products p ON t.product_id = p.id` + whereClause + `
		ORDER BY t.created_at DESC`
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		args["limit"] = f.PageSize
		args["offset"] = (page - 1) * f.PageSize
		query += " LIMIT :limit OFFSET :offset"
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, apperr.Storage("ledger.list", err)
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &items, args); err != nil {
		return nil, 0, apperr.Storage("ledger.list", err)
	}
	return items, count, nil
}
