package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/hieudt/minipos/internal/apperr"
	"github.com/hieudt/minipos/internal/ledger"
	ledgerdto "github.com/hieudt/minipos/internal/ledger/dto"
	"github.com/hieudt/minipos/internal/model"
	"github.com/hieudt/minipos/internal/stockin/dto"
)

type PGRepository struct {
	DB     *sqlx.DB
	ledger ledger.Repository
}

func NewPGRepository(db *sqlx.DB, ledgerRepo ledger.Repository) *PGRepository {
	return &PGRepository{DB: db, ledger: ledgerRepo}
}

func (r *PGRepository) Create(ctx context.Context, receipt *model.StockInOrder, items []model.StockInItem) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return apperr.Storage("stockin.create", err)
	}
	defer tx.Rollback()

	_, err = tx.NamedExecContext(ctx, `
		INSERT INTO stock_in_orders (
			id, supplier_id, created_by, total_amount, status, note, created_at
		)
		VALUES (
			:id, :supplier_id, :created_by, :total_amount, :status, :note, :created_at
		)`, receipt)
	if err != nil {
		return apperr.Storage("stockin.create", err)
	}

	for i := range items {
		_, err = tx.NamedExecContext(ctx, `
			INSERT INTO stock_in_items (
				id, stock_in_order_id, product_id, quantity, unit_cost, total_price
			)
			VALUES (
				:id, :stock_in_order_id, :product_id, :quantity, :unit_cost, :total_price
			)`, &items[i])
		if err != nil {
			return apperr.Storage("stockin.create_item", err)
		}
	}

	if receipt.Status == model.StockInStatusConfirmed {
		if err := r.applyConfirmEffects(ctx, tx, receipt.ID, items, receipt.CreatedBy); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return apperr.Storage("stockin.create", err)
	}
	return nil
}

// applyConfirmEffects credits stock and overwrites cost_price for every
// line. cost_price is last-write-wins: the most recently confirmed line
// for a product determines it.
func (r *PGRepository) applyConfirmEffects(ctx context.Context, tx *sqlx.Tx, receiptID string, items []model.StockInItem, actorID string) error {
	for i := range items {
		item := &items[i]

		_, err := r.ledger.ApplyMovement(ctx, tx, &ledgerdto.ApplyMovementInput{
			ProductID:     item.ProductID,
			Quantity:      item.Quantity,
			ReferenceType: model.ReferenceTypeStockIn,
			ReferenceID:   receiptID,
			Note:          "stock imported from receipt",
			ActorID:       actorID,
		})
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE products SET cost_price = $1, updated_at = $2 WHERE id = $3`,
			item.UnitCost, time.Now(), item.ProductID)
		if err != nil {
			return apperr.Storage("stockin.cost_price", err)
		}
	}
	return nil
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.StockInOrder, error) {
	var receipt model.StockInOrder
	err := r.DB.GetContext(ctx, &receipt, `
		SELECT s.id, s.supplier_id, s.created_by, s.total_amount, s.status,
		       s.note, s.created_at,
		       sup.name AS supplier_name,
		       u.full_name AS created_by_name
		FROM stock_in_orders s
		LEFT JOIN suppliers sup ON s.supplier_id = sup.id
		LEFT JOIN users u ON s.created_by = u.id
		WHERE s.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Storage("stockin.find", err)
	}
	return &receipt, nil
}

func (r *PGRepository) GetStockInItems(ctx context.Context, receiptID string) ([]model.StockInItem, error) {
	items := []model.StockInItem{}
	err := r.DB.SelectContext(ctx, &items, `
		SELECT si.id, si.stock_in_order_id, si.product_id, si.quantity,
		       si.unit_cost, si.total_price,
		       p.name AS product_name, p.sku AS product_sku
		FROM stock_in_items si
		JOIN products p ON si.product_id = p.id
		WHERE si.stock_in_order_id = $1`, receiptID)
	if err != nil {
		return nil, apperr.Storage("stockin.items", err)
	}
	return items, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.StockInFilters) ([]model.StockInOrder, int, error) {
	receipts := []model.StockInOrder{}
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.Search != "" {
		conditions = append(conditions, "(s.note ILIKE :search OR sup.name ILIKE :search)")
		args["search"] = "%" + f.Search + "%"
	}
	if f.Status != "" {
		conditions = append(conditions, "s.status = :status")
		args["status"] = f.Status
	}
	if f.SupplierID != "" {
		conditions = append(conditions, "s.supplier_id = :supplier_id")
		args["supplier_id"] = f.SupplierID
	}
	if f.DateFrom != "" {
		conditions = append(conditions, "s.created_at::date >= :date_from")
		args["date_from"] = f.DateFrom
	}
	if f.DateTo != "" {
		conditions = append(conditions, "s.created_at::date <= :date_to")
		args["date_to"] = f.DateTo
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	base := ` FROM stock_in_orders s
		LEFT JOIN suppliers sup ON s.supplier_id = sup.id
		LEFT JOIN users u ON s.created_by = u.id` + whereClause

	rows, err := r.DB.NamedQueryContext(ctx, "SELECT count(*)"+base, args)
	if err != nil {
		return nil, 0, apperr.Storage("stockin.count", err)
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := `SELECT s.id, s.supplier_id, s.created_by, s.total_amount, s.status,
		s.note, s.created_at,
		sup.name AS supplier_name,
		u.full_name AS created_by_name` + base + ` ORDER BY s.created_at DESC`
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
		return nil, 0, apperr.Storage("stockin.list", err)
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &receipts, args); err != nil {
		return nil, 0, apperr.Storage("stockin.list", err)
	}
	return receipts, count, nil
}

func (r *PGRepository) UpdateStatus(ctx context.Context, id, newStatus, actorID string) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return apperr.Storage("stockin.update_status", err)
	}
	defer tx.Rollback()

	var current string
	err = tx.GetContext(ctx, &current,
		`SELECT status FROM stock_in_orders WHERE id = $1 FOR UPDATE`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.ErrReceiptNotFound
	}
	if err != nil {
		return apperr.Storage("stockin.update_status", err)
	}

	if newStatus == model.StockInStatusConfirmed {
		if current != model.StockInStatusDraft {
			return fmt.Errorf("%w: only a draft receipt can be confirmed (current status %q)",
				apperr.ErrInvalidStatus, current)
		}

		var items []model.StockInItem
		err = tx.SelectContext(ctx, &items, `
			SELECT id, stock_in_order_id, product_id, quantity, unit_cost, total_price
			FROM stock_in_items WHERE stock_in_order_id = $1`, id)
		if err != nil {
			return apperr.Storage("stockin.update_status", err)
		}

		if err := r.applyConfirmEffects(ctx, tx, id, items, actorID); err != nil {
			return err
		}
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE stock_in_orders SET status = $1 WHERE id = $2`, newStatus, id)
	if err != nil {
		return apperr.Storage("stockin.update_status", err)
	}

	if err := tx.Commit(); err != nil {
		return apperr.Storage("stockin.update_status", err)
	}
	return nil
}
