package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/hieudt/minipos/internal/apperr"
	"github.com/hieudt/minipos/internal/ledger"
	ledgerdto "github.com/hieudt/minipos/internal/ledger/dto"
	"github.com/hieudt/minipos/internal/model"
	"github.com/hieudt/minipos/internal/order/dto"
)

type PGRepository struct {
	DB     *sqlx.DB
	ledger ledger.Repository
}

func NewPGRepository(db *sqlx.DB, ledgerRepo ledger.Repository) *PGRepository {
	return &PGRepository{DB: db, ledger: ledgerRepo}
}

func (r *PGRepository) Create(ctx context.Context, order *model.Order, items []model.OrderItem) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return apperr.Storage("order.create", err)
	}
	defer tx.Rollback()

	_, err = tx.NamedExecContext(ctx, `
		INSERT INTO orders (
			id, customer_id, created_by, final_amount, payment_status,
			order_status, note, created_at
		)
		VALUES (
			:id, :customer_id, :created_by, :final_amount, :payment_status,
			:order_status, :note, :created_at
		)`, order)
	if err != nil {
		return apperr.Storage("order.create", err)
	}

	for i := range items {
		item := &items[i]
		_, err = tx.NamedExecContext(ctx, `
			INSERT INTO order_items (
				id, order_id, product_id, name, quantity, unit_price, total_price
			)
			VALUES (
				:id, :order_id, :product_id, :name, :quantity, :unit_price, :total_price
			)`, item)
		if err != nil {
			return apperr.Storage("order.create_item", err)
		}

		_, err = r.ledger.ApplyMovement(ctx, tx, &ledgerdto.ApplyMovementInput{
			ProductID:     item.ProductID,
			Quantity:      -item.Quantity,
			ReferenceType: model.ReferenceTypeOrder,
			ReferenceID:   order.ID,
			Note:          "stock exported for order",
			ActorID:       order.CreatedBy,
		})
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return apperr.Storage("order.create", err)
	}
	return nil
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Order, error) {
	var order model.Order
	err := r.DB.GetContext(ctx, &order, `
		SELECT o.id, o.customer_id, o.created_by, o.final_amount,
		       o.payment_status, o.order_status, o.note, o.created_at,
		       c.name AS customer_name, c.phone AS customer_phone,
		       c.email AS customer_email,
		       u.full_name AS created_by_name
		FROM orders o
		LEFT JOIN customers c ON o.customer_id = c.id
		LEFT JOIN users u ON o.created_by = u.id
		WHERE o.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Storage("order.find", err)
	}
	return &order, nil
}

func (r *PGRepository) GetOrderItems(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	items := []model.OrderItem{}
	err := r.DB.SelectContext(ctx, &items, `
		SELECT oi.id, oi.order_id, oi.product_id, oi.name, oi.quantity,
		       oi.unit_price, oi.total_price, p.sku AS product_sku
		FROM order_items oi
		JOIN products p ON oi.product_id = p.id
		WHERE oi.order_id = $1`, orderID)
	if err != nil {
		return nil, apperr.Storage("order.items", err)
	}
	return items, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.OrderFilters) ([]model.Order, int, error) {
	orders := []model.Order{}
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.Search != "" {
		conditions = append(conditions, "(o.note ILIKE :search OR c.name ILIKE :search OR c.phone ILIKE :search)")
		args["search"] = "%" + f.Search + "%"
	}
	if f.Status != "" {
		conditions = append(conditions, "o.order_status = :order_status")
		args["order_status"] = f.Status
	}
	if f.PaymentStatus != "" {
		conditions = append(conditions, "o.payment_status = :payment_status")
		args["payment_status"] = f.PaymentStatus
	}
	if f.CustomerID != "" {
		conditions = append(conditions, "o.customer_id = :customer_id")
		args["customer_id"] = f.CustomerID
	}
	if f.DateFrom != "" {
		conditions = append(conditions, "o.created_at::date >= :date_from")
		args["date_from"] = f.DateFrom
	}
	if f.DateTo != "" {
		conditions = append(conditions, "o.created_at::date <= :date_to")
		args["date_to"] = f.DateTo
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	base := ` FROM orders o
		LEFT JOIN customers c ON o.customer_id = c.id
		LEFT JOIN users u ON o.created_by = u.id` + whereClause

	rows, err := r.DB.NamedQueryContext(ctx, "SELECT count(*)"+base, args)
	if err != nil {
		return nil, 0, apperr.Storage("order.count", err)
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := `SELECT o.id, o.customer_id, o.created_by, o.final_amount,
		o.payment_status, o.order_status, o.note, o.created_at,
		c.name AS customer_name, c.phone AS customer_phone,
		c.email AS customer_email,
		u.full_name AS created_by_name` + base + ` ORDER BY o.created_at DESC`
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
		return nil, 0, apperr.Storage("order.list", err)
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &orders, args); err != nil {
		return nil, 0, apperr.Storage("order.list", err)
	}
	return orders, count, nil
}

func (r *PGRepository) Cancel(ctx context.Context, id, actorID string) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return apperr.Storage("order.cancel", err)
	}
	defer tx.Rollback()

	// Row lock so two concurrent cancels of the same order serialize and
	// the loser observes the cancelled status instead of re-crediting.
	var status string
	err = tx.GetContext(ctx, &status,
		`SELECT order_status FROM orders WHERE id = $1 FOR UPDATE`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.ErrOrderNotFound
	}
	if err != nil {
		return apperr.Storage("order.cancel", err)
	}
	if status == model.OrderStatusCancelled {
		return nil
	}

	var items []model.OrderItem
	err = tx.SelectContext(ctx, &items,
		`SELECT id, order_id, product_id, name, quantity, unit_price, total_price
		 FROM order_items WHERE order_id = $1`, id)
	if err != nil {
		return apperr.Storage("order.cancel", err)
	}

	for i := range items {
		_, err = r.ledger.ApplyMovement(ctx, tx, &ledgerdto.ApplyMovementInput{
			ProductID:     items[i].ProductID,
			Quantity:      items[i].Quantity,
			ReferenceType: model.ReferenceTypeOrder,
			ReferenceID:   id,
			Note:          "stock returned for cancelled order",
			ActorID:       actorID,
		})
		if err != nil {
			return err
		}
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE orders SET order_status = $1 WHERE id = $2`,
		model.OrderStatusCancelled, id)
	if err != nil {
		return apperr.Storage("order.cancel", err)
	}

	if err := tx.Commit(); err != nil {
		return apperr.Storage("order.cancel", err)
	}
	return nil
}

func (r *PGRepository) UpdateStatus(ctx context.Context, id string, input *dto.UpdateOrderStatusInput) error {
	setClauses := []string{}
	args := map[string]interface{}{"id": id}

	if input.OrderStatus != "" {
		setClauses = append(setClauses, "order_status = :order_status")
		args["order_status"] = input.OrderStatus
	}
	if input.PaymentStatus != "" {
		setClauses = append(setClauses, "payment_status = :payment_status")
		args["payment_status"] = input.PaymentStatus
	}
	if input.Note != "" {
		setClauses = append(setClauses, "note = :note")
		args["note"] = input.Note
	}
	if len(setClauses) == 0 {
		return apperr.ErrNothingToUpdate
	}

	query := fmt.Sprintf("UPDATE orders SET %s WHERE id = :id", strings.Join(setClauses, ", "))
	res, err := r.DB.NamedExecContext(ctx, query, args)
	if err != nil {
		return apperr.Storage("order.update_status", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return apperr.Storage("order.update_status", err)
	}
	if affected == 0 {
		return apperr.ErrOrderNotFound
	}
	return nil
}
