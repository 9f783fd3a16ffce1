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
	"github.com/hieudt/minipos/internal/model"
	"github.com/hieudt/minipos/internal/product/dto"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, p *model.Product) error {
	_, err := r.DB.NamedExecContext(ctx, `
		INSERT INTO products (
			id, sku, name, description, price, cost_price, stock_quantity,
			min_stock, max_stock, status, created_at, updated_at
		)
		VALUES (
			:id, :sku, :name, :description, :price, :cost_price, :stock_quantity,
			:min_stock, :max_stock, :status, :created_at, :updated_at
		)`, p)
	if err != nil {
		return apperr.Storage("product.create", err)
	}
	return nil
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	var p model.Product
	err := r.DB.GetContext(ctx, &p, `SELECT * FROM products WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Storage("product.find", err)
	}
	return &p, nil
}

func (r *PGRepository) FindBySKU(ctx context.Context, sku string) (*model.Product, error) {
	var p model.Product
	err := r.DB.GetContext(ctx, &p, `SELECT * FROM products WHERE sku = $1`, sku)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Storage("product.find_sku", err)
	}
	return &p, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	products := []model.Product{}
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.Search != "" {
		conditions = append(conditions, "(name ILIKE :search OR sku ILIKE :search)")
		args["search"] = "%" + f.Search + "%"
	}
	if f.Status != "" {
		conditions = append(conditions, "status = :status")
		args["status"] = f.Status
	}
	if f.LowStock {
		conditions = append(conditions, "stock_quantity <= min_stock AND status = 'active'")
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM products" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, apperr.Storage("product.count", err)
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM products" + whereClause + " ORDER BY created_at DESC"
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
		return nil, 0, apperr.Storage("product.list", err)
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &products, args); err != nil {
		return nil, 0, apperr.Storage("product.list", err)
	}
	return products, count, nil
}

func (r *PGRepository) Update(ctx context.Context, id string, input *dto.UpdateProductInput) error {
	setClauses := []string{"updated_at = :updated_at"}
	args := map[string]interface{}{
		"id":         id,
		"updated_at": time.Now(),
	}

	if input.Name != nil {
		setClauses = append(setClauses, "name = :name")
		args["name"] = *input.Name
	}
	if input.Description != nil {
		setClauses = append(setClauses, "description = :description")
		args["description"] = *input.Description
	}
	if input.Price != nil {
		setClauses = append(setClauses, "price = :price")
		args["price"] = *input.Price
	}
	if input.CostPrice != nil {
		setClauses = append(setClauses, "cost_price = :cost_price")
		args["cost_price"] = *input.CostPrice
	}
	if input.MinStock != nil {
		setClauses = append(setClauses, "min_stock = :min_stock")
		args["min_stock"] = *input.MinStock
	}
	if input.MaxStock != nil {
		setClauses = append(setClauses, "max_stock = :max_stock")
		args["max_stock"] = *input.MaxStock
	}
	if input.Status != nil {
		setClauses = append(setClauses, "status = :status")
		args["status"] = *input.Status
	}
	if len(setClauses) == 1 {
		return apperr.ErrNothingToUpdate
	}

	query := fmt.Sprintf("UPDATE products SET %s WHERE id = :id", strings.Join(setClauses, ", "))
	res, err := r.DB.NamedExecContext(ctx, query, args)
	if err != nil {
		return apperr.Storage("product.update", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return apperr.Storage("product.update", err)
	}
	if affected == 0 {
		return apperr.ErrProductNotFound
	}
	return nil
}

func (r *PGRepository) SoftDelete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE products SET status = $1, updated_at = $2 WHERE id = $3`,
		model.ProductStatusDeleted, time.Now(), id)
	if err != nil {
		return apperr.Storage("product.delete", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return apperr.Storage("product.delete", err)
	}
	if affected == 0 {
		return apperr.ErrProductNotFound
	}
	return nil
}
