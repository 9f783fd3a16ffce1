package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/hieudt/minipos/internal/apperr"
	"github.com/hieudt/minipos/internal/customer/dto"
	"github.com/hieudt/minipos/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, customer *model.Customer) error {
	_, err := r.DB.NamedExecContext(ctx, `
		INSERT INTO customers (id, name, phone, email, address, created_at, updated_at)
		VALUES (:id, :name, :phone, :email, :address, :created_at, :updated_at)`,
		customer)
	if err != nil {
		return apperr.Storage("customer.create", err)
	}
	return nil
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Customer, error) {
	var customer model.Customer
	err := r.DB.GetContext(ctx, &customer,
		`SELECT * FROM customers WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Storage("customer.find", err)
	}
	return &customer, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.CustomerFilters) ([]model.Customer, int, error) {
	customers := []model.Customer{}
	var count int

	args := map[string]interface{}{}
	whereClause := ""
	if f.Search != "" {
		whereClause = " WHERE (name ILIKE :search OR phone ILIKE :search OR email ILIKE :search)"
		args["search"] = "%" + f.Search + "%"
	}

	rows, err := r.DB.NamedQueryContext(ctx, "SELECT count(*) FROM customers"+whereClause, args)
	if err != nil {
		return nil, 0, apperr.Storage("customer.count", err)
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM customers" + whereClause + " ORDER BY created_at DESC"
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
		return nil, 0, apperr.Storage("customer.list", err)
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &customers, args); err != nil {
		return nil, 0, apperr.Storage("customer.list", err)
	}
	return customers, count, nil
}

func (r *PGRepository) Update(ctx context.Context, id string, input *dto.UpdateCustomerInput) error {
	sets := []string{}
	args := map[string]interface{}{"id": id, "updated_at": time.Now()}

	if input.Name != nil {
		sets = append(sets, "name = :name")
		args["name"] = *input.Name
	}
	if input.Phone != nil {
		sets = append(sets, "phone = :phone")
		args["phone"] = *input.Phone
	}
	if input.Email != nil {
		sets = append(sets, "email = :email")
		args["email"] = *input.Email
	}
	if input.Address != nil {
		sets = append(sets, "address = :address")
		args["address"] = *input.Address
	}
	if len(sets) == 0 {
		return apperr.ErrNothingToUpdate
	}
	sets = append(sets, "updated_at = :updated_at")

	res, err := r.DB.NamedExecContext(ctx,
		"UPDATE customers SET "+strings.Join(sets, ", ")+" WHERE id = :id", args)
	if err != nil {
		return apperr.Storage("customer.update", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrCustomerNotFound
	}
	return nil
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return apperr.Storage("customer.delete", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrCustomerNotFound
	}
	return nil
}
