package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hieudt/minipos/internal/apperr"
	"github.com/hieudt/minipos/internal/ledger/dto"
	"github.com/hieudt/minipos/internal/model"
)

func newMockRepo(t *testing.T) (*PGRepository, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return NewPGRepository(sqlx.NewDb(mockDB, "postgres")), mock
}

func TestAdjustExport(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE products").
		WithArgs(3, sqlmock.AnyArg(), "p-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO inventory_transactions").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	movement, err := repo.Adjust(context.Background(), &dto.ApplyMovementInput{
		ProductID:     "p-1",
		Quantity:      -3,
		ReferenceType: model.ReferenceTypeAdjustment,
		Note:          "cycle count",
		ActorID:       "u-1",
	})
	require.NoError(t, err)

	assert.Equal(t, model.MovementTypeExport, movement.Type)
	assert.Equal(t, 3, movement.Quantity)
	require.NotNil(t, movement.CreatedBy)
	assert.Equal(t, "u-1", *movement.CreatedBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustImport(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE products").
		WithArgs(5, sqlmock.AnyArg(), "p-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO inventory_transactions").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	movement, err := repo.Adjust(context.Background(), &dto.ApplyMovementInput{
		ProductID:     "p-1",
		Quantity:      5,
		ReferenceType: model.ReferenceTypeAdjustment,
	})
	require.NoError(t, err)

	assert.Equal(t, model.MovementTypeImport, movement.Type)
	assert.Equal(t, 5, movement.Quantity)
	assert.Nil(t, movement.CreatedBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustExportInsufficientStock(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE products").
		WithArgs(10, sqlmock.AnyArg(), "p-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT name, stock_quantity, status FROM products").
		WithArgs("p-1").
		WillReturnRows(sqlmock.NewRows([]string{"name", "stock_quantity", "status"}).
			AddRow("Widget", 4, model.ProductStatusActive))
	mock.ExpectRollback()

	_, err := repo.Adjust(context.Background(), &dto.ApplyMovementInput{
		ProductID: "p-1",
		Quantity:  -10,
	})

	var insufficientStock *apperr.InsufficientStockError
	require.ErrorAs(t, err, &insufficientStock)
	assert.Equal(t, "Widget", insufficientStock.ProductName)
	assert.Equal(t, 4, insufficientStock.Available)
	assert.Equal(t, 10, insufficientStock.Requested)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustExportUnknownProduct(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE products").
		WithArgs(1, sqlmock.AnyArg(), "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT name, stock_quantity, status FROM products").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.Adjust(context.Background(), &dto.ApplyMovementInput{
		ProductID: "missing",
		Quantity:  -1,
	})
	assert.ErrorIs(t, err, apperr.ErrProductNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustExportDeletedProduct(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE products").
		WithArgs(1, sqlmock.AnyArg(), "p-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT name, stock_quantity, status FROM products").
		WithArgs("p-1").
		WillReturnRows(sqlmock.NewRows([]string{"name", "stock_quantity", "status"}).
			AddRow("Widget", 100, model.ProductStatusDeleted))
	mock.ExpectRollback()

	_, err := repo.Adjust(context.Background(), &dto.ApplyMovementInput{
		ProductID: "p-1",
		Quantity:  -1,
	})
	assert.ErrorIs(t, err, apperr.ErrProductNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustImportUnknownProduct(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE products").
		WithArgs(5, sqlmock.AnyArg(), "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := repo.Adjust(context.Background(), &dto.ApplyMovementInput{
		ProductID: "missing",
		Quantity:  5,
	})
	assert.ErrorIs(t, err, apperr.ErrProductNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustZeroQuantityRejected(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := repo.Adjust(context.Background(), &dto.ApplyMovementInput{
		ProductID: "p-1",
		Quantity:  0,
	})
	assert.ErrorIs(t, err, apperr.ErrInvalidRequest)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustStorageFailureWraps(t *testing.T) {
	repo, mock := newMockRepo(t)

	boom := errors.New("connection reset")
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE products").WillReturnError(boom)
	mock.ExpectRollback()

	_, err := repo.Adjust(context.Background(), &dto.ApplyMovementInput{
		ProductID: "p-1",
		Quantity:  -2,
	})

	var storageErr *apperr.StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}
