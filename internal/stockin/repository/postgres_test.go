package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hieudt/minipos/internal/apperr"
	ledgerRepoPkg "github.com/hieudt/minipos/internal/ledger/repository"
	"github.com/hieudt/minipos/internal/model"
)

func newMockRepo(t *testing.T) (*PGRepository, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	db := sqlx.NewDb(mockDB, "postgres")
	return NewPGRepository(db, ledgerRepoPkg.NewPGRepository(db)), mock
}

func TestCreateDraftHasNoStockEffect(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO stock_in_orders").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO stock_in_items").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	receipt := &model.StockInOrder{
		ID: "s-1", CreatedBy: "u-1", TotalAmount: 50,
		Status: model.StockInStatusDraft,
	}
	items := []model.StockInItem{{
		ID: "si-1", StockInOrderID: "s-1", ProductID: "p-1",
		Quantity: 5, UnitCost: 10, TotalPrice: 50,
	}}

	require.NoError(t, repo.Create(context.Background(), receipt, items))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateConfirmedCreditsStockAndCost(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO stock_in_orders").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO stock_in_items").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE products").
		WithArgs(5, sqlmock.AnyArg(), "p-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO inventory_transactions").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE products SET cost_price").
		WithArgs(10.0, sqlmock.AnyArg(), "p-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	receipt := &model.StockInOrder{
		ID: "s-1", CreatedBy: "u-1", TotalAmount: 50,
		Status: model.StockInStatusConfirmed,
	}
	items := []model.StockInItem{{
		ID: "si-1", StockInOrderID: "s-1", ProductID: "p-1",
		Quantity: 5, UnitCost: 10, TotalPrice: 50,
	}}

	require.NoError(t, repo.Create(context.Background(), receipt, items))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmDraftReceipt(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status FROM stock_in_orders").
		WithArgs("s-1").
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(model.StockInStatusDraft))
	mock.ExpectQuery("SELECT id, stock_in_order_id").
		WithArgs("s-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "stock_in_order_id", "product_id", "quantity", "unit_cost", "total_price",
		}).AddRow("si-1", "s-1", "p-1", 5, 10.0, 50.0))
	mock.ExpectExec("UPDATE products").
		WithArgs(5, sqlmock.AnyArg(), "p-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO inventory_transactions").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE products SET cost_price").
		WithArgs(10.0, sqlmock.AnyArg(), "p-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE stock_in_orders SET status").
		WithArgs(model.StockInStatusConfirmed, "s-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.UpdateStatus(context.Background(), "s-1", model.StockInStatusConfirmed, "u-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmTwiceDoesNotDoubleCredit(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status FROM stock_in_orders").
		WithArgs("s-1").
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(model.StockInStatusConfirmed))
	mock.ExpectRollback()

	err := repo.UpdateStatus(context.Background(), "s-1", model.StockInStatusConfirmed, "u-1")
	assert.ErrorIs(t, err, apperr.ErrInvalidStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelConfirmedReceiptNeverReversesStock(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status FROM stock_in_orders").
		WithArgs("s-1").
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(model.StockInStatusConfirmed))
	mock.ExpectExec("UPDATE stock_in_orders SET status").
		WithArgs(model.StockInStatusCancelled, "s-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// No product update and no ledger row: the flip is pure metadata.
	require.NoError(t, repo.UpdateStatus(context.Background(), "s-1", model.StockInStatusCancelled, "u-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusUnknownReceipt(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status FROM stock_in_orders").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"status"}))
	mock.ExpectRollback()

	err := repo.UpdateStatus(context.Background(), "missing", model.StockInStatusConfirmed, "u-1")
	assert.ErrorIs(t, err, apperr.ErrReceiptNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
