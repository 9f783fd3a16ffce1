package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hieudt/minipos/internal/apperr"
	"github.com/hieudt/minipos/internal/model"
	productdto "github.com/hieudt/minipos/internal/product/dto"
	"github.com/hieudt/minipos/internal/stockin/dto"
)

type fakeStockInRepo struct {
	receipts map[string]*model.StockInOrder
	items    map[string][]model.StockInItem

	statusChanges []string
}

func newFakeStockInRepo() *fakeStockInRepo {
	return &fakeStockInRepo{
		receipts: map[string]*model.StockInOrder{},
		items:    map[string][]model.StockInItem{},
	}
}

func (f *fakeStockInRepo) Create(_ context.Context, receipt *model.StockInOrder, items []model.StockInItem) error {
	copied := *receipt
	f.receipts[receipt.ID] = &copied
	f.items[receipt.ID] = items
	return nil
}

func (f *fakeStockInRepo) FindByID(_ context.Context, id string) (*model.StockInOrder, error) {
	return f.receipts[id], nil
}

func (f *fakeStockInRepo) GetStockInItems(_ context.Context, receiptID string) ([]model.StockInItem, error) {
	return f.items[receiptID], nil
}

func (f *fakeStockInRepo) FindAll(_ context.Context, _ *dto.StockInFilters) ([]model.StockInOrder, int, error) {
	out := make([]model.StockInOrder, 0, len(f.receipts))
	for _, r := range f.receipts {
		out = append(out, *r)
	}
	return out, len(out), nil
}

func (f *fakeStockInRepo) UpdateStatus(_ context.Context, id, newStatus, _ string) error {
	r, ok := f.receipts[id]
	if !ok {
		return apperr.ErrReceiptNotFound
	}
	r.Status = newStatus
	f.statusChanges = append(f.statusChanges, id+":"+newStatus)
	return nil
}

type fakeProductRepo struct {
	products map[string]*model.Product
}

func (f *fakeProductRepo) Create(_ context.Context, _ *model.Product) error { return nil }
func (f *fakeProductRepo) FindBySKU(_ context.Context, _ string) (*model.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) FindAll(_ context.Context, _ *productdto.ProductFilters) ([]model.Product, int, error) {
	return nil, 0, nil
}
func (f *fakeProductRepo) Update(_ context.Context, _ string, _ *productdto.UpdateProductInput) error {
	return nil
}
func (f *fakeProductRepo) SoftDelete(_ context.Context, _ string) error { return nil }

func (f *fakeProductRepo) FindByID(_ context.Context, id string) (*model.Product, error) {
	return f.products[id], nil
}

func newTestUseCase() (*fakeStockInRepo, *stockInUseCase) {
	receipts := newFakeStockInRepo()
	products := &fakeProductRepo{products: map[string]*model.Product{
		"p-1": {
			BaseModel: model.BaseModel{ID: "p-1"},
			Name:      "Widget",
			Status:    model.ProductStatusActive,
		},
	}}
	uc := NewStockInUseCase(receipts, products, nil, zap.NewNop()).(*stockInUseCase)
	return receipts, uc
}

func TestCreateStockInDefaultsToDraft(t *testing.T) {
	_, uc := newTestUseCase()

	receipt, err := uc.CreateStockIn(context.Background(), &dto.CreateStockInInput{
		Items:   []dto.CreateStockInItemInput{{ProductID: "p-1", Quantity: 5, UnitCost: 8}},
		ActorID: "u-1",
	})
	require.NoError(t, err)

	assert.Equal(t, model.StockInStatusDraft, receipt.Status)
	assert.Equal(t, 40.0, receipt.TotalAmount)
	require.Len(t, receipt.Items, 1)
	assert.Equal(t, 40.0, receipt.Items[0].TotalPrice)
}

func TestCreateStockInConfirmedAtCreation(t *testing.T) {
	_, uc := newTestUseCase()

	receipt, err := uc.CreateStockIn(context.Background(), &dto.CreateStockInInput{
		Items:   []dto.CreateStockInItemInput{{ProductID: "p-1", Quantity: 3, UnitCost: 12}},
		Status:  model.StockInStatusConfirmed,
		ActorID: "u-1",
	})
	require.NoError(t, err)
	assert.Equal(t, model.StockInStatusConfirmed, receipt.Status)
}

func TestCreateStockInRejectsCancelledAtCreation(t *testing.T) {
	_, uc := newTestUseCase()

	_, err := uc.CreateStockIn(context.Background(), &dto.CreateStockInInput{
		Items:  []dto.CreateStockInItemInput{{ProductID: "p-1", Quantity: 1, UnitCost: 1}},
		Status: model.StockInStatusCancelled,
	})
	assert.ErrorIs(t, err, apperr.ErrInvalidStatus)
}

func TestCreateStockInRequiresItems(t *testing.T) {
	_, uc := newTestUseCase()

	_, err := uc.CreateStockIn(context.Background(), &dto.CreateStockInInput{})
	assert.ErrorIs(t, err, apperr.ErrInvalidRequest)
}

func TestCreateStockInRejectsBadLines(t *testing.T) {
	_, uc := newTestUseCase()

	_, err := uc.CreateStockIn(context.Background(), &dto.CreateStockInInput{
		Items: []dto.CreateStockInItemInput{{ProductID: "p-1", Quantity: 0, UnitCost: 5}},
	})
	assert.ErrorIs(t, err, apperr.ErrInvalidRequest)

	_, err = uc.CreateStockIn(context.Background(), &dto.CreateStockInInput{
		Items: []dto.CreateStockInItemInput{{ProductID: "p-1", Quantity: 1, UnitCost: -2}},
	})
	assert.ErrorIs(t, err, apperr.ErrInvalidRequest)
}

func TestCreateStockInUnknownProduct(t *testing.T) {
	_, uc := newTestUseCase()

	_, err := uc.CreateStockIn(context.Background(), &dto.CreateStockInInput{
		Items: []dto.CreateStockInItemInput{{ProductID: "nope", Quantity: 1, UnitCost: 1}},
	})
	assert.ErrorIs(t, err, apperr.ErrProductNotFound)
}

func TestGetStockInNotFound(t *testing.T) {
	_, uc := newTestUseCase()

	_, err := uc.GetStockIn(context.Background(), "missing")
	assert.ErrorIs(t, err, apperr.ErrReceiptNotFound)
}

func TestUpdateStockInStatusValidatesValue(t *testing.T) {
	_, uc := newTestUseCase()

	err := uc.UpdateStockInStatus(context.Background(), "s-1", "received", "u-1")
	assert.ErrorIs(t, err, apperr.ErrInvalidStatus)
}

func TestUpdateStockInStatusDelegates(t *testing.T) {
	receipts, uc := newTestUseCase()

	receipt, err := uc.CreateStockIn(context.Background(), &dto.CreateStockInInput{
		Items:   []dto.CreateStockInItemInput{{ProductID: "p-1", Quantity: 2, UnitCost: 6}},
		ActorID: "u-1",
	})
	require.NoError(t, err)

	require.NoError(t, uc.UpdateStockInStatus(context.Background(), receipt.ID, model.StockInStatusConfirmed, "u-1"))
	assert.Equal(t, model.StockInStatusConfirmed, receipts.receipts[receipt.ID].Status)
}
