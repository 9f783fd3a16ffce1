package usecase

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hieudt/minipos/internal/apperr"
	"github.com/hieudt/minipos/internal/broker"
	"github.com/hieudt/minipos/internal/ledger/dto"
	"github.com/hieudt/minipos/internal/model"
)

type fakeLedgerRepo struct {
	adjusted []*dto.ApplyMovementInput
}

func (f *fakeLedgerRepo) ApplyMovement(_ context.Context, _ *sqlx.Tx, input *dto.ApplyMovementInput) (*model.InventoryTransaction, error) {
	return nil, nil
}

func (f *fakeLedgerRepo) Adjust(_ context.Context, input *dto.ApplyMovementInput) (*model.InventoryTransaction, error) {
	f.adjusted = append(f.adjusted, input)
	magnitude := input.Quantity
	movementType := model.MovementTypeImport
	if magnitude < 0 {
		magnitude = -magnitude
		movementType = model.MovementTypeExport
	}
	return &model.InventoryTransaction{
		ID:            "t-1",
		ProductID:     input.ProductID,
		Type:          movementType,
		Quantity:      magnitude,
		ReferenceType: input.ReferenceType,
	}, nil
}

func (f *fakeLedgerRepo) ListTransactions(_ context.Context, _ *dto.TransactionFilters) ([]model.InventoryTransaction, int, error) {
	return nil, 0, nil
}

type fakePublisher struct {
	published []string
}

func (f *fakePublisher) Publish(_ context.Context, eventType string, _ interface{}) error {
	f.published = append(f.published, eventType)
	return nil
}

func (f *fakePublisher) Close() error { return nil }

func TestAdjustStockRecordsAdjustment(t *testing.T) {
	repo := &fakeLedgerRepo{}
	events := &fakePublisher{}
	uc := NewLedgerUseCase(repo, nil, events, zap.NewNop())

	movement, err := uc.AdjustStock(context.Background(), &dto.AdjustStockInput{
		ProductID:      "p-1",
		QuantityChange: -4,
		Reason:         "damaged in storage",
		ActorID:        "u-1",
	})
	require.NoError(t, err)

	assert.Equal(t, model.MovementTypeExport, movement.Type)
	assert.Equal(t, 4, movement.Quantity)

	require.Len(t, repo.adjusted, 1)
	assert.Equal(t, model.ReferenceTypeAdjustment, repo.adjusted[0].ReferenceType)
	assert.Equal(t, "damaged in storage", repo.adjusted[0].Note)

	assert.Equal(t, []string{broker.EventStockAdjusted}, events.published)
}

func TestAdjustStockValidatesInput(t *testing.T) {
	uc := NewLedgerUseCase(&fakeLedgerRepo{}, nil, nil, zap.NewNop())

	_, err := uc.AdjustStock(context.Background(), &dto.AdjustStockInput{QuantityChange: 1})
	assert.ErrorIs(t, err, apperr.ErrInvalidRequest)

	_, err = uc.AdjustStock(context.Background(), &dto.AdjustStockInput{ProductID: "p-1"})
	assert.ErrorIs(t, err, apperr.ErrInvalidRequest)
}
