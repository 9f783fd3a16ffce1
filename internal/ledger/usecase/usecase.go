package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hieudt/minipos/internal/apperr"
	"github.com/hieudt/minipos/internal/broker"
	"github.com/hieudt/minipos/internal/cache"
	"github.com/hieudt/minipos/internal/ledger"
	"github.com/hieudt/minipos/internal/ledger/dto"
	"github.com/hieudt/minipos/internal/model"
)

type ledgerUseCase struct {
	repo   ledger.Repository
	cache  *cache.RedisClient
	events broker.Publisher
	logger *zap.Logger
}

func NewLedgerUseCase(repo ledger.Repository, cache *cache.RedisClient, events broker.Publisher, log *zap.Logger) ledger.UseCase {
	return &ledgerUseCase{
		repo:   repo,
		cache:  cache,
		events: events,
		logger: log,
	}
}

func (uc *ledgerUseCase) AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*model.InventoryTransaction, error) {
	if input.ProductID == "" || input.QuantityChange == 0 {
		return nil, fmt.Errorf("%w: product_id and a non-zero quantity_change are required", apperr.ErrInvalidRequest)
	}

	// Serialize manual adjustments per product so two operators cannot
	// interleave corrections based on the same stale count.
	if uc.cache != nil {
		lockKey := "lock:stock:" + input.ProductID
		lockValue := uuid.New().String()

		acquired := false
		for i := 0; i < 3; i++ {
			ok, err := uc.cache.AcquireLock(ctx, lockKey, lockValue, 5*time.Second)
			if err != nil {
				uc.logger.Error("failed to acquire stock lock", zap.Error(err))
			}
			if ok {
				acquired = true
				break
			}
			time.Sleep(100 * time.Millisecond)
		}
		if !acquired {
			return nil, errors.New("stock adjustment busy, please try again later")
		}
		defer uc.cache.ReleaseLock(ctx, lockKey, lockValue)
	}

	movement, err := uc.repo.Adjust(ctx, &dto.ApplyMovementInput{
		ProductID:     input.ProductID,
		Quantity:      input.QuantityChange,
		ReferenceType: model.ReferenceTypeAdjustment,
		Note:          input.Reason,
		ActorID:       input.ActorID,
	})
	if err != nil {
		return nil, err
	}

	if uc.events != nil {
		if err := uc.events.Publish(ctx, broker.EventStockAdjusted, movement); err != nil {
			uc.logger.Error("failed to publish stock adjusted event", zap.Error(err))
		}
	}

	return movement, nil
}

func (uc *ledgerUseCase) ListTransactions(ctx context.Context, filters *dto.TransactionFilters) ([]model.InventoryTransaction, int, error) {
	return uc.repo.ListTransactions(ctx, filters)
}
