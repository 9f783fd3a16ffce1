package stockin

import (
	"context"

	"github.com/hieudt/minipos/internal/model"
	"github.com/hieudt/minipos/internal/stockin/dto"
)

type UseCase interface {
	CreateStockIn(ctx context.Context, input *dto.CreateStockInInput) (*model.StockInOrder, error)
	GetStockIn(ctx context.Context, id string) (*model.StockInOrder, error)
	ListStockIns(ctx context.Context, filters *dto.StockInFilters) ([]model.StockInOrder, int, error)
	UpdateStockInStatus(ctx context.Context, id, newStatus, actorID string) error
}
