package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hieudt/minipos/internal/apperr"
	"github.com/hieudt/minipos/internal/cache"
	"github.com/hieudt/minipos/internal/model"
	"github.com/hieudt/minipos/internal/product"
	"github.com/hieudt/minipos/internal/product/dto"
	"github.com/hieudt/minipos/internal/search"
)

const (
	productIndex       = "products"
	productCachePrefix = "products:list:"
	productCacheTTL    = 2 * time.Minute
)

const productIndexMapping = `{
	"mappings": {
		"properties": {
			"name": { "type": "text" },
			"description": { "type": "text" },
			"sku": { "type": "keyword" },
			"status": { "type": "keyword" },
			"price": { "type": "double" },
			"created_at": { "type": "date" }
		}
	}
}`

type productUseCase struct {
	repo   product.Repository
	cache  *cache.RedisClient
	es     *search.Client
	logger *zap.Logger
}

func NewProductUseCase(repo product.Repository, cache *cache.RedisClient, es *search.Client, log *zap.Logger) product.UseCase {
	return &productUseCase{
		repo:   repo,
		cache:  cache,
		es:     es,
		logger: log,
	}
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	if input.SKU == "" || input.Name == "" {
		return nil, fmt.Errorf("%w: sku and name are required", apperr.ErrInvalidRequest)
	}
	if input.Price < 0 || input.CostPrice < 0 || input.StockQuantity < 0 {
		return nil, fmt.Errorf("%w: price, cost_price and stock_quantity must not be negative", apperr.ErrInvalidRequest)
	}

	existing, err := uc.repo.FindBySKU(ctx, input.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: sku %q already exists", apperr.ErrInvalidRequest, input.SKU)
	}

	now := time.Now()
	p := &model.Product{
		BaseModel:     model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		SKU:           input.SKU,
		Name:          input.Name,
		Price:         input.Price,
		CostPrice:     input.CostPrice,
		StockQuantity: input.StockQuantity,
		MinStock:      input.MinStock,
		MaxStock:      input.MaxStock,
		Status:        model.ProductStatusActive,
	}
	if input.Description != "" {
		p.Description = &input.Description
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	go uc.invalidateListCache(context.Background())
	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

func (uc *productUseCase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.ErrProductNotFound
	}
	return p, nil
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	type cached struct {
		Products []model.Product
		Count    int
	}

	cacheKey := uc.listCacheKey(filters)
	if uc.cache != nil && cacheKey != "" {
		var result cached
		if hit, err := uc.cache.GetJSON(ctx, cacheKey, &result); err == nil && hit {
			return result.Products, result.Count, nil
		}
	}

	// Free-text queries go to elasticsearch first; the database stays the
	// fallback so search stays available when ES is down.
	if filters.Search != "" && uc.es != nil {
		products, count, err := uc.searchViaElastic(ctx, filters)
		if err == nil {
			return products, count, nil
		}
		uc.logger.Error("elasticsearch search failed, falling back to database", zap.Error(err))
	}

	products, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	if uc.cache != nil && cacheKey != "" {
		if err := uc.cache.SetJSON(ctx, cacheKey, cached{Products: products, Count: count}, productCacheTTL); err != nil {
			uc.logger.Warn("failed to cache product list", zap.Error(err))
		}
	}

	return products, count, nil
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, id string, input *dto.UpdateProductInput) (*model.Product, error) {
	if input.Status != nil && *input.Status != model.ProductStatusActive && *input.Status != model.ProductStatusDeleted {
		return nil, fmt.Errorf("%w: product status %q", apperr.ErrInvalidStatus, *input.Status)
	}

	if err := uc.repo.Update(ctx, id, input); err != nil {
		return nil, err
	}

	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.ErrProductNotFound
	}

	go uc.invalidateListCache(context.Background())
	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id string) error {
	if err := uc.repo.SoftDelete(ctx, id); err != nil {
		return err
	}

	go uc.invalidateListCache(context.Background())
	if uc.es != nil {
		go func() {
			if err := uc.es.Delete(context.Background(), productIndex, id); err != nil {
				uc.logger.Warn("failed to remove product from search index",
					zap.String("product_id", id), zap.Error(err))
			}
		}()
	}
	return nil
}

func (uc *productUseCase) searchViaElastic(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	must := []map[string]interface{}{
		{
			"query_string": map[string]interface{}{
				"query":  fmt.Sprintf("*%s*", f.Search),
				"fields": []string{"name^3", "sku", "description"},
			},
		},
	}
	if f.Status != "" {
		must = append(must, map[string]interface{}{
			"term": map[string]interface{}{"status": f.Status},
		})
	}

	q := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{"must": must},
		},
	}
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		q["from"] = (page - 1) * f.PageSize
		q["size"] = f.PageSize
	}

	res, err := uc.es.Search(ctx, productIndex, q)
	if err != nil {
		return nil, 0, err
	}

	products := []model.Product{}
	for _, hit := range res.Hits.Hits {
		var p model.Product
		if err := json.Unmarshal(hit.Source, &p); err == nil {
			products = append(products, p)
		}
	}
	return products, res.Hits.Total.Value, nil
}

func (uc *productUseCase) listCacheKey(f *dto.ProductFilters) string {
	data, err := json.Marshal(f)
	if err != nil {
		return ""
	}
	return productCachePrefix + fmt.Sprintf("%x", md5.Sum(data))
}

func (uc *productUseCase) invalidateListCache(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.DeleteByPrefix(ctx, productCachePrefix); err != nil {
		uc.logger.Warn("failed to invalidate product list cache", zap.Error(err))
	}
}

func (uc *productUseCase) syncToElastic(ctx context.Context, p *model.Product) {
	if uc.es == nil {
		return
	}
	_ = uc.es.CreateIndex(ctx, productIndex, productIndexMapping)
	if err := uc.es.Index(ctx, productIndex, p.ID, p); err != nil {
		uc.logger.Error("failed to index product", zap.String("product_id", p.ID), zap.Error(err))
	}
}
