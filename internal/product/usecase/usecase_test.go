package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hieudt/minipos/internal/apperr"
	"github.com/hieudt/minipos/internal/model"
	"github.com/hieudt/minipos/internal/product/dto"
)

type fakeProductRepo struct {
	byID  map[string]*model.Product
	bySKU map[string]*model.Product

	deleted []string
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{
		byID:  map[string]*model.Product{},
		bySKU: map[string]*model.Product{},
	}
}

func (f *fakeProductRepo) Create(_ context.Context, p *model.Product) error {
	copied := *p
	f.byID[p.ID] = &copied
	f.bySKU[p.SKU] = &copied
	return nil
}

func (f *fakeProductRepo) FindByID(_ context.Context, id string) (*model.Product, error) {
	return f.byID[id], nil
}

func (f *fakeProductRepo) FindBySKU(_ context.Context, sku string) (*model.Product, error) {
	return f.bySKU[sku], nil
}

func (f *fakeProductRepo) FindAll(_ context.Context, _ *dto.ProductFilters) ([]model.Product, int, error) {
	out := make([]model.Product, 0, len(f.byID))
	for _, p := range f.byID {
		out = append(out, *p)
	}
	return out, len(out), nil
}

func (f *fakeProductRepo) Update(_ context.Context, id string, input *dto.UpdateProductInput) error {
	p, ok := f.byID[id]
	if !ok {
		return apperr.ErrProductNotFound
	}
	if input.Name != nil {
		p.Name = *input.Name
	}
	if input.Price != nil {
		p.Price = *input.Price
	}
	if input.Status != nil {
		p.Status = *input.Status
	}
	return nil
}

func (f *fakeProductRepo) SoftDelete(_ context.Context, id string) error {
	p, ok := f.byID[id]
	if !ok {
		return apperr.ErrProductNotFound
	}
	p.Status = model.ProductStatusDeleted
	f.deleted = append(f.deleted, id)
	return nil
}

func newTestUseCase() (*fakeProductRepo, *productUseCase) {
	repo := newFakeProductRepo()
	uc := NewProductUseCase(repo, nil, nil, zap.NewNop()).(*productUseCase)
	return repo, uc
}

func TestCreateProduct(t *testing.T) {
	_, uc := newTestUseCase()

	p, err := uc.CreateProduct(context.Background(), &dto.CreateProductInput{
		SKU:           "SKU-1",
		Name:          "Widget",
		Price:         15,
		CostPrice:     8,
		StockQuantity: 10,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, model.ProductStatusActive, p.Status)
	assert.Equal(t, 10, p.StockQuantity)
}

func TestCreateProductRequiresSKUAndName(t *testing.T) {
	_, uc := newTestUseCase()

	_, err := uc.CreateProduct(context.Background(), &dto.CreateProductInput{Name: "Widget"})
	assert.ErrorIs(t, err, apperr.ErrInvalidRequest)

	_, err = uc.CreateProduct(context.Background(), &dto.CreateProductInput{SKU: "SKU-1"})
	assert.ErrorIs(t, err, apperr.ErrInvalidRequest)
}

func TestCreateProductRejectsDuplicateSKU(t *testing.T) {
	_, uc := newTestUseCase()

	_, err := uc.CreateProduct(context.Background(), &dto.CreateProductInput{SKU: "SKU-1", Name: "Widget"})
	require.NoError(t, err)

	_, err = uc.CreateProduct(context.Background(), &dto.CreateProductInput{SKU: "SKU-1", Name: "Other"})
	assert.ErrorIs(t, err, apperr.ErrInvalidRequest)
}

func TestCreateProductRejectsNegativeValues(t *testing.T) {
	_, uc := newTestUseCase()

	_, err := uc.CreateProduct(context.Background(), &dto.CreateProductInput{
		SKU: "SKU-1", Name: "Widget", Price: -1,
	})
	assert.ErrorIs(t, err, apperr.ErrInvalidRequest)
}

func TestGetProductNotFound(t *testing.T) {
	_, uc := newTestUseCase()

	_, err := uc.GetProduct(context.Background(), "missing")
	assert.ErrorIs(t, err, apperr.ErrProductNotFound)
}

func TestUpdateProductValidatesStatus(t *testing.T) {
	_, uc := newTestUseCase()

	bad := "archived"
	_, err := uc.UpdateProduct(context.Background(), "p-1", &dto.UpdateProductInput{Status: &bad})
	assert.ErrorIs(t, err, apperr.ErrInvalidStatus)
}

func TestUpdateProductAppliesFields(t *testing.T) {
	repo, uc := newTestUseCase()

	created, err := uc.CreateProduct(context.Background(), &dto.CreateProductInput{
		SKU: "SKU-1", Name: "Widget", Price: 10,
	})
	require.NoError(t, err)

	name := "Widget v2"
	price := 12.5
	updated, err := uc.UpdateProduct(context.Background(), created.ID, &dto.UpdateProductInput{
		Name:  &name,
		Price: &price,
	})
	require.NoError(t, err)

	assert.Equal(t, "Widget v2", updated.Name)
	assert.Equal(t, 12.5, updated.Price)
	assert.Equal(t, "Widget v2", repo.byID[created.ID].Name)
}

func TestDeleteProductSoftDeletes(t *testing.T) {
	repo, uc := newTestUseCase()

	created, err := uc.CreateProduct(context.Background(), &dto.CreateProductInput{
		SKU: "SKU-1", Name: "Widget",
	})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteProduct(context.Background(), created.ID))
	assert.Equal(t, []string{created.ID}, repo.deleted)
	assert.Equal(t, model.ProductStatusDeleted, repo.byID[created.ID].Status)
}
