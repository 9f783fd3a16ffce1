package dto

type CreateProductInput struct {
	SKU           string
	Name          string
	Description   string
	Price         float64
	CostPrice     float64
	StockQuantity int
	MinStock      int
	MaxStock      int
}

// UpdateProductInput uses pointers so absent fields stay untouched.
// stock_quantity is deliberately not here: stock only moves through the
// ledger.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *float64
	CostPrice   *float64
	MinStock    *int
	MaxStock    *int
	Status      *string
}

type ProductFilters struct {
	Search   string
	Status   string
	LowStock bool
	Page     int
	PageSize int
}
