package model

const (
	ProductStatusActive  = "active"
	ProductStatusDeleted = "deleted"
)

type Product struct {
	BaseModel
	SKU           string  `db:"sku" json:"sku"`
	Name          string  `db:"name" json:"name"`
	Description   *string `db:"description" json:"description"`
	Price         float64 `db:"price" json:"price"`
	CostPrice     float64 `db:"cost_price" json:"cost_price"`
	StockQuantity int     `db:"stock_quantity" json:"stock_quantity"`
	MinStock      int     `db:"min_stock" json:"min_stock"`
	MaxStock      int     `db:"max_stock" json:"max_stock"`
	Status        string  `db:"status" json:"status"`
}

func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}
