package model

import "time"

type StockInOrder struct {
	ID          string    `db:"id" json:"id"`
	SupplierID  *string   `db:"supplier_id" json:"supplier_id"`
	CreatedBy   string    `db:"created_by" json:"created_by"`
	TotalAmount float64   `db:"total_amount" json:"total_amount"`
	Status      string    `db:"status" json:"status"`
	Note        string    `db:"note" json:"note"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`

	SupplierName  *string `db:"supplier_name" json:"supplier_name,omitempty"`
	CreatedByName *string `db:"created_by_name" json:"created_by_name,omitempty"`

	Items []StockInItem `db:"-" json:"items,omitempty"`
}

type StockInItem struct {
	ID             string  `db:"id" json:"id"`
	StockInOrderID string  `db:"stock_in_order_id" json:"stock_in_order_id"`
	ProductID      string  `db:"product_id" json:"product_id"`
	Quantity       int     `db:"quantity" json:"quantity"`
	UnitCost       float64 `db:"unit_cost" json:"unit_cost"`
	TotalPrice     float64 `db:"total_price" json:"total_price"`

	ProductName *string `db:"product_name" json:"product_name,omitempty"`
	ProductSKU  *string `db:"product_sku" json:"product_sku,omitempty"`
}
