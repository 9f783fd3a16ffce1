package model

import "time"

type Order struct {
	ID            string    `db:"id" json:"id"`
	CustomerID    *string   `db:"customer_id" json:"customer_id"`
	CreatedBy     string    `db:"created_by" json:"created_by"`
	FinalAmount   float64   `db:"final_amount" json:"final_amount"`
	PaymentStatus string    `db:"payment_status" json:"payment_status"`
	OrderStatus   string    `db:"order_status" json:"order_status"`
	Note          string    `db:"note" json:"note"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`

	// Joined display fields, populated by reads only.
	CustomerName  *string `db:"customer_name" json:"customer_name,omitempty"`
	CustomerPhone *string `db:"customer_phone" json:"customer_phone,omitempty"`
	CustomerEmail *string `db:"customer_email" json:"customer_email,omitempty"`
	CreatedByName *string `db:"created_by_name" json:"created_by_name,omitempty"`

	Items []OrderItem `db:"-" json:"items,omitempty"`
}

type OrderItem struct {
	ID        string  `db:"id" json:"id"`
	OrderID   string  `db:"order_id" json:"order_id"`
	ProductID string  `db:"product_id" json:"product_id"`
	Name      string  `db:"name" json:"name"`
	Quantity  int     `db:"quantity" json:"quantity"`
	UnitPrice float64 `db:"unit_price" json:"unit_price"`
	// TotalPrice is snapshotted at creation time; later catalog price
	// changes never alter it.
	TotalPrice float64 `db:"total_price" json:"total_price"`

	ProductSKU *string `db:"product_sku" json:"product_sku,omitempty"`
}
