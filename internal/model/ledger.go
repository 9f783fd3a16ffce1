package model

import "time"

const (
	MovementTypeImport = "import"
	MovementTypeExport = "export"
)

const (
	ReferenceTypeOrder      = "order"
	ReferenceTypeStockIn    = "stock_in"
	ReferenceTypeAdjustment = "adjustment"
)

// InventoryTransaction is an append-only audit row. Quantity is always a
// positive magnitude; the direction lives in Type. Rows are never updated
// or deleted, so per-product stock is reconstructible as
// sum(imports) - sum(exports).
type InventoryTransaction struct {
	ID            string    `db:"id" json:"id"`
	ProductID     string    `db:"product_id" json:"product_id"`
	Type          string    `db:"type" json:"type"`
	Quantity      int       `db:"quantity" json:"quantity"`
	ReferenceType string    `db:"reference_type" json:"reference_type"`
	ReferenceID   *string   `db:"reference_id" json:"reference_id"`
	Note          string    `db:"note" json:"note"`
	CreatedBy     *string   `db:"created_by" json:"created_by"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`

	ProductName *string `db:"product_name" json:"product_name,omitempty"`
	ProductSKU  *string `db:"product_sku" json:"product_sku,omitempty"`
}
