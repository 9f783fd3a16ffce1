package dto

// ApplyMovementInput describes a single stock movement. Quantity is
// signed: negative exports stock, positive imports it. The row written
// to inventory_transactions always stores the positive magnitude.
type ApplyMovementInput struct {
	ProductID     string
	Quantity      int
	ReferenceType string
	ReferenceID   string
	Note          string
	ActorID       string
}

type AdjustStockInput struct {
	ProductID      string
	QuantityChange int
	Reason         string
	ActorID        string
}

type TransactionFilters struct {
	ProductID     string
	Type          string
	ReferenceType string
	ReferenceID   string
	DateFrom      string
	DateTo        string
	Page          int
	PageSize      int
}
