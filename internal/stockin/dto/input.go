package dto

type CreateStockInInput struct {
	SupplierID string
	Items      []CreateStockInItemInput
	Status     string
	Note       string
	ActorID    string
}

type CreateStockInItemInput struct {
	ProductID string
	Quantity  int
	UnitCost  float64
}

type StockInFilters struct {
	Search     string
	Status     string
	SupplierID string
	DateFrom   string
	DateTo     string
	Page       int
	PageSize   int
}
