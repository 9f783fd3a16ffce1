package dto

type CreateOrderInput struct {
	CustomerID string
	Items      []CreateOrderItemInput
	Note       string
	ActorID    string
}

type CreateOrderItemInput struct {
	ProductID string
	Quantity  int
}

// UpdateOrderStatusInput carries a metadata-only update; empty fields
// are treated as not supplied.
type UpdateOrderStatusInput struct {
	OrderStatus   string
	PaymentStatus string
	Note          string
}

type OrderFilters struct {
	Search        string
	Status        string
	PaymentStatus string
	CustomerID    string
	DateFrom      string
	DateTo        string
	Page          int
	PageSize      int
}
