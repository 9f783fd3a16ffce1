package dto

type CreateCustomerInput struct {
	Name    string
	Phone   string
	Email   string
	Address string
}

type UpdateCustomerInput struct {
	Name    *string
	Phone   *string
	Email   *string
	Address *string
}

type CustomerFilters struct {
	Search   string
	Page     int
	PageSize int
}
