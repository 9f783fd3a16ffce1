package model

const (
	OrderStatusDraft     = "draft"
	OrderStatusConfirmed = "confirmed"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"

	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"

	StockInStatusDraft     = "draft"
	StockInStatusConfirmed = "confirmed"
	StockInStatusCancelled = "cancelled"
)

var orderStatuses = map[string]bool{
	OrderStatusDraft:     true,
	OrderStatusConfirmed: true,
	OrderStatusCompleted: true,
	OrderStatusCancelled: true,
}

var paymentStatuses = map[string]bool{
	PaymentStatusPending:  true,
	PaymentStatusPaid:     true,
	PaymentStatusRefunded: true,
}

var stockInStatuses = map[string]bool{
	StockInStatusDraft:     true,
	StockInStatusConfirmed: true,
	StockInStatusCancelled: true,
}

// The guard is a value-set check only. It does not enforce a transition
// graph; the two exceptions (double-confirm of a receipt, double-cancel
// of an order) are handled where the stock side effects live.
func IsValidOrderStatus(s string) bool   { return orderStatuses[s] }
func IsValidPaymentStatus(s string) bool { return paymentStatuses[s] }
func IsValidStockInStatus(s string) bool { return stockInStatuses[s] }
