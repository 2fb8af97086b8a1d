package gateway

// PurchaseMetrics counts purchase outcomes ("success", "out_of_stock",
// "insufficient_credits", "not_found", "error").
type PurchaseMetrics interface {
	ObservePurchase(outcome string)
}
