package dto

// SettlementResponse reports the terminal result of a gateway return.
type SettlementResponse struct {
	TransactionRef string  `json:"transaction_ref"`
	Outcome        string  `json:"outcome"`
	ResponseCode   string  `json:"response_code"`
	Message        string  `json:"message"`
	OrderID        *int64  `json:"order_id,omitempty"`
	Amount         float64 `json:"amount"`
	Error          string  `json:"error,omitempty"`
}
