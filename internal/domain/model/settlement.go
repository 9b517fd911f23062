package model

import "time"

// SettlementOutcome is the terminal state of a processed gateway callback.
type SettlementOutcome string

const (
	// SettlementSuccess: payment confirmed and order finalized (or about to be).
	SettlementSuccess SettlementOutcome = "success"
	// SettlementDeclined: gateway reported payment failure.
	SettlementDeclined SettlementOutcome = "declined"
	// SettlementReconcileFailed: payment succeeded at the gateway but the
	// order could not be finalized. Pending order is retained for support.
	SettlementReconcileFailed SettlementOutcome = "reconcile_failed"
)

// Settlement is the idempotency record for one gateway transaction ref.
// It is claimed before any order work so a repeated callback renders the
// stored result instead of repeating side effects.
type Settlement struct {
	TransactionRef string
	Outcome        SettlementOutcome
	ResponseCode   string
	Message        string
	OrderID        *int64
	GatewayTxnNo   string
	BankCode       string
	Amount         float64
	PayDate        string
	CreatedAt      time.Time
}

// GatewayCallback carries the query parameters of a gateway return redirect.
type GatewayCallback struct {
	TransactionRef string
	ResponseCode   string
	TransactionNo  string
	AmountMinor    int64
	BankCode       string
	PayDateRaw     string
	OrderInfo      string
}
