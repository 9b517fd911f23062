package model

import "time"

// PendingOrder is an OrderDraft stashed while control is handed to the
// external payment gateway. Keyed by the locally generated transaction ref
// embedded in the gateway order info text.
type PendingOrder struct {
	TransactionRef string
	UserID         int64
	Draft          OrderDraft
	CreatedAt      time.Time
}
