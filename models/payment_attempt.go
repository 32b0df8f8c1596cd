package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment attempt outcome constants
const (
	AttemptOutcomeCommitted = "committed"
	AttemptOutcomeAbandoned = "abandoned"
	AttemptOutcomeFailed    = "failed"
)

// PaymentAttempt journals one bank-transfer creation call made by a checkout session.
// Abandoned rows are attempts whose result arrived after the session moved on; the
// backend records still exist and are only visible here.
type PaymentAttempt struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	SessionID    string          `gorm:"size:64;index" json:"session_id"`
	Generation   uint64          `json:"generation"`
	OrderID      string          `gorm:"size:64;index" json:"order_id"`
	Method       string          `gorm:"size:32" json:"method"`
	PaymentIDs   string          `json:"payment_ids"`
	References   string          `json:"references"`
	Amount       decimal.Decimal `gorm:"type:decimal(20,2)" json:"amount"`
	Outcome      string          `gorm:"size:16;index" json:"outcome"`
	ErrorMessage string          `json:"error_message,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}
