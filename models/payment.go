package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentMethodBankTransfer   PaymentMethod = "BANK_TRANSFER"
	PaymentMethodCashOnDelivery PaymentMethod = "COD"
)

// ParsePaymentMethod accepts the wire names plus a few aliases used by the storefront.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BANK_TRANSFER", "BANKTRANSFER", "BANK":
		return PaymentMethodBankTransfer, nil
	case "COD", "CASH_ON_DELIVERY", "CASHONDELIVERY":
		return PaymentMethodCashOnDelivery, nil
	}
	return "", fmt.Errorf("unknown payment method %q", s)
}

type PaymentStatus string

// Payment status constants
const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusPaid      PaymentStatus = "PAID"
	PaymentStatusFailed    PaymentStatus = "FAILED"
	PaymentStatusCancelled PaymentStatus = "CANCELLED"
	PaymentStatusExpired   PaymentStatus = "EXPIRED"
)

// Payment is one payment record for an order. A multi-vendor order may have
// several records created by a single checkout action, one per enterprise.
type Payment struct {
	ID            string          `json:"id"`
	OrderID       string          `json:"order_id"`
	EnterpriseID  string          `json:"enterprise_id,omitempty"`
	Method        PaymentMethod   `json:"method"`
	Amount        decimal.Decimal `json:"amount"`
	Status        PaymentStatus   `json:"status"`
	Reference     string          `json:"reference"`
	BankCode      string          `json:"bank_code,omitempty"`
	AccountNumber string          `json:"account_number,omitempty"`
	AccountName   string          `json:"account_name,omitempty"`
	QRURL         string          `json:"qr_url,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// HasBankAccount reports whether the record carries its own transfer destination.
func (p Payment) HasBankAccount() bool {
	return p.AccountNumber != ""
}

// PaymentBatch groups the payments produced by one checkout attempt.
// It is derived on the client and never persisted.
type PaymentBatch struct {
	OrderID  string    `json:"order_id"`
	Payments []Payment `json:"payments"`
	Latest   time.Time `json:"latest"`
}

func (b PaymentBatch) Empty() bool {
	return len(b.Payments) == 0
}

// First returns the newest record of the batch.
func (b PaymentBatch) First() (Payment, bool) {
	if len(b.Payments) == 0 {
		return Payment{}, false
	}
	return b.Payments[0], true
}

// BankAccount is a transfer destination.
type BankAccount struct {
	BankCode      string `json:"bank_code"`
	AccountNumber string `json:"account_number"`
	AccountName   string `json:"account_name"`
}

// CanonicalPaymentView is the single payment record the storefront renders.
type CanonicalPaymentView struct {
	OrderID       string          `json:"order_id"`
	PaymentID     string          `json:"payment_id,omitempty"`
	Method        PaymentMethod   `json:"method"`
	Amount        decimal.Decimal `json:"amount"`
	Reference     string          `json:"reference"`
	BankCode      string          `json:"bank_code"`
	AccountNumber string          `json:"account_number"`
	AccountName   string          `json:"account_name"`
	QRURL         string          `json:"qr_url"`
	PaymentIDs    []string        `json:"payment_ids"`
	FromBatch     bool            `json:"from_batch"`
}
