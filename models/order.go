package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order status constants
const (
	OrderStatusPending   = "PENDING"
	OrderStatusConfirmed = "CONFIRMED"
	OrderStatusShipping  = "SHIPPING"
	OrderStatusDelivered = "DELIVERED"
	OrderStatusCancelled = "CANCELLED"
)

// Order is a customer order as returned by the marketplace API.
type Order struct {
	ID               string          `json:"id"`
	CustomerID       string          `json:"customer_id"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	Status           string          `json:"status"`
	PaymentReference string          `json:"payment_reference,omitempty"`
	ShippingAddress  Address         `json:"shipping_address"`
	Items            []OrderItem     `json:"items"`
	CreatedAt        time.Time       `json:"created_at"`
}

type OrderItem struct {
	ProductID    string          `json:"product_id"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	EnterpriseID string          `json:"enterprise_id,omitempty"`
	Name         string          `json:"name"`
	ImageURL     string          `json:"image_url,omitempty"`
}

// MissingEnterprise reports whether the item still lacks its owning enterprise.
func (i OrderItem) MissingEnterprise() bool {
	return i.EnterpriseID == ""
}

// Clone returns a copy of the order whose item slice can be modified freely.
func (o Order) Clone() Order {
	cp := o
	if o.Items != nil {
		cp.Items = make([]OrderItem, len(o.Items))
		copy(cp.Items, o.Items)
	}
	return cp
}
