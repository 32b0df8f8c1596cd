package models

import "github.com/shopspring/decimal"

// Product is the subset of a catalog product the checkout needs.
type Product struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	EnterpriseID string          `json:"enterprise_id"`
	Price        decimal.Decimal `json:"price"`
	ImageURL     string          `json:"image_url,omitempty"`
}
