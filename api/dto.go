package api

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/Govind-619/MarketSphere/models"
	"github.com/shopspring/decimal"
)

// Wire shapes of the marketplace API. Field names follow the API, not our models.

type addressDTO struct {
	FullName   string `json:"fullName"`
	Phone      string `json:"phone"`
	Line1      string `json:"addressLine1"`
	Line2      string `json:"addressLine2"`
	Ward       string `json:"ward"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
	PostalCode string `json:"postalCode"`
}

type orderItemDTO struct {
	ProductID    string          `json:"productId"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	EnterpriseID string          `json:"enterpriseId"`
	ProductName  string          `json:"productName"`
	ImageURL     string          `json:"imageUrl"`
}

type orderDTO struct {
	ID               string          `json:"id"`
	CustomerID       string          `json:"customerId"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
	Status           string          `json:"status"`
	PaymentReference string          `json:"paymentReference"`
	ShippingAddress  addressDTO      `json:"shippingAddress"`
	Items            []orderItemDTO  `json:"items"`
	CreatedAt        time.Time       `json:"createdAt"`
}

type productDTO struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	EnterpriseID string          `json:"enterpriseId"`
	Price        decimal.Decimal `json:"price"`
	ImageURL     string          `json:"imageUrl"`
}

type paymentDTO struct {
	ID            string          `json:"id"`
	OrderID       string          `json:"orderId"`
	EnterpriseID  string          `json:"enterpriseId"`
	Method        string          `json:"method"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
	Reference     string          `json:"transactionRef"`
	BankCode      string          `json:"bankCode"`
	AccountNumber string          `json:"accountNumber"`
	AccountName   string          `json:"accountName"`
	QRURL         string          `json:"qrCodeUrl"`
	CreatedAt     time.Time       `json:"createdAt"`
}

type createPaymentRequest struct {
	OrderID string `json:"orderId"`
	Method  string `json:"method"`
}

func (d orderDTO) toModel() models.Order {
	order := models.Order{
		ID:               d.ID,
		CustomerID:       d.CustomerID,
		TotalAmount:      d.TotalAmount,
		Status:           d.Status,
		PaymentReference: d.PaymentReference,
		ShippingAddress: models.Address{
			FullName:   d.ShippingAddress.FullName,
			Phone:      d.ShippingAddress.Phone,
			Line1:      d.ShippingAddress.Line1,
			Line2:      d.ShippingAddress.Line2,
			Ward:       d.ShippingAddress.Ward,
			City:       d.ShippingAddress.City,
			State:      d.ShippingAddress.State,
			Country:    d.ShippingAddress.Country,
			PostalCode: d.ShippingAddress.PostalCode,
		},
		CreatedAt: d.CreatedAt,
	}
	for _, item := range d.Items {
		order.Items = append(order.Items, models.OrderItem{
			ProductID:    item.ProductID,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			EnterpriseID: item.EnterpriseID,
			Name:         item.ProductName,
			ImageURL:     item.ImageURL,
		})
	}
	return order
}

func (d productDTO) toModel() models.Product {
	return models.Product{
		ID:           d.ID,
		Name:         d.Name,
		EnterpriseID: d.EnterpriseID,
		Price:        d.Price,
		ImageURL:     d.ImageURL,
	}
}

func (d paymentDTO) toModel() models.Payment {
	payment := models.Payment{
		ID:            d.ID,
		OrderID:       d.OrderID,
		EnterpriseID:  d.EnterpriseID,
		Method:        models.PaymentMethod(d.Method),
		Amount:        d.Amount,
		Status:        models.PaymentStatus(d.Status),
		Reference:     d.Reference,
		BankCode:      d.BankCode,
		AccountNumber: d.AccountNumber,
		AccountName:   d.AccountName,
		QRURL:         d.QRURL,
		CreatedAt:     d.CreatedAt,
	}
	if method, err := models.ParsePaymentMethod(d.Method); err == nil {
		payment.Method = method
	}
	return payment
}

func paymentsToModels(dtos []paymentDTO) []models.Payment {
	out := make([]models.Payment, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toModel())
	}
	return out
}

// decodePayments accepts either a single payment object or an array of them.
// Payment creation returns one record per enterprise for multi-vendor orders
// and a bare object otherwise.
func decodePayments(raw json.RawMessage) ([]paymentDTO, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var list []paymentDTO
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, err
		}
		return list, nil
	}
	var single paymentDTO
	if err := json.Unmarshal(trimmed, &single); err != nil {
		return nil, err
	}
	return []paymentDTO{single}, nil
}
