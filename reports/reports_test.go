package reports

import (
	"bytes"
	"testing"
	"time"

	"github.com/Govind-619/MarketSphere/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
)

var generatedAt = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func TestTransferSlipPDF(t *testing.T) {
	order := models.Order{
		ID:          "ord-1",
		TotalAmount: decimal.NewFromInt(250000),
		Status:      models.OrderStatusPending,
		Items: []models.OrderItem{
			{ProductID: "p1", Name: "Trà sen", Quantity: 2, UnitPrice: decimal.NewFromInt(125000)},
			{ProductID: "p2", Quantity: 1, UnitPrice: decimal.Zero},
		},
	}
	view := models.CanonicalPaymentView{
		OrderID:       "ord-1",
		Method:        models.PaymentMethodBankTransfer,
		Amount:        decimal.NewFromInt(250000),
		Reference:     "MSORD1",
		BankCode:      "VCB",
		AccountNumber: "0011001234567",
		AccountName:   "MARKETSPHERE JSC",
		QRURL:         "https://qr.example/VCB-0011001234567.png",
		PaymentIDs:    []string{"pay-1", "pay-2"},
		FromBatch:     true,
	}

	out, err := TransferSlipPDF(order, view, generatedAt)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Greater(t, len(out), 1000)
}

func TestTransferSlipPDF_MinimalView(t *testing.T) {
	out, err := TransferSlipPDF(models.Order{ID: "o"}, models.CanonicalPaymentView{OrderID: "o"}, generatedAt)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestAttemptsWorkbook(t *testing.T) {
	attempts := []models.PaymentAttempt{
		{ID: 2, SessionID: "s1", Generation: 2, OrderID: "o1", Method: "BANK_TRANSFER", Amount: decimal.NewFromInt(100), PaymentIDs: "pay-2", Outcome: models.AttemptOutcomeCommitted, CreatedAt: generatedAt},
		{ID: 1, SessionID: "s1", Generation: 1, OrderID: "o1", Method: "BANK_TRANSFER", Amount: decimal.NewFromInt(100), PaymentIDs: "pay-1", Outcome: models.AttemptOutcomeAbandoned, CreatedAt: generatedAt},
		{ID: 3, SessionID: "s2", Generation: 1, OrderID: "o2", Method: "BANK_TRANSFER", Outcome: models.AttemptOutcomeFailed, ErrorMessage: "timeout", CreatedAt: generatedAt},
	}

	file, err := AttemptsWorkbook(attempts, generatedAt)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, file.Write(&buf))
	reopened, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)

	sheet := reopened.Sheets[0]
	assert.Equal(t, "Payment Attempts", sheet.Name)
	assert.Equal(t, "MARKETSPHERE - Payment Attempts", sheet.Rows[0].Cells[0].Value)
	assert.Equal(t, "Attempt ID", sheet.Rows[3].Cells[0].Value)
	assert.Equal(t, "o1", sheet.Rows[4].Cells[4].Value)
	assert.Equal(t, models.AttemptOutcomeAbandoned, sheet.Rows[5].Cells[9].Value)
	assert.Equal(t, "timeout", sheet.Rows[6].Cells[10].Value)

	// spacing, "Summary", then the counts
	last := sheet.Rows[len(sheet.Rows)-4:]
	assert.Equal(t, []string{"Total Attempts", "3"}, []string{last[0].Cells[0].Value, last[0].Cells[1].Value})
	assert.Equal(t, "1", last[1].Cells[1].Value)
	assert.Equal(t, "1", last[2].Cells[1].Value)
	assert.Equal(t, "1", last[3].Cells[1].Value)
}
