package checkout

import (
	"testing"

	"github.com/Govind-619/MarketSphere/models"
	"github.com/Govind-619/MarketSphere/qr"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var adminAccount = models.BankAccount{
	BankCode:      "VCB",
	AccountNumber: "0011001234567",
	AccountName:   "MARKETSPHERE JSC",
}

func testProjector() Projector {
	return Projector{
		Admin:           adminAccount,
		QR:              qr.MustParse("https://qr.example/{bank}-{account}.png?amount={amount}&addInfo={memo}"),
		ReferencePrefix: "MS",
	}
}

func TestFirst_ReturnsFirstOKOption(t *testing.T) {
	assert.Equal(t, "b", First("z", When(false, "a"), When(true, "b"), When(true, "c")))
	assert.Equal(t, "z", First("z", NonEmpty(""), When(false, "a")))
	assert.Equal(t, "x", First("z", NonEmpty("x")))
}

func TestProject_EmptyBatchUsesOrderDefaults(t *testing.T) {
	order := models.Order{ID: "ord-7f3a", TotalAmount: decimal.NewFromInt(250000)}
	view := testProjector().Project(order, models.PaymentBatch{OrderID: order.ID})

	assert.False(t, view.FromBatch)
	assert.True(t, decimal.NewFromInt(250000).Equal(view.Amount))
	assert.Equal(t, "MSORD7F3A", view.Reference)
	assert.Equal(t, adminAccount.AccountNumber, view.AccountNumber)
	assert.Equal(t, adminAccount.BankCode, view.BankCode)
	assert.Equal(t, "https://qr.example/VCB-0011001234567.png?amount=250000&addInfo=MSORD7F3A", view.QRURL)
	assert.Empty(t, view.PaymentIDs)
}

func TestProject_OrderReferenceBeatsSynthesized(t *testing.T) {
	order := models.Order{ID: "o1", TotalAmount: decimal.NewFromInt(10), PaymentReference: "ORDERREF"}
	view := testProjector().Project(order, models.PaymentBatch{OrderID: "o1"})
	assert.Equal(t, "ORDERREF", view.Reference)
}

func TestProject_BatchValuesWin(t *testing.T) {
	order := models.Order{ID: "o1", TotalAmount: decimal.NewFromInt(900), PaymentReference: "ORDERREF"}
	first := bankPayment("p2", "o1", 600, at(2000))
	first.Reference = "PAYREF2"
	first.BankCode = "TCB"
	first.AccountNumber = "190333"
	first.AccountName = "SHOP ONE"
	first.QRURL = "https://bank.example/qr/p2.png"
	sibling := bankPayment("p1", "o1", 300, at(1500))

	view := testProjector().Project(order, models.PaymentBatch{OrderID: "o1", Payments: []models.Payment{first, sibling}})

	assert.True(t, view.FromBatch)
	assert.Equal(t, "p2", view.PaymentID)
	assert.Equal(t, models.PaymentMethodBankTransfer, view.Method)
	assert.True(t, decimal.NewFromInt(600).Equal(view.Amount))
	assert.Equal(t, "PAYREF2", view.Reference)
	assert.Equal(t, "TCB", view.BankCode)
	assert.Equal(t, "190333", view.AccountNumber)
	assert.Equal(t, "SHOP ONE", view.AccountName)
	assert.Equal(t, "https://bank.example/qr/p2.png", view.QRURL)
	assert.Equal(t, []string{"p2", "p1"}, view.PaymentIDs)
}

func TestProject_GapsInBatchFilledFromDefaults(t *testing.T) {
	order := models.Order{ID: "o1", TotalAmount: decimal.NewFromInt(900)}
	first := bankPayment("p1", "o1", 0, at(0))
	first.Reference = "PAYREF1"

	view := testProjector().Project(order, models.PaymentBatch{OrderID: "o1", Payments: []models.Payment{first}})

	assert.True(t, decimal.NewFromInt(900).Equal(view.Amount))
	assert.Equal(t, "PAYREF1", view.Reference)
	assert.Equal(t, adminAccount.AccountNumber, view.AccountNumber)
	assert.Contains(t, view.QRURL, "addInfo=PAYREF1")
}

func TestProject_IgnoresRecordsOfOtherOrders(t *testing.T) {
	order := models.Order{ID: "o1", TotalAmount: decimal.NewFromInt(100)}
	foreign := bankPayment("px", "o2", 999, at(0))
	foreign.Reference = "FOREIGN"

	view := testProjector().Project(order, models.PaymentBatch{OrderID: "o1", Payments: []models.Payment{foreign}})
	assert.False(t, view.FromBatch)
	assert.NotEqual(t, "FOREIGN", view.Reference)

	view = testProjector().Project(order, models.PaymentBatch{OrderID: "o2", Payments: []models.Payment{foreign}})
	assert.False(t, view.FromBatch)
	assert.Empty(t, view.PaymentIDs)
}
