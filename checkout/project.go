package checkout

import (
	"strings"
	"unicode"

	"github.com/Govind-619/MarketSphere/models"
	"github.com/Govind-619/MarketSphere/qr"
)

// Projector derives the canonical payment view from an order and its batch.
// It is stateless; the view is recomputed whenever the batch changes.
type Projector struct {
	// Admin is the marketplace account used when a batch carries no account of its own.
	Admin           models.BankAccount
	QR              qr.Template
	ReferencePrefix string
}

// Project builds the view. Records of other orders in batch are ignored.
func (p Projector) Project(order models.Order, batch models.PaymentBatch) models.CanonicalPaymentView {
	if batch.OrderID != order.ID {
		batch = models.PaymentBatch{OrderID: order.ID}
	}
	batch.Payments = filterOrder(order.ID, batch.Payments)
	first, ok := batch.First()

	view := models.CanonicalPaymentView{
		OrderID:   order.ID,
		PaymentID: first.ID,
		Method:    first.Method,
		FromBatch: ok,
	}
	for _, payment := range batch.Payments {
		view.PaymentIDs = append(view.PaymentIDs, payment.ID)
	}

	view.Amount = First(order.TotalAmount,
		When(ok && positive(first.Amount), first.Amount),
	)
	view.Reference = First(p.SynthesizeReference(order.ID),
		When(ok && first.Reference != "", first.Reference),
		NonEmpty(order.PaymentReference),
	)

	account := First(p.Admin,
		When(ok && first.HasBankAccount(), models.BankAccount{
			BankCode:      first.BankCode,
			AccountNumber: first.AccountNumber,
			AccountName:   first.AccountName,
		}),
	)
	view.BankCode = account.BankCode
	view.AccountNumber = account.AccountNumber
	view.AccountName = account.AccountName

	view.QRURL = First(p.QR.URL(qr.Fields{
		BankCode:      account.BankCode,
		AccountNumber: account.AccountNumber,
		AccountName:   account.AccountName,
		Amount:        view.Amount,
		Memo:          view.Reference,
	}),
		When(ok && first.QRURL != "", first.QRURL),
	)
	return view
}

// SynthesizeReference derives a transfer memo from the order id. Banks reject
// most punctuation in memos, so only letters and digits are kept.
func (p Projector) SynthesizeReference(orderID string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return unicode.ToUpper(r)
		}
		return -1
	}, orderID)
	return p.ReferencePrefix + cleaned
}
