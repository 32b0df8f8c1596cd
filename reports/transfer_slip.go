// Package reports renders downloadable documents: the transfer slip a buyer
// takes to the bank and the admin export of the attempt journal.
package reports

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Govind-619/MarketSphere/models"
	"github.com/Govind-619/MarketSphere/utils"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// TransferSlipPDF renders the bank-transfer instructions of a ready payment view.
func TransferSlipPDF(order models.Order, view models.CanonicalPaymentView, generated time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Transfer slip "+order.ID, true)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(100, 10, utils.AppName)
	pdf.Ln(10)
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(100, 10, "BANK TRANSFER INSTRUCTIONS")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(80, 8, tr("Order ID: "+order.ID))
	pdf.Cell(80, 8, "Generated: "+generated.Format("2006-01-02 15:04:05"))
	pdf.Ln(8)
	pdf.Cell(80, 8, "Payment Method: "+string(view.Method))
	if order.Status != "" {
		pdf.Cell(80, 8, "Order Status: "+order.Status)
	}
	pdf.Ln(12)

	// Transfer details
	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(100, 8, "Transfer To:")
	pdf.Ln(9)
	details := [][2]string{
		{"Bank", view.BankCode},
		{"Account Number", view.AccountNumber},
		{"Account Name", view.AccountName},
		{"Amount", formatAmount(view.Amount)},
		{"Transfer Memo", view.Reference},
	}
	for _, d := range details {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(50, 9, d[0], "1", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 12)
		pdf.CellFormat(110, 9, tr(d[1]), "1", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
	pdf.SetFont("Arial", "I", 10)
	pdf.MultiCell(160, 6, "Use the transfer memo exactly as shown so the payment can be matched to your order.", "", "L", false)
	pdf.Ln(4)

	if len(view.PaymentIDs) > 1 {
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(160, 6, tr(fmt.Sprintf("This order is paid in %d parts, one per seller. Payment records: %s",
			len(view.PaymentIDs), strings.Join(view.PaymentIDs, ", "))), "", "L", false)
		pdf.Ln(4)
	}

	// Items
	if len(order.Items) > 0 {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(90, 8, "Item", "1", 0, "C", false, 0, "")
		pdf.CellFormat(20, 8, "Qty", "1", 0, "C", false, 0, "")
		pdf.CellFormat(50, 8, "Price", "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 12)
		for _, item := range order.Items {
			name := item.Name
			if name == "" {
				name = item.ProductID
			}
			pdf.CellFormat(90, 8, tr(name), "1", 0, "L", false, 0, "")
			pdf.CellFormat(20, 8, strconv.Itoa(item.Quantity), "1", 0, "C", false, 0, "")
			pdf.CellFormat(50, 8, formatAmount(item.UnitPrice), "1", 0, "R", false, 0, "")
			pdf.Ln(-1)
		}
		pdf.Ln(4)
	}

	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(110, 10, "Amount to transfer:", "", 0, "L", false, 0, "")
	pdf.CellFormat(50, 10, formatAmount(view.Amount), "", 1, "R", false, 0, "")

	if view.QRURL != "" {
		pdf.Ln(6)
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(160, 6, "Scan-to-pay QR: "+view.QRURL, "", "L", false)
	}

	pdf.Ln(10)
	pdf.SetFont("Arial", "I", 12)
	pdf.Cell(0, 10, "Thank you for shopping with "+utils.AppName+"!")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render transfer slip: %v", err)
	}
	return buf.Bytes(), nil
}

func formatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
