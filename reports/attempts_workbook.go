package reports

import (
	"fmt"
	"strings"
	"time"

	"github.com/Govind-619/MarketSphere/models"
	"github.com/Govind-619/MarketSphere/utils"
	"github.com/tealeg/xlsx"
)

var attemptHeaders = []string{"Attempt ID", "Created", "Session", "Generation", "Order ID", "Method", "Amount", "Payment IDs", "References", "Outcome", "Error"}

// AttemptsWorkbook lays out the attempt journal as a spreadsheet followed by a
// per-outcome summary.
func AttemptsWorkbook(attempts []models.PaymentAttempt, generated time.Time) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Payment Attempts")
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %v", err)
	}

	bold := xlsx.NewStyle()
	font := xlsx.DefaultFont()
	font.Bold = true
	bold.Font = *font

	titleRow := sheet.AddRow()
	titleRow.AddCell().SetString(strings.ToUpper(utils.AppName) + " - Payment Attempts")
	titleRow.Cells[0].SetStyle(bold)
	sheet.AddRow().AddCell().SetString("Generated: " + generated.Format("2006-01-02 15:04:05"))
	sheet.AddRow() // spacing

	headerRow := sheet.AddRow()
	for _, h := range attemptHeaders {
		cell := headerRow.AddCell()
		cell.SetString(h)
		cell.SetStyle(bold)
	}

	counts := make(map[string]int)
	for _, attempt := range attempts {
		counts[attempt.Outcome]++
		amount, _ := attempt.Amount.Float64()

		row := sheet.AddRow()
		row.AddCell().SetInt(int(attempt.ID))
		row.AddCell().SetString(attempt.CreatedAt.Format("2006-01-02 15:04:05"))
		row.AddCell().SetString(attempt.SessionID)
		row.AddCell().SetInt64(int64(attempt.Generation))
		row.AddCell().SetString(attempt.OrderID)
		row.AddCell().SetString(attempt.Method)
		row.AddCell().SetFloat(amount)
		row.AddCell().SetString(attempt.PaymentIDs)
		row.AddCell().SetString(attempt.References)
		row.AddCell().SetString(attempt.Outcome)
		row.AddCell().SetString(attempt.ErrorMessage)
	}

	sheet.AddRow() // spacing

	summaryRow := sheet.AddRow()
	summaryRow.AddCell().SetString("Summary")
	summaryRow.Cells[0].SetStyle(bold)
	summaryData := [][]string{
		{"Total Attempts", fmt.Sprintf("%d", len(attempts))},
		{"Committed", fmt.Sprintf("%d", counts[models.AttemptOutcomeCommitted])},
		{"Abandoned", fmt.Sprintf("%d", counts[models.AttemptOutcomeAbandoned])},
		{"Failed", fmt.Sprintf("%d", counts[models.AttemptOutcomeFailed])},
	}
	for _, data := range summaryData {
		row := sheet.AddRow()
		row.AddCell().SetString(data[0])
		row.AddCell().SetString(data[1])
	}
	return file, nil
}
