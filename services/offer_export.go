package services

import (
	"bytes"
	"fmt"

	"lease_flow_app_go/models"
	"lease_flow_app_go/services/offerpdf"

	"github.com/xuri/excelize/v2"
)

// BuildOfferBook generates an Excel workbook listing the given offers, one
// row per offer with its client and aggregated monthly figures. Confidential
// purchase/margin columns are never exported: the book is a client-facing
// sales artifact.
func BuildOfferBook(offers []models.Offer) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Offres"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Référence", "Date", "Client", "Statut", "Durée (mois)", "Équipements", "Loyer mensuel", "Engagement total"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to build header cell: %w", err)
		}
		f.SetCellValue(sheet, cell, h)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 12}})
	f.SetCellStyle(sheet, "A1", "H1", headerStyle)

	for i, offer := range offers {
		row := i + 2

		duration := 0
		if offer.DurationMonths != nil {
			duration = *offer.DurationMonths
		}
		totals := offerpdf.Aggregate(offer.Equipment, duration, offerpdf.ModeClient)

		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), offer.Reference())
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), offer.CreatedAt.Format("02/01/2006"))
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), offer.Client.Name)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), offer.Status)
		if offer.DurationMonths != nil {
			f.SetCellValue(sheet, fmt.Sprintf("E%d", row), *offer.DurationMonths)
		}
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), len(offer.Equipment))
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), totals.Monthly)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), totals.OverDuration)
	}

	f.SetColWidth(sheet, "A", "H", 18)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}

	return buf, nil
}
