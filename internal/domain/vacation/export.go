package vacation

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// RenderCalendarPDF renders the occupancy report as a one-row-per-day table.
func RenderCalendarPDF(sectorName string, days []CalendarDay) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Calendario de Ferias")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Setor: %s", sectorName))
	pdf.Ln(7)
	if len(days) > 0 {
		pdf.Cell(0, 8, fmt.Sprintf("Periodo: %s a %s",
			days[0].Day.Format("2006-01-02"), days[len(days)-1].Day.Format("2006-01-02")))
		pdf.Ln(10)
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(40, 7, "Dia", "1", 0, "", false, 0, "")
	pdf.CellFormat(30, 7, "Aprovadas", "1", 0, "", false, 0, "")
	pdf.CellFormat(30, 7, "Pendentes", "1", 0, "", false, 0, "")
	pdf.CellFormat(30, 7, "Limite", "1", 1, "", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, day := range days {
		pdf.CellFormat(40, 6, day.Day.Format("2006-01-02"), "1", 0, "", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%d", day.Approved), "1", 0, "", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%d", day.Pending), "1", 0, "", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%d", day.Limit), "1", 1, "", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
