package report

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// reportColumns are the per-record columns shared by the binary
// exports; state is implied by the section a row sits in.
var reportColumns = []string{"Date", "Customer", "Users", "Licenses", "Tax", "Total", "Fees"}

// WriteXLSX renders the report as a single-sheet workbook mirroring the
// grouped TSV layout. Monetary cells are written as decimal values;
// division by 100 happens only here, at the render boundary.
func WriteXLSX(w io.Writer, rep *Report) error {
	f := excelize.NewFile()
	sheet := "Report"
	f.SetSheetName("Sheet1", sheet)

	row := 1
	set := func(col int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}

	set(1, fmt.Sprintf("Sales Tax Report %s", rep.Quarter))
	row += 2

	writeMoney := func(start int, t Totals) {
		set(start, cellMoney(t.Licenses))
		set(start+1, cellMoney(t.Tax))
		set(start+2, cellMoney(t.Total))
		set(start+3, cellMoney(t.Fees))
	}

	for _, g := range groupByState(rep.Records) {
		set(1, fmt.Sprintf("State: %s", g.State))
		row++
		for i, col := range reportColumns {
			set(i+1, col)
		}
		row++
		for _, r := range g.Records {
			set(1, r.DateString())
			set(2, r.Customer)
			set(3, r.Users)
			set(4, cellMoney(r.Licenses))
			set(5, cellMoney(r.Tax))
			set(6, cellMoney(r.Total))
			set(7, cellMoney(r.Fees))
			row++
		}
		set(1, "SUBTOTAL")
		writeMoney(4, g.Subtotal)
		row += 2
	}

	set(1, "TOTAL")
	writeMoney(4, rep.Totals)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

// WritePDF renders the report as a paginated PDF with one table section
// per state.
func WritePDF(w io.Writer, rep *Report) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, fmt.Sprintf("Sales Tax Report %s", rep.Quarter))
	pdf.Ln(10)

	widths := []float64{22, 48, 14, 22, 20, 22, 20}

	headerRow := func() {
		pdf.SetFont("Arial", "B", 9)
		for i, col := range reportColumns {
			pdf.CellFormat(widths[i], 6, col, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 9)
	}

	moneyRow := func(label string, t Totals) {
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(widths[0]+widths[1]+widths[2], 6, label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 6, formatCents(t.Licenses), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 6, formatCents(t.Tax), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[5], 6, formatCents(t.Total), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[6], 6, formatCents(t.Fees), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 9)
	}

	for _, g := range groupByState(rep.Records) {
		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(0, 7, fmt.Sprintf("State: %s", g.State))
		pdf.Ln(8)
		headerRow()
		for _, r := range g.Records {
			pdf.CellFormat(widths[0], 6, r.DateString(), "1", 0, "C", false, 0, "")
			pdf.CellFormat(widths[1], 6, r.Customer, "1", 0, "L", false, 0, "")
			pdf.CellFormat(widths[2], 6, fmt.Sprintf("%d", r.Users), "1", 0, "R", false, 0, "")
			pdf.CellFormat(widths[3], 6, formatCents(r.Licenses), "1", 0, "R", false, 0, "")
			pdf.CellFormat(widths[4], 6, formatCents(r.Tax), "1", 0, "R", false, 0, "")
			pdf.CellFormat(widths[5], 6, formatCents(r.Total), "1", 0, "R", false, 0, "")
			pdf.CellFormat(widths[6], 6, formatCents(r.Fees), "1", 0, "R", false, 0, "")
			pdf.Ln(-1)
		}
		moneyRow("SUBTOTAL", g.Subtotal)
		pdf.Ln(4)
	}

	moneyRow("TOTAL", rep.Totals)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// cellMoney converts minor units to a decimal cell value for display.
func cellMoney(v int64) float64 {
	return float64(v) / 100
}
