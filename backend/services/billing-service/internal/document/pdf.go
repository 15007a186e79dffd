package document

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

const (
	pageMargin   = 15.0
	contentWidth = 180.0
	rowHeight    = 8.0
)

// RenderPDF writes doc as a single A4 page.
func RenderPDF(w io.Writer, doc Document) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetTitle(fmt.Sprintf("Invoice %s", doc.Header.Number), true)
	pdf.AddPage()

	// core fonts are cp1252; the rupee sign is not representable
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(contentWidth/2, 10, "INVOICE", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentWidth/2, 10, tr("Date: "+doc.Header.Date), "", 1, "R", false, 0, "")
	pdf.CellFormat(contentWidth, 6, tr("#"+doc.Header.Number), "", 1, "L", false, 0, "")
	if doc.Header.Company != "" {
		pdf.CellFormat(contentWidth, 6, tr(doc.Header.Company), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	top := pdf.GetY()
	half := contentWidth / 2

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(half, 7, "Bill To:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, line := range []string{
		doc.BillTo.Name,
		doc.BillTo.Address,
		"Mobile: " + doc.BillTo.Mobile,
		"GST: " + doc.BillTo.GSTNo,
	} {
		pdf.MultiCell(half, 5, tr(line), "", "L", false)
	}
	leftBottom := pdf.GetY()

	pdf.SetXY(pageMargin+half, top)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(half, 7, "Meter Details:", "", 2, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	meterRows := [][2]string{
		{"Previous Reading:", doc.Meter.PreviousReading},
		{"Current Reading:", doc.Meter.CurrentReading},
		{"Free Copies:", fmt.Sprintf("%d", doc.Meter.FreeCopies)},
		{"Net Payable Reading:", doc.Meter.NetPayableReading},
	}
	for _, row := range meterRows {
		pdf.SetX(pageMargin + half)
		pdf.CellFormat(half/2, 5, row[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(half/2, 5, row[1], "", 1, "R", false, 0, "")
	}

	if pdf.GetY() < leftBottom {
		pdf.SetY(leftBottom)
	}
	pdf.Ln(8)

	amountHeader := fmt.Sprintf("Amount (%s)", doc.Header.Currency)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentWidth*0.7, rowHeight, "Description", "B", 0, "L", false, 0, "")
	pdf.CellFormat(contentWidth*0.3, rowHeight, tr(amountHeader), "B", 1, "R", false, 0, "")

	for _, line := range doc.Lines {
		style := ""
		if line.Kind == LineTotal {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 10)
		pdf.CellFormat(contentWidth*0.7, rowHeight, tr(line.Description), "B", 0, "L", false, 0, "")
		pdf.CellFormat(contentWidth*0.3, rowHeight, line.Display, "B", 1, "R", false, 0, "")
	}

	pdf.Ln(12)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.CellFormat(contentWidth, 6, tr(doc.Footer), "T", 1, "C", false, 0, "")

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("document: render pdf: %w", err)
	}
	return pdf.Output(w)
}
