package invoice

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/yeremiapane/bar-pos/utils"
)

type PDFOptions struct {
	RestaurantName string
	CurrencySymbol string
}

// RenderPDF writes a one page A4 invoice.
func RenderPDF(w io.Writer, inv Invoice, opts PDFOptions) error {
	if opts.CurrencySymbol == "" {
		opts.CurrencySymbol = "$"
	}
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(inv.Number, true)
	pdf.SetCreator("bar-pos", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr(opts.RestaurantName), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, tr("Invoice "+inv.Number), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.CellFormat(95, 6, fmt.Sprintf("Table #%d", inv.TableNumber), "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 6, fmt.Sprintf("Session #%d", inv.SessionID), "", 1, "R", false, 0, "")
	pdf.CellFormat(95, 6, "Opened: "+inv.StartTime.Format("2006-01-02 15:04"), "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 6, "Closed: "+inv.EndTime.Format("2006-01-02 15:04"), "", 1, "R", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(95, 8, "Item", "1", 0, "L", true, 0, "")
	pdf.CellFormat(20, 8, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 8, "Unit", "1", 0, "R", true, 0, "")
	pdf.CellFormat(40, 8, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	if len(inv.Lines) == 0 {
		pdf.CellFormat(190, 8, "No items", "1", 1, "C", false, 0, "")
	}
	for _, l := range inv.Lines {
		pdf.CellFormat(95, 8, tr(l.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 8, fmt.Sprintf("%d", l.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 8, tr(utils.FormatCurrency(opts.CurrencySymbol, l.UnitPrice)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 8, tr(utils.FormatCurrency(opts.CurrencySymbol, l.Subtotal)), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(150, 10, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 10, tr(utils.FormatCurrency(opts.CurrencySymbol, inv.Total)), "1", 1, "R", false, 0, "")

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.CellFormat(0, 6, "Thank you for your visit!", "", 1, "C", false, 0, "")

	return pdf.Output(w)
}
