package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/bar-pos/invoice"
	"github.com/yeremiapane/bar-pos/services"
	"github.com/yeremiapane/bar-pos/utils"
)

type InvoiceController struct {
	Reports *services.Reporting
	PDF     invoice.PDFOptions
}

func NewInvoiceController(svc *services.Services, pdf invoice.PDFOptions) *InvoiceController {
	return &InvoiceController{Reports: svc.Reports, PDF: pdf}
}

// GetSummary -> totals and closed session history, optional ?from=&to=
func (ic *InvoiceController) GetSummary(c *gin.Context) {
	var f services.ClosedFilter
	var err error
	if f.From, err = parseBound(c.Query("from"), false); err != nil {
		respondBindError(c, err)
		return
	}
	if f.To, err = parseBound(c.Query("to"), true); err != nil {
		respondBindError(c, err)
		return
	}

	summary, err := ic.Reports.GetInvoiceSummary(c.Request.Context(), f)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Invoice summary", summary)
}

func (ic *InvoiceController) GetInvoice(c *gin.Context) {
	id, ok := paramID(c, "session_id")
	if !ok {
		return
	}
	inv, err := ic.Reports.GetInvoice(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Invoice detail", inv)
}

// GetInvoicePDF re-renders the printable invoice of a closed session.
func (ic *InvoiceController) GetInvoicePDF(c *gin.Context) {
	id, ok := paramID(c, "session_id")
	if !ok {
		return
	}
	inv, err := ic.Reports.GetInvoice(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := invoice.RenderPDF(&buf, *inv, ic.PDF); err != nil {
		respondServiceError(c, err)
		return
	}
	sendPDF(c, fmt.Sprintf("invoice-table-%d-session-%d.pdf", inv.TableNumber, inv.SessionID), buf.Bytes())
}

// parseBound accepts RFC3339 or a plain date. A plain date used as an upper
// bound covers the whole day.
func parseBound(v string, upper bool) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return &t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", v, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, use YYYY-MM-DD or RFC3339", v)
	}
	if upper {
		t = t.AddDate(0, 0, 1)
	}
	return &t, nil
}
