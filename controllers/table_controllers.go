package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/bar-pos/invoice"
	"github.com/yeremiapane/bar-pos/models"
	"github.com/yeremiapane/bar-pos/services"
	"github.com/yeremiapane/bar-pos/utils"
)

type TableController struct {
	Tables *services.TableRegistry
	Ledger *services.SessionLedger
	PDF    invoice.PDFOptions
}

func NewTableController(svc *services.Services, pdf invoice.PDFOptions) *TableController {
	return &TableController{Tables: svc.Tables, Ledger: svc.Ledger, PDF: pdf}
}

// GetAllTables -> floor plan, every status
func (tc *TableController) GetAllTables(c *gin.Context) {
	tables, err := tc.Tables.ListTables(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

func (tc *TableController) CreateTable(c *gin.Context) {
	var req struct {
		Number *int `json:"number" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	table, err := tc.Tables.CreateTable(c.Request.Context(), *req.Number)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

func (tc *TableController) GetTableByID(c *gin.Context) {
	id, ok := paramID(c, "table_id")
	if !ok {
		return
	}
	table, err := tc.Tables.GetTable(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

// UpdateTableStatus -> FREE <-> DISABLED only
func (tc *TableController) UpdateTableStatus(c *gin.Context) {
	id, ok := paramID(c, "table_id")
	if !ok {
		return
	}
	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}
	status, err := models.ParseTableStatus(body.Status)
	if err != nil {
		respondBindError(c, err)
		return
	}

	table, err := tc.Tables.SetTableStatus(c.Request.Context(), id, status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table status updated", table)
}

func (tc *TableController) DeleteTable(c *gin.Context) {
	id, ok := paramID(c, "table_id")
	if !ok {
		return
	}
	if err := tc.Tables.DeleteTable(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{"id": id})
}

func (tc *TableController) OpenTable(c *gin.Context) {
	id, ok := paramID(c, "table_id")
	if !ok {
		return
	}
	session, err := tc.Ledger.OpenSession(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Table opened", session)
}

// CloseTable closes the session and answers with the invoice PDF, or with the
// invoice as JSON when the client asks for it.
func (tc *TableController) CloseTable(c *gin.Context) {
	id, ok := paramID(c, "table_id")
	if !ok {
		return
	}
	session, err := tc.Ledger.CloseSession(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	inv, err := invoice.FromSession(session)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if wantsJSON(c) {
		utils.RespondJSON(c, http.StatusOK, "Table closed", gin.H{"session": session, "invoice": inv})
		return
	}

	var buf bytes.Buffer
	if err := invoice.RenderPDF(&buf, inv, tc.PDF); err != nil {
		// the session is closed already, hand back the data instead
		utils.ErrorLogger.WithField("session_id", session.ID).Errorf("render invoice pdf: %v", err)
		utils.RespondJSON(c, http.StatusOK, "Table closed, invoice PDF unavailable", gin.H{"session": session, "invoice": inv})
		return
	}
	sendPDF(c, fmt.Sprintf("invoice-table-%d.pdf", inv.TableNumber), buf.Bytes())
}

func wantsJSON(c *gin.Context) bool {
	if c.Query("format") == "json" {
		return true
	}
	accept := c.GetHeader("Accept")
	return strings.Contains(accept, "application/json") && !strings.Contains(accept, "application/pdf")
}

func sendPDF(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}
