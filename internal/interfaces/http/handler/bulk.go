package handler

import (
	"io"
	"strings"

	"github.com/gin-gonic/gin"

	bulkapp "github.com/dishankgupta/milk-subs-sub005/internal/application/bulk"
)

// BulkHandler handles bulk row submission endpoints
type BulkHandler struct {
	BaseHandler
	bulkService *bulkapp.Service
}

// NewBulkHandler creates a new BulkHandler
func NewBulkHandler(bulkService *bulkapp.Service) *BulkHandler {
	return &BulkHandler{bulkService: bulkService}
}

// SubmitSales handles POST /bulk/sales
func (h *BulkHandler) SubmitSales(c *gin.Context) {
	var req bulkapp.SubmitSalesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.bulkService.SubmitSales(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// SummarizeSales handles POST /bulk/sales/summary
func (h *BulkHandler) SummarizeSales(c *gin.Context) {
	var req bulkapp.SubmitSalesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	summary, err := h.bulkService.SummarizeSales(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// SubmitModifications handles POST /bulk/modifications
func (h *BulkHandler) SubmitModifications(c *gin.Context) {
	var req bulkapp.SubmitModificationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.bulkService.SubmitModifications(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// SummarizeModifications handles POST /bulk/modifications/summary
func (h *BulkHandler) SummarizeModifications(c *gin.Context) {
	var req bulkapp.SubmitModificationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	summary, err := h.bulkService.SummarizeModifications(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// ImportSales handles POST /bulk/sales/import
func (h *BulkHandler) ImportSales(c *gin.Context) {
	file, ok := h.importFile(c)
	if !ok {
		return
	}
	defer file.Close()

	result, err := h.bulkService.ImportSalesCSV(c.Request.Context(), file)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ImportModifications handles POST /bulk/modifications/import
func (h *BulkHandler) ImportModifications(c *gin.Context) {
	file, ok := h.importFile(c)
	if !ok {
		return
	}
	defer file.Close()

	result, err := h.bulkService.ImportModificationsCSV(c.Request.Context(), file)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// importFile extracts the CSV stream from the request. Multipart
// uploads carry it in a "file" field; anything else is read as a raw
// CSV body.
func (h *BulkHandler) importFile(c *gin.Context) (io.ReadCloser, bool) {
	contentType := c.ContentType()
	if strings.HasPrefix(contentType, "multipart/form-data") {
		header, err := c.FormFile("file")
		if err != nil {
			h.BadRequest(c, "multipart upload must include a \"file\" field")
			return nil, false
		}
		file, err := header.Open()
		if err != nil {
			h.BadRequest(c, "failed to open uploaded file")
			return nil, false
		}
		return file, true
	}
	return c.Request.Body, true
}
