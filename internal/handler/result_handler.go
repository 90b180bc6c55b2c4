package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"payproof/internal/export"
	"payproof/internal/port"
	"payproof/internal/service"
)

// ResultHandler handles parse-result endpoints.
type ResultHandler struct {
	results service.ResultService
}

// NewResultHandler creates a new ResultHandler.
func NewResultHandler(results service.ResultService) *ResultHandler {
	return &ResultHandler{results: results}
}

// reviewRequest is the request body for review decisions.
type reviewRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

// Parse handles POST /api/v1/documents/parse
func (h *ResultHandler) Parse(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "multipart field 'file' is required")
		return
	}
	defer file.Close()

	docType := c.PostForm("document_type")
	if docType == "" {
		RespondError(c, http.StatusBadRequest, "MISSING_DOC_TYPE", "form field 'document_type' is required")
		return
	}

	result, err := h.results.ParseUpload(c.Request.Context(), service.ParseUploadInput{
		File:    file,
		Header:  header,
		DocType: docType,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, result)
}

// List handles GET /api/v1/documents
func (h *ResultHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if offset < 0 {
		offset = 0
	}

	filter := port.ResultFilter{
		DocType:      c.Query("document_type"),
		ReviewStatus: c.Query("review_status"),
		Limit:        limit,
		Offset:       offset,
	}

	results, err := h.results.List(c.Request.Context(), filter)
	if err != nil {
		HandleError(c, err)
		return
	}
	total, err := h.results.Count(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, results, PagMeta{Total: int(total), Offset: offset, Limit: limit, Count: len(results)})
}

// GetByID handles GET /api/v1/documents/:id
func (h *ResultHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid result id")
		return
	}

	result, err := h.results.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// Download handles GET /api/v1/documents/:id/download
func (h *ResultHandler) Download(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid result id")
		return
	}

	url, err := h.results.ArchiveURL(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"url": url})
}

// UpdateReview handles PATCH /api/v1/documents/:id/review
func (h *ResultHandler) UpdateReview(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid result id")
		return
	}

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "status is required")
		return
	}

	result, err := h.results.UpdateReview(c.Request.Context(), service.UpdateReviewInput{
		ResultID: id,
		Status:   req.Status,
		Notes:    req.Notes,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// Export handles GET /api/v1/documents/export?format=csv|xlsx
func (h *ResultHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		RespondError(c, http.StatusBadRequest, "INVALID_FORMAT", "unsupported export format; allowed: csv, xlsx")
		return
	}

	filter := port.ResultFilter{
		DocType:      c.Query("document_type"),
		ReviewStatus: c.Query("review_status"),
		Limit:        exportBatchLimit,
	}
	results, err := h.results.List(c.Request.Context(), filter)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := export.BuildFilename("parse_results", format)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	if format == "xlsx" {
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Status(http.StatusOK)
		if err := export.WriteXLSX(c.Writer, results); err != nil {
			_ = c.Error(err)
		}
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Status(http.StatusOK)
	if _, err := c.Writer.Write(export.BOM); err != nil {
		return
	}
	w := export.NewCSVWriter(c.Writer)
	if err := w.WriteHeader(); err != nil {
		return
	}
	if err := w.WriteResults(results); err != nil {
		return
	}
	w.Flush()
}

// exportBatchLimit caps a single export request.
const exportBatchLimit = 200
