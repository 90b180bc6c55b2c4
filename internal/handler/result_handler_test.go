package handler_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"payproof/internal/domain"
	"payproof/internal/handler"
	"payproof/internal/port"
	"payproof/mocks"
)

func sampleResult() *domain.ParseResult {
	record, _ := json.Marshal(map[string]any{
		"document_type": "paystub",
		"employer":      map[string]any{"name": "Acme Widgets Inc"},
		"employee":      map[string]any{"name": "Jordan Fuller"},
		"totals": map[string]any{
			"gross_pay_current": 4500.0,
			"net_pay_current":   3200.0,
		},
		"confidence_score":    0.92,
		"validation_warnings": []string{},
	})
	return &domain.ParseResult{
		ID:               uuid.New(),
		FileName:         "stub.pdf",
		DocType:          "paystub",
		Record:           record,
		ConfidenceScore:  0.92,
		VisionUsed:       true,
		ValidationPassed: true,
		ReviewStatus:     domain.ReviewPending,
		CreatedAt:        time.Now().UTC(),
		UpdatedAt:        time.Now().UTC(),
	}
}

func multipartBody(t *testing.T, docType string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "stub.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 test content"))
	require.NoError(t, err)
	if docType != "" {
		require.NoError(t, writer.WriteField("document_type", docType))
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestResultHandler_Parse_Success(t *testing.T) {
	svc := new(mocks.MockResultService)
	h := handler.NewResultHandler(svc)

	svc.On("ParseUpload", mock.Anything, mock.AnythingOfType("service.ParseUploadInput")).
		Return(sampleResult(), nil)

	body, contentType := multipartBody(t, "paystub")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/documents/parse", body)
	c.Request.Header.Set("Content-Type", contentType)

	h.Parse(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	svc.AssertExpectations(t)
}

func TestResultHandler_Parse_MissingFile(t *testing.T) {
	h := handler.NewResultHandler(new(mocks.MockResultService))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/documents/parse", nil)

	h.Parse(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResultHandler_Parse_MissingDocType(t *testing.T) {
	h := handler.NewResultHandler(new(mocks.MockResultService))

	body, contentType := multipartBody(t, "")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/documents/parse", body)
	c.Request.Header.Set("Content-Type", contentType)

	h.Parse(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResultHandler_Parse_UnsupportedType(t *testing.T) {
	svc := new(mocks.MockResultService)
	h := handler.NewResultHandler(svc)

	svc.On("ParseUpload", mock.Anything, mock.AnythingOfType("service.ParseUploadInput")).
		Return(nil, domain.ErrUnsupportedFileType)

	body, contentType := multipartBody(t, "paystub")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/documents/parse", body)
	c.Request.Header.Set("Content-Type", contentType)

	h.Parse(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "UNSUPPORTED_FILE_TYPE", resp.Error.Code)
}

func TestResultHandler_List_PassesFilter(t *testing.T) {
	svc := new(mocks.MockResultService)
	h := handler.NewResultHandler(svc)

	svc.On("List", mock.Anything, port.ResultFilter{
		DocType:      "w2",
		ReviewStatus: "pending",
		Limit:        10,
		Offset:       5,
	}).Return([]domain.ParseResult{*sampleResult()}, nil)
	svc.On("Count", mock.Anything).Return(int64(42), nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet,
		"/api/v1/documents?document_type=w2&review_status=pending&limit=10&offset=5", nil)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.Meta.Count)
	assert.Equal(t, 42, resp.Meta.Total)
	svc.AssertExpectations(t)
}

func TestResultHandler_Download_Success(t *testing.T) {
	svc := new(mocks.MockResultService)
	h := handler.NewResultHandler(svc)

	id := uuid.New()
	svc.On("ArchiveURL", mock.Anything, id).
		Return("https://test-archive.s3.amazonaws.com/results/paystub/2026/08/30/x.json?X-Amz-Signature=abc", nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/documents/"+id.String()+"/download", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.Download(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "X-Amz-Signature")
	svc.AssertExpectations(t)
}

func TestResultHandler_Download_NotArchived(t *testing.T) {
	svc := new(mocks.MockResultService)
	h := handler.NewResultHandler(svc)

	id := uuid.New()
	svc.On("ArchiveURL", mock.Anything, id).Return("", domain.ErrNotArchived)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/documents/"+id.String()+"/download", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.Download(c)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "NOT_ARCHIVED", resp.Error.Code)
}

func TestResultHandler_GetByID_InvalidID(t *testing.T) {
	h := handler.NewResultHandler(new(mocks.MockResultService))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/documents/not-a-uuid", nil)
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

	h.GetByID(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResultHandler_GetByID_NotFound(t *testing.T) {
	svc := new(mocks.MockResultService)
	h := handler.NewResultHandler(svc)

	id := uuid.New()
	svc.On("GetByID", mock.Anything, id).Return(nil, domain.ErrNotFound)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/documents/"+id.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestResultHandler_UpdateReview_Success(t *testing.T) {
	svc := new(mocks.MockResultService)
	h := handler.NewResultHandler(svc)

	result := sampleResult()
	result.ReviewStatus = domain.ReviewApproved

	svc.On("UpdateReview", mock.Anything, mock.AnythingOfType("service.UpdateReviewInput")).
		Return(result, nil)

	body := strings.NewReader(`{"status": "approved", "notes": "verified against employer records"}`)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPatch, "/api/v1/documents/"+result.ID.String()+"/review", body)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: result.ID.String()}}

	h.UpdateReview(c)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestResultHandler_UpdateReview_MissingStatus(t *testing.T) {
	h := handler.NewResultHandler(new(mocks.MockResultService))

	id := uuid.New()
	body := strings.NewReader(`{"notes": "no status"}`)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPatch, "/api/v1/documents/"+id.String()+"/review", body)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.UpdateReview(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResultHandler_Export_CSV(t *testing.T) {
	svc := new(mocks.MockResultService)
	h := handler.NewResultHandler(svc)

	svc.On("List", mock.Anything, mock.AnythingOfType("port.ResultFilter")).
		Return([]domain.ParseResult{*sampleResult()}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/documents/export?format=csv", nil)

	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, w.Body.String(), "Acme Widgets Inc")
	assert.Contains(t, w.Body.String(), "File Name")
}

func TestResultHandler_Export_InvalidFormat(t *testing.T) {
	h := handler.NewResultHandler(new(mocks.MockResultService))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/documents/export?format=pdf", nil)

	h.Export(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
