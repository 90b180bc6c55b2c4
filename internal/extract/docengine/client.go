// Package docengine is an HTTP client for the external document-structure
// service that performs table detection and raw-text extraction. The service
// reads the PDF from a path both sides can reach, so the client ships the
// file bytes inline instead of the path.
package docengine

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"payproof/internal/config"
	"payproof/internal/port"
)

// Client implements port.TableEngine and port.TextEngine against a
// document-structure extraction service.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a document-engine client from config.
func NewClient(cfg *config.EngineConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type tablesRequest struct {
	FileBase64 string `json:"file_base64"`
	Pages      string `json:"pages"`
	Strategy   string `json:"strategy"`
}

type tablesResponse struct {
	Tables []port.Table `json:"tables"`
}

// DetectTables asks the engine for tables using the given strategy.
func (c *Client) DetectTables(ctx context.Context, path string, strategy port.TableStrategy) ([]port.Table, error) {
	fileBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading pdf: %w", err)
	}

	reqBody := tablesRequest{
		FileBase64: base64.StdEncoding.EncodeToString(fileBytes),
		Pages:      "all",
		Strategy:   string(strategy),
	}

	var resp tablesResponse
	if err := c.post(ctx, "/v1/tables", reqBody, &resp); err != nil {
		return nil, err
	}
	return resp.Tables, nil
}

type textRequest struct {
	FileBase64 string `json:"file_base64"`
}

type textResponse struct {
	Pages []port.PageText `json:"pages"`
}

// ReadText asks the engine for per-page extracted text.
func (c *Client) ReadText(ctx context.Context, path string) ([]port.PageText, error) {
	fileBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading pdf: %w", err)
	}

	reqBody := textRequest{FileBase64: base64.StdEncoding.EncodeToString(fileBytes)}

	var resp textResponse
	if err := c.post(ctx, "/v1/text", reqBody, &resp); err != nil {
		return nil, err
	}
	return resp.Pages, nil
}

func (c *Client) post(ctx context.Context, route string, reqBody, out any) error {
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+route, bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("calling document engine: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("document engine error (status %d): %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("unmarshaling response: %w", err)
	}
	return nil
}
