package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	portssvc "github.com/expenso-app/expenso_backend/internal/core/ports/services"
)

// Client calls an external OCR service that accepts a multipart image upload
// and returns the recognized text.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

type recognizeResponse struct {
	Text  string `json:"text"`
	Error string `json:"error,omitempty"`
}

// NewClient creates an OCR client with a bounded request timeout.
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Ensure Client implements the TextRecognizer port
var _ portssvc.TextRecognizer = (*Client)(nil)

// Recognize uploads the image and returns the recognized raw text.
func (c *Client) Recognize(ctx context.Context, image []byte, filename string) (string, error) {
	if c.endpoint == "" {
		return "", fmt.Errorf("OCR service endpoint is not configured")
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return "", fmt.Errorf("failed to write image data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/ocr", &buf)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("OCR request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("OCR service error (status %d): %s", resp.StatusCode, string(body))
	}

	var parsed recognizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode OCR response: %w", err)
	}
	if parsed.Error != "" {
		return "", fmt.Errorf("OCR error: %s", parsed.Error)
	}

	return parsed.Text, nil
}
