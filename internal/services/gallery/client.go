// Package gallery uploads screenshot images to the image-hosting service and
// returns the embeddable markup for each hosted file.
package gallery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"trackup/internal/services"
)

// Client talks to the gallery upload API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// New constructs a gallery client. timeout is in seconds; zero disables it.
func New(baseURL string, timeout int, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	httpClient := &http.Client{}
	if timeout > 0 {
		httpClient.Timeout = time.Duration(timeout) * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

type uploadedFile struct {
	BBCode string `json:"bbcode"`
}

// Upload posts the images to a new gallery titled title and returns the
// concatenated markup fragments in upload order. The passkey doubles as the
// gallery API key.
func (c *Client) Upload(ctx context.Context, title string, images []string, apiKey string) (string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fields := []struct{ name, value string }{
		{"apikey", apiKey},
		{"galleryid", "new"},
		{"gallerytitle", title},
	}
	for _, field := range fields {
		if err := writer.WriteField(field.name, field.value); err != nil {
			return "", fmt.Errorf("gallery request field %s: %w", field.name, err)
		}
	}
	for _, image := range images {
		part, err := writer.CreateFormFile("image[]", filepath.Base(image))
		if err != nil {
			return "", fmt.Errorf("gallery request image part: %w", err)
		}
		file, err := os.Open(image)
		if err != nil {
			return "", fmt.Errorf("open screenshot %s: %w", image, err)
		}
		_, err = io.Copy(part, file)
		file.Close()
		if err != nil {
			return "", fmt.Errorf("read screenshot %s: %w", image, err)
		}
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("gallery request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload", body)
	if err != nil {
		return "", fmt.Errorf("gallery request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", services.Wrap(services.ErrUpload, "gallery", "upload", "request failed", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", services.Wrap(services.ErrUpload, "gallery", "upload", "read response", err)
	}

	var decoded struct {
		Files []uploadedFile `json:"files"`
	}
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return "", services.Wrap(services.ErrUpload, "gallery", "upload", "malformed response", err)
	}
	// A response without a files collection decodes to a nil slice; an empty
	// collection decodes to a non-nil one.
	if decoded.Files == nil {
		return "", services.Wrap(services.ErrUpload, "gallery", "upload", "response lacks files collection", nil)
	}

	c.logger.Info("screenshots uploaded", "gallery_title", title, "count", len(decoded.Files))

	var markup strings.Builder
	for _, file := range decoded.Files {
		markup.WriteString(file.BBCode)
	}
	return markup.String(), nil
}
