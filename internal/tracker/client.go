package tracker

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mengzhuo/cookiestxt"

	"trackup/internal/form"
	"trackup/internal/services"
)

var timeNow = time.Now

// Result is the outcome of a successful submission: either a direct download
// link or, when the response could not be disambiguated, the landing URL.
type Result struct {
	Status      int
	DownloadURL string
	ResponseURL string
}

// Link returns the best URL the submission produced.
func (r Result) Link() string {
	if r.DownloadURL != "" {
		return r.DownloadURL
	}
	return r.ResponseURL
}

// Client submits upload forms to the tracker.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// New constructs a tracker client. timeout is in seconds; zero disables it.
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

// LoadCookies reads a Netscape-format cookie file.
func LoadCookies(path string) ([]*http.Cookie, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open cookie file %s: %w", path, err)
	}
	defer file.Close()
	cookies, err := cookiestxt.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parse cookie file %s: %w", path, err)
	}
	return cookies, nil
}

// Submit posts the form to the upload endpoint using the given cookie file
// and disambiguates the response. A non-200 status fails with a submission
// error; a 200 whose page cannot be disambiguated still succeeds, carrying
// the landing URL instead of a direct link.
func (c *Client) Submit(ctx context.Context, f form.Form, cookiesPath string) (Result, error) {
	cookies, err := LoadCookies(cookiesPath)
	if err != nil {
		return Result{}, err
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for _, name := range f.FieldNames() {
		value := f.Fields[name]
		if value.IsFile() {
			part, err := writer.CreateFormFile(name, value.FileName)
			if err != nil {
				return Result{}, fmt.Errorf("form part %s: %w", name, err)
			}
			if _, err := part.Write(value.Data); err != nil {
				return Result{}, fmt.Errorf("form part %s: %w", name, err)
			}
			continue
		}
		if err := writer.WriteField(name, value.Text); err != nil {
			return Result{}, fmt.Errorf("form field %s: %w", name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return Result{}, fmt.Errorf("build submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload.php", body)
	if err != nil {
		return Result{}, fmt.Errorf("build submission: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, services.Wrap(services.ErrSubmission, "tracker", "submit", "request failed", err)
	}
	defer resp.Body.Close()

	result := Result{Status: resp.StatusCode, ResponseURL: resp.Request.URL.String()}
	if resp.StatusCode != http.StatusOK {
		return result, services.Wrap(services.ErrSubmission, "tracker", "submit",
			fmt.Sprintf("endpoint responded %s; verify on the site that no malformed torrent was created", resp.Status), nil)
	}

	page, err := io.ReadAll(resp.Body)
	if err != nil {
		// The submission itself succeeded; fall back to the landing URL.
		c.logger.Warn("could not read response page", "error", err)
		return result, nil
	}

	link, err := ExtractDownloadLink(string(page), c.baseURL, timeNow())
	if err != nil {
		c.logger.Warn("falling back to response URL", "reason", err)
		return result, nil
	}
	result.DownloadURL = link
	return result, nil
}
