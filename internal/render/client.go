// Package render implements the HTTP client for the card rendering
// backend. The backend is treated as an opaque service: it accepts render
// requests and hands back asset URLs.
package render

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrMissingAPIKey indicates the client was constructed without credentials.
var ErrMissingAPIKey = errors.New("render: api key is required")

// apiKeyHeader carries the static internal key on every request.
const apiKeyHeader = "X-Internal-Key"

// Options configures the rendering backend client.
type Options struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// Client performs HTTP calls against the rendering backend.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// InitiateResult is the backend's answer to a new render request: the
// numeric row identifier plus the human-readable shareable identifier.
type InitiateResult struct {
	RemoteID   int64  `json:"remoteId"`
	ExtendedID string `json:"extendedId"`
}

// FinalizeResult carries the front asset URLs. At least one orientation is
// always populated on success.
type FinalizeResult struct {
	FrontHorizontalURL string `json:"frontHorizontalUrl"`
	FrontVerticalURL   string `json:"frontVerticalUrl"`
}

// AnnotateResult carries the back asset URLs, rendered either with the
// supplied note or with the default back design.
type AnnotateResult struct {
	BackHorizontalURL string `json:"backHorizontalUrl"`
	BackVerticalURL   string `json:"backVerticalUrl"`
	HasNote           bool   `json:"hasNote"`
}

// Record is the full stored artifact as returned by retrieve.
type Record struct {
	RemoteID           int64     `json:"remoteId"`
	ExtendedID         string    `json:"extendedId"`
	ColorValue         string    `json:"colorValue"`
	DisplayName        string    `json:"displayName"`
	FrontHorizontalURL string    `json:"frontHorizontalUrl"`
	FrontVerticalURL   string    `json:"frontVerticalUrl"`
	BackHorizontalURL  string    `json:"backHorizontalUrl"`
	BackVerticalURL    string    `json:"backVerticalUrl"`
	NoteText           string    `json:"noteText"`
	HasNote            bool      `json:"hasNote"`
	CreatedAt          time.Time `json:"createdAt"`
}

// APIError is the backend's structured failure response.
type APIError struct {
	StatusCode int
	Detail     string `json:"detail"`
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("render: backend returned %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("render: backend returned %d", e.StatusCode)
}

// UserMessage returns the human-readable text to surface in the UI,
// falling back to a generic message when the backend gave no detail.
func (e *APIError) UserMessage() string {
	if e.Detail != "" {
		return e.Detail
	}
	return "The card workshop couldn't complete your request. Please try again."
}

// IsTimeout reports whether the failure looks like a backend timeout.
func (e *APIError) IsTimeout() bool {
	return e.StatusCode == http.StatusRequestTimeout || e.StatusCode == http.StatusGatewayTimeout
}

type initiateRequest struct {
	ColorValue string `json:"colorValue"`
}

type annotateRequest struct {
	NoteText *string `json:"noteText"`
}

// NewClient constructs a client with sane defaults.
func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 90 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		return nil, errors.New("render: base url is required")
	}
	return &Client{
		apiKey:     opts.APIKey,
		baseURL:    baseURL,
		httpClient: httpClient,
	}, nil
}

// Initiate asks the backend to open a new card record for the given color.
func (c *Client) Initiate(ctx context.Context, colorValue string) (InitiateResult, error) {
	var result InitiateResult
	body, err := json.Marshal(initiateRequest{ColorValue: colorValue})
	if err != nil {
		return result, fmt.Errorf("render: encode initiate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/initiate", bytes.NewReader(body))
	if err != nil {
		return result, fmt.Errorf("render: build initiate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if err := c.do(req, &result); err != nil {
		return InitiateResult{}, err
	}
	if result.RemoteID == 0 || result.ExtendedID == "" {
		return InitiateResult{}, errors.New("render: initiate response missing identifiers")
	}
	return result, nil
}

// Finalize uploads the cropped image and display name, producing the
// front-side assets for the record created by Initiate.
func (c *Client) Finalize(ctx context.Context, remoteID int64, image []byte, displayName string) (FinalizeResult, error) {
	var result FinalizeResult
	if remoteID == 0 {
		return result, errors.New("render: finalize requires a remote id")
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("image", "card.png")
	if err != nil {
		return result, fmt.Errorf("render: build finalize body: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return result, fmt.Errorf("render: write finalize image: %w", err)
	}
	if err := writer.WriteField("displayName", displayName); err != nil {
		return result, fmt.Errorf("render: write finalize name: %w", err)
	}
	if err := writer.Close(); err != nil {
		return result, fmt.Errorf("render: close finalize body: %w", err)
	}

	reqURL := fmt.Sprintf("%s/finalize/%d", c.baseURL, remoteID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, &buf)
	if err != nil {
		return result, fmt.Errorf("render: build finalize request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	if err := c.do(req, &result); err != nil {
		return FinalizeResult{}, err
	}
	if result.FrontHorizontalURL == "" && result.FrontVerticalURL == "" {
		return FinalizeResult{}, errors.New("render: finalize response carried no front assets")
	}
	return result, nil
}

// Annotate requests the back-side assets. A nil note renders the default
// back design instead of a personal message.
func (c *Client) Annotate(ctx context.Context, remoteID int64, note *string) (AnnotateResult, error) {
	var result AnnotateResult
	if remoteID == 0 {
		return result, errors.New("render: annotate requires a remote id")
	}
	body, err := json.Marshal(annotateRequest{NoteText: note})
	if err != nil {
		return result, fmt.Errorf("render: encode annotate request: %w", err)
	}

	reqURL := fmt.Sprintf("%s/annotate/%d", c.baseURL, remoteID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return result, fmt.Errorf("render: build annotate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if err := c.do(req, &result); err != nil {
		return AnnotateResult{}, err
	}
	return result, nil
}

// Retrieve fetches a previously generated card by its extended identifier.
func (c *Client) Retrieve(ctx context.Context, extendedID string) (Record, error) {
	var record Record
	if strings.TrimSpace(extendedID) == "" {
		return record, errors.New("render: retrieve requires an extended id")
	}

	reqURL := c.baseURL + "/retrieve/" + url.PathEscape(extendedID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return record, fmt.Errorf("render: build retrieve request: %w", err)
	}

	if err := c.do(req, &record); err != nil {
		return Record{}, err
	}
	return record, nil
}

// DownloadAsset fetches a rendered asset URL and writes it to destPath,
// creating parent directories as needed. Asset URLs are public, so the
// internal key header is deliberately omitted.
func (c *Client) DownloadAsset(ctx context.Context, assetURL, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, assetURL, nil)
	if err != nil {
		return fmt.Errorf("render: build download request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("render: download %s: %w", assetURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &APIError{StatusCode: resp.StatusCode, Detail: "asset not available"}
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return fmt.Errorf("render: create download dir: %w", err)
	}
	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("render: create %s: %w", destPath, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("render: write %s: %w", destPath, err)
	}
	return nil
}

// do executes a request with auth and decodes the JSON response into out.
func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("render: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("render: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		// Best effort: the backend sends {"detail": "..."} on failure.
		_ = json.Unmarshal(data, apiErr)
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("render: decode response: %w", err)
		}
	}
	return nil
}
