package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"rolereader/resume-matcher/internal/models"
)

const (
	DefaultBaseURL = "http://localhost:8000"
	httpTimeout    = 60 * time.Second
)

// APIError is a non-2xx response. Error returns the server's detail text
// unchanged so it can be shown to the user as is.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// Client talks to the resume matching service. Every call is a single
// attempt.
type Client struct {
	baseURL string
	http    *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: httpTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) CompareResume(ctx context.Context, resumeText, jobDescription string) (*models.ComparisonResponse, error) {
	body, err := json.Marshal(models.ComparisonRequest{
		ResumeText:     resumeText,
		JobDescription: jobDescription,
	})
	if err != nil {
		return nil, err
	}

	var resp models.ComparisonResponse
	if err := c.do(ctx, http.MethodPost, "/api/compare", bytes.NewReader(body), "application/json", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CompareResumeFile uploads a .pdf, .docx or .txt resume.
func (c *Client) CompareResumeFile(ctx context.Context, filename string, file io.Reader, jobDescription string) (*models.ComparisonResponse, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	part, err := w.CreateFormFile("resume", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to read resume file: %w", err)
	}
	if err := w.WriteField("job_description", jobDescription); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	var resp models.ComparisonResponse
	if err := c.do(ctx, http.MethodPost, "/api/compare/upload", &body, w.FormDataContentType(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetComparisonHistory(ctx context.Context, limit int) ([]models.ComparisonHistoryResponse, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))

	var history []models.ComparisonHistoryResponse
	if err := c.do(ctx, http.MethodGet, "/api/history?"+params.Encode(), nil, "", &history); err != nil {
		return nil, err
	}
	return history, nil
}

func (c *Client) GetComparison(ctx context.Context, id uint) (*models.ComparisonResponse, error) {
	var resp models.ComparisonResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/comparison/%d", id), nil, "", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) DeleteComparison(ctx context.Context, id uint) error {
	var resp models.MessageResponse
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/comparison/%d", id), nil, "", &resp)
}

func (c *Client) SimilarComparisons(ctx context.Context, id uint, limit int) ([]models.SimilarComparison, error) {
	var similar []models.SimilarComparison
	path := fmt.Sprintf("/api/comparison/%d/similar?limit=%d", id, limit)
	if err := c.do(ctx, http.MethodGet, path, nil, "", &similar); err != nil {
		return nil, err
	}
	return similar, nil
}

func (c *Client) HealthCheck(ctx context.Context) (*models.HealthResponse, error) {
	var resp models.HealthResponse
	if err := c.do(ctx, http.MethodGet, "/health", nil, "", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Detail: parseDetail(data)}
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// parseDetail pulls the detail field out of an error body. Non-string
// details are returned as raw JSON.
func parseDetail(data []byte) string {
	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(data, &body); err != nil || len(body.Detail) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(body.Detail, &s); err == nil {
		return s
	}
	if string(body.Detail) == "null" {
		return ""
	}
	return string(body.Detail)
}
