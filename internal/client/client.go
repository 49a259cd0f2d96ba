// Package client talks to the clinic directory HTTP API. HTTPClient is the
// data source of the terminal browser and the list and add commands.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"clinic-directory/internal/converter"
	"clinic-directory/internal/directory"
	"clinic-directory/internal/domain/entity"
)

const (
	// DefaultTimeout is used when no timeout is configured
	DefaultTimeout = 10 * time.Second

	// MaxResponseSize caps how much of a response body is read
	MaxResponseSize = 10 * 1024 * 1024

	UserAgent = "clinic-directory-client/1.0"
)

var _ directory.ClinicSource = (*HTTPClient)(nil)

// APIError is a non-2xx reply from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("api returned status %d: %s", e.StatusCode, e.Message)
}

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

func NewClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchClinics lists clinics, narrowed server side by every non-empty field of filter.
func (c *HTTPClient) FetchClinics(ctx context.Context, filter entity.ClinicFilter) ([]entity.Clinic, error) {
	parsed, err := url.Parse(c.baseURL + "/clinics")
	if err != nil {
		return nil, err
	}

	query := parsed.Query()
	setIfNotEmpty(query, "clinic_code", filter.ClinicCode)
	setIfNotEmpty(query, "name", filter.Name)
	setIfNotEmpty(query, "doctor_name", filter.DoctorName)
	setIfNotEmpty(query, "address", filter.Address)
	setIfNotEmpty(query, "phone", filter.Phone)
	if len(filter.Services) > 0 {
		query.Set("services", strings.Join(filter.Services, ","))
	}
	parsed.RawQuery = query.Encode()

	return c.getClinics(ctx, parsed.String())
}

// SearchClinics runs the API's free-text search.
func (c *HTTPClient) SearchClinics(ctx context.Context, term string) ([]entity.Clinic, error) {
	endpoint := fmt.Sprintf("%s/clinics/search?q=%s", c.baseURL, url.QueryEscape(term))
	return c.getClinics(ctx, endpoint)
}

// AddClinic registers clinic and returns the record the API stored.
func (c *HTTPClient) AddClinic(ctx context.Context, clinic *entity.Clinic) (*entity.Clinic, error) {
	if clinic == nil {
		return nil, fmt.Errorf("clinic is required")
	}

	var rec converter.ClinicRecord
	if err := c.doJSON(ctx, http.MethodPost, c.baseURL+"/clinics", converter.ClinicToCreateRequest(clinic), &rec); err != nil {
		return nil, err
	}
	created := converter.RecordToClinic(&rec)
	return &created, nil
}

func (c *HTTPClient) getClinics(ctx context.Context, endpoint string) ([]entity.Clinic, error) {
	var list struct {
		Clinics json.RawMessage `json:"clinics"`
	}
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, &list); err != nil {
		return nil, err
	}
	if len(list.Clinics) == 0 || string(list.Clinics) == "null" {
		return []entity.Clinic{}, nil
	}
	return converter.DecodeClinics(list.Clinics)
}

// doJSON sends payload as JSON and decodes the data of the reply envelope into out.
func (c *HTTPClient) doJSON(ctx context.Context, method, endpoint string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if decodeErr == nil {
			apiErr.Message = env.Message
		}
		return apiErr
	}
	if decodeErr != nil {
		return fmt.Errorf("failed to decode response: %w", decodeErr)
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}
	return nil
}

func setIfNotEmpty(query url.Values, name, value string) {
	if value = strings.TrimSpace(value); value != "" {
		query.Set(name, value)
	}
}
