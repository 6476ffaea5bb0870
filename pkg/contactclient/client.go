package contactclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"go-portfolio-backend/internal/domain"
)

// ErrorKind mirrors the server's typed error classification so callers never
// branch on message text.
type ErrorKind string

const (
	KindAPIUnavailable ErrorKind = "API_UNAVAILABLE"
	KindConfig         ErrorKind = "CONFIG_ERROR"
	KindValidation     ErrorKind = "VALIDATION"
	KindTransient      ErrorKind = "TRANSIENT"
)

// APIError is a classified failure of a contact submission call.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("contact api: %s (%s)", e.Message, e.Kind)
}

// DefaultTimeout bounds one submission call end to end.
const DefaultTimeout = 30 * time.Second

// Client wraps the POST /api/contact endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a contact API client for the given base URL
// (e.g. "https://api.devfolio.dev").
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// NewClientWithHTTP creates a client using a caller-provided http.Client.
func NewClientWithHTTP(baseURL string, httpClient *http.Client) *Client {
	return &Client{baseURL: baseURL, httpClient: httpClient}
}

// errorEnvelope is the error response shape of the API.
type errorEnvelope struct {
	Success bool   `json:"success"`
	Kind    string `json:"kind"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// SendContactEmail submits one contact payload. The custom service text is
// only forwarded when the "other" service was picked; every attempt carries a
// fresh idempotency key so transport-level retries cannot double-send.
func (c *Client) SendContactEmail(ctx context.Context, req *domain.ContactRequest) (*domain.DeliveryResult, error) {
	payload := *req
	if payload.Service == nil || payload.Service.Value != "other" {
		payload.CustomService = ""
	}

	body, err := json.Marshal(&payload)
	if err != nil {
		return nil, &APIError{Kind: KindTransient, Message: "could not encode submission"}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/contact", bytes.NewReader(body))
	if err != nil {
		return nil, &APIError{Kind: KindTransient, Message: "could not build request"}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Idempotency-Key", uuid.NewString())

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &APIError{Kind: KindTransient, Message: "could not reach the contact service"}
	}
	defer resp.Body.Close()

	// A 404 means the API is not deployed at all (typically local dev
	// without the backend running), which deserves its own guidance.
	if resp.StatusCode == http.StatusNotFound {
		return nil, &APIError{
			Kind:       KindAPIUnavailable,
			StatusCode: resp.StatusCode,
			Message:    "contact API is not available",
		}
	}

	if resp.StatusCode == http.StatusOK {
		var result domain.DeliveryResult
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return nil, &APIError{Kind: KindTransient, StatusCode: resp.StatusCode, Message: "malformed response"}
		}
		if !result.Success {
			return nil, &APIError{Kind: KindTransient, StatusCode: resp.StatusCode, Message: result.Message}
		}
		return &result, nil
	}

	var envelope errorEnvelope
	_ = json.NewDecoder(resp.Body).Decode(&envelope)
	return nil, &APIError{
		Kind:       classifyKind(envelope.Kind),
		StatusCode: resp.StatusCode,
		Message:    errorMessage(envelope, resp.StatusCode),
	}
}

func classifyKind(kind string) ErrorKind {
	switch ErrorKind(kind) {
	case KindConfig, KindValidation, KindAPIUnavailable:
		return ErrorKind(kind)
	default:
		return KindTransient
	}
}

func errorMessage(envelope errorEnvelope, status int) string {
	if envelope.Message != "" {
		return envelope.Message
	}
	if envelope.Error != "" {
		return envelope.Error
	}
	return fmt.Sprintf("request failed with status %d", status)
}
