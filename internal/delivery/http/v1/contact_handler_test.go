package v1_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-portfolio-backend/config"
	v1 "go-portfolio-backend/internal/delivery/http/v1"
	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/pkg/apperror"
)

// stubUsecase answers with a canned result or error and counts invocations.
type stubUsecase struct {
	result *domain.DeliveryResult
	err    error
	calls  int
}

func (s *stubUsecase) SendContactMessage(_ context.Context, _ *domain.ContactRequest) (*domain.DeliveryResult, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func testRouter(uc domain.ContactUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return v1.NewRouter(v1.RouterDeps{
		ContactUC: uc,
		Config: &config.Config{
			RateLimitWindowSeconds:    60,
			RateLimitContactThreshold: 1000,
			IdempotencyRetention:      time.Minute,
		},
	})
}

func postJSON(router *gin.Engine, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestContactEndpointMethodNotAllowed(t *testing.T) {
	router := testRouter(&stubUsecase{})

	req := httptest.NewRequest(http.MethodGet, "/api/contact", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Method not allowed", body["error"])
}

func TestContactEndpointSuccess(t *testing.T) {
	uc := &stubUsecase{result: &domain.DeliveryResult{
		Success:     true,
		Message:     "Emails sent successfully!",
		FormType:    domain.FormTypeSimple,
		EmailID:     "e1",
		AutoReplyID: "a1",
	}}
	router := testRouter(uc)

	w := postJSON(router, `{"name":"Jane Doe","email":"jane@example.com","message":"Hello"}`, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Emails sent successfully!", body["message"])
	assert.Equal(t, "simple", body["formType"])
	assert.Equal(t, "e1", body["emailId"])
	assert.Equal(t, "a1", body["autoReplyId"])
	assert.Contains(t, body, "debug")
}

func TestContactEndpointValidationError(t *testing.T) {
	uc := &stubUsecase{err: apperror.BadRequest("Name is required")}
	router := testRouter(uc)

	w := postJSON(router, `{"email":"jane@example.com","message":"Hello"}`, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Validation error", body["error"])
	assert.Equal(t, "Name is required", body["message"])
	assert.Equal(t, "VALIDATION", body["kind"])
}

func TestContactEndpointMalformedBody(t *testing.T) {
	router := testRouter(&stubUsecase{})
	w := postJSON(router, `{"name":`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestContactEndpointConfigurationError(t *testing.T) {
	uc := &stubUsecase{err: apperror.Config("Email service is not properly configured.", nil)}
	router := testRouter(uc)

	w := postJSON(router, `{"name":"Jane Doe","email":"jane@example.com","message":"Hello"}`, nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Server configuration error", body["error"])
	assert.Equal(t, "Email service is not properly configured.", body["message"])
	assert.Equal(t, "CONFIG_ERROR", body["kind"])
}

func TestContactEndpointDeliveryFailure(t *testing.T) {
	uc := &stubUsecase{err: apperror.Internal(
		"An error occurred while sending your message. Please try again later.", nil)}
	router := testRouter(uc)

	w := postJSON(router, `{"name":"Jane Doe","email":"jane@example.com","message":"Hello"}`, nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Failed to send email", body["error"])
	assert.Equal(t, "TRANSIENT", body["kind"])
}

func TestContactEndpointIdempotencyReplay(t *testing.T) {
	uc := &stubUsecase{result: &domain.DeliveryResult{
		Success:  true,
		Message:  "Emails sent successfully!",
		FormType: domain.FormTypeSimple,
		EmailID:  "e1",
	}}
	router := testRouter(uc)

	payload := `{"name":"Jane Doe","email":"jane@example.com","message":"Hello"}`
	headers := map[string]string{"Idempotency-Key": "11111111-2222-3333-4444-555555555555"}

	first := postJSON(router, payload, headers)
	second := postJSON(router, payload, headers)

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get("X-Idempotent-Replay"))
	assert.Equal(t, 1, uc.calls)
}

func TestHealthEndpoint(t *testing.T) {
	router := testRouter(&stubUsecase{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
