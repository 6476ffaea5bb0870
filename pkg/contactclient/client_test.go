package contactclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/pkg/contactclient"
)

func simpleRequest() *domain.ContactRequest {
	return &domain.ContactRequest{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Message: "Hello",
	}
}

func TestSendContactEmailSuccess(t *testing.T) {
	var received domain.ContactRequest
	var idempotencyKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		idempotencyKey = r.Header.Get("Idempotency-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		json.NewEncoder(w).Encode(domain.DeliveryResult{
			Success: true, Message: "Emails sent successfully!", FormType: "simple", EmailID: "e1",
		})
	}))
	defer server.Close()

	client := contactclient.NewClient(server.URL)
	result, err := client.SendContactEmail(context.Background(), simpleRequest())
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "e1", result.EmailID)
	assert.Equal(t, "Jane Doe", received.Name)
	assert.NotEmpty(t, idempotencyKey, "every attempt carries an idempotency key")
}

func TestSendContactEmailCustomServiceGating(t *testing.T) {
	var received domain.ContactRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&received)
		json.NewEncoder(w).Encode(domain.DeliveryResult{Success: true})
	}))
	defer server.Close()
	client := contactclient.NewClient(server.URL)

	t.Run("Strips customService when service is not other", func(t *testing.T) {
		req := simpleRequest()
		req.Service = &domain.Option{Value: "web", Label: "Web Development"}
		req.CustomService = "should not travel"
		_, err := client.SendContactEmail(context.Background(), req)
		require.NoError(t, err)
		assert.Empty(t, received.CustomService)
	})

	t.Run("Forwards customService when service is other", func(t *testing.T) {
		req := simpleRequest()
		req.Service = &domain.Option{Value: "other", Label: "Other"}
		req.CustomService = "Custom thing"
		_, err := client.SendContactEmail(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "Custom thing", received.CustomService)
	})
}

func TestSendContactEmailClassification(t *testing.T) {
	t.Run("404 means the API is not deployed", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		defer server.Close()

		client := contactclient.NewClient(server.URL)
		_, err := client.SendContactEmail(context.Background(), simpleRequest())

		var apiErr *contactclient.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, contactclient.KindAPIUnavailable, apiErr.Kind)
	})

	t.Run("Typed server kinds survive the round trip", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]any{
				"success": false,
				"kind":    "CONFIG_ERROR",
				"error":   "Server configuration error",
				"message": "Email service is not properly configured.",
			})
		}))
		defer server.Close()

		client := contactclient.NewClient(server.URL)
		_, err := client.SendContactEmail(context.Background(), simpleRequest())

		var apiErr *contactclient.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, contactclient.KindConfig, apiErr.Kind)
		assert.Equal(t, "Email service is not properly configured.", apiErr.Message)
	})

	t.Run("Unknown kinds degrade to transient", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client := contactclient.NewClient(server.URL)
		_, err := client.SendContactEmail(context.Background(), simpleRequest())

		var apiErr *contactclient.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, contactclient.KindTransient, apiErr.Kind)
	})

	t.Run("Network failure is transient", func(t *testing.T) {
		client := contactclient.NewClient("http://127.0.0.1:1")
		_, err := client.SendContactEmail(context.Background(), simpleRequest())

		var apiErr *contactclient.APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, contactclient.KindTransient, apiErr.Kind)
	})
}
