package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/internal/usecase"
	"go-portfolio-backend/pkg/apperror"
	"go-portfolio-backend/pkg/validation"
)

// Mock Email Deliverer
type MockDeliverer struct {
	mock.Mock
}

func (m *MockDeliverer) SendContactEmails(ctx context.Context, req *domain.ContactRequest) (*domain.DeliveryResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeliveryResult), args.Error(1)
}

func (m *MockDeliverer) IsConfigured() bool {
	return m.Called().Bool(0)
}

func validRequest() *domain.ContactRequest {
	return &domain.ContactRequest{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Message: "Hello",
	}
}

func TestSendContactMessageConfiguration(t *testing.T) {
	deliverer := new(MockDeliverer)
	deliverer.On("IsConfigured").Return(false)
	uc := usecase.NewContactUsecase(deliverer)

	_, err := uc.SendContactMessage(context.Background(), validRequest())
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.KindConfig, appErr.Kind)
	assert.Equal(t, http.StatusInternalServerError, appErr.Code)
	assert.Equal(t, "Email service is not properly configured.", appErr.Message)
	deliverer.AssertNotCalled(t, "SendContactEmails", mock.Anything, mock.Anything)
}

func TestSendContactMessageValidation(t *testing.T) {
	deliverer := new(MockDeliverer)
	deliverer.On("IsConfigured").Return(true)
	uc := usecase.NewContactUsecase(deliverer)

	t.Run("Should reject a missing name without a provider call", func(t *testing.T) {
		req := validRequest()
		req.Name = ""
		_, err := uc.SendContactMessage(context.Background(), req)

		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.KindValidation, appErr.Kind)
		assert.Equal(t, http.StatusBadRequest, appErr.Code)
		assert.Equal(t, validation.ErrNameRequired, appErr.Message)
	})

	t.Run("Should reject an overlong message", func(t *testing.T) {
		req := validRequest()
		for len(req.Message) <= validation.MaxMessageLength {
			req.Message += req.Message
		}
		_, err := uc.SendContactMessage(context.Background(), req)

		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, validation.ErrMessageTooLong, appErr.Message)
	})

	deliverer.AssertNotCalled(t, "SendContactEmails", mock.Anything, mock.Anything)
}

func TestSendContactMessageDelivery(t *testing.T) {
	t.Run("Should trim fields and return the delivery result", func(t *testing.T) {
		deliverer := new(MockDeliverer)
		deliverer.On("IsConfigured").Return(true)
		expected := &domain.DeliveryResult{Success: true, FormType: domain.FormTypeSimple, EmailID: "e1", AutoReplyID: "a1"}
		deliverer.On("SendContactEmails", mock.Anything, mock.MatchedBy(func(req *domain.ContactRequest) bool {
			return req.Name == "Jane Doe" && req.Email == "jane@example.com"
		})).Return(expected, nil)
		uc := usecase.NewContactUsecase(deliverer)

		req := validRequest()
		req.Name = "  Jane Doe "
		req.Email = " jane@example.com "
		result, err := uc.SendContactMessage(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, expected, result)
		deliverer.AssertExpectations(t)
	})

	t.Run("Should deliver a business inquiry without a selected service", func(t *testing.T) {
		deliverer := new(MockDeliverer)
		deliverer.On("IsConfigured").Return(true)
		expected := &domain.DeliveryResult{Success: true, FormType: domain.FormTypeDetailed}
		deliverer.On("SendContactEmails", mock.Anything, mock.MatchedBy(func(req *domain.ContactRequest) bool {
			return req.Company == "Acme" && req.Service == nil
		})).Return(expected, nil)
		uc := usecase.NewContactUsecase(deliverer)

		req := validRequest()
		req.Company = "Acme" // detailed, subject falls back to Project Consultation
		result, err := uc.SendContactMessage(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, expected, result)
		deliverer.AssertExpectations(t)
	})

	t.Run("Should wrap delivery failures as transient", func(t *testing.T) {
		deliverer := new(MockDeliverer)
		deliverer.On("IsConfigured").Return(true)
		deliverer.On("SendContactEmails", mock.Anything, mock.Anything).
			Return(nil, errors.New("provider down"))
		uc := usecase.NewContactUsecase(deliverer)

		_, err := uc.SendContactMessage(context.Background(), validRequest())

		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.KindTransient, appErr.Kind)
		assert.Equal(t, http.StatusInternalServerError, appErr.Code)
		// Internal detail stays out of the user-facing message
		assert.NotContains(t, appErr.Message, "provider down")
	})
}
