package usecase

import (
	"context"
	"strings"

	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/pkg/apperror"
	"go-portfolio-backend/pkg/logger"
	"go-portfolio-backend/pkg/validation"
)

type contactUsecase struct {
	deliverer domain.EmailDeliverer
}

// NewContactUsecase creates a new contact usecase
func NewContactUsecase(deliverer domain.EmailDeliverer) domain.ContactUsecase {
	return &contactUsecase{
		deliverer: deliverer,
	}
}

// SendContactMessage re-validates the submission server-side (this layer is
// authoritative; the client validator is advisory) and delivers it.
func (uc *contactUsecase) SendContactMessage(ctx context.Context, req *domain.ContactRequest) (*domain.DeliveryResult, error) {
	// Configuration is checked before validation so a misconfigured server
	// never issues provider calls, per the endpoint contract.
	if !uc.deliverer.IsConfigured() {
		return nil, apperror.Config("Email service is not properly configured.", nil)
	}

	// The service-selection rule is a client-side form concern. The server
	// accepts any business inquiry and falls back to a generic subject when
	// no service was picked.
	result := validation.ValidateContact(req, false)
	if !result.IsValid {
		return nil, apperror.BadRequest(result.FirstError())
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)

	delivery, err := uc.deliverer.SendContactEmails(ctx, req)
	if err != nil {
		// Full provider detail goes to the log only; the response body stays
		// generic and stable.
		logger.Log.Error("contact delivery failed", "error", err, "form_type", req.FormType())
		return nil, apperror.Internal(
			"An error occurred while sending your message. Please try again later.", err)
	}

	logger.Log.Info("contact message delivered",
		"form_type", delivery.FormType,
		"email_id", delivery.EmailID,
		"auto_reply_id", delivery.AutoReplyID,
		"copy_delivered", delivery.Debug.CopyDelivered)

	return delivery, nil
}
