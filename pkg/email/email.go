package email

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/pkg/logger"
)

// Recipient is one delivery target with an explicit failure policy: when
// Required is false the send is best-effort and its failure is logged but
// never propagated to the caller.
type Recipient struct {
	Name     string
	Address  string
	Required bool
}

// Config holds the provider credentials and the per-recipient delivery
// policy for contact submissions.
type Config struct {
	APIKey      string
	SenderEmail string
	SenderName  string
	// Primary receives every contact notification.
	Primary Recipient
	// Copy optionally receives a best-effort duplicate of the notification.
	// Skipped when unset or equal to Primary.
	Copy Recipient
	// AutoReplyRequired controls whether a failed acknowledgement to the
	// submitter fails the whole delivery.
	AutoReplyRequired bool
	// Timeout bounds the combined provider calls for one submission so a
	// hung provider cannot pin the request.
	Timeout time.Duration
}

// Sender abstracts the SendGrid client for testability.
type Sender interface {
	Send(ctx context.Context, message *mail.SGMailV3) (*rest.Response, error)
}

type sendgridSender struct {
	client *sendgrid.Client
}

func (s sendgridSender) Send(ctx context.Context, message *mail.SGMailV3) (*rest.Response, error) {
	return s.client.SendWithContext(ctx, message)
}

// Service delivers contact submissions through SendGrid.
type Service struct {
	cfg  Config
	send Sender
}

// NewService creates the delivery service. The SendGrid client is only
// constructed when an API key is present; without one the service reports
// itself unconfigured and performs no provider calls.
func NewService(cfg Config) *Service {
	svc := &Service{cfg: cfg}
	if cfg.APIKey != "" {
		svc.send = sendgridSender{client: sendgrid.NewSendClient(cfg.APIKey)}
	}
	return svc
}

// NewServiceWithSender creates the service with a custom Sender.
func NewServiceWithSender(cfg Config, sender Sender) *Service {
	return &Service{cfg: cfg, send: sender}
}

// IsConfigured reports whether the service can reach the provider.
func (s *Service) IsConfigured() bool {
	return s.send != nil && s.cfg.SenderEmail != "" && s.cfg.Primary.Address != ""
}

// SendContactEmails dispatches up to three provider calls for one submission:
// the notification to the primary recipient, a best-effort copy, and the
// auto-reply to the submitter. Calls are sequential so failure policy stays
// per-recipient: a required send that fails aborts the attempt, a best-effort
// one is logged and skipped.
func (s *Service) SendContactEmails(ctx context.Context, req *domain.ContactRequest) (*domain.DeliveryResult, error) {
	if !s.IsConfigured() {
		return nil, fmt.Errorf("email service is not configured")
	}

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	subject := Subject(req)
	notification, err := renderNotification(req)
	if err != nil {
		return nil, fmt.Errorf("render notification: %w", err)
	}
	autoReply, err := renderAutoReply(req)
	if err != nil {
		return nil, fmt.Errorf("render auto-reply: %w", err)
	}

	// Primary notification, reply-to set to the submitter so a plain reply
	// in the inbox goes back to them.
	emailID, err := s.dispatch(ctx, s.cfg.Primary, subject, notification, req.Email)
	if err != nil {
		if s.cfg.Primary.Required {
			return nil, fmt.Errorf("notification send: %w", err)
		}
		logger.Log.Warn("optional primary notification failed", "error", err)
	}

	debug := domain.DeliveryDebug{}
	if s.cfg.Copy.Address != "" {
		debug.CopyRequested = true
		if s.cfg.Copy.Address == s.cfg.Primary.Address {
			debug.CopySkipped = "copy address equals primary"
		} else {
			copyBody, renderErr := wrapCopyBanner(notification)
			if renderErr == nil {
				_, renderErr = s.dispatch(ctx, s.cfg.Copy, "[COPY] "+subject, copyBody, req.Email)
			}
			if renderErr != nil {
				if s.cfg.Copy.Required {
					return nil, fmt.Errorf("copy send: %w", renderErr)
				}
				logger.Log.Warn("best-effort copy send failed",
					"recipient", s.cfg.Copy.Address, "error", renderErr)
				debug.CopySkipped = "send failed"
			} else {
				debug.CopyDelivered = true
			}
		}
	}

	submitter := Recipient{Name: req.Name, Address: req.Email, Required: s.cfg.AutoReplyRequired}
	autoReplyID, err := s.dispatch(ctx, submitter, AutoReplySubject(req.IsDetailed()), autoReply, "")
	if err != nil {
		if s.cfg.AutoReplyRequired {
			return nil, fmt.Errorf("auto-reply send: %w", err)
		}
		logger.Log.Warn("optional auto-reply failed", "recipient", req.Email, "error", err)
	}

	return &domain.DeliveryResult{
		Success:     true,
		Message:     "Emails sent successfully!",
		FormType:    req.FormType(),
		EmailID:     emailID,
		AutoReplyID: autoReplyID,
		Debug:       debug,
	}, nil
}

// dispatch sends one message and returns the provider-assigned message ID.
func (s *Service) dispatch(ctx context.Context, to Recipient, subject, htmlBody, replyTo string) (string, error) {
	from := mail.NewEmail(s.cfg.SenderName, s.cfg.SenderEmail)
	message := mail.NewV3MailInit(from, subject, mail.NewEmail(to.Name, to.Address),
		mail.NewContent("text/html", htmlBody))
	if replyTo != "" {
		message.SetReplyTo(mail.NewEmail("", replyTo))
	}

	resp, err := s.send.Send(ctx, message)
	if err != nil {
		return "", fmt.Errorf("provider call failed: %w", err)
	}
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("provider rejected send (status %d): %s", resp.StatusCode, resp.Body)
	}
	return messageID(resp), nil
}

// messageID extracts the provider-assigned identifier from the response.
func messageID(resp *rest.Response) string {
	if resp == nil {
		return ""
	}
	for header, values := range resp.Headers {
		if header == "X-Message-Id" && len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

// Subject builds the notification subject line from the submission type.
func Subject(req *domain.ContactRequest) string {
	if !req.IsDetailed() {
		return fmt.Sprintf("Portfolio Contact: Message from %s", req.Name)
	}
	service := req.ServiceLabel()
	if service == "" {
		service = "Project Consultation"
	}
	subject := fmt.Sprintf("Business Inquiry: %s - %s", service, req.Name)
	if req.Company != "" {
		subject += fmt.Sprintf(" (%s)", req.Company)
	}
	return subject
}

// AutoReplySubject builds the acknowledgement subject line.
func AutoReplySubject(detailed bool) string {
	if detailed {
		return "Thank you for your inquiry - I'll be in touch soon"
	}
	return "Thanks for reaching out!"
}
