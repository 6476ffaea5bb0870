package domain

import "context"

// Option represents a value/label pair coming from a select control on the
// contact form (service type, budget range).
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ContactRequest represents a contact form submission.
//
// Name, Email and Message are always required. The remaining fields are only
// sent by the detailed (business inquiry) variant of the form.
type ContactRequest struct {
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Message       string  `json:"message"`
	Company       string  `json:"company,omitempty"`
	Service       *Option `json:"service,omitempty"`
	CustomService string  `json:"customService,omitempty"`
	Budget        *Option `json:"budget,omitempty"`
	OtherService  string  `json:"otherService,omitempty"`
}

// IsDetailed reports whether the submission is a business inquiry. A request
// is detailed iff any of the business fields is present; this selects the
// email templates and the subject line.
func (r *ContactRequest) IsDetailed() bool {
	return r.Company != "" || r.Service != nil || r.Budget != nil || r.OtherService != ""
}

// ServiceLabel returns the human-readable service description for templates
// and subject lines. When the visitor picked "other", the free-text service
// replaces the generic label.
func (r *ContactRequest) ServiceLabel() string {
	if r.Service != nil && r.Service.Value == "other" {
		if r.CustomService != "" {
			return r.CustomService
		}
		if r.OtherService != "" {
			return r.OtherService
		}
	}
	if r.Service != nil && r.Service.Label != "" {
		return r.Service.Label
	}
	if r.OtherService != "" {
		return r.OtherService
	}
	return ""
}

// Form type values reported back to the client.
const (
	FormTypeSimple   = "simple"
	FormTypeDetailed = "detailed"
)

// FormType classifies the submission for the response payload.
func (r *ContactRequest) FormType() string {
	if r.IsDetailed() {
		return FormTypeDetailed
	}
	return FormTypeSimple
}

// DeliveryDebug carries non-essential diagnostics about a delivery attempt.
type DeliveryDebug struct {
	CopyRequested bool   `json:"copyRequested"`
	CopyDelivered bool   `json:"copyDelivered"`
	CopySkipped   string `json:"copySkipped,omitempty"`
}

// DeliveryResult is the outcome of one delivery attempt. It is created fresh
// per submission and never persisted.
type DeliveryResult struct {
	Success     bool          `json:"success"`
	Message     string        `json:"message"`
	FormType    string        `json:"formType"`
	EmailID     string        `json:"emailId,omitempty"`
	AutoReplyID string        `json:"autoReplyId,omitempty"`
	Debug       DeliveryDebug `json:"debug"`
}

// EmailDeliverer abstracts the transactional email provider integration.
type EmailDeliverer interface {
	// SendContactEmails dispatches the notification, the best-effort copy and
	// the auto-reply for one submission.
	SendContactEmails(ctx context.Context, req *ContactRequest) (*DeliveryResult, error)

	// IsConfigured reports whether the provider credentials are resolvable.
	IsConfigured() bool
}

// ContactUsecase defines the interface for contact form operations.
type ContactUsecase interface {
	// SendContactMessage validates and delivers a contact form submission.
	SendContactMessage(ctx context.Context, req *ContactRequest) (*DeliveryResult, error)
}
