package contactclient

import (
	"net/url"
	"strings"

	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/pkg/email"
)

// BuildMailtoLink builds the manual fallback URI: a mail-client link
// pre-filled with the retained submission so the visitor can deliver the
// message themselves when the API channel is down. The subject matches what
// the server would have used.
func BuildMailtoLink(to string, req *domain.ContactRequest, detailed bool) string {
	var body strings.Builder
	body.WriteString("Name: " + req.Name + "\n")
	body.WriteString("Email: " + req.Email + "\n")
	if detailed {
		if req.Company != "" {
			body.WriteString("Company: " + req.Company + "\n")
		}
		if service := req.ServiceLabel(); service != "" {
			body.WriteString("Service: " + service + "\n")
		}
		if req.Budget != nil && req.Budget.Label != "" {
			body.WriteString("Budget: " + req.Budget.Label + "\n")
		}
	}
	body.WriteString("\n")
	body.WriteString(req.Message)

	return "mailto:" + to +
		"?subject=" + mailtoEscape(email.Subject(req)) +
		"&body=" + mailtoEscape(body.String())
}

// mailtoEscape percent-encodes a mailto component. QueryEscape would emit
// '+' for spaces, which mail clients render literally.
func mailtoEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
