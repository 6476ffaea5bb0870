package email

import (
	"bytes"
	"html/template"

	"go-portfolio-backend/internal/domain"
)

// templateData flattens a submission for the HTML templates. Service carries
// the already-resolved label (custom service text when "other" was picked).
type templateData struct {
	Name    string
	Email   string
	Message string
	Company string
	Service string
	Budget  string
}

func newTemplateData(req *domain.ContactRequest) templateData {
	data := templateData{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
		Company: req.Company,
		Service: req.ServiceLabel(),
	}
	if req.Budget != nil {
		data.Budget = req.Budget.Label
	}
	return data
}

const notificationSimpleTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>New Contact Message</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #1a1a2e; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .field { margin-bottom: 15px; }
        .label { font-weight: bold; color: #555; }
        .message-box { background: white; padding: 15px; border-left: 4px solid #1a1a2e; margin-top: 10px; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>New Contact Message</h1>
        </div>
        <div class="content">
            <div class="field">
                <div class="label">From:</div>
                <div>{{.Name}} ({{.Email}})</div>
            </div>
            <div class="field">
                <div class="label">Message:</div>
                <div class="message-box">{{.Message}}</div>
            </div>
        </div>
        <div class="footer">
            <p>Sent from the portfolio contact form.</p>
            <p>Reply directly to this email to answer {{.Name}}.</p>
        </div>
    </div>
</body>
</html>`

const notificationDetailedTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>New Business Inquiry</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #16213e; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .field { margin-bottom: 15px; }
        .label { font-weight: bold; color: #555; }
        .message-box { background: white; padding: 15px; border-left: 4px solid #16213e; margin-top: 10px; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>New Business Inquiry</h1>
        </div>
        <div class="content">
            <div class="field">
                <div class="label">From:</div>
                <div>{{.Name}} ({{.Email}})</div>
            </div>
            {{if .Company}}<div class="field">
                <div class="label">Company:</div>
                <div>{{.Company}}</div>
            </div>{{end}}
            {{if .Service}}<div class="field">
                <div class="label">Service:</div>
                <div>{{.Service}}</div>
            </div>{{end}}
            {{if .Budget}}<div class="field">
                <div class="label">Budget:</div>
                <div>{{.Budget}}</div>
            </div>{{end}}
            <div class="field">
                <div class="label">Project details:</div>
                <div class="message-box">{{.Message}}</div>
            </div>
        </div>
        <div class="footer">
            <p>Sent from the portfolio contact form.</p>
            <p>Reply directly to this email to answer {{.Name}}.</p>
        </div>
    </div>
</body>
</html>`

const autoReplySimpleTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Thanks for reaching out</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #1a1a2e;">Hi {{.Name}},</h2>
        <p>Thanks for getting in touch. Your message landed safely and I read
        everything that comes through here personally.</p>
        <p>I usually reply within one or two business days.</p>
        <div style="background: #f9f9f9; padding: 15px; border-left: 4px solid #1a1a2e;">
            <p style="margin: 0; color: #555;">Your message:</p>
            <p style="margin: 10px 0 0;">{{.Message}}</p>
        </div>
        <p style="color: #7f8c8d; font-size: 0.8em; margin-top: 20px;">
            This is an automatic acknowledgement; no need to reply to it.
        </p>
    </div>
</body>
</html>`

const autoReplyDetailedTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Thank you for your inquiry</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #16213e;">Hi {{.Name}},</h2>
        <p>Thank you for your inquiry{{if .Service}} about <strong>{{.Service}}</strong>{{end}}.
        I review every project request personally and will get back to you
        within one or two business days with next steps.</p>
        <div style="background: #f9f9f9; padding: 15px; border-left: 4px solid #16213e;">
            <p style="margin: 0; color: #555;">What you sent:</p>
            {{if .Company}}<p style="margin: 10px 0 0;">Company: {{.Company}}</p>{{end}}
            {{if .Service}}<p style="margin: 10px 0 0;">Service: {{.Service}}</p>{{end}}
            {{if .Budget}}<p style="margin: 10px 0 0;">Budget: {{.Budget}}</p>{{end}}
            <p style="margin: 10px 0 0;">{{.Message}}</p>
        </div>
        <p style="color: #7f8c8d; font-size: 0.8em; margin-top: 20px;">
            This is an automatic acknowledgement; no need to reply to it.
        </p>
    </div>
</body>
</html>`

// copyBannerTemplate wraps an already-rendered notification body for the
// secondary recipient.
const copyBannerTemplate = `<div style="background: #fff3cd; border: 1px solid #ffc107; padding: 12px; margin-bottom: 16px; font-family: Arial, sans-serif; color: #664d03;">
    This is a copy of a contact notification delivered to the primary inbox.
</div>
{{.Body}}`

var (
	notificationSimple   = template.Must(template.New("notification_simple").Parse(notificationSimpleTemplate))
	notificationDetailed = template.Must(template.New("notification_detailed").Parse(notificationDetailedTemplate))
	autoReplySimple      = template.Must(template.New("auto_reply_simple").Parse(autoReplySimpleTemplate))
	autoReplyDetailed    = template.Must(template.New("auto_reply_detailed").Parse(autoReplyDetailedTemplate))
	copyBanner           = template.Must(template.New("copy_banner").Parse(copyBannerTemplate))
)

func renderNotification(req *domain.ContactRequest) (string, error) {
	tmpl := notificationSimple
	if req.IsDetailed() {
		tmpl = notificationDetailed
	}
	return render(tmpl, newTemplateData(req))
}

func renderAutoReply(req *domain.ContactRequest) (string, error) {
	tmpl := autoReplySimple
	if req.IsDetailed() {
		tmpl = autoReplyDetailed
	}
	return render(tmpl, newTemplateData(req))
}

func wrapCopyBanner(body string) (string, error) {
	return render(copyBanner, struct{ Body template.HTML }{Body: template.HTML(body)})
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
