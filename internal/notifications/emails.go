// Package notifications composes and delivers the booking confirmation
// pair: a confirmation to the visitor and an alert to the admin mailbox.
// Delivery is best-effort; the booking pipeline never rolls back on a
// failure here.
package notifications

import (
	"bytes"
	"context"
	"html/template"

	"consultly/pkg/model"
)

// Mailer is the transport the booking pipeline talks to. A disabled mailer
// reports Enabled() == false and the pipeline records a "notifications
// disabled" annotation instead of an error.
type Mailer interface {
	Enabled() bool
	SendUserConfirmation(ctx context.Context, booking *model.StoredBooking) error
	SendAdminAlert(ctx context.Context, booking *model.StoredBooking) error
}

type brevoMailer struct {
	client     *BrevoClient
	adminEmail string
}

// NewMailer wires the Brevo transport when credentials are present and a
// no-op mailer otherwise, so missing configuration degrades gracefully.
func NewMailer(apiKey, senderEmail, senderName, adminEmail string, sandbox bool) Mailer {
	client := NewBrevoClient(apiKey, senderEmail, senderName, sandbox)
	if client == nil || adminEmail == "" {
		return disabledMailer{}
	}
	return &brevoMailer{client: client, adminEmail: adminEmail}
}

func (m *brevoMailer) Enabled() bool {
	return true
}

func (m *brevoMailer) SendUserConfirmation(ctx context.Context, booking *model.StoredBooking) error {
	body, err := renderTemplate(userConfirmationTmpl, booking)
	if err != nil {
		return err
	}
	subject := "Your consultation request has been received"
	return m.client.sendHTML(ctx, booking.Email, booking.Name, subject, body)
}

func (m *brevoMailer) SendAdminAlert(ctx context.Context, booking *model.StoredBooking) error {
	body, err := renderTemplate(adminAlertTmpl, booking)
	if err != nil {
		return err
	}
	subject := "New consultation booking: " + booking.Service + " on " + booking.PreferredDate
	return m.client.sendHTML(ctx, m.adminEmail, "", subject, body)
}

type disabledMailer struct{}

func (disabledMailer) Enabled() bool { return false }

func (disabledMailer) SendUserConfirmation(context.Context, *model.StoredBooking) error {
	return nil
}

func (disabledMailer) SendAdminAlert(context.Context, *model.StoredBooking) error {
	return nil
}

const userConfirmationTemplate = `<!DOCTYPE html>
<html>
<body>
  <p>Hi {{.Name}},</p>
  <p>Thank you for booking a consultation with us. Here is what we received:</p>
  <ul>
    <li>Service: {{.Service}}</li>
    <li>Preferred date: {{.PreferredDate}}</li>
    <li>State: {{.State}}</li>
    <li>English level: {{.EnglishLevel}}</li>
    <li>Age group: {{.Age}}</li>
    <li>Education: {{.Education}}</li>
    <li>Work experience: {{.Experience}}</li>
    <li>Visa type: {{.VisaType}}</li>
  </ul>
  <p>Our team will reach out to you shortly to confirm the time.</p>
</body>
</html>`

const adminAlertTemplate = `<!DOCTYPE html>
<html>
<body>
  <p>A new consultation booking came in:</p>
  <ul>
    <li>Name: {{.Name}}</li>
    <li>Email: {{.Email}}</li>
    <li>Phone: {{.Phone}}</li>
    <li>State: {{.State}}</li>
    <li>Service: {{.Service}}</li>
    <li>Preferred date: {{.PreferredDate}}</li>
    <li>English level: {{.EnglishLevel}}</li>
    <li>Age group: {{.Age}}</li>
    <li>Education: {{.Education}}</li>
    <li>Work experience: {{.Experience}}</li>
    <li>Visa type: {{.VisaType}}</li>
    {{if .Message}}<li>Message: {{.Message}}</li>{{end}}
  </ul>
</body>
</html>`

var (
	userConfirmationTmpl = template.Must(template.New("user_confirmation").Parse(userConfirmationTemplate))
	adminAlertTmpl       = template.Must(template.New("admin_alert").Parse(adminAlertTemplate))
)

func renderTemplate(tmpl *template.Template, booking *model.StoredBooking) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, booking); err != nil {
		return "", err
	}
	return buf.String(), nil
}
