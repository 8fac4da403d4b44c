package services

import (
	"context"
	"fmt"
	"html"

	"admissions-intake-api/config"
	"admissions-intake-api/models"
)

// ConfirmationSender notifies an applicant after a successful submission.
type ConfirmationSender interface {
	SendConfirmation(ctx context.Context, admission *models.Admission) error
}

// MailFunc matches config.SendMail.
type MailFunc func(to []string, subject, html string) error

// MailConfirmationSender sends the confirmation e-mail over SMTP.
type MailConfirmationSender struct {
	send       MailFunc
	configured func() bool
}

func NewMailConfirmationSender() *MailConfirmationSender {
	return &MailConfirmationSender{send: config.SendMail, configured: config.MailConfigured}
}

func (m *MailConfirmationSender) SendConfirmation(ctx context.Context, admission *models.Admission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !m.configured() || admission.Email == "" {
		return nil
	}
	subject := fmt.Sprintf("Application received: %s", admission.ApplicationID)
	return m.send([]string{admission.Email}, subject, confirmationBody(admission))
}

func confirmationBody(admission *models.Admission) string {
	return fmt.Sprintf(`<p>Dear %s,</p>
<p>Your admission application for <strong>%s</strong> (intake %s) has been received successfully.</p>
<p>Application Reference No.: <strong>%s</strong></p>
<p>Please quote this reference in any correspondence with the admissions office.</p>`,
		html.EscapeString(admission.FullName()),
		html.EscapeString(admission.Department),
		html.EscapeString(admission.IntakeYear),
		html.EscapeString(admission.ApplicationID),
	)
}
