// internal/email/mailer/sender.go
package mailer

import "github.com/beatbookhq/beatbook/internal/email"

// InvitationMailer abstracts invitation delivery so services can be tested
// without a configured provider.
type InvitationMailer interface {
	SendInvitation(to string, data InvitationTemplateData) error
}

// EmailSender delivers invitations through the configured email service.
type EmailSender struct {
	svc *email.Service
}

func NewEmailSender(svc *email.Service) *EmailSender {
	return &EmailSender{svc: svc}
}

func (s *EmailSender) SendInvitation(to string, data InvitationTemplateData) error {
	return SendInvitationEmail(s.svc, to, data)
}
