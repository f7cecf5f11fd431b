// internal/email/mailer/organization_invitation.go
package mailer

import (
	"fmt"
	"time"

	"github.com/beatbookhq/beatbook/internal/email"
)

// InvitationTemplateData contains data for the invitation email template
type InvitationTemplateData struct {
	OrganizationName string
	InviterName      string
	Role             string
	AcceptLink       string
	ExpiresAt        time.Time
}

// SendInvitationEmail sends an organization invitation to the recipient
func SendInvitationEmail(s *email.Service, to string, data InvitationTemplateData) error {
	emailData := email.EmailData{
		To:           to,
		FromName:     "Beatbook",
		Subject:      fmt.Sprintf("You've been invited to join %s on Beatbook", data.OrganizationName),
		TemplateName: "organization_invitation",
		TemplateData: data,
	}

	return s.SendEmail(emailData)
}
