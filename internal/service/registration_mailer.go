package service

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/taskdeck/taskdeck/internal/event"
)

// RegistrationMailer turns UserRegistered events into verification emails.
// It is the only component that ever sees the raw token after issuance.
type RegistrationMailer struct {
	sender  EmailSender
	appURL  string
	appName string
}

func NewRegistrationMailer(sender EmailSender, appURL, appName string) *RegistrationMailer {
	return &RegistrationMailer{
		sender:  sender,
		appURL:  strings.TrimRight(appURL, "/"),
		appName: appName,
	}
}

func (m *RegistrationMailer) HandleUserRegistered(e event.UserRegistered) error {
	verificationURL := fmt.Sprintf("%s/verify-email/%s", m.appURL, e.RawToken)
	subject, htmlBody := verificationEmailTemplate(verificationURL, m.appName)

	err := m.sender.Send(e.User.Email, subject, htmlBody)
	if err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}

	slog.Info("verification email sent", "user_id", e.User.ID)
	return nil
}
