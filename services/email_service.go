package services

import (
	"fmt"
	"log/slog"

	"gopkg.in/gomail.v2"

	"autolot-api/config"
)

// EmailService sends transactional mail. When SMTP is not configured the
// service is a no-op, so local setups work without a mail server.
type EmailService struct {
	config *config.Config
	dialer *gomail.Dialer
}

func NewEmailService(cfg *config.Config) *EmailService {
	service := &EmailService{config: cfg}
	if cfg.SMTPHost != "" {
		service.dialer = gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	}
	return service
}

// SendWelcomeEmail greets a newly registered user. Best effort: signup never
// fails because mail delivery did.
func (es *EmailService) SendWelcomeEmail(email, name string) {
	if es.dialer == nil {
		return
	}

	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", es.config.FromName, es.config.FromEmail))
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Welcome to AutoLot")

	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
    <h2>Hello %s!</h2>
    <p>Your AutoLot account is ready. Log in to start managing your vehicle inventory.</p>
    <p><strong>The AutoLot Team</strong></p>
</body>
</html>`, name)
	m.SetBody("text/html", body)

	if err := es.dialer.DialAndSend(m); err != nil {
		slog.Warn("failed to send welcome email", "email", email, "error", err)
	}
}
