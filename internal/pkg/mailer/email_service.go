package mailer

import (
	"fmt"
	"html"

	"promptito-be/internal/pkg/logger"

	"gopkg.in/gomail.v2"
)

// ReportNotice describes a new gallery report for moderators.
type ReportNotice struct {
	PromptTitle string
	PromptURL   string
	Reason      string
	Details     string
}

type IEmailService interface {
	SendReportNotice(toEmail string, n ReportNotice) error
	SendHiddenNotice(toEmail, promptTitle, reason string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
	log         logger.ILogger
}

func NewEmailService(host string, port int, username, password, senderEmail, senderName string, log logger.ILogger) IEmailService {
	return &emailService{
		dialer:      gomail.NewDialer(host, port, username, password),
		senderEmail: senderEmail,
		senderName:  senderName,
		log:         log,
	}
}

func (s *emailService) send(toEmail, subject, body string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		s.log.Error("MAILER", "Failed to send email", map[string]interface{}{"to": toEmail, "subject": subject, "error": err.Error()})
		return err
	}
	s.log.Info("MAILER", "Email sent", map[string]interface{}{"to": toEmail, "subject": subject})
	return nil
}

func (s *emailService) SendReportNotice(toEmail string, n ReportNotice) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>New report on a public prompt</h2>
			<p><strong>Prompt:</strong> <a href="%s">%s</a></p>
			<p><strong>Reason:</strong> %s</p>
			<p>%s</p>
			<p>Review it from the moderation panel.</p>
		</div>
	`, html.EscapeString(n.PromptURL), html.EscapeString(n.PromptTitle), html.EscapeString(n.Reason), html.EscapeString(n.Details))
	return s.send(toEmail, "New prompt report: "+n.PromptTitle, body)
}

func (s *emailService) SendHiddenNotice(toEmail, promptTitle, reason string) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Your prompt was hidden</h2>
			<p>"%s" is no longer listed in the public gallery.</p>
			<p><strong>Reason:</strong> %s</p>
		</div>
	`, html.EscapeString(promptTitle), html.EscapeString(reason))
	return s.send(toEmail, "Your prompt was hidden", body)
}

// noopEmailService is used when SMTP is not configured.
type noopEmailService struct {
	log logger.ILogger
}

func NewNoopEmailService(log logger.ILogger) IEmailService {
	return &noopEmailService{log: log}
}

func (s *noopEmailService) SendReportNotice(toEmail string, n ReportNotice) error {
	s.log.Debug("MAILER", "SMTP disabled, report notice skipped", map[string]interface{}{"prompt": n.PromptTitle})
	return nil
}

func (s *noopEmailService) SendHiddenNotice(toEmail, promptTitle, reason string) error {
	s.log.Debug("MAILER", "SMTP disabled, hidden notice skipped", map[string]interface{}{"prompt": promptTitle})
	return nil
}
