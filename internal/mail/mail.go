package mail

import (
	"bytes"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"

	"himti/internal/auth"
	"himti/internal/config"
)

const senderName = "HIMTI UIN Jakarta"

// Mailer delivers account notifications.
type Mailer interface {
	SendWelcome(to, name string) error
	SendPasswordReset(to, otp string) error
}

var (
	welcomeTemplate = template.Must(template.New("welcome").Parse(`<!DOCTYPE html>
<html>
  <body style="font-family: Arial, sans-serif; line-height: 1.6;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
      <h1 style="background-color: #2563eb; color: white; text-align: center; padding: 20px;">Welcome to HIMTI!</h1>
      <h2>Dear {{.Name}},</h2>
      <p>Welcome to the HIMTI (Himpunan Mahasiswa Teknik Informatika) community.</p>
      <p>You can now sign in with your registered email: <strong>{{.Email}}</strong></p>
      <p><a href="{{.FrontendURL}}">Visit the HIMTI website</a></p>
    </div>
  </body>
</html>`))

	resetTemplate = template.Must(template.New("reset").Parse(`<!DOCTYPE html>
<html>
  <body style="font-family: Arial, sans-serif; line-height: 1.6;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
      <h1 style="background-color: #2563eb; color: white; text-align: center; padding: 20px;">Password Reset</h1>
      <p>Use the code below to reset your password. It expires in {{.Minutes}} minutes.</p>
      <p style="font-size: 32px; letter-spacing: 8px; text-align: center;"><strong>{{.OTP}}</strong></p>
      <p>If you did not request a password reset, you can ignore this email.</p>
    </div>
  </body>
</html>`))
)

// SMTPMailer sends HTML mail through an SMTP relay.
type SMTPMailer struct {
	from        string
	frontendURL string
	send        func(*gomail.Message) error
}

var _ Mailer = (*SMTPMailer)(nil)

// NewSMTPMailer creates a mailer from the SMTP settings.
func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	return &SMTPMailer{
		from:        cfg.MailFrom,
		frontendURL: cfg.FrontendURL,
		send:        func(m *gomail.Message) error { return dialer.DialAndSend(m) },
	}
}

// SendWelcome sends the post-registration greeting.
func (s *SMTPMailer) SendWelcome(to, name string) error {
	data := struct {
		Name, Email, FrontendURL string
	}{name, to, s.frontendURL}
	return s.deliver(to, "Welcome to HIMTI Website!", welcomeTemplate, data)
}

// SendPasswordReset sends the one-time reset code.
func (s *SMTPMailer) SendPasswordReset(to, otp string) error {
	data := struct {
		OTP     string
		Minutes int
	}{otp, int(auth.OTPTTL.Minutes())}
	return s.deliver(to, "Password Reset Request", resetTemplate, data)
}

func (s *SMTPMailer) deliver(to, subject string, tmpl *template.Template, data any) error {
	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("render %s mail: %w", tmpl.Name(), err)
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.from, senderName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body.String())

	if err := s.send(m); err != nil {
		return fmt.Errorf("send %s mail: %w", tmpl.Name(), err)
	}
	return nil
}
