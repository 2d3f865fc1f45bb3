package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPConfig holds the connection settings for the outbound mail host.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string // envelope and header sender
	Support  string // destination for contact-form messages
}

// Configured reports whether enough is set to attempt delivery.
func (c SMTPConfig) Configured() bool {
	return c.Host != "" && c.From != ""
}

// SMTPDispatcher sends mail over plain SMTP with optional AUTH.
type SMTPDispatcher struct {
	cfg SMTPConfig
}

func NewSMTPDispatcher(cfg SMTPConfig) *SMTPDispatcher {
	return &SMTPDispatcher{cfg: cfg}
}

func (d *SMTPDispatcher) SendVerification(ctx context.Context, to, token string) error {
	body := fmt.Sprintf(
		"Welcome!\r\n\r\nVerify your email with this token:\r\n\r\n%s\r\n\r\nThe token is valid for 24 hours.\r\n",
		token)
	return d.send(ctx, to, "Verify your email", body)
}

func (d *SMTPDispatcher) SendPasswordReset(ctx context.Context, to, token string) error {
	body := fmt.Sprintf(
		"A password reset was requested for your account.\r\n\r\nReset token:\r\n\r\n%s\r\n\r\nThe token expires in one hour. If you did not request this, ignore this message.\r\n",
		token)
	return d.send(ctx, to, "Password reset", body)
}

func (d *SMTPDispatcher) SendContactMessage(ctx context.Context, fromIdentityID, subject, body string) error {
	if d.cfg.Support == "" {
		return fmt.Errorf("mail: no support address configured")
	}
	msg := fmt.Sprintf("From identity: %s\r\n\r\n%s\r\n", fromIdentityID, body)
	return d.send(ctx, d.cfg.Support, "[contact] "+subject, msg)
}

func (d *SMTPDispatcher) send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", d.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%d", d.cfg.Host, d.cfg.Port)

	var auth smtp.Auth
	if d.cfg.Username != "" {
		auth = smtp.PlainAuth("", d.cfg.Username, d.cfg.Password, d.cfg.Host)
	}

	return smtp.SendMail(addr, auth, d.cfg.From, []string{to}, []byte(msg.String()))
}
