package notification

import (
	"fmt"
	"log/slog"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/brandingpioneers/hr-management/internal"
)

// Mailer sends the transactional emails behind the notification triggers.
// When SMTP is not configured every send is a logged no-op; a missing mail
// server must never surface as an API error.
type Mailer struct {
	cfg    *internal.MailConfig
	base   string
	logger *slog.Logger
}

// NewMailer creates a mailer. baseURL is the public URL links in email bodies
// point at.
func NewMailer(cfg *internal.MailConfig, baseURL string, logger *slog.Logger) *Mailer {
	return &Mailer{
		cfg:    cfg,
		base:   strings.TrimRight(baseURL, "/"),
		logger: logger,
	}
}

func (m *Mailer) send(to, subject, htmlBody string) error {
	if !m.cfg.Enabled() {
		m.logger.Warn("mail config missing, skip notification", "subject", subject)
		return nil
	}
	if strings.TrimSpace(to) == "" {
		m.logger.Warn("email recipient empty, skip notification", "subject", subject)
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.cfg.FromEmail, m.cfg.FromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(m.cfg.SMTPHost, m.cfg.SMTPPort, m.cfg.SMTPUser, m.cfg.SMTPPass)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	m.logger.Info("email notification sent", "to", to, "subject", subject)
	return nil
}

func (m *Mailer) SendInvitation(to, role, inviterName, token string) error {
	link := fmt.Sprintf("%s/accept-invitation/%s", m.base, token)
	body := wrapBody("You're invited",
		fmt.Sprintf(`<p>%s invited you to join the HR system as <strong>%s</strong>.</p>
    <p style="margin: 24px 0;"><a class="cta" href="%s">Accept invitation</a></p>
    <p>The invitation expires in 48 hours.</p>`, htmlEscape(inviterName), htmlEscape(role), link))
	return m.send(to, "You've been invited to the HR system", body)
}

func (m *Mailer) SendPasswordReset(to, name, token string) error {
	link := fmt.Sprintf("%s/reset-password/%s", m.base, token)
	body := wrapBody("Password reset",
		fmt.Sprintf(`<p>Hi %s,</p>
    <p>We received a request to reset your password.</p>
    <p style="margin: 24px 0;"><a class="cta" href="%s">Reset password</a></p>
    <p>The link expires in 1 hour. If you didn't request this, you can ignore this email.</p>`, htmlEscape(name), link))
	return m.send(to, "Reset your password", body)
}

func (m *Mailer) SendPasswordChanged(to, name string) error {
	body := wrapBody("Password changed",
		fmt.Sprintf(`<p>Hi %s,</p>
    <p>Your password was just changed. If this wasn't you, contact your administrator immediately.</p>`, htmlEscape(name)))
	return m.send(to, "Your password was changed", body)
}

func (m *Mailer) SendEmailVerification(to, name, token string) error {
	link := fmt.Sprintf("%s/verify-email/%s", m.base, token)
	body := wrapBody("Verify your email",
		fmt.Sprintf(`<p>Hi %s,</p>
    <p>Please confirm this email address for your account.</p>
    <p style="margin: 24px 0;"><a class="cta" href="%s">Verify email</a></p>
    <p>The link expires in 24 hours.</p>`, htmlEscape(name), link))
	return m.send(to, "Verify your email address", body)
}

func (m *Mailer) SendLoginAlert(to, name, ip string) error {
	body := wrapBody("New sign-in",
		fmt.Sprintf(`<p>Hi %s,</p>
    <p>Your account just signed in from IP <strong>%s</strong>.</p>
    <p>If this wasn't you, change your password right away.</p>`, htmlEscape(name), htmlEscape(ip)))
	return m.send(to, "New sign-in to your account", body)
}

func (m *Mailer) SendRoleChanged(to, name, oldRole, newRole string) error {
	body := wrapBody("Role updated",
		fmt.Sprintf(`<p>Hi %s,</p>
    <p>Your role was changed from <strong>%s</strong> to <strong>%s</strong>.</p>`,
			htmlEscape(name), htmlEscape(oldRole), htmlEscape(newRole)))
	return m.send(to, "Your role has been updated", body)
}

func (m *Mailer) SendAnnouncement(to, subject, message string) error {
	body := wrapBody(htmlEscape(subject), fmt.Sprintf("<p>%s</p>", htmlEscape(message)))
	return m.send(to, subject, body)
}

func wrapBody(title, content string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8" />
<style>
  body { font-family: Arial, sans-serif; background: #f6f7fb; color: #1f2937; }
  .card { max-width: 600px; margin: 24px auto; background: #ffffff; border-radius: 12px; overflow: hidden; border: 1px solid #e5e7eb; }
  .header { background: #0f172a; color: #ffffff; padding: 16px 20px; font-size: 16px; font-weight: bold; }
  .content { padding: 20px; }
  .cta { display: inline-block; padding: 12px 20px; background: #2563eb; color: #fff; text-decoration: none; border-radius: 8px; font-weight: bold; }
  .footer { margin-top: 20px; font-size: 12px; color: #6b7280; }
</style>
</head>
<body>
  <div class="card">
    <div class="header">%s</div>
    <div class="content">
      %s
      <div class="footer">Sent by the HR system. Please do not reply to this email.</div>
    </div>
  </div>
</body>
</html>`, title, content)
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func htmlEscape(s string) string {
	return htmlEscaper.Replace(s)
}
