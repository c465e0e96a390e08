// Package email implementa el envío de correos transaccionales con SendGrid.
// Sin API key los correos se omiten y el contenido queda en el log, lo que
// permite desarrollar sin cuenta de SendGrid.
package email

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/dverdu/albaranes-api/internal/application/auth"
	"github.com/dverdu/albaranes-api/pkg/config"
	"github.com/dverdu/albaranes-api/pkg/logger"
)

var _ auth.MailSender = (*SendGridMailer)(nil)

// SendGridMailer implementación de auth.MailSender sobre SendGrid.
type SendGridMailer struct {
	cfg config.MailConfig
	log *logger.Logger
}

// NewSendGridMailer construye el mailer.
func NewSendGridMailer(cfg config.MailConfig, log *logger.Logger) *SendGridMailer {
	return &SendGridMailer{cfg: cfg, log: log}
}

// SendVerificationCode envía el código de verificación de email.
func (m *SendGridMailer) SendVerificationCode(to, code string) error {
	subject := "Verifica tu cuenta"
	plain := fmt.Sprintf("Tu código de verificación es %s. Caduca en 24 horas.", code)
	html := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
			<h1 style="color: #2c3e50;">Verifica tu cuenta</h1>
			<p>Introduce este código para verificar tu email:</p>
			<p style="font-size: 32px; font-weight: bold; letter-spacing: 6px; color: #00467f;">%s</p>
			<p>El código caduca en 24 horas. Si no te has registrado, ignora este correo.</p>
		</div>`, code)
	return m.send(to, subject, plain, html)
}

// SendPasswordResetCode envía el código de recuperación de contraseña.
func (m *SendGridMailer) SendPasswordResetCode(to, code string) error {
	subject := "Recupera tu contraseña"
	plain := fmt.Sprintf("Tu código de recuperación es %s. Caduca en 1 hora.", code)
	html := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
			<h1 style="color: #2c3e50;">Recupera tu contraseña</h1>
			<p>Introduce este código para restablecer tu contraseña:</p>
			<p style="font-size: 32px; font-weight: bold; letter-spacing: 6px; color: #00467f;">%s</p>
			<p>El código caduca en 1 hora. Si no lo has pedido tú, ignora este correo.</p>
		</div>`, code)
	return m.send(to, subject, plain, html)
}

// SendGuestInvitation avisa a un usuario de que ha sido invitado a una empresa.
func (m *SendGridMailer) SendGuestInvitation(to, inviterEmail, companyName string) error {
	subject := fmt.Sprintf("Te han invitado a %s", companyName)
	plain := fmt.Sprintf("%s te ha invitado a la empresa %s. Ya puedes ver sus clientes, proyectos y albaranes.", inviterEmail, companyName)
	html := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
			<h1 style="color: #2c3e50;">Invitación a %s</h1>
			<p><strong>%s</strong> te ha invitado a su empresa.</p>
			<p>Al aceptar compartes clientes, proyectos y albaranes con el resto del equipo.</p>
		</div>`, companyName, inviterEmail)
	return m.send(to, subject, plain, html)
}

func (m *SendGridMailer) send(to, subject, plain, html string) error {
	if m.cfg.APIKey == "" {
		// Modo desarrollo: sin SendGrid, el contenido queda en el log.
		m.log.Info().Str("to", to).Str("subject", subject).Str("body", plain).Msg("correo omitido (sin SENDGRID_API_KEY)")
		return nil
	}
	from := mail.NewEmail(m.cfg.FromName, m.cfg.From)
	message := mail.NewSingleEmail(from, subject, mail.NewEmail("", to), plain, html)
	client := sendgrid.NewSendClient(m.cfg.APIKey)
	resp, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid: status %d: %s", resp.StatusCode, resp.Body)
	}
	m.log.Debug().Str("to", to).Str("subject", subject).Msg("correo enviado")
	return nil
}
