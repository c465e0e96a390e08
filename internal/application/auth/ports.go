package auth

// MailSender puerto para el envío de correos transaccionales.
// La implementación vive en internal/infrastructure/email.
type MailSender interface {
	SendVerificationCode(to, code string) error
	SendPasswordResetCode(to, code string) error
	SendGuestInvitation(to, inviterEmail, companyName string) error
}
