package entity

import "time"

// Estados del usuario.
const (
	UserStatusPending  = "PENDING"
	UserStatusVerified = "VERIFIED"
)

// Roles de usuario.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
	RoleGuest = "GUEST" // invitado a la empresa de otro usuario
)

// CodeRecord código de un solo uso (verificación de email o recuperación de
// contraseña) con intentos restantes y fecha de expiración.
type CodeRecord struct {
	Code      string
	Attempts  int
	ExpiresAt time.Time
}

// Usable indica si el código todavía admite un intento.
func (c *CodeRecord) Usable(now time.Time) bool {
	return c != nil && c.Code != "" && c.Attempts > 0 && now.Before(c.ExpiresAt)
}

// User representa una cuenta del sistema. Un usuario puede ser dueño de una
// empresa (CompanyID apunta a su propia empresa) o invitado en la de otro
// (rol GUEST). CompanyID vacío = autónomo sin empresa.
type User struct {
	ID            string
	Email         string
	PasswordHash  string
	Status        string // PENDING | VERIFIED
	Role          string // USER | ADMIN | GUEST
	CompanyID     string // vacío si no pertenece a ninguna empresa
	Name          string
	Surname       string
	NIF           string
	LogoURL       string
	Verification  *CodeRecord
	PasswordReset *CodeRecord
	DeletedAt     *time.Time // soft delete
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
