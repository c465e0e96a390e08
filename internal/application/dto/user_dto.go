package dto

import "time"

// RegisterRequest entrada para el registro (password en texto, se hashea en el use case).
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"omitempty,max=200"`
	Surname  string `json:"surname" validate:"omitempty,max=200"`
}

// ValidateEmailRequest código de verificación de 6 dígitos.
type ValidateEmailRequest struct {
	Code string `json:"code" validate:"required,len=6"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RecoverPasswordRequest solicita un código de recuperación.
type RecoverPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest consume el código y fija la nueva contraseña.
type ResetPasswordRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Code     string `json:"code" validate:"required,len=6"`
	Password string `json:"password" validate:"required,min=8"`
}

// UpdateProfileRequest datos personales editables.
type UpdateProfileRequest struct {
	Name    string `json:"name" validate:"omitempty,max=200"`
	Surname string `json:"surname" validate:"omitempty,max=200"`
	NIF     string `json:"nif" validate:"omitempty,max=20"`
}

// CompanyRequest alta o edición de la empresa del usuario.
type CompanyRequest struct {
	Name         string `json:"name" validate:"required,max=200"`
	CIF          string `json:"cif" validate:"omitempty,max=20"`
	Address      string `json:"address" validate:"omitempty,max=300"`
	IsAutonomous bool   `json:"is_autonomous"`
}

// InviteRequest invita a otro usuario verificado a la empresa del emisor.
type InviteRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// CompanyResponse empresa asociada a un usuario.
type CompanyResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	CIF          string `json:"cif,omitempty"`
	Address      string `json:"address,omitempty"`
	IsAutonomous bool   `json:"is_autonomous"`
}

// UserResponse salida de un usuario (sin password ni códigos).
type UserResponse struct {
	ID        string           `json:"id"`
	Email     string           `json:"email"`
	Status    string           `json:"status"`
	Role      string           `json:"role"`
	Name      string           `json:"name,omitempty"`
	Surname   string           `json:"surname,omitempty"`
	NIF       string           `json:"nif,omitempty"`
	LogoURL   string           `json:"logo_url,omitempty"`
	Company   *CompanyResponse `json:"company,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// SessionResponse usuario + token de sesión (registro y login).
type SessionResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// ValidateEmailResponse confirmación de verificación.
type ValidateEmailResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}
