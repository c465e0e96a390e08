package domain

import "errors"

// Errores de dominio (sin dependencias externas). Se traducen a HTTP en un único
// punto de la capa de transporte.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("credenciales inválidas")
	ErrForbidden          = errors.New("acceso denegado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado y verificado")
	ErrEmailNotVerified   = errors.New("email no verificado")
	ErrAlreadyVerified    = errors.New("el email ya está verificado")
	ErrCodeExpired        = errors.New("código expirado o sin intentos restantes")
	ErrCodeMismatch       = errors.New("código incorrecto")
	ErrAlreadySigned      = errors.New("el albarán ya está firmado")
	ErrNoteSigned         = errors.New("no se puede eliminar un albarán firmado")
	ErrSignatureRequired  = errors.New("se requiere la imagen de la firma")
)
