package entity

import "time"

// Client representa un cliente final al que se le facturan proyectos y albaranes.
// Pertenece al usuario que lo creó y es visible para toda su empresa.
type Client struct {
	ID         string
	Name       string
	Email      string
	Phone      string
	CreatedBy  string
	CompanyID  string // vacío si el creador no tiene empresa
	IsArchived bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
