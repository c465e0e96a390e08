package entity

import "time"

// Project representa un proyecto de un cliente. Todo albarán cuelga de un proyecto.
type Project struct {
	ID          string
	Name        string
	Description string
	ClientID    string
	CreatedBy   string
	CompanyID   string // vacío si el creador no tiene empresa
	IsArchived  bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
