package dto

import "time"

// CreateProjectRequest alta de proyecto sobre un cliente existente.
type CreateProjectRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"omitempty,max=1000"`
	ClientID    string `json:"client_id" validate:"required,uuid"`
}

// UpdateProjectRequest edición de proyecto.
type UpdateProjectRequest struct {
	Name        string `json:"name" validate:"omitempty,max=200"`
	Description string `json:"description" validate:"omitempty,max=1000"`
	ClientID    string `json:"client_id" validate:"omitempty,uuid"`
}

// ProjectResponse salida de un proyecto.
type ProjectResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ClientID    string    `json:"client_id"`
	CreatedBy   string    `json:"created_by"`
	CompanyID   string    `json:"company_id,omitempty"`
	IsArchived  bool      `json:"is_archived"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
