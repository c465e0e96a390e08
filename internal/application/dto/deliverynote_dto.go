package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// NoteItemRequest línea de albarán en la petición de creación.
type NoteItemRequest struct {
	Type        string          `json:"type" validate:"required,oneof=HOURS MATERIAL"`
	Description string          `json:"description" validate:"required,max=500"`
	Quantity    decimal.Decimal `json:"quantity" validate:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price" validate:"required"`
	Person      string          `json:"person,omitempty"`
	WorkDate    *time.Time      `json:"work_date,omitempty"`
	Reference   string          `json:"reference,omitempty"`
}

// CreateNoteRequest alta de albarán. El total no se acepta del cliente:
// siempre se recalcula a partir de las líneas.
type CreateNoteRequest struct {
	ProjectID string            `json:"project_id" validate:"required,uuid"`
	Items     []NoteItemRequest `json:"items" validate:"required,min=1,dive"`
	Notes     string            `json:"notes" validate:"omitempty,max=2000"`
}

// NoteItemResponse línea de albarán en respuestas.
type NoteItemResponse struct {
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
	Person      string          `json:"person,omitempty"`
	WorkDate    *time.Time      `json:"work_date,omitempty"`
	Reference   string          `json:"reference,omitempty"`
}

// SignatureResponse firma registrada.
type SignatureResponse struct {
	Date     time.Time `json:"date"`
	ImageURL string    `json:"image_url"`
}

// NoteResponse salida de un albarán.
type NoteResponse struct {
	ID          string             `json:"id"`
	ProjectID   string             `json:"project_id"`
	ClientID    string             `json:"client_id"`
	CreatedBy   string             `json:"created_by"`
	CompanyID   string             `json:"company_id,omitempty"`
	Items       []NoteItemResponse `json:"items"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	Notes       string             `json:"notes,omitempty"`
	Status      string             `json:"status"`
	Signature   *SignatureResponse `json:"signature,omitempty"`
	PDFURL      string             `json:"pdf_url,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}
