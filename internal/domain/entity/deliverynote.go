package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del albarán. SIGNED es terminal: el albarán firmado es inmutable y no
// puede eliminarse.
const (
	NoteStatusDraft  = "DRAFT"
	NoteStatusSigned = "SIGNED"
)

// Tipos de línea del albarán.
const (
	ItemTypeHours    = "HOURS"
	ItemTypeMaterial = "MATERIAL"
)

// NoteItem línea de un albarán: horas trabajadas o material empleado.
type NoteItem struct {
	ID          string
	Position    int
	Type        string // HOURS | MATERIAL
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Person      string     // solo HOURS
	WorkDate    *time.Time // solo HOURS
	Reference   string     // solo MATERIAL
}

// LineTotal importe de la línea (cantidad × precio unitario).
func (i NoteItem) LineTotal() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice)
}

// Signature firma manuscrita subida como imagen.
type Signature struct {
	Date     time.Time
	ImageURL string
}

// DeliveryNote representa un albarán de horas y/o materiales de un proyecto.
// Client se desnormaliza desde el proyecto al crear. TotalAmount se calcula
// siempre a partir de las líneas, nunca se acepta del exterior.
type DeliveryNote struct {
	ID          string
	ProjectID   string
	ClientID    string
	CreatedBy   string
	CompanyID   string // vacío si el creador no tiene empresa
	Items       []NoteItem
	TotalAmount decimal.Decimal
	Notes       string
	Status      string // DRAFT | SIGNED
	Signature   *Signature
	PDFURL      string
	IsArchived  bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Signed indica si el albarán ya tiene una firma con imagen.
func (n *DeliveryNote) Signed() bool {
	return n.Signature != nil && n.Signature.ImageURL != ""
}

// ComputeTotal suma cantidad × precio unitario de todas las líneas con
// aritmética decimal exacta.
func ComputeTotal(items []NoteItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}
	return total
}
