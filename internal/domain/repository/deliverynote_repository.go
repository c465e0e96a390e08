package repository

import (
	"time"

	"github.com/dverdu/albaranes-api/internal/domain/entity"
	"github.com/dverdu/albaranes-api/internal/domain/scope"
)

// DeliveryNoteRepository define el puerto de persistencia para DeliveryNote.
//
// Sign y Delete son condicionales sobre status = DRAFT en una sola sentencia:
// dos peticiones concurrentes no pueden firmar (ni firmar y borrar) el mismo
// albarán; la que pierde la carrera recibe false y el caso de uso decide entre
// "no existe" y "ya firmado".
type DeliveryNoteRepository interface {
	// Create persiste cabecera y líneas atómicamente.
	Create(note *entity.DeliveryNote) error
	// GetByID devuelve el albarán no archivado con sus líneas, o nil.
	GetByID(p scope.Principal, id string) (*entity.DeliveryNote, error)
	List(p scope.Principal) ([]*entity.DeliveryNote, error)
	// Sign transición DRAFT→SIGNED por compare-and-set.
	Sign(p scope.Principal, id string, date time.Time, imageURL, pdfURL string) (bool, error)
	// Delete borrado físico, solo mientras el albarán siga en DRAFT.
	Delete(p scope.Principal, id string) (bool, error)
	// SetPDFURL guarda la ubicación del artefacto generado.
	SetPDFURL(id, pdfURL string) error
}
