package notes

import (
	"context"

	"github.com/dverdu/albaranes-api/internal/domain/entity"
)

// PDFData contenido estructurado de un albarán listo para renderizar. El motor
// de ciclo de vida lo ensambla; el renderizado binario es cosa del colaborador.
type PDFData struct {
	Note    *entity.DeliveryNote
	Client  *entity.Client
	Project *entity.Project
	Creator *entity.User
	Company *entity.Company // nil si el albarán no tiene empresa
	// SignatureImagePath ruta local de la imagen de la firma; vacía si el
	// albarán no está firmado (el PDF lleva entonces líneas de firma en blanco).
	SignatureImagePath string
}

// PDFGenerator renderiza el contenido ensamblado a bytes PDF.
type PDFGenerator interface {
	GenerateNotePDF(ctx context.Context, data *PDFData) ([]byte, error)
}

// FileStore almacenamiento de artefactos (PDFs generados y firmas subidas).
type FileStore interface {
	// SavePDF persiste el PDF y devuelve la URL pública del artefacto.
	SavePDF(noteID string, data []byte) (string, error)
	// ReadByURL recupera los bytes de un artefacto previamente guardado.
	ReadByURL(url string) ([]byte, error)
	// AbsPath traduce una URL de artefacto a ruta local; false si la URL no
	// apunta a este almacenamiento.
	AbsPath(url string) (string, bool)
	// Exists indica si la URL apunta a un artefacto existente del almacenamiento.
	Exists(url string) bool
}
