package notes

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dverdu/albaranes-api/internal/application/dto"
	"github.com/dverdu/albaranes-api/internal/domain"
	"github.com/dverdu/albaranes-api/internal/domain/entity"
	"github.com/dverdu/albaranes-api/internal/domain/repository"
	"github.com/dverdu/albaranes-api/internal/domain/scope"
)

// NoteUseCase motor de ciclo de vida del albarán: validación de líneas,
// cálculo de totales, transición DRAFT→SIGNED, guarda de borrado y export PDF.
type NoteUseCase struct {
	noteRepo    repository.DeliveryNoteRepository
	projectRepo repository.ProjectRepository
	clientRepo  repository.ClientRepository
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	generator   PDFGenerator
	store       FileStore
}

// NewNoteUseCase construye el caso de uso.
func NewNoteUseCase(
	noteRepo repository.DeliveryNoteRepository,
	projectRepo repository.ProjectRepository,
	clientRepo repository.ClientRepository,
	userRepo repository.UserRepository,
	companyRepo repository.CompanyRepository,
	generator PDFGenerator,
	store FileStore,
) *NoteUseCase {
	return &NoteUseCase{
		noteRepo:    noteRepo,
		projectRepo: projectRepo,
		clientRepo:  clientRepo,
		userRepo:    userRepo,
		companyRepo: companyRepo,
		generator:   generator,
		store:       store,
	}
}

// Create valida las líneas, resuelve el proyecto bajo el filtro de pertenencia
// y crea el albarán en DRAFT. El total se calcula siempre desde las líneas con
// aritmética decimal. Falla entero ante la primera línea inválida: no hay
// creación parcial.
func (uc *NoteUseCase) Create(p scope.Principal, in dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	if in.ProjectID == "" {
		return nil, fmt.Errorf("%w: project_id es obligatorio", domain.ErrInvalidInput)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: items no puede estar vacío", domain.ErrInvalidInput)
	}
	items := make([]entity.NoteItem, 0, len(in.Items))
	for i, it := range in.Items {
		if it.Type != entity.ItemTypeHours && it.Type != entity.ItemTypeMaterial {
			return nil, fmt.Errorf("%w: items[%d].type debe ser HOURS o MATERIAL", domain.ErrInvalidInput, i)
		}
		if it.Description == "" {
			return nil, fmt.Errorf("%w: items[%d].description es obligatorio", domain.ErrInvalidInput, i)
		}
		if !it.Quantity.GreaterThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: items[%d].quantity debe ser mayor que cero", domain.ErrInvalidInput, i)
		}
		if it.UnitPrice.LessThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: items[%d].unit_price no puede ser negativo", domain.ErrInvalidInput, i)
		}
		items = append(items, entity.NoteItem{
			ID:          uuid.New().String(),
			Position:    i,
			Type:        it.Type,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Person:      it.Person,
			WorkDate:    it.WorkDate,
			Reference:   it.Reference,
		})
	}

	project, err := uc.projectRepo.GetByID(p, in.ProjectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}

	// La empresa solo se adjunta si la del principal y la del proyecto
	// coinciden; un proyecto de otra empresa es un acceso prohibido aunque el
	// filtro lo dejara pasar por ser el creador.
	companyID := ""
	if p.HasCompany() && project.CompanyID != "" {
		if project.CompanyID != p.CompanyID {
			return nil, domain.ErrForbidden
		}
		companyID = p.CompanyID
	}

	now := time.Now()
	note := &entity.DeliveryNote{
		ID:          uuid.New().String(),
		ProjectID:   project.ID,
		ClientID:    project.ClientID,
		CreatedBy:   p.UserID,
		CompanyID:   companyID,
		Items:       items,
		TotalAmount: entity.ComputeTotal(items),
		Notes:       in.Notes,
		Status:      entity.NoteStatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.noteRepo.Create(note); err != nil {
		return nil, err
	}
	return toNoteResponse(note), nil
}

// GetByID devuelve un albarán del alcance con sus líneas.
func (uc *NoteUseCase) GetByID(p scope.Principal, id string) (*dto.NoteResponse, error) {
	note, err := uc.noteRepo.GetByID(p, id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, domain.ErrNotFound
	}
	return toNoteResponse(note), nil
}

// List albaranes activos del alcance.
func (uc *NoteUseCase) List(p scope.Principal) ([]*dto.NoteResponse, error) {
	list, err := uc.noteRepo.List(p)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.NoteResponse, 0, len(list))
	for _, n := range list {
		out = append(out, toNoteResponse(n))
	}
	return out, nil
}

// Sign ejecuta la transición DRAFT→SIGNED. La actualización es condicional
// sobre el estado en una sola sentencia: de dos firmas concurrentes solo una
// gana; la otra recibe ErrAlreadySigned.
func (uc *NoteUseCase) Sign(p scope.Principal, id, imageURL string) (*dto.NoteResponse, error) {
	if imageURL == "" {
		return nil, domain.ErrSignatureRequired
	}
	note, err := uc.noteRepo.GetByID(p, id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, domain.ErrNotFound
	}
	if note.Status == entity.NoteStatusSigned {
		return nil, domain.ErrAlreadySigned
	}

	// Ubicación canónica de descarga; el artefacto real se registra al
	// generarse por primera vez.
	pdfURL := "/api/deliverynote/pdf/" + id
	ok, err := uc.noteRepo.Sign(p, id, time.Now(), imageURL, pdfURL)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Perdió la carrera: o alguien firmó antes o el albarán desapareció.
		current, err := uc.noteRepo.GetByID(p, id)
		if err != nil {
			return nil, err
		}
		if current == nil {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrAlreadySigned
	}

	signed, err := uc.noteRepo.GetByID(p, id)
	if err != nil {
		return nil, err
	}
	if signed == nil {
		return nil, domain.ErrNotFound
	}
	return toNoteResponse(signed), nil
}

// Delete borra un albarán mientras siga sin firmar. El borrado también es
// condicional sobre el estado, por la misma carrera que la firma.
func (uc *NoteUseCase) Delete(p scope.Principal, id string) error {
	note, err := uc.noteRepo.GetByID(p, id)
	if err != nil {
		return err
	}
	if note == nil {
		return domain.ErrNotFound
	}
	if note.Signed() {
		return domain.ErrNoteSigned
	}
	ok, err := uc.noteRepo.Delete(p, id)
	if err != nil {
		return err
	}
	if !ok {
		current, err := uc.noteRepo.GetByID(p, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		return domain.ErrNoteSigned
	}
	return nil
}

// DownloadPDF proyecta el albarán a PDF. Si el albarán está firmado y ya tiene
// artefacto almacenado, se sirve ese sin regenerar; si no, se ensambla el
// contenido, se renderiza y (solo para firmados) se registra la ubicación.
func (uc *NoteUseCase) DownloadPDF(ctx context.Context, p scope.Principal, id string) ([]byte, string, error) {
	note, err := uc.noteRepo.GetByID(p, id)
	if err != nil {
		return nil, "", err
	}
	if note == nil {
		return nil, "", domain.ErrNotFound
	}

	filename := fmt.Sprintf("albaran-%s.pdf", note.ID)
	if note.Status == entity.NoteStatusSigned && uc.store.Exists(note.PDFURL) {
		data, err := uc.store.ReadByURL(note.PDFURL)
		if err != nil {
			return nil, "", fmt.Errorf("pdf: leer artefacto almacenado: %w", err)
		}
		return data, filename, nil
	}

	data, err := uc.assemblePDFData(p, note)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err := uc.generator.GenerateNotePDF(ctx, data)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	storedURL, err := uc.store.SavePDF(note.ID, pdfBytes)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: guardar artefacto: %w", err)
	}
	if note.Status == entity.NoteStatusSigned {
		if err := uc.noteRepo.SetPDFURL(note.ID, storedURL); err != nil {
			return nil, "", err
		}
	}
	return pdfBytes, filename, nil
}

// assemblePDFData carga las entidades referenciadas solo cuando hacen falta
// para la proyección (equivalente explícito del populate perezoso del origen).
func (uc *NoteUseCase) assemblePDFData(p scope.Principal, note *entity.DeliveryNote) (*PDFData, error) {
	client, err := uc.clientRepo.GetAnyByID(p, note.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, fmt.Errorf("pdf: cliente del albarán no accesible: %w", domain.ErrNotFound)
	}
	project, err := uc.projectRepo.GetAnyByID(p, note.ProjectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, fmt.Errorf("pdf: proyecto del albarán no accesible: %w", domain.ErrNotFound)
	}
	creator, err := uc.userRepo.GetByID(note.CreatedBy)
	if err != nil {
		return nil, err
	}

	var company *entity.Company
	if note.CompanyID != "" {
		company, err = uc.companyRepo.GetByID(note.CompanyID)
		if err != nil {
			return nil, err
		}
	}

	signaturePath := ""
	if note.Signed() {
		if path, ok := uc.store.AbsPath(note.Signature.ImageURL); ok {
			signaturePath = path
		}
	}

	return &PDFData{
		Note:               note,
		Client:             client,
		Project:            project,
		Creator:            creator,
		Company:            company,
		SignatureImagePath: signaturePath,
	}, nil
}

func toNoteResponse(n *entity.DeliveryNote) *dto.NoteResponse {
	items := make([]dto.NoteItemResponse, 0, len(n.Items))
	for _, it := range n.Items {
		items = append(items, dto.NoteItemResponse{
			Type:        it.Type,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			LineTotal:   it.LineTotal(),
			Person:      it.Person,
			WorkDate:    it.WorkDate,
			Reference:   it.Reference,
		})
	}
	resp := &dto.NoteResponse{
		ID:          n.ID,
		ProjectID:   n.ProjectID,
		ClientID:    n.ClientID,
		CreatedBy:   n.CreatedBy,
		CompanyID:   n.CompanyID,
		Items:       items,
		TotalAmount: n.TotalAmount,
		Notes:       n.Notes,
		Status:      n.Status,
		PDFURL:      n.PDFURL,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}
	if n.Signature != nil {
		resp.Signature = &dto.SignatureResponse{Date: n.Signature.Date, ImageURL: n.Signature.ImageURL}
	}
	return resp
}
