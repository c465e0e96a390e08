package notes_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dverdu/albaranes-api/internal/application/dto"
	"github.com/dverdu/albaranes-api/internal/application/notes"
	"github.com/dverdu/albaranes-api/internal/domain"
	"github.com/dverdu/albaranes-api/internal/domain/entity"
	"github.com/dverdu/albaranes-api/internal/domain/scope"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

func inScope(p scope.Principal, createdBy, companyID string) bool {
	if createdBy == p.UserID {
		return true
	}
	return p.HasCompany() && companyID == p.CompanyID
}

type fakeNoteRepo struct {
	notes map[string]*entity.DeliveryNote
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{notes: map[string]*entity.DeliveryNote{}}
}

func (r *fakeNoteRepo) Create(n *entity.DeliveryNote) error {
	cp := *n
	r.notes[n.ID] = &cp
	return nil
}

func (r *fakeNoteRepo) GetByID(p scope.Principal, id string) (*entity.DeliveryNote, error) {
	n, ok := r.notes[id]
	if !ok || n.IsArchived || !inScope(p, n.CreatedBy, n.CompanyID) {
		return nil, nil
	}
	cp := *n
	return &cp, nil
}

func (r *fakeNoteRepo) List(p scope.Principal) ([]*entity.DeliveryNote, error) {
	var out []*entity.DeliveryNote
	for _, n := range r.notes {
		if !n.IsArchived && inScope(p, n.CreatedBy, n.CompanyID) {
			cp := *n
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeNoteRepo) Sign(p scope.Principal, id string, date time.Time, imageURL, pdfURL string) (bool, error) {
	n, ok := r.notes[id]
	if !ok || n.Status != entity.NoteStatusDraft || !inScope(p, n.CreatedBy, n.CompanyID) {
		return false, nil
	}
	n.Status = entity.NoteStatusSigned
	n.Signature = &entity.Signature{Date: date, ImageURL: imageURL}
	n.PDFURL = pdfURL
	n.UpdatedAt = date
	return true, nil
}

func (r *fakeNoteRepo) Delete(p scope.Principal, id string) (bool, error) {
	n, ok := r.notes[id]
	if !ok || n.Status != entity.NoteStatusDraft || !inScope(p, n.CreatedBy, n.CompanyID) {
		return false, nil
	}
	delete(r.notes, id)
	return true, nil
}

func (r *fakeNoteRepo) SetPDFURL(id, pdfURL string) error {
	if n, ok := r.notes[id]; ok {
		n.PDFURL = pdfURL
	}
	return nil
}

type fakeProjectRepo struct {
	projects map[string]*entity.Project
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: map[string]*entity.Project{}}
}

func (r *fakeProjectRepo) Create(pr *entity.Project) error {
	cp := *pr
	r.projects[pr.ID] = &cp
	return nil
}

func (r *fakeProjectRepo) GetByID(p scope.Principal, id string) (*entity.Project, error) {
	pr, ok := r.projects[id]
	if !ok || pr.IsArchived || !inScope(p, pr.CreatedBy, pr.CompanyID) {
		return nil, nil
	}
	cp := *pr
	return &cp, nil
}

func (r *fakeProjectRepo) GetAnyByID(p scope.Principal, id string) (*entity.Project, error) {
	pr, ok := r.projects[id]
	if !ok || !inScope(p, pr.CreatedBy, pr.CompanyID) {
		return nil, nil
	}
	cp := *pr
	return &cp, nil
}

func (r *fakeProjectRepo) ExistsByNameAndClient(p scope.Principal, name, clientID string) (bool, error) {
	return false, nil
}
func (r *fakeProjectRepo) List(p scope.Principal) ([]*entity.Project, error)         { return nil, nil }
func (r *fakeProjectRepo) ListArchived(p scope.Principal) ([]*entity.Project, error) { return nil, nil }
func (r *fakeProjectRepo) Update(p scope.Principal, pr *entity.Project) (bool, error) {
	return false, nil
}
func (r *fakeProjectRepo) Archive(p scope.Principal, id string) (bool, error) { return false, nil }
func (r *fakeProjectRepo) Restore(p scope.Principal, id string) (bool, error) { return false, nil }
func (r *fakeProjectRepo) Delete(p scope.Principal, id string) (bool, error)  { return false, nil }

type fakeClientRepo struct {
	clients map[string]*entity.Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: map[string]*entity.Client{}}
}

func (r *fakeClientRepo) Create(c *entity.Client) error {
	cp := *c
	r.clients[c.ID] = &cp
	return nil
}

func (r *fakeClientRepo) GetByID(p scope.Principal, id string) (*entity.Client, error) {
	c, ok := r.clients[id]
	if !ok || c.IsArchived || !inScope(p, c.CreatedBy, c.CompanyID) {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeClientRepo) GetAnyByID(p scope.Principal, id string) (*entity.Client, error) {
	c, ok := r.clients[id]
	if !ok || !inScope(p, c.CreatedBy, c.CompanyID) {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeClientRepo) ExistsByEmail(p scope.Principal, email string) (bool, error) {
	return false, nil
}
func (r *fakeClientRepo) List(p scope.Principal) ([]*entity.Client, error)          { return nil, nil }
func (r *fakeClientRepo) ListArchived(p scope.Principal) ([]*entity.Client, error)  { return nil, nil }
func (r *fakeClientRepo) Update(p scope.Principal, c *entity.Client) (bool, error)  { return false, nil }
func (r *fakeClientRepo) Archive(p scope.Principal, id string) (bool, error)        { return false, nil }
func (r *fakeClientRepo) Restore(p scope.Principal, id string) (bool, error)        { return false, nil }
func (r *fakeClientRepo) Delete(p scope.Principal, id string) (bool, error)         { return false, nil }

type fakeUserRepo struct {
	users map[string]*entity.User
}

func (r *fakeUserRepo) Create(u *entity.User) error                       { r.users[u.ID] = u; return nil }
func (r *fakeUserRepo) GetByID(id string) (*entity.User, error)           { return r.users[id], nil }
func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error)     { return nil, nil }
func (r *fakeUserRepo) GetVerifiedByEmail(string) (*entity.User, error)   { return nil, nil }
func (r *fakeUserRepo) Update(u *entity.User) error                       { return nil }
func (r *fakeUserRepo) SoftDelete(id string, when time.Time) error        { return nil }
func (r *fakeUserRepo) HardDelete(id string) error                        { return nil }

type fakeCompanyRepo struct {
	companies map[string]*entity.Company
}

func (r *fakeCompanyRepo) Create(c *entity.Company) error { r.companies[c.ID] = c; return nil }
func (r *fakeCompanyRepo) GetByID(id string) (*entity.Company, error) {
	return r.companies[id], nil
}
func (r *fakeCompanyRepo) GetByOwner(string) (*entity.Company, error) { return nil, nil }
func (r *fakeCompanyRepo) Update(c *entity.Company) error             { return nil }

type fakeGenerator struct {
	calls    int
	lastData *notes.PDFData
}

func (g *fakeGenerator) GenerateNotePDF(_ context.Context, data *notes.PDFData) ([]byte, error) {
	g.calls++
	g.lastData = data
	return []byte("%PDF-1.7 fake"), nil
}

type fakeStore struct {
	files map[string][]byte
}

func newFakeStore() *fakeStore { return &fakeStore{files: map[string][]byte{}} }

func (s *fakeStore) SavePDF(noteID string, data []byte) (string, error) {
	url := "/uploads/pdfs/albaran-" + noteID + ".pdf"
	s.files[url] = data
	return url, nil
}

func (s *fakeStore) ReadByURL(url string) ([]byte, error) { return s.files[url], nil }

func (s *fakeStore) AbsPath(url string) (string, bool) {
	if !strings.HasPrefix(url, "/uploads/") {
		return "", false
	}
	return "/tmp" + url, true
}

func (s *fakeStore) Exists(url string) bool {
	_, ok := s.files[url]
	return ok
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	uc        *notes.NoteUseCase
	noteRepo  *fakeNoteRepo
	generator *fakeGenerator
	store     *fakeStore
	owner     scope.Principal
	projectID string
	clientID  string
}

// buildFixture crea un usuario con empresa, un cliente y un proyecto listos
// para colgar albaranes.
func buildFixture(t *testing.T) *fixture {
	t.Helper()
	noteRepo := newFakeNoteRepo()
	projectRepo := newFakeProjectRepo()
	clientRepo := newFakeClientRepo()
	userRepo := &fakeUserRepo{users: map[string]*entity.User{}}
	companyRepo := &fakeCompanyRepo{companies: map[string]*entity.Company{}}
	generator := &fakeGenerator{}
	store := newFakeStore()

	owner := scope.Principal{UserID: "user-1", CompanyID: "company-1"}
	require.NoError(t, userRepo.Create(&entity.User{ID: "user-1", Email: "ana@example.com", Name: "Ana", CompanyID: "company-1"}))
	require.NoError(t, companyRepo.Create(&entity.Company{ID: "company-1", OwnerUserID: "user-1", Name: "Obras Pérez SL"}))
	require.NoError(t, clientRepo.Create(&entity.Client{ID: "client-1", Name: "Cliente Uno", Email: "cli@example.com", CreatedBy: "user-1", CompanyID: "company-1"}))
	require.NoError(t, projectRepo.Create(&entity.Project{ID: "project-1", Name: "Reforma nave", ClientID: "client-1", CreatedBy: "user-1", CompanyID: "company-1"}))

	uc := notes.NewNoteUseCase(noteRepo, projectRepo, clientRepo, userRepo, companyRepo, generator, store)
	return &fixture{
		uc:        uc,
		noteRepo:  noteRepo,
		generator: generator,
		store:     store,
		owner:     owner,
		projectID: "project-1",
		clientID:  "client-1",
	}
}

func hoursAndMaterialItems() []dto.NoteItemRequest {
	return []dto.NoteItemRequest{
		{Type: entity.ItemTypeHours, Description: "Albañilería", Quantity: decimal.NewFromInt(8), UnitPrice: decimal.NewFromInt(50), Person: "Luis"},
		{Type: entity.ItemTypeMaterial, Description: "Hormigón", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1200), Reference: "HOR-25"},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_CalculaTotalDesdeLasLineas(t *testing.T) {
	f := buildFixture(t)

	resp, err := f.uc.Create(f.owner, dto.CreateNoteRequest{ProjectID: f.projectID, Items: hoursAndMaterialItems()})
	require.NoError(t, err)

	assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(1600)), "8×50 + 1×1200 = 1600, obtenido %s", resp.TotalAmount)
	assert.Equal(t, entity.NoteStatusDraft, resp.Status)
	assert.Equal(t, f.clientID, resp.ClientID, "el cliente se desnormaliza desde el proyecto")
	assert.Equal(t, "company-1", resp.CompanyID)
}

func TestCreate_TotalDecimalExacto(t *testing.T) {
	f := buildFixture(t)
	items := []dto.NoteItemRequest{
		{Type: entity.ItemTypeHours, Description: "Revisión", Quantity: decimal.RequireFromString("0.1"), UnitPrice: decimal.RequireFromString("0.2")},
		{Type: entity.ItemTypeHours, Description: "Ajuste", Quantity: decimal.RequireFromString("0.7"), UnitPrice: decimal.RequireFromString("0.1")},
	}

	resp, err := f.uc.Create(f.owner, dto.CreateNoteRequest{ProjectID: f.projectID, Items: items})
	require.NoError(t, err)

	// 0.02 + 0.07 sin deriva de coma flotante
	assert.True(t, resp.TotalAmount.Equal(decimal.RequireFromString("0.09")))
}

func TestCreate_SinLineas(t *testing.T) {
	f := buildFixture(t)

	_, err := f.uc.Create(f.owner, dto.CreateNoteRequest{ProjectID: f.projectID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "items")
}

func TestCreate_LineaInvalidaNombraElCampo(t *testing.T) {
	f := buildFixture(t)

	casos := []struct {
		nombre string
		item   dto.NoteItemRequest
		campo  string
	}{
		{"tipo desconocido", dto.NoteItemRequest{Type: "DAYS", Description: "x", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1)}, "type"},
		{"cantidad cero", dto.NoteItemRequest{Type: entity.ItemTypeHours, Description: "x", Quantity: decimal.Zero, UnitPrice: decimal.NewFromInt(1)}, "quantity"},
		{"cantidad negativa", dto.NoteItemRequest{Type: entity.ItemTypeHours, Description: "x", Quantity: decimal.NewFromInt(-2), UnitPrice: decimal.NewFromInt(1)}, "quantity"},
		{"precio negativo", dto.NoteItemRequest{Type: entity.ItemTypeMaterial, Description: "x", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(-5)}, "unit_price"},
		{"sin descripción", dto.NoteItemRequest{Type: entity.ItemTypeHours, Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1)}, "description"},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			_, err := f.uc.Create(f.owner, dto.CreateNoteRequest{ProjectID: f.projectID, Items: []dto.NoteItemRequest{c.item}})
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Contains(t, err.Error(), c.campo)
		})
	}
}

// Una línea inválida en cualquier posición invalida toda la creación.
func TestCreate_FalloAtomico(t *testing.T) {
	f := buildFixture(t)
	items := append(hoursAndMaterialItems(), dto.NoteItemRequest{
		Type: entity.ItemTypeHours, Description: "mal", Quantity: decimal.Zero, UnitPrice: decimal.NewFromInt(1),
	})

	_, err := f.uc.Create(f.owner, dto.CreateNoteRequest{ProjectID: f.projectID, Items: items})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, f.noteRepo.notes, "no debe quedar creación parcial")
}

func TestCreate_ProyectoFueraDeAlcance(t *testing.T) {
	f := buildFixture(t)
	intruso := scope.Principal{UserID: "user-2"}

	_, err := f.uc.Create(intruso, dto.CreateNoteRequest{ProjectID: f.projectID, Items: hoursAndMaterialItems()})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// El creador de un proyecto que quedó en otra empresa no puede colgarle
// albaranes: acceso cruzado de empresa → Forbidden (no NotFound).
func TestCreate_ProyectoDeOtraEmpresa(t *testing.T) {
	f := buildFixture(t)
	projectRepo := newFakeProjectRepo()
	require.NoError(t, projectRepo.Create(&entity.Project{
		ID: "project-2", Name: "Obra vieja", ClientID: f.clientID, CreatedBy: f.owner.UserID, CompanyID: "company-9",
	}))
	uc := notes.NewNoteUseCase(f.noteRepo, projectRepo, newFakeClientRepo(), &fakeUserRepo{users: map[string]*entity.User{}}, &fakeCompanyRepo{companies: map[string]*entity.Company{}}, f.generator, f.store)

	_, err := uc.Create(f.owner, dto.CreateNoteRequest{ProjectID: "project-2", Items: hoursAndMaterialItems()})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCreate_SinEmpresaNoAdjuntaEmpresa(t *testing.T) {
	f := buildFixture(t)
	solo := scope.Principal{UserID: "user-3"}
	projectRepo := newFakeProjectRepo()
	require.NoError(t, projectRepo.Create(&entity.Project{ID: "project-3", Name: "Particular", ClientID: "client-3", CreatedBy: "user-3"}))
	uc := notes.NewNoteUseCase(f.noteRepo, projectRepo, newFakeClientRepo(), &fakeUserRepo{users: map[string]*entity.User{}}, &fakeCompanyRepo{companies: map[string]*entity.Company{}}, f.generator, f.store)

	resp, err := uc.Create(solo, dto.CreateNoteRequest{ProjectID: "project-3", Items: hoursAndMaterialItems()})
	require.NoError(t, err)
	assert.Empty(t, resp.CompanyID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Sign
// ──────────────────────────────────────────────────────────────────────────────

func TestSign_TransicionYRechazoDeSegundaFirma(t *testing.T) {
	f := buildFixture(t)
	created, err := f.uc.Create(f.owner, dto.CreateNoteRequest{ProjectID: f.projectID, Items: hoursAndMaterialItems()})
	require.NoError(t, err)

	signed, err := f.uc.Sign(f.owner, created.ID, "/uploads/signatures/firma.png")
	require.NoError(t, err)
	assert.Equal(t, entity.NoteStatusSigned, signed.Status)
	require.NotNil(t, signed.Signature)
	assert.Equal(t, "/uploads/signatures/firma.png", signed.Signature.ImageURL)
	assert.NotEmpty(t, signed.PDFURL)

	_, err = f.uc.Sign(f.owner, created.ID, "/uploads/signatures/otra.png")
	assert.ErrorIs(t, err, domain.ErrAlreadySigned)
}

func TestSign_SinImagen(t *testing.T) {
	f := buildFixture(t)
	created, err := f.uc.Create(f.owner, dto.CreateNoteRequest{ProjectID: f.projectID, Items: hoursAndMaterialItems()})
	require.NoError(t, err)

	_, err = f.uc.Sign(f.owner, created.ID, "")
	assert.ErrorIs(t, err, domain.ErrSignatureRequired)
}

func TestSign_FueraDeAlcance(t *testing.T) {
	f := buildFixture(t)
	created, err := f.uc.Create(f.owner, dto.CreateNoteRequest{ProjectID: f.projectID, Items: hoursAndMaterialItems()})
	require.NoError(t, err)

	_, err = f.uc.Sign(scope.Principal{UserID: "user-2"}, created.ID, "/uploads/signatures/firma.png")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_BorradorSeEliminaYDesaparece(t *testing.T) {
	f := buildFixture(t)
	created, err := f.uc.Create(f.owner, dto.CreateNoteRequest{ProjectID: f.projectID, Items: hoursAndMaterialItems()})
	require.NoError(t, err)

	require.NoError(t, f.uc.Delete(f.owner, created.ID))

	_, err = f.uc.GetByID(f.owner, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_FirmadoSeRechaza(t *testing.T) {
	f := buildFixture(t)
	created, err := f.uc.Create(f.owner, dto.CreateNoteRequest{ProjectID: f.projectID, Items: hoursAndMaterialItems()})
	require.NoError(t, err)
	_, err = f.uc.Sign(f.owner, created.ID, "/uploads/signatures/firma.png")
	require.NoError(t, err)

	err = f.uc.Delete(f.owner, created.ID)
	assert.ErrorIs(t, err, domain.ErrNoteSigned)

	// Sigue existiendo
	_, err = f.uc.GetByID(f.owner, created.ID)
	assert.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Aislamiento entre tenants
// ──────────────────────────────────────────────────────────────────────────────

func TestList_AislamientoEntreTenants(t *testing.T) {
	f := buildFixture(t)
	created, err := f.uc.Create(f.owner, dto.CreateNoteRequest{ProjectID: f.projectID, Items: hoursAndMaterialItems()})
	require.NoError(t, err)

	// Compañero de empresa: lo ve
	companero := scope.Principal{UserID: "user-9", CompanyID: f.owner.CompanyID}
	list, err := f.uc.List(companero)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	// Usuario de otra empresa: no ve nada
	ajeno := scope.Principal{UserID: "user-8", CompanyID: "company-2"}
	list, err = f.uc.List(ajeno)
	require.NoError(t, err)
	assert.Empty(t, list)

	// Usuario sin empresa: tampoco
	solo := scope.Principal{UserID: "user-7"}
	list, err = f.uc.List(solo)
	require.NoError(t, err)
	assert.Empty(t, list)
}

// ──────────────────────────────────────────────────────────────────────────────
// Export PDF
// ──────────────────────────────────────────────────────────────────────────────

func TestDownloadPDF_BorradorGeneraSinRegistrarArtefacto(t *testing.T) {
	f := buildFixture(t)
	created, err := f.uc.Create(f.owner, dto.CreateNoteRequest{ProjectID: f.projectID, Items: hoursAndMaterialItems()})
	require.NoError(t, err)

	data, filename, err := f.uc.DownloadPDF(context.Background(), f.owner, created.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Equal(t, "albaran-"+created.ID+".pdf", filename)
	assert.Equal(t, 1, f.generator.calls)

	// Sin firma, el payload lleva la ruta de imagen vacía y el albarán no
	// registra artefacto (se regenera en cada descarga).
	assert.Empty(t, f.generator.lastData.SignatureImagePath)
	stored := f.noteRepo.notes[created.ID]
	assert.Empty(t, stored.PDFURL)
}

func TestDownloadPDF_FirmadoRegistraYReutilizaArtefacto(t *testing.T) {
	f := buildFixture(t)
	created, err := f.uc.Create(f.owner, dto.CreateNoteRequest{ProjectID: f.projectID, Items: hoursAndMaterialItems()})
	require.NoError(t, err)
	_, err = f.uc.Sign(f.owner, created.ID, "/uploads/signatures/firma.png")
	require.NoError(t, err)

	_, _, err = f.uc.DownloadPDF(context.Background(), f.owner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, f.generator.calls)
	assert.NotEmpty(t, f.generator.lastData.SignatureImagePath, "firmado: el payload debe llevar la imagen")

	stored := f.noteRepo.notes[created.ID]
	assert.Contains(t, stored.PDFURL, "/uploads/pdfs/")

	// Segunda descarga: atajo al artefacto almacenado, sin regenerar
	data, _, err := f.uc.DownloadPDF(context.Background(), f.owner, created.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Equal(t, 1, f.generator.calls)
}

func TestDownloadPDF_PayloadCompleto(t *testing.T) {
	f := buildFixture(t)
	created, err := f.uc.Create(f.owner, dto.CreateNoteRequest{ProjectID: f.projectID, Items: hoursAndMaterialItems(), Notes: "Entregar antes del viernes"})
	require.NoError(t, err)

	_, _, err = f.uc.DownloadPDF(context.Background(), f.owner, created.ID)
	require.NoError(t, err)

	data := f.generator.lastData
	require.NotNil(t, data)
	assert.Equal(t, "Cliente Uno", data.Client.Name)
	assert.Equal(t, "Reforma nave", data.Project.Name)
	assert.Equal(t, "Ana", data.Creator.Name)
	require.NotNil(t, data.Company)
	assert.Equal(t, "Obras Pérez SL", data.Company.Name)
	assert.Equal(t, "Entregar antes del viernes", data.Note.Notes)
	assert.Len(t, data.Note.Items, 2)
}
