package records

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dverdu/albaranes-api/internal/application/dto"
	"github.com/dverdu/albaranes-api/internal/domain"
	"github.com/dverdu/albaranes-api/internal/domain/entity"
	"github.com/dverdu/albaranes-api/internal/domain/repository"
	"github.com/dverdu/albaranes-api/internal/domain/scope"
)

// ProjectUseCase CRUD de proyectos. Un proyecto siempre referencia un cliente
// existente y accesible para el principal.
type ProjectUseCase struct {
	repo       repository.ProjectRepository
	clientRepo repository.ClientRepository
}

// NewProjectUseCase construye el caso de uso.
func NewProjectUseCase(repo repository.ProjectRepository, clientRepo repository.ClientRepository) *ProjectUseCase {
	return &ProjectUseCase{repo: repo, clientRepo: clientRepo}
}

// Create crea un proyecto sobre un cliente del alcance. El nombre es único por
// cliente dentro del alcance.
func (uc *ProjectUseCase) Create(p scope.Principal, in dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	if in.ClientID == "" {
		return nil, fmt.Errorf("%w: client_id es obligatorio", domain.ErrInvalidInput)
	}
	client, err := uc.clientRepo.GetByID(p, in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	exists, err := uc.repo.ExistsByNameAndClient(p, in.Name, in.ClientID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	project := &entity.Project{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		ClientID:    in.ClientID,
		CreatedBy:   p.UserID,
		CompanyID:   p.CompanyID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(project); err != nil {
		return nil, err
	}
	return toProjectResponse(project), nil
}

// GetByID devuelve un proyecto no archivado del alcance.
func (uc *ProjectUseCase) GetByID(p scope.Principal, id string) (*dto.ProjectResponse, error) {
	project, err := uc.repo.GetByID(p, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}
	return toProjectResponse(project), nil
}

// List proyectos activos del alcance.
func (uc *ProjectUseCase) List(p scope.Principal) ([]*dto.ProjectResponse, error) {
	list, err := uc.repo.List(p)
	if err != nil {
		return nil, err
	}
	return toProjectResponses(list), nil
}

// ListArchived proyectos archivados del alcance.
func (uc *ProjectUseCase) ListArchived(p scope.Principal) ([]*dto.ProjectResponse, error) {
	list, err := uc.repo.ListArchived(p)
	if err != nil {
		return nil, err
	}
	return toProjectResponses(list), nil
}

// Update edita un proyecto; si cambia de cliente, el nuevo también debe estar
// en el alcance.
func (uc *ProjectUseCase) Update(p scope.Principal, id string, in dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	project, err := uc.repo.GetByID(p, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}
	if in.ClientID != "" && in.ClientID != project.ClientID {
		client, err := uc.clientRepo.GetByID(p, in.ClientID)
		if err != nil {
			return nil, err
		}
		if client == nil {
			return nil, domain.ErrNotFound
		}
		project.ClientID = in.ClientID
	}
	if in.Name != "" {
		project.Name = in.Name
	}
	if in.Description != "" {
		project.Description = in.Description
	}
	project.UpdatedAt = time.Now()
	ok, err := uc.repo.Update(p, project)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotFound
	}
	return toProjectResponse(project), nil
}

// Archive marca el proyecto como archivado.
func (uc *ProjectUseCase) Archive(p scope.Principal, id string) error {
	ok, err := uc.repo.Archive(p, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// Restore recupera un proyecto archivado.
func (uc *ProjectUseCase) Restore(p scope.Principal, id string) error {
	ok, err := uc.repo.Restore(p, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// Delete borrado físico.
func (uc *ProjectUseCase) Delete(p scope.Principal, id string) error {
	ok, err := uc.repo.Delete(p, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

func toProjectResponse(pr *entity.Project) *dto.ProjectResponse {
	return &dto.ProjectResponse{
		ID:          pr.ID,
		Name:        pr.Name,
		Description: pr.Description,
		ClientID:    pr.ClientID,
		CreatedBy:   pr.CreatedBy,
		CompanyID:   pr.CompanyID,
		IsArchived:  pr.IsArchived,
		CreatedAt:   pr.CreatedAt,
		UpdatedAt:   pr.UpdatedAt,
	}
}

func toProjectResponses(list []*entity.Project) []*dto.ProjectResponse {
	out := make([]*dto.ProjectResponse, 0, len(list))
	for _, pr := range list {
		out = append(out, toProjectResponse(pr))
	}
	return out
}
