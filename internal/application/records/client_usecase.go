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

// ClientUseCase CRUD de clientes con archivado reversible. Toda operación pasa
// por el filtro de pertenencia del repositorio; lo que queda fuera del alcance
// del principal se responde como inexistente.
type ClientUseCase struct {
	repo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

// Create crea un cliente. El email debe ser único dentro del alcance.
func (uc *ClientUseCase) Create(p scope.Principal, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	if in.Email == "" {
		return nil, fmt.Errorf("%w: email es obligatorio", domain.ErrInvalidInput)
	}
	exists, err := uc.repo.ExistsByEmail(p, in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	client := &entity.Client{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		CreatedBy: p.UserID,
		CompanyID: p.CompanyID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// GetByID devuelve un cliente no archivado del alcance del principal.
func (uc *ClientUseCase) GetByID(p scope.Principal, id string) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(p, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	return toClientResponse(client), nil
}

// List clientes activos del alcance.
func (uc *ClientUseCase) List(p scope.Principal) ([]*dto.ClientResponse, error) {
	list, err := uc.repo.List(p)
	if err != nil {
		return nil, err
	}
	return toClientResponses(list), nil
}

// ListArchived clientes archivados del alcance.
func (uc *ClientUseCase) ListArchived(p scope.Principal) ([]*dto.ClientResponse, error) {
	list, err := uc.repo.ListArchived(p)
	if err != nil {
		return nil, err
	}
	return toClientResponses(list), nil
}

// Update edita name/email/phone de un cliente visible.
func (uc *ClientUseCase) Update(p scope.Principal, id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(p, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		client.Name = in.Name
	}
	if in.Email != "" {
		client.Email = in.Email
	}
	if in.Phone != "" {
		client.Phone = in.Phone
	}
	client.UpdatedAt = time.Now()
	ok, err := uc.repo.Update(p, client)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotFound
	}
	return toClientResponse(client), nil
}

// Archive marca el cliente como archivado (soft delete reversible).
func (uc *ClientUseCase) Archive(p scope.Principal, id string) error {
	ok, err := uc.repo.Archive(p, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// Restore recupera un cliente archivado.
func (uc *ClientUseCase) Restore(p scope.Principal, id string) error {
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
func (uc *ClientUseCase) Delete(p scope.Principal, id string) error {
	ok, err := uc.repo.Delete(p, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:         c.ID,
		Name:       c.Name,
		Email:      c.Email,
		Phone:      c.Phone,
		CreatedBy:  c.CreatedBy,
		CompanyID:  c.CompanyID,
		IsArchived: c.IsArchived,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func toClientResponses(list []*entity.Client) []*dto.ClientResponse {
	out := make([]*dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toClientResponse(c))
	}
	return out
}
