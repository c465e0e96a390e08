package repository

import (
	"github.com/dverdu/albaranes-api/internal/domain/entity"
	"github.com/dverdu/albaranes-api/internal/domain/scope"
)

// ProjectRepository define el puerto de persistencia para Project, con el
// mismo contrato de alcance que ClientRepository.
type ProjectRepository interface {
	Create(project *entity.Project) error
	GetByID(p scope.Principal, id string) (*entity.Project, error)
	// GetAnyByID como GetByID pero incluyendo archivados.
	GetAnyByID(p scope.Principal, id string) (*entity.Project, error)
	// ExistsByNameAndClient unicidad de nombre de proyecto por cliente dentro del alcance.
	ExistsByNameAndClient(p scope.Principal, name, clientID string) (bool, error)
	List(p scope.Principal) ([]*entity.Project, error)
	ListArchived(p scope.Principal) ([]*entity.Project, error)
	Update(p scope.Principal, project *entity.Project) (bool, error)
	Archive(p scope.Principal, id string) (bool, error)
	Restore(p scope.Principal, id string) (bool, error)
	Delete(p scope.Principal, id string) (bool, error)
}
