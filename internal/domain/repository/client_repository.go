package repository

import (
	"github.com/dverdu/albaranes-api/internal/domain/entity"
	"github.com/dverdu/albaranes-api/internal/domain/scope"
)

// ClientRepository define el puerto de persistencia para Client. Todas las
// operaciones con Principal aplican el filtro de pertenencia de scope; un
// registro fuera del alcance del principal se comporta como inexistente.
type ClientRepository interface {
	Create(client *entity.Client) error
	// GetByID devuelve el cliente no archivado visible para el principal, o nil.
	GetByID(p scope.Principal, id string) (*entity.Client, error)
	// GetAnyByID como GetByID pero incluyendo archivados (para proyecciones
	// como el PDF de un albarán cuyo cliente ya fue archivado).
	GetAnyByID(p scope.Principal, id string) (*entity.Client, error)
	// ExistsByEmail comprueba si ya hay un cliente con ese email en el alcance.
	ExistsByEmail(p scope.Principal, email string) (bool, error)
	List(p scope.Principal) ([]*entity.Client, error)
	ListArchived(p scope.Principal) ([]*entity.Client, error)
	// Update persiste name/email/phone; false si no hay cliente visible.
	Update(p scope.Principal, client *entity.Client) (bool, error)
	// Archive y Restore conmutan el flag de archivado; false si no aplica
	// (inexistente, fuera de alcance o ya en el estado pedido).
	Archive(p scope.Principal, id string) (bool, error)
	Restore(p scope.Principal, id string) (bool, error)
	// Delete borrado físico; false si no hay cliente visible.
	Delete(p scope.Principal, id string) (bool, error)
}
