package repository

import (
	"time"

	"github.com/dverdu/albaranes-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User.
// Todas las lecturas excluyen cuentas con soft delete.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	// GetVerifiedByEmail solo encuentra cuentas en estado VERIFIED; es la
	// consulta del chequeo de unicidad del registro.
	GetVerifiedByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	SoftDelete(id string, when time.Time) error
	HardDelete(id string) error
}
