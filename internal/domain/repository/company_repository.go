package repository

import "github.com/dverdu/albaranes-api/internal/domain/entity"

// CompanyRepository define el puerto de persistencia para Company.
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	GetByOwner(ownerUserID string) (*entity.Company, error)
	Update(company *entity.Company) error
}
