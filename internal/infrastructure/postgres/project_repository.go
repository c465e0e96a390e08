package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dverdu/albaranes-api/internal/domain"
	"github.com/dverdu/albaranes-api/internal/domain/entity"
	"github.com/dverdu/albaranes-api/internal/domain/repository"
	"github.com/dverdu/albaranes-api/internal/domain/scope"
)

var _ repository.ProjectRepository = (*ProjectRepo)(nil)

// ProjectRepo implementación de ProjectRepository (usable con pool o tx).
type ProjectRepo struct {
	q Querier
}

// NewProjectRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProjectRepository(q Querier) *ProjectRepo {
	return &ProjectRepo{q: q}
}

const projectColumns = `id, name, description, client_id, created_by, company_id, is_archived, created_at, updated_at`

// Create persiste un nuevo proyecto.
func (r *ProjectRepo) Create(project *entity.Project) error {
	query := `
		INSERT INTO projects (` + projectColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		project.ID, project.Name, project.Description, project.ClientID,
		project.CreatedBy, nullIfEmpty(project.CompanyID), project.IsArchived,
		project.CreatedAt, project.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

// GetByID obtiene un proyecto no archivado visible para el principal, o nil.
func (r *ProjectRepo) GetByID(p scope.Principal, id string) (*entity.Project, error) {
	clause, args := scope.Filter(p, 2)
	query := `SELECT ` + projectColumns + ` FROM projects
		WHERE id = $1 AND is_archived = FALSE AND ` + clause
	return r.scanOne(r.q.QueryRow(context.Background(), query, append([]any{id}, args...)...))
}

// GetAnyByID como GetByID pero incluyendo archivados.
func (r *ProjectRepo) GetAnyByID(p scope.Principal, id string) (*entity.Project, error) {
	clause, args := scope.Filter(p, 2)
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1 AND ` + clause
	return r.scanOne(r.q.QueryRow(context.Background(), query, append([]any{id}, args...)...))
}

// ExistsByNameAndClient unicidad de nombre de proyecto por cliente dentro del alcance.
func (r *ProjectRepo) ExistsByNameAndClient(p scope.Principal, name, clientID string) (bool, error) {
	clause, args := scope.Filter(p, 3)
	query := `SELECT EXISTS (SELECT 1 FROM projects
		WHERE lower(name) = lower($1) AND client_id = $2 AND ` + clause + `)`
	var exists bool
	err := r.q.QueryRow(context.Background(), query, append([]any{name, clientID}, args...)...).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists project by name: %w", err)
	}
	return exists, nil
}

// List proyectos activos del alcance.
func (r *ProjectRepo) List(p scope.Principal) ([]*entity.Project, error) {
	return r.list(p, false)
}

// ListArchived proyectos archivados del alcance.
func (r *ProjectRepo) ListArchived(p scope.Principal) ([]*entity.Project, error) {
	return r.list(p, true)
}

func (r *ProjectRepo) list(p scope.Principal, archived bool) ([]*entity.Project, error) {
	clause, args := scope.Filter(p, 2)
	query := `SELECT ` + projectColumns + ` FROM projects
		WHERE is_archived = $1 AND ` + clause + ` ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, append([]any{archived}, args...)...)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()
	var list []*entity.Project
	for rows.Next() {
		pr, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		list = append(list, pr)
	}
	return list, rows.Err()
}

// Update persiste name/description/client_id; false si no hay proyecto visible.
func (r *ProjectRepo) Update(p scope.Principal, project *entity.Project) (bool, error) {
	clause, args := scope.Filter(p, 6)
	query := `UPDATE projects SET name = $2, description = $3, client_id = $4, updated_at = $5
		WHERE id = $1 AND is_archived = FALSE AND ` + clause
	tag, err := r.q.Exec(context.Background(), query,
		append([]any{project.ID, project.Name, project.Description, project.ClientID, project.UpdatedAt}, args...)...)
	if err != nil {
		if isUniqueViolation(err) {
			return false, domain.ErrDuplicate
		}
		return false, fmt.Errorf("update project: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Archive marca el proyecto como archivado; false si no aplica.
func (r *ProjectRepo) Archive(p scope.Principal, id string) (bool, error) {
	return r.setArchived(p, id, true)
}

// Restore recupera un proyecto archivado; false si no aplica.
func (r *ProjectRepo) Restore(p scope.Principal, id string) (bool, error) {
	return r.setArchived(p, id, false)
}

func (r *ProjectRepo) setArchived(p scope.Principal, id string, archived bool) (bool, error) {
	clause, args := scope.Filter(p, 3)
	query := `UPDATE projects SET is_archived = $2, updated_at = now()
		WHERE id = $1 AND is_archived = NOT $2 AND ` + clause
	tag, err := r.q.Exec(context.Background(), query, append([]any{id, archived}, args...)...)
	if err != nil {
		return false, fmt.Errorf("set project archived: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Delete borrado físico; false si no hay proyecto visible.
func (r *ProjectRepo) Delete(p scope.Principal, id string) (bool, error) {
	clause, args := scope.Filter(p, 2)
	query := `DELETE FROM projects WHERE id = $1 AND ` + clause
	tag, err := r.q.Exec(context.Background(), query, append([]any{id}, args...)...)
	if err != nil {
		return false, fmt.Errorf("delete project: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *ProjectRepo) scanOne(row pgx.Row) (*entity.Project, error) {
	pr, err := scanProject(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return pr, nil
}

func scanProject(row pgx.Row) (*entity.Project, error) {
	var pr entity.Project
	var companyID *string
	err := row.Scan(&pr.ID, &pr.Name, &pr.Description, &pr.ClientID, &pr.CreatedBy, &companyID,
		&pr.IsArchived, &pr.CreatedAt, &pr.UpdatedAt)
	if err != nil {
		return nil, err
	}
	pr.CompanyID = derefStr(companyID)
	return &pr, nil
}
