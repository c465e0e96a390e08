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

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación de ClientRepository (usable con pool o tx). El
// filtro de pertenencia de scope entra en el WHERE de cada consulta: lo que
// queda fuera del alcance se comporta como inexistente.
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

const clientColumns = `id, name, email, phone, created_by, company_id, is_archived, created_at, updated_at`

// Create persiste un nuevo cliente.
func (r *ClientRepo) Create(client *entity.Client) error {
	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		client.ID, client.Name, client.Email, client.Phone,
		client.CreatedBy, nullIfEmpty(client.CompanyID), client.IsArchived,
		client.CreatedAt, client.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente no archivado visible para el principal, o nil.
func (r *ClientRepo) GetByID(p scope.Principal, id string) (*entity.Client, error) {
	clause, args := scope.Filter(p, 2)
	query := `SELECT ` + clientColumns + ` FROM clients
		WHERE id = $1 AND is_archived = FALSE AND ` + clause
	return r.scanOne(r.q.QueryRow(context.Background(), query, append([]any{id}, args...)...))
}

// GetAnyByID como GetByID pero incluyendo archivados.
func (r *ClientRepo) GetAnyByID(p scope.Principal, id string) (*entity.Client, error) {
	clause, args := scope.Filter(p, 2)
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1 AND ` + clause
	return r.scanOne(r.q.QueryRow(context.Background(), query, append([]any{id}, args...)...))
}

// ExistsByEmail comprueba si ya hay un cliente con ese email en el alcance.
func (r *ClientRepo) ExistsByEmail(p scope.Principal, email string) (bool, error) {
	clause, args := scope.Filter(p, 2)
	query := `SELECT EXISTS (SELECT 1 FROM clients WHERE lower(email) = lower($1) AND ` + clause + `)`
	var exists bool
	err := r.q.QueryRow(context.Background(), query, append([]any{email}, args...)...).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists client by email: %w", err)
	}
	return exists, nil
}

// List clientes activos del alcance.
func (r *ClientRepo) List(p scope.Principal) ([]*entity.Client, error) {
	return r.list(p, false)
}

// ListArchived clientes archivados del alcance.
func (r *ClientRepo) ListArchived(p scope.Principal) ([]*entity.Client, error) {
	return r.list(p, true)
}

func (r *ClientRepo) list(p scope.Principal, archived bool) ([]*entity.Client, error) {
	clause, args := scope.Filter(p, 2)
	query := `SELECT ` + clientColumns + ` FROM clients
		WHERE is_archived = $1 AND ` + clause + ` ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, append([]any{archived}, args...)...)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		c, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update persiste name/email/phone; false si no hay cliente visible.
func (r *ClientRepo) Update(p scope.Principal, client *entity.Client) (bool, error) {
	clause, args := scope.Filter(p, 6)
	query := `UPDATE clients SET name = $2, email = $3, phone = $4, updated_at = $5
		WHERE id = $1 AND is_archived = FALSE AND ` + clause
	tag, err := r.q.Exec(context.Background(), query,
		append([]any{client.ID, client.Name, client.Email, client.Phone, client.UpdatedAt}, args...)...)
	if err != nil {
		if isUniqueViolation(err) {
			return false, domain.ErrDuplicate
		}
		return false, fmt.Errorf("update client: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Archive marca el cliente como archivado; false si no aplica.
func (r *ClientRepo) Archive(p scope.Principal, id string) (bool, error) {
	return r.setArchived(p, id, true)
}

// Restore recupera un cliente archivado; false si no aplica.
func (r *ClientRepo) Restore(p scope.Principal, id string) (bool, error) {
	return r.setArchived(p, id, false)
}

func (r *ClientRepo) setArchived(p scope.Principal, id string, archived bool) (bool, error) {
	clause, args := scope.Filter(p, 3)
	query := `UPDATE clients SET is_archived = $2, updated_at = now()
		WHERE id = $1 AND is_archived = NOT $2 AND ` + clause
	tag, err := r.q.Exec(context.Background(), query, append([]any{id, archived}, args...)...)
	if err != nil {
		return false, fmt.Errorf("set client archived: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Delete borrado físico; false si no hay cliente visible.
func (r *ClientRepo) Delete(p scope.Principal, id string) (bool, error) {
	clause, args := scope.Filter(p, 2)
	query := `DELETE FROM clients WHERE id = $1 AND ` + clause
	tag, err := r.q.Exec(context.Background(), query, append([]any{id}, args...)...)
	if err != nil {
		return false, fmt.Errorf("delete client: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *ClientRepo) scanOne(row pgx.Row) (*entity.Client, error) {
	c, err := scanClient(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

func (r *ClientRepo) scanRow(rows pgx.Rows) (*entity.Client, error) {
	c, err := scanClient(rows)
	if err != nil {
		return nil, fmt.Errorf("scan client: %w", err)
	}
	return c, nil
}

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	var companyID *string
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedBy, &companyID,
		&c.IsArchived, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.CompanyID = derefStr(companyID)
	return &c, nil
}
