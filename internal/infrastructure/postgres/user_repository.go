package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dverdu/albaranes-api/internal/domain"
	"github.com/dverdu/albaranes-api/internal/domain/entity"
	"github.com/dverdu/albaranes-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación de UserRepository (usable con pool o tx).
// Todas las lecturas excluyen cuentas con deleted_at.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `id, email, password_hash, status, role, company_id, name, surname, nif, logo_url,
	verification_code, verification_attempts, verification_expires_at,
	reset_code, reset_attempts, reset_expires_at,
	deleted_at, created_at, updated_at`

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	verCode, verAttempts, verExpires := codeRecordColumns(user.Verification)
	resetCode, resetAttempts, resetExpires := codeRecordColumns(user.PasswordReset)
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.Email, user.PasswordHash, user.Status, user.Role,
		nullIfEmpty(user.CompanyID), user.Name, user.Surname, user.NIF, user.LogoURL,
		verCode, verAttempts, verExpires,
		resetCode, resetAttempts, resetExpires,
		user.DeletedAt, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario activo por ID.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND deleted_at IS NULL`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByEmail obtiene el usuario activo más reciente con ese email. Con registros
// PENDING duplicados gana el último creado, que es el que tiene el código vigente.
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		WHERE email = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC LIMIT 1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, email))
}

// GetVerifiedByEmail solo encuentra cuentas VERIFIED; es la consulta del
// chequeo de unicidad del registro.
func (r *UserRepo) GetVerifiedByEmail(email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		WHERE email = $1 AND status = 'VERIFIED' AND deleted_at IS NULL`
	return r.scanOne(r.q.QueryRow(context.Background(), query, email))
}

// Update persiste todos los campos mutables del usuario, códigos incluidos.
func (r *UserRepo) Update(user *entity.User) error {
	query := `
		UPDATE users SET
			email = $2, password_hash = $3, status = $4, role = $5, company_id = $6,
			name = $7, surname = $8, nif = $9, logo_url = $10,
			verification_code = $11, verification_attempts = $12, verification_expires_at = $13,
			reset_code = $14, reset_attempts = $15, reset_expires_at = $16,
			updated_at = $17
		WHERE id = $1 AND deleted_at IS NULL`
	verCode, verAttempts, verExpires := codeRecordColumns(user.Verification)
	resetCode, resetAttempts, resetExpires := codeRecordColumns(user.PasswordReset)
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.Email, user.PasswordHash, user.Status, user.Role,
		nullIfEmpty(user.CompanyID), user.Name, user.Surname, user.NIF, user.LogoURL,
		verCode, verAttempts, verExpires,
		resetCode, resetAttempts, resetExpires,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// SoftDelete marca la cuenta como borrada; la fila sobrevive para auditoría.
func (r *UserRepo) SoftDelete(id string, when time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE users SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`, id, when)
	if err != nil {
		return fmt.Errorf("soft delete user: %w", err)
	}
	return nil
}

// HardDelete elimina la fila definitivamente.
func (r *UserRepo) HardDelete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("hard delete user: %w", err)
	}
	return nil
}

func (r *UserRepo) scanOne(row pgx.Row) (*entity.User, error) {
	var u entity.User
	var companyID *string
	var verCode, resetCode *string
	var verAttempts, resetAttempts int
	var verExpires, resetExpires *time.Time
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Status, &u.Role, &companyID,
		&u.Name, &u.Surname, &u.NIF, &u.LogoURL,
		&verCode, &verAttempts, &verExpires,
		&resetCode, &resetAttempts, &resetExpires,
		&u.DeletedAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	u.CompanyID = derefStr(companyID)
	u.Verification = codeRecordFromColumns(verCode, verAttempts, verExpires)
	u.PasswordReset = codeRecordFromColumns(resetCode, resetAttempts, resetExpires)
	return &u, nil
}

func codeRecordColumns(c *entity.CodeRecord) (*string, int, *time.Time) {
	if c == nil || c.Code == "" {
		return nil, 0, nil
	}
	return &c.Code, c.Attempts, &c.ExpiresAt
}

func codeRecordFromColumns(code *string, attempts int, expires *time.Time) *entity.CodeRecord {
	if code == nil || expires == nil {
		return nil
	}
	return &entity.CodeRecord{Code: *code, Attempts: attempts, ExpiresAt: *expires}
}
