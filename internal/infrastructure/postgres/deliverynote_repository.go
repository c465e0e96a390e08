package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dverdu/albaranes-api/internal/domain/entity"
	"github.com/dverdu/albaranes-api/internal/domain/repository"
	"github.com/dverdu/albaranes-api/internal/domain/scope"
)

var _ repository.DeliveryNoteRepository = (*DeliveryNoteRepo)(nil)

// DeliveryNoteRepo implementación de DeliveryNoteRepository. Usa el pool
// directamente porque Create necesita una transacción (cabecera más líneas).
//
// Sign y Delete son un compare-and-set sobre status = 'DRAFT' en una sola
// sentencia: de dos peticiones concurrentes solo una ve la fila en DRAFT.
type DeliveryNoteRepo struct {
	pool *pgxpool.Pool
}

// NewDeliveryNoteRepository construye el adaptador con el pool.
func NewDeliveryNoteRepository(pool *pgxpool.Pool) *DeliveryNoteRepo {
	return &DeliveryNoteRepo{pool: pool}
}

const noteColumns = `id, project_id, client_id, created_by, company_id, total_amount, notes, status,
	signature_date, signature_image_url, pdf_url, is_archived, created_at, updated_at`

const itemColumns = `id, note_id, position, item_type, description, quantity, unit_price, person, work_date, reference`

// Create persiste cabecera y líneas en una transacción: o entra todo o nada.
func (r *DeliveryNoteRepo) Create(note *entity.DeliveryNote) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	headerQuery := `
		INSERT INTO delivery_notes (` + noteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	var sigDate *time.Time
	var sigImage *string
	if note.Signature != nil {
		sigDate = &note.Signature.Date
		sigImage = &note.Signature.ImageURL
	}
	_, err = tx.Exec(ctx, headerQuery,
		note.ID, note.ProjectID, note.ClientID, note.CreatedBy, nullIfEmpty(note.CompanyID),
		note.TotalAmount, note.Notes, note.Status,
		sigDate, sigImage, nullIfEmpty(note.PDFURL), note.IsArchived,
		note.CreatedAt, note.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert delivery note: %w", err)
	}

	itemQuery := `
		INSERT INTO delivery_note_items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	for _, it := range note.Items {
		_, err = tx.Exec(ctx, itemQuery,
			it.ID, note.ID, it.Position, it.Type, it.Description,
			it.Quantity, it.UnitPrice, it.Person, it.WorkDate, it.Reference,
		)
		if err != nil {
			return fmt.Errorf("insert delivery note item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// GetByID obtiene un albarán no archivado con sus líneas, o nil.
func (r *DeliveryNoteRepo) GetByID(p scope.Principal, id string) (*entity.DeliveryNote, error) {
	clause, args := scope.Filter(p, 2)
	query := `SELECT ` + noteColumns + ` FROM delivery_notes
		WHERE id = $1 AND is_archived = FALSE AND ` + clause
	note, err := scanNote(r.pool.QueryRow(context.Background(), query, append([]any{id}, args...)...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery note: %w", err)
	}
	items, err := r.loadItems(note.ID)
	if err != nil {
		return nil, err
	}
	note.Items = items
	return note, nil
}

// List albaranes activos del alcance con sus líneas.
func (r *DeliveryNoteRepo) List(p scope.Principal) ([]*entity.DeliveryNote, error) {
	clause, args := scope.Filter(p, 1)
	query := `SELECT ` + noteColumns + ` FROM delivery_notes
		WHERE is_archived = FALSE AND ` + clause + ` ORDER BY created_at DESC`
	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list delivery notes: %w", err)
	}
	defer rows.Close()
	var list []*entity.DeliveryNote
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan delivery note: %w", err)
		}
		list = append(list, note)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, note := range list {
		items, err := r.loadItems(note.ID)
		if err != nil {
			return nil, err
		}
		note.Items = items
	}
	return list, nil
}

// Sign transición DRAFT→SIGNED por compare-and-set. false si el albarán no está
// en DRAFT o no es visible para el principal.
func (r *DeliveryNoteRepo) Sign(p scope.Principal, id string, date time.Time, imageURL, pdfURL string) (bool, error) {
	clause, args := scope.Filter(p, 5)
	query := `UPDATE delivery_notes
		SET status = 'SIGNED', signature_date = $2, signature_image_url = $3, pdf_url = $4, updated_at = $2
		WHERE id = $1 AND status = 'DRAFT' AND is_archived = FALSE AND ` + clause
	tag, err := r.pool.Exec(context.Background(), query,
		append([]any{id, date, imageURL, pdfURL}, args...)...)
	if err != nil {
		return false, fmt.Errorf("sign delivery note: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Delete borrado físico, solo mientras el albarán siga en DRAFT. Las líneas
// caen por la FK con ON DELETE CASCADE.
func (r *DeliveryNoteRepo) Delete(p scope.Principal, id string) (bool, error) {
	clause, args := scope.Filter(p, 2)
	query := `DELETE FROM delivery_notes WHERE id = $1 AND status = 'DRAFT' AND ` + clause
	tag, err := r.pool.Exec(context.Background(), query, append([]any{id}, args...)...)
	if err != nil {
		return false, fmt.Errorf("delete delivery note: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// SetPDFURL guarda la ubicación del artefacto generado.
func (r *DeliveryNoteRepo) SetPDFURL(id, pdfURL string) error {
	_, err := r.pool.Exec(context.Background(),
		`UPDATE delivery_notes SET pdf_url = $2, updated_at = now() WHERE id = $1`, id, pdfURL)
	if err != nil {
		return fmt.Errorf("set delivery note pdf_url: %w", err)
	}
	return nil
}

func (r *DeliveryNoteRepo) loadItems(noteID string) ([]entity.NoteItem, error) {
	query := `SELECT ` + itemColumns + ` FROM delivery_note_items WHERE note_id = $1 ORDER BY position`
	rows, err := r.pool.Query(context.Background(), query, noteID)
	if err != nil {
		return nil, fmt.Errorf("list delivery note items: %w", err)
	}
	defer rows.Close()
	var items []entity.NoteItem
	for rows.Next() {
		var it entity.NoteItem
		var noteID string
		if err := rows.Scan(&it.ID, &noteID, &it.Position, &it.Type, &it.Description,
			&it.Quantity, &it.UnitPrice, &it.Person, &it.WorkDate, &it.Reference); err != nil {
			return nil, fmt.Errorf("scan delivery note item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func scanNote(row pgx.Row) (*entity.DeliveryNote, error) {
	var n entity.DeliveryNote
	var companyID, sigImage, pdfURL *string
	var sigDate *time.Time
	err := row.Scan(&n.ID, &n.ProjectID, &n.ClientID, &n.CreatedBy, &companyID,
		&n.TotalAmount, &n.Notes, &n.Status,
		&sigDate, &sigImage, &pdfURL, &n.IsArchived, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, err
	}
	n.CompanyID = derefStr(companyID)
	n.PDFURL = derefStr(pdfURL)
	if sigDate != nil && sigImage != nil {
		n.Signature = &entity.Signature{Date: *sigDate, ImageURL: *sigImage}
	}
	return &n, nil
}
