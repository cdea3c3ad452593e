package contact

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"travelapi/internal/workflow"
)

type Contact struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Phone     string          `json:"phone,omitempty"`
	Subject   string          `json:"subject"`
	Message   string          `json:"message"`
	Status    workflow.Status `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const cols = `id, name, email, COALESCE(phone,''), subject, message, status, created_at, updated_at`

func scan(row pgx.Row, c *Contact) error {
	return row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Subject, &c.Message, &c.Status, &c.CreatedAt, &c.UpdatedAt)
}

func (r *Repository) List(ctx context.Context) ([]Contact, error) {
	const q = `SELECT ` + cols + ` FROM contacts ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Contact
	for rows.Next() {
		var c Contact
		if err := scan(rows, &c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Contact, error) {
	const q = `SELECT ` + cols + ` FROM contacts WHERE id = $1`
	var c Contact
	if err := scan(r.db.QueryRow(ctx, q, id), &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) Create(ctx context.Context, name, email, phone, subject, message string) (*Contact, error) {
	const q = `
INSERT INTO contacts (id, name, email, phone, subject, message, status)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + cols
	var c Contact
	if err := scan(r.db.QueryRow(ctx, q, uuid.NewString(), name, email, phone, subject, message, string(StatusNew)), &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func GetForUpdate(ctx context.Context, tx pgx.Tx, id string) (*Contact, error) {
	const q = `SELECT ` + cols + ` FROM contacts WHERE id = $1 FOR UPDATE`
	var c Contact
	if err := scan(tx.QueryRow(ctx, q, id), &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func UpdateStatus(ctx context.Context, tx pgx.Tx, id string, next workflow.Status) error {
	const q = `UPDATE contacts SET status = $1, updated_at = NOW() WHERE id = $2`
	_, err := tx.Exec(ctx, q, string(next), id)
	return err
}

func Delete(ctx context.Context, tx pgx.Tx, id string) (bool, error) {
	const q = `DELETE FROM contacts WHERE id = $1`
	tag, err := tx.Exec(ctx, q, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
