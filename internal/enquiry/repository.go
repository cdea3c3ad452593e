package enquiry

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"travelapi/internal/workflow"
)

type Enquiry struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone,omitempty"`
	PackageID  *string    `json:"packageId,omitempty"`
	TravelDate *time.Time `json:"travelDate,omitempty"`
	Travellers int        `json:"travellers"`
	// Amounts travel as strings; decimal parsing happens at the edges so
	// the DB numeric column stays the source of truth.
	Budget       *string         `json:"budget,omitempty"`
	QuotedAmount *string         `json:"quotedAmount,omitempty"`
	Message      string          `json:"message"`
	Status       workflow.Status `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const cols = `id, name, email, COALESCE(phone,''), package_id, travel_date, travellers,
       budget::text, quoted_amount::text, message, status, created_at, updated_at`

func scan(row pgx.Row, e *Enquiry) error {
	return row.Scan(&e.ID, &e.Name, &e.Email, &e.Phone, &e.PackageID, &e.TravelDate, &e.Travellers,
		&e.Budget, &e.QuotedAmount, &e.Message, &e.Status, &e.CreatedAt, &e.UpdatedAt)
}

func (r *Repository) List(ctx context.Context) ([]Enquiry, error) {
	const q = `SELECT ` + cols + ` FROM enquiries ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Enquiry
	for rows.Next() {
		var e Enquiry
		if err := scan(rows, &e); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Enquiry, error) {
	const q = `SELECT ` + cols + ` FROM enquiries WHERE id = $1`
	var e Enquiry
	if err := scan(r.db.QueryRow(ctx, q, id), &e); err != nil {
		return nil, err
	}
	return &e, nil
}

type CreateParams struct {
	Name       string
	Email      string
	Phone      string
	PackageID  *string
	TravelDate *time.Time
	Travellers int
	Budget     *string
	Message    string
}

func (r *Repository) Create(ctx context.Context, p CreateParams) (*Enquiry, error) {
	const q = `
INSERT INTO enquiries (id, name, email, phone, package_id, travel_date, travellers, budget, message, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8::numeric, $9, $10)
RETURNING ` + cols
	var e Enquiry
	if err := scan(r.db.QueryRow(ctx, q,
		uuid.NewString(), p.Name, p.Email, p.Phone, p.PackageID, p.TravelDate, p.Travellers, p.Budget, p.Message, string(StatusNew),
	), &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func GetForUpdate(ctx context.Context, tx pgx.Tx, id string) (*Enquiry, error) {
	const q = `SELECT ` + cols + ` FROM enquiries WHERE id = $1 FOR UPDATE`
	var e Enquiry
	if err := scan(tx.QueryRow(ctx, q, id), &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// UpdateStatus moves the enquiry and, when a quote is being issued, records
// the quoted amount alongside it.
func UpdateStatus(ctx context.Context, tx pgx.Tx, id string, next workflow.Status, quotedAmount *string) error {
	const q = `
UPDATE enquiries
SET status = $1, quoted_amount = COALESCE($2::numeric, quoted_amount), updated_at = NOW()
WHERE id = $3
`
	_, err := tx.Exec(ctx, q, string(next), quotedAmount, id)
	return err
}

func Delete(ctx context.Context, tx pgx.Tx, id string) (bool, error) {
	const q = `DELETE FROM enquiries WHERE id = $1`
	tag, err := tx.Exec(ctx, q, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
