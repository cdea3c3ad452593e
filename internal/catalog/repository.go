package catalog

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const cols = `id, title, slug, COALESCE(summary,''), COALESCE(description,''), destination, duration_days,
       price::text, currency, highlights, inclusions, exclusions, itinerary, faqs, accommodations,
       featured, active, COALESCE(cover_image,''), created_at, updated_at`

func scan(row pgx.Row, p *Package) error {
	var itinerary, faqs, accommodations []byte
	if err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Summary, &p.Description, &p.Destination, &p.DurationDays,
		&p.Price, &p.Currency, &p.Highlights, &p.Inclusions, &p.Exclusions, &itinerary, &faqs, &accommodations,
		&p.Featured, &p.Active, &p.CoverImage, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return err
	}
	// jsonb columns default to '[]', so unmarshal failures mean corruption,
	// not absence.
	if err := json.Unmarshal(itinerary, &p.Itinerary); err != nil {
		return err
	}
	if err := json.Unmarshal(faqs, &p.FAQs); err != nil {
		return err
	}
	return json.Unmarshal(accommodations, &p.Accommodations)
}

func (r *Repository) List(ctx context.Context) ([]Package, error) {
	const q = `SELECT ` + cols + ` FROM packages ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Package
	for rows.Next() {
		var p Package
		if err := scan(rows, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Package, error) {
	const q = `SELECT ` + cols + ` FROM packages WHERE id = $1`
	var p Package
	if err := scan(r.db.QueryRow(ctx, q, id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) GetBySlug(ctx context.Context, slug string) (*Package, error) {
	const q = `SELECT ` + cols + ` FROM packages WHERE slug = $1`
	var p Package
	if err := scan(r.db.QueryRow(ctx, q, slug), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

type PackageParams struct {
	Title          string
	Slug           string
	Summary        string
	Description    string
	Destination    string
	DurationDays   int
	Price          string
	Currency       string
	Highlights     []string
	Inclusions     []string
	Exclusions     []string
	Itinerary      []ItineraryDay
	FAQs           []FAQ
	Accommodations []Accommodation
	CoverImage     string
}

func (p PackageParams) jsonFields() (itinerary, faqs, accommodations []byte) {
	itinerary, _ = json.Marshal(p.Itinerary)
	faqs, _ = json.Marshal(p.FAQs)
	accommodations, _ = json.Marshal(p.Accommodations)
	return
}

// Mutations are transaction-scoped so handlers can insert the audit row in
// the same transaction as the change itself.

func Create(ctx context.Context, tx pgx.Tx, p PackageParams) (*Package, error) {
	itinerary, faqs, accommodations := p.jsonFields()
	const q = `
INSERT INTO packages (id, title, slug, summary, description, destination, duration_days, price, currency,
                      highlights, inclusions, exclusions, itinerary, faqs, accommodations,
                      featured, active, cover_image)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8::numeric, $9, $10, $11, $12, $13, $14, $15, false, true, $16)
RETURNING ` + cols
	var out Package
	if err := scan(tx.QueryRow(ctx, q,
		uuid.NewString(), p.Title, p.Slug, p.Summary, p.Description, p.Destination, p.DurationDays, p.Price, p.Currency,
		p.Highlights, p.Inclusions, p.Exclusions, itinerary, faqs, accommodations, p.CoverImage,
	), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func Update(ctx context.Context, tx pgx.Tx, id string, p PackageParams) (*Package, error) {
	itinerary, faqs, accommodations := p.jsonFields()
	const q = `
UPDATE packages
SET title = $2, slug = $3, summary = $4, description = $5, destination = $6, duration_days = $7,
    price = $8::numeric, currency = $9, highlights = $10, inclusions = $11, exclusions = $12,
    itinerary = $13, faqs = $14, accommodations = $15, cover_image = $16, updated_at = NOW()
WHERE id = $1
RETURNING ` + cols
	var out Package
	if err := scan(tx.QueryRow(ctx, q,
		id, p.Title, p.Slug, p.Summary, p.Description, p.Destination, p.DurationDays, p.Price, p.Currency,
		p.Highlights, p.Inclusions, p.Exclusions, itinerary, faqs, accommodations, p.CoverImage,
	), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateFlags toggles featured/active independently; nil leaves a flag alone.
func UpdateFlags(ctx context.Context, tx pgx.Tx, id string, featured, active *bool) (*Package, error) {
	const q = `
UPDATE packages
SET featured = COALESCE($2, featured), active = COALESCE($3, active), updated_at = NOW()
WHERE id = $1
RETURNING ` + cols
	var out Package
	if err := scan(tx.QueryRow(ctx, q, id, featured, active), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func Delete(ctx context.Context, tx pgx.Tx, id string) (bool, error) {
	tag, err := tx.Exec(ctx, `DELETE FROM packages WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
