package review

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"travelapi/internal/workflow"
)

type Testimonial struct {
	ID         string          `json:"id"`
	AuthorName string          `json:"authorName"`
	Location   string          `json:"location,omitempty"`
	Rating     int             `json:"rating"`
	Message    string          `json:"message"`
	Featured   bool            `json:"featured"`
	Status     workflow.Status `json:"status"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

const testimonialCols = `id, author_name, COALESCE(location,''), rating, message, featured, status, created_at, updated_at`

func scanTestimonial(row pgx.Row, v *Testimonial) error {
	return row.Scan(&v.ID, &v.AuthorName, &v.Location, &v.Rating, &v.Message, &v.Featured, &v.Status, &v.CreatedAt, &v.UpdatedAt)
}

func (r *Repository) ListTestimonials(ctx context.Context) ([]Testimonial, error) {
	const q = `SELECT ` + testimonialCols + ` FROM testimonials ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Testimonial
	for rows.Next() {
		var v Testimonial
		if err := scanTestimonial(rows, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *Repository) GetTestimonial(ctx context.Context, id string) (*Testimonial, error) {
	const q = `SELECT ` + testimonialCols + ` FROM testimonials WHERE id = $1`
	var v Testimonial
	if err := scanTestimonial(r.db.QueryRow(ctx, q, id), &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// Testimonial mutations are transaction-scoped so handlers can insert the
// audit row in the same transaction as the change.

func CreateTestimonial(ctx context.Context, tx pgx.Tx, authorName, location string, rating int, message string) (*Testimonial, error) {
	const q = `
INSERT INTO testimonials (id, author_name, location, rating, message, featured, status)
VALUES ($1, $2, $3, $4, $5, false, $6)
RETURNING ` + testimonialCols
	var v Testimonial
	if err := scanTestimonial(tx.QueryRow(ctx, q,
		uuid.NewString(), authorName, location, rating, message, string(StatusPending),
	), &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func UpdateTestimonial(ctx context.Context, tx pgx.Tx, id, authorName, location string, rating int, message string) (*Testimonial, error) {
	const q = `
UPDATE testimonials
SET author_name = $2, location = $3, rating = $4, message = $5, updated_at = NOW()
WHERE id = $1
RETURNING ` + testimonialCols
	var v Testimonial
	if err := scanTestimonial(tx.QueryRow(ctx, q, id, authorName, location, rating, message), &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func GetTestimonialForUpdate(ctx context.Context, tx pgx.Tx, id string) (*Testimonial, error) {
	const q = `SELECT ` + testimonialCols + ` FROM testimonials WHERE id = $1 FOR UPDATE`
	var v Testimonial
	if err := scanTestimonial(tx.QueryRow(ctx, q, id), &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// UpdateTestimonialStatus mirrors approval onto the featured flag: approving
// surfaces the testimonial on the public site, rejecting pulls it.
func UpdateTestimonialStatus(ctx context.Context, tx pgx.Tx, id string, next workflow.Status) error {
	const q = `UPDATE testimonials SET status = $1, featured = $2, updated_at = NOW() WHERE id = $3`
	_, err := tx.Exec(ctx, q, string(next), next == StatusApproved, id)
	return err
}

func DeleteTestimonial(ctx context.Context, tx pgx.Tx, id string) (bool, error) {
	tag, err := tx.Exec(ctx, `DELETE FROM testimonials WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
