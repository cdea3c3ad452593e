package review

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"travelapi/internal/workflow"
)

type Review struct {
	ID         string          `json:"id"`
	AuthorName string          `json:"authorName"`
	Email      string          `json:"email,omitempty"`
	PackageID  *string         `json:"packageId,omitempty"`
	Rating     int             `json:"rating"`
	Title      string          `json:"title"`
	Comment    string          `json:"comment"`
	Status     workflow.Status `json:"status"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const reviewCols = `id, author_name, COALESCE(email,''), package_id, rating, title, comment, status, created_at, updated_at`

func scanReview(row pgx.Row, v *Review) error {
	return row.Scan(&v.ID, &v.AuthorName, &v.Email, &v.PackageID, &v.Rating, &v.Title, &v.Comment, &v.Status, &v.CreatedAt, &v.UpdatedAt)
}

func (r *Repository) ListReviews(ctx context.Context) ([]Review, error) {
	const q = `SELECT ` + reviewCols + ` FROM reviews ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Review
	for rows.Next() {
		var v Review
		if err := scanReview(rows, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *Repository) GetReview(ctx context.Context, id string) (*Review, error) {
	const q = `SELECT ` + reviewCols + ` FROM reviews WHERE id = $1`
	var v Review
	if err := scanReview(r.db.QueryRow(ctx, q, id), &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *Repository) CreateReview(ctx context.Context, authorName, email string, packageID *string, rating int, title, comment string) (*Review, error) {
	const q = `
INSERT INTO reviews (id, author_name, email, package_id, rating, title, comment, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + reviewCols
	var v Review
	if err := scanReview(r.db.QueryRow(ctx, q,
		uuid.NewString(), authorName, email, packageID, rating, title, comment, string(StatusPending),
	), &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func GetReviewForUpdate(ctx context.Context, tx pgx.Tx, id string) (*Review, error) {
	const q = `SELECT ` + reviewCols + ` FROM reviews WHERE id = $1 FOR UPDATE`
	var v Review
	if err := scanReview(tx.QueryRow(ctx, q, id), &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func UpdateReviewStatus(ctx context.Context, tx pgx.Tx, id string, next workflow.Status) error {
	const q = `UPDATE reviews SET status = $1, updated_at = NOW() WHERE id = $2`
	_, err := tx.Exec(ctx, q, string(next), id)
	return err
}

func DeleteReview(ctx context.Context, tx pgx.Tx, id string) (bool, error) {
	tag, err := tx.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
