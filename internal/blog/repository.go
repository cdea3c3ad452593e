package blog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Post is a blog entry. Publication is a pair of independent flags, not a
// status enum: published controls visibility, featured controls placement.
type Post struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt,omitempty"`
	Body        string     `json:"body"`
	Tags        []string   `json:"tags"`
	CoverImage  string     `json:"coverImage,omitempty"`
	Author      string     `json:"author"`
	Published   bool       `json:"published"`
	Featured    bool       `json:"featured"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const cols = `id, title, slug, COALESCE(excerpt,''), body, tags, COALESCE(cover_image,''), author,
       published, featured, published_at, created_at, updated_at`

func scan(row pgx.Row, p *Post) error {
	return row.Scan(&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Body, &p.Tags, &p.CoverImage, &p.Author,
		&p.Published, &p.Featured, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt)
}

func (r *Repository) List(ctx context.Context) ([]Post, error) {
	const q = `SELECT ` + cols + ` FROM posts ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Post
	for rows.Next() {
		var p Post
		if err := scan(rows, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Post, error) {
	const q = `SELECT ` + cols + ` FROM posts WHERE id = $1`
	var p Post
	if err := scan(r.db.QueryRow(ctx, q, id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) GetBySlug(ctx context.Context, slug string) (*Post, error) {
	const q = `SELECT ` + cols + ` FROM posts WHERE slug = $1`
	var p Post
	if err := scan(r.db.QueryRow(ctx, q, slug), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

type PostParams struct {
	Title      string
	Slug       string
	Excerpt    string
	Body       string
	Tags       []string
	CoverImage string
	Author     string
}

// Mutations are transaction-scoped so handlers can insert the audit row in
// the same transaction as the change itself.

func Create(ctx context.Context, tx pgx.Tx, p PostParams) (*Post, error) {
	const q = `
INSERT INTO posts (id, title, slug, excerpt, body, tags, cover_image, author, published, featured)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, false, false)
RETURNING ` + cols
	var out Post
	if err := scan(tx.QueryRow(ctx, q,
		uuid.NewString(), p.Title, p.Slug, p.Excerpt, p.Body, p.Tags, p.CoverImage, p.Author,
	), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update replaces the domain fields wholesale; flags move through
// UpdateFlags so an edit form cannot silently unpublish a post.
func Update(ctx context.Context, tx pgx.Tx, id string, p PostParams) (*Post, error) {
	const q = `
UPDATE posts
SET title = $2, slug = $3, excerpt = $4, body = $5, tags = $6, cover_image = $7, author = $8, updated_at = NOW()
WHERE id = $1
RETURNING ` + cols
	var out Post
	if err := scan(tx.QueryRow(ctx, q,
		id, p.Title, p.Slug, p.Excerpt, p.Body, p.Tags, p.CoverImage, p.Author,
	), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateFlags toggles published/featured independently; nil leaves a flag
// untouched. published_at is stamped the first time a post goes live.
func UpdateFlags(ctx context.Context, tx pgx.Tx, id string, published, featured *bool) (*Post, error) {
	const q = `
UPDATE posts
SET published = COALESCE($2, published),
    featured = COALESCE($3, featured),
    published_at = CASE
      WHEN $2 = true AND published_at IS NULL THEN NOW()
      ELSE published_at
    END,
    updated_at = NOW()
WHERE id = $1
RETURNING ` + cols
	var out Post
	if err := scan(tx.QueryRow(ctx, q, id, published, featured), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func Delete(ctx context.Context, tx pgx.Tx, id string) (bool, error) {
	tag, err := tx.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
