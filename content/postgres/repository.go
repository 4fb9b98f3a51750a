package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/marcelsud/content-webhook/content"
)

/* PostgreSQL implementation of content.Repository
 * Slugs are unique at the storage layer, a violation is reported as content.ErrSlugTaken
 */

const uniqueViolation = "23505"

type Repository struct {
	DB *sql.DB
}

// NewRepository wraps an already opened pool. The tracking store and the content store share it.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{DB: db}
}

// Open connects to PostgreSQL and configures the pool
// maxLifeMinutes: how long a connection may be reused, 0 keeps the driver default
func Open(connectionString string, maxOpenConns, maxIdleConns, maxLifeMinutes int) (*sql.DB, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("opening postgres connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
	}
	if maxIdleConns > 0 {
		db.SetMaxIdleConns(maxIdleConns)
	}
	if maxLifeMinutes > 0 {
		db.SetConnMaxLifetime(time.Duration(maxLifeMinutes) * time.Minute)
	}

	return db, nil
}

func (r *Repository) AuthorByRole(ctx context.Context, role content.Role) (content.Author, error) {
	query := "SELECT id, name, email, role FROM authors WHERE role = $1 ORDER BY id LIMIT 1"

	var a content.Author
	var roleStr string
	err := r.DB.QueryRowContext(ctx, query, string(role)).Scan(&a.ID, &a.Name, &a.Email, &roleStr)
	if errors.Is(err, sql.ErrNoRows) {
		return content.Author{}, content.ErrNotFound
	}
	if err != nil {
		return content.Author{}, fmt.Errorf("selecting author: %w", err)
	}
	a.Role = content.Role(roleStr)

	return a, nil
}

func (r *Repository) ArticleBySlug(ctx context.Context, slug string) (content.Article, error) {
	query := `
		SELECT id, title, slug, body, excerpt, featured_image_url, category, tags,
			seo_title, seo_description, status, author_id, source, external_ref,
			published_at, created_at
		FROM articles WHERE slug = $1
	`

	var a content.Article
	var status string
	var publishedAt sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, slug).Scan(
		&a.ID,
		&a.Title,
		&a.Slug,
		&a.Body,
		&a.Excerpt,
		&a.FeaturedImageURL,
		&a.Category,
		pq.Array(&a.Tags),
		&a.SEOTitle,
		&a.SEODescription,
		&status,
		&a.AuthorID,
		&a.Source,
		&a.ExternalRef,
		&publishedAt,
		&a.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return content.Article{}, content.ErrNotFound
	}
	if err != nil {
		return content.Article{}, fmt.Errorf("selecting article: %w", err)
	}
	a.Status = content.NewArticleStatus(status)
	if publishedAt.Valid {
		a.PublishedAt = &publishedAt.Time
	}

	return a, nil
}

func (r *Repository) InsertAuthor(ctx context.Context, a content.Author) (int64, error) {
	query := `
		INSERT INTO authors (name, email, role)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var id int64
	if err := r.DB.QueryRowContext(ctx, query, a.Name, a.Email, string(a.Role)).Scan(&id); err != nil {
		return 0, fmt.Errorf("inserting author: %w", err)
	}

	return id, nil
}

func (r *Repository) InsertArticle(ctx context.Context, a content.Article) (int64, error) {
	query := `
		INSERT INTO articles (title, slug, body, excerpt, featured_image_url, category, tags,
			seo_title, seo_description, status, author_id, source, external_ref,
			published_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id
	`

	var publishedAt sql.NullTime
	if a.PublishedAt != nil {
		publishedAt = sql.NullTime{Time: *a.PublishedAt, Valid: true}
	}
	// a nil slice would be sent as NULL
	tags := a.Tags
	if tags == nil {
		tags = []string{}
	}

	var id int64
	err := r.DB.QueryRowContext(ctx, query,
		a.Title,
		a.Slug,
		a.Body,
		a.Excerpt,
		a.FeaturedImageURL,
		a.Category,
		pq.Array(tags),
		a.SEOTitle,
		a.SEODescription,
		a.Status.String(),
		a.AuthorID,
		a.Source,
		a.ExternalRef,
		publishedAt,
		a.CreatedAt,
	).Scan(&id)
	if isUniqueViolation(err) {
		return 0, content.ErrSlugTaken
	}
	if err != nil {
		return 0, fmt.Errorf("inserting article: %w", err)
	}

	return id, nil
}

func (r *Repository) Close(ctx context.Context) error {
	if r.DB != nil {
		return r.DB.Close()
	}
	return nil
}

// CreateTables creates the authors and articles tables
func (r *Repository) CreateTables(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS authors (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			role TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS articles (
			id BIGSERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			slug VARCHAR(255) NOT NULL UNIQUE,
			body TEXT NOT NULL,
			excerpt TEXT NOT NULL DEFAULT '',
			featured_image_url TEXT NOT NULL DEFAULT '',
			category INTEGER NOT NULL,
			tags TEXT[] NOT NULL DEFAULT '{}',
			seo_title TEXT NOT NULL DEFAULT '',
			seo_description TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL,
			author_id BIGINT NOT NULL REFERENCES authors(id),
			source TEXT NOT NULL DEFAULT '',
			external_ref TEXT NOT NULL DEFAULT '',
			published_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL
		)`,
	}
	for _, q := range queries {
		if _, err := r.DB.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("creating content tables: %w", err)
		}
	}
	return nil
}

// DropTables removes the content tables (useful for tests)
func (r *Repository) DropTables(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, "DROP TABLE IF EXISTS articles, authors CASCADE"); err != nil {
		return fmt.Errorf("dropping content tables: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
