package content

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when the requested author or article does not exist
	ErrNotFound = errors.New("not found")

	// ErrSlugTaken is returned when another article already uses the slug
	ErrSlugTaken = errors.New("slug already taken")
)

type Reader interface {
	AuthorByRole(ctx context.Context, role Role) (Author, error)
	ArticleBySlug(ctx context.Context, slug string) (Article, error)
}

type Writer interface {
	InsertAuthor(ctx context.Context, a Author) (int64, error)
	InsertArticle(ctx context.Context, a Article) (int64, error)
}

type Repository interface {
	Reader
	Writer
	Close(ctx context.Context) error
}
