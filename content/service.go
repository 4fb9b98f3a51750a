package content

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNoDefaultAuthor means the content store has no admin identity to publish as
var ErrNoDefaultAuthor = errors.New("no default author configured")

type UseCase interface {
	DefaultAuthor(ctx context.Context) (Author, error)
	EnsureDefaultAuthor(ctx context.Context, name, email string) (Author, error)
	Publish(ctx context.Context, a Article) (Article, error)
	GetBySlug(ctx context.Context, slug string) (Article, error)
}

type Service struct {
	Repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{
		Repo: repo,
	}
}

// DefaultAuthor resolves the admin identity articles are published under
func (s *Service) DefaultAuthor(ctx context.Context) (Author, error) {
	a, err := s.Repo.AuthorByRole(ctx, RoleAdmin)
	if errors.Is(err, ErrNotFound) {
		return Author{}, ErrNoDefaultAuthor
	}
	if err != nil {
		return Author{}, fmt.Errorf("selecting default author: %w", err)
	}
	return a, nil
}

// EnsureDefaultAuthor returns the admin author, creating it when missing
func (s *Service) EnsureDefaultAuthor(ctx context.Context, name, email string) (Author, error) {
	a, err := s.DefaultAuthor(ctx)
	if err == nil {
		return a, nil
	}
	if !errors.Is(err, ErrNoDefaultAuthor) {
		return Author{}, err
	}
	a = Author{Name: name, Email: email, Role: RoleAdmin}
	id, err := s.Repo.InsertAuthor(ctx, a)
	if err != nil {
		return Author{}, fmt.Errorf("inserting default author: %w", err)
	}
	a.ID = id
	return a, nil
}

// Publish stores the article. Published articles get their publication time set here.
func (s *Service) Publish(ctx context.Context, a Article) (Article, error) {
	if err := a.Status.Validate(); err != nil {
		return Article{}, fmt.Errorf("validating article: %w", err)
	}
	if a.Slug == "" {
		return Article{}, fmt.Errorf("validating article: slug is required")
	}
	now := time.Now()
	a.CreatedAt = now
	if a.Status == Published {
		a.PublishedAt = &now
	}
	id, err := s.Repo.InsertArticle(ctx, a)
	if err != nil {
		return Article{}, fmt.Errorf("inserting article: %w", err)
	}
	a.ID = id
	return a, nil
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (Article, error) {
	a, err := s.Repo.ArticleBySlug(ctx, slug)
	if err != nil {
		return Article{}, fmt.Errorf("selecting article: %w", err)
	}
	return a, nil
}
