package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/protolab/portal-api/internal/core/domain"
	"github.com/protolab/portal-api/internal/core/ports"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

var ErrInvalidSlug = errors.New("slug must be lowercase words separated by hyphens")

// PostService implements the blog/page CMS. Public reads only surface
// published posts.
type PostService struct {
	repo   ports.PostRepository
	logger zerolog.Logger
}

func NewPostService(repo ports.PostRepository, logger zerolog.Logger) *PostService {
	return &PostService{repo: repo, logger: logger}
}

// Publish creates a post. The slug must be unique and URL-safe.
func (s *PostService) Publish(ctx context.Context, input ports.PostInput) (*domain.Post, error) {
	slug := strings.TrimSpace(input.Slug)
	if !slugPattern.MatchString(slug) {
		return nil, ErrInvalidSlug
	}

	if _, err := s.repo.FindBySlug(ctx, slug); err == nil {
		return nil, domain.ErrSlugTaken
	} else if !errors.Is(err, domain.ErrPostNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	post := &domain.Post{
		Slug:      slug,
		Title:     input.Title,
		Body:      input.Body,
		CoverURL:  input.CoverURL,
		Published: input.Published,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Insert(ctx, post)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("post_id", created.ID).Str("slug", created.Slug).Msg("post created")
	return created, nil
}

// Update replaces the editable fields of an existing post.
func (s *PostService) Update(ctx context.Context, id string, input ports.PostInput) (*domain.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Slug != "" && input.Slug != post.Slug {
		if !slugPattern.MatchString(input.Slug) {
			return nil, ErrInvalidSlug
		}
		if _, err := s.repo.FindBySlug(ctx, input.Slug); err == nil {
			return nil, domain.ErrSlugTaken
		} else if !errors.Is(err, domain.ErrPostNotFound) {
			return nil, err
		}
		post.Slug = input.Slug
	}

	post.Title = input.Title
	post.Body = input.Body
	post.CoverURL = input.CoverURL
	post.Published = input.Published
	post.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, post)
}

// Delete removes a post.
func (s *PostService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// GetPublished returns a published post by slug. Unpublished posts are
// indistinguishable from missing ones.
func (s *PostService) GetPublished(ctx context.Context, slug string) (*domain.Post, error) {
	post, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !post.Published {
		return nil, domain.ErrPostNotFound
	}
	return post, nil
}

// ListPublished returns published posts, newest first.
func (s *PostService) ListPublished(ctx context.Context) ([]domain.Post, error) {
	return s.repo.ListPublished(ctx)
}
