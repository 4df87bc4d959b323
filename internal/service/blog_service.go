package service

import (
	"context"
	"errors"
	"time"

	"booking-platform/internal/cache"
	"booking-platform/internal/domain"
	"booking-platform/internal/repository"
	"booking-platform/pkg/logger"
	"booking-platform/pkg/validator"
)

type blogService struct {
	repo   repository.BlogRepository
	cache  cache.Cache
	logger *logger.Logger
}

// NewBlogService creates a blog service with dependencies injected
func NewBlogService(repo repository.BlogRepository, c cache.Cache, logger *logger.Logger) BlogService {
	return &blogService{
		repo:   repo,
		cache:  c,
		logger: logger,
	}
}

func (s *blogService) GetPost(ctx context.Context, slug string) (*domain.BlogPost, error) {
	return cache.WithCache(ctx, s.cache, cache.BlogPostKey(slug), cache.TTLDay, func(ctx context.Context) (*domain.BlogPost, error) {
		post, err := s.repo.FindBySlug(ctx, slug)
		if err != nil {
			return nil, notFound(err, "post")
		}
		// drafts are never cached
		if !post.Published {
			return nil, domain.NewNotFoundError("post")
		}
		return post, nil
	})
}

func (s *blogService) ListPublished(ctx context.Context) ([]domain.BlogPost, error) {
	return cache.WithCache(ctx, s.cache, cache.PublishedPostsKey(), cache.TTLLong, s.repo.ListPublished)
}

// SavePost upserts by slug and drops every blog entry, since a single post
// change can alter any listing
func (s *blogService) SavePost(ctx context.Context, req *domain.SavePostRequest) (*domain.BlogPost, error) {
	slug := validator.NormalizeSlug(req.Slug)
	if err := validator.ValidateSlug(slug); err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	post := &domain.BlogPost{
		Slug:      slug,
		Title:     req.Title,
		Summary:   req.Summary,
		Body:      req.Body,
		AuthorID:  req.AuthorID,
		Published: req.Published,
	}

	existing, err := s.repo.FindBySlug(ctx, slug)
	switch {
	case err == nil:
		post.PublishedAt = existing.PublishedAt
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}
	if !post.Published {
		post.PublishedAt = nil
	} else if post.PublishedAt == nil {
		now := time.Now().UTC()
		post.PublishedAt = &now
	}

	if err := s.repo.SaveBySlug(ctx, post); err != nil {
		s.logger.Errorw("Failed to save post", "slug", slug, "error", err)
		return nil, err
	}

	removed := s.cache.InvalidatePattern(ctx, cache.BlogPattern())
	s.logger.Infow("Post saved", "slug", slug, "published", post.Published, "invalidated", removed)
	return post, nil
}
