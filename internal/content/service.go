package content

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/portfolio/internal/repository"
	"github.com/dmitrymomot/portfolio/pkg/cache"
	"github.com/dmitrymomot/portfolio/pkg/sanitizer"
)

// Store is the persistence the content service reads from.
type Store interface {
	ListPublishedPosts(ctx context.Context) ([]repository.BlogPost, error)
	GetPublishedPostBySlug(ctx context.Context, slug string) (repository.BlogPost, error)
	ListPublishedTestimonials(ctx context.Context) ([]repository.Testimonial, error)
	CreateAnalyticsEvent(ctx context.Context, arg repository.CreateAnalyticsEventParams) error
	DeleteAnalyticsEventsBefore(ctx context.Context, before time.Time) (int64, error)
}

// Caches are the typed caches used by Service.
type Caches struct {
	Posts        cache.Cache[[]repository.BlogPost]
	Post         cache.Cache[repository.BlogPost]
	Testimonials cache.Cache[[]repository.Testimonial]
}

// Close releases every cache.
func (c Caches) Close() error {
	return errors.Join(c.Posts.Close(), c.Post.Close(), c.Testimonials.Close())
}

// Service reads published content and records events.
type Service struct {
	store   Store
	caches  Caches
	allowed []string
	ttl     time.Duration
}

func NewService(store Store, caches Caches, cfg Config) *Service {
	return &Service{
		store:   store,
		caches:  caches,
		ttl:     cfg.CacheTTL,
		allowed: cfg.AllowedEvents,
	}
}

const (
	keyPosts        = "posts"
	keyPostPrefix   = "post:"
	keyTestimonials = "testimonials"
)

// Posts returns published posts, newest first. Never nil.
func (s *Service) Posts(ctx context.Context) ([]repository.BlogPost, error) {
	posts, err := cache.GetOrSet(ctx, s.caches.Posts, keyPosts,
		func(ctx context.Context) ([]repository.BlogPost, time.Duration, error) {
			posts, err := s.store.ListPublishedPosts(ctx)
			return posts, s.ttl, err
		})
	if err != nil {
		return nil, fmt.Errorf("%w: list posts: %w", ErrStore, err)
	}
	if posts == nil {
		posts = []repository.BlogPost{}
	}
	return posts, nil
}

// Post returns one published post by slug. Misses are not cached.
func (s *Service) Post(ctx context.Context, slug string) (repository.BlogPost, error) {
	slug = sanitizer.Text(slug)
	post, err := cache.GetOrSet(ctx, s.caches.Post, keyPostPrefix+slug,
		func(ctx context.Context) (repository.BlogPost, time.Duration, error) {
			post, err := s.store.GetPublishedPostBySlug(ctx, slug)
			return post, s.ttl, err
		})
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return repository.BlogPost{}, ErrPostNotFound
	case err != nil:
		return repository.BlogPost{}, fmt.Errorf("%w: get post: %w", ErrStore, err)
	}
	return post, nil
}

// Testimonials returns published testimonials, newest first. Never nil.
func (s *Service) Testimonials(ctx context.Context) ([]repository.Testimonial, error) {
	items, err := cache.GetOrSet(ctx, s.caches.Testimonials, keyTestimonials,
		func(ctx context.Context) ([]repository.Testimonial, time.Duration, error) {
			items, err := s.store.ListPublishedTestimonials(ctx)
			return items, s.ttl, err
		})
	if err != nil {
		return nil, fmt.Errorf("%w: list testimonials: %w", ErrStore, err)
	}
	if items == nil {
		items = []repository.Testimonial{}
	}
	return items, nil
}

// Record validates and stores a client event.
func (s *Service) Record(ctx context.Context, e Event) error {
	if err := e.Validate(s.allowed); err != nil {
		return err
	}
	if err := s.store.CreateAnalyticsEvent(ctx, repository.CreateAnalyticsEventParams{
		EventType: e.Type,
		Metadata:  e.Metadata,
	}); err != nil {
		return fmt.Errorf("%w: record event: %w", ErrStore, err)
	}
	return nil
}
