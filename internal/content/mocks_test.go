package content

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/portfolio/internal/repository"
)

type storeMock struct {
	mock.Mock
}

func (m *storeMock) ListPublishedPosts(ctx context.Context) ([]repository.BlogPost, error) {
	args := m.Called(ctx)
	posts, _ := args.Get(0).([]repository.BlogPost)
	return posts, args.Error(1)
}

func (m *storeMock) GetPublishedPostBySlug(ctx context.Context, slug string) (repository.BlogPost, error) {
	args := m.Called(ctx, slug)
	return args.Get(0).(repository.BlogPost), args.Error(1)
}

func (m *storeMock) ListPublishedTestimonials(ctx context.Context) ([]repository.Testimonial, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]repository.Testimonial)
	return items, args.Error(1)
}

func (m *storeMock) CreateAnalyticsEvent(ctx context.Context, arg repository.CreateAnalyticsEventParams) error {
	return m.Called(ctx, arg).Error(0)
}

func (m *storeMock) DeleteAnalyticsEventsBefore(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}
