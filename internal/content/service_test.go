package content

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/portfolio/internal/repository"
)

func testConfig() Config {
	return Config{
		AllowedEvents: []string{"blog_post_view"},
		CacheTTL:      time.Minute,
		Retention:     90 * 24 * time.Hour,
		PruneSchedule: "0 3 * * *",
	}
}

func newTestService(t *testing.T, store Store) *Service {
	t.Helper()
	caches := NewMemoryCaches(time.Minute)
	t.Cleanup(func() { _ = caches.Close() })
	return NewService(store, caches, testConfig())
}

func TestService_Posts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	posts := []repository.BlogPost{{Slug: "b", Title: "B"}, {Slug: "a", Title: "A"}}

	t.Run("cached after first read", func(t *testing.T) {
		t.Parallel()

		store := &storeMock{}
		store.On("ListPublishedPosts", mock.Anything).Return(posts, nil).Once()
		svc := newTestService(t, store)

		for range 3 {
			got, err := svc.Posts(ctx)
			require.NoError(t, err)
			assert.Equal(t, posts, got)
		}
		store.AssertNumberOfCalls(t, "ListPublishedPosts", 1)
	})

	t.Run("concurrent misses share one query", func(t *testing.T) {
		t.Parallel()

		store := &storeMock{}
		release := make(chan struct{})
		store.On("ListPublishedPosts", mock.Anything).
			Run(func(mock.Arguments) { <-release }).
			Return(posts, nil)
		svc := newTestService(t, store)

		var wg sync.WaitGroup
		for range 8 {
			wg.Go(func() {
				got, err := svc.Posts(ctx)
				assert.NoError(t, err)
				assert.Len(t, got, 2)
			})
		}
		time.Sleep(20 * time.Millisecond)
		close(release)
		wg.Wait()

		assert.LessOrEqual(t, len(store.Calls), 2)
	})

	t.Run("empty is not nil", func(t *testing.T) {
		t.Parallel()

		store := &storeMock{}
		store.On("ListPublishedPosts", mock.Anything).Return(nil, nil)

		got, err := newTestService(t, store).Posts(ctx)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("errors are not cached", func(t *testing.T) {
		t.Parallel()

		store := &storeMock{}
		store.On("ListPublishedPosts", mock.Anything).Return(nil, errors.New("down")).Once()
		store.On("ListPublishedPosts", mock.Anything).Return(posts, nil).Once()
		svc := newTestService(t, store)

		_, err := svc.Posts(ctx)
		require.ErrorIs(t, err, ErrStore)

		got, err := svc.Posts(ctx)
		require.NoError(t, err)
		assert.Equal(t, posts, got)
	})
}

func TestService_Post(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	store := &storeMock{}
	store.On("GetPublishedPostBySlug", mock.Anything, "hello").Return(repository.BlogPost{Slug: "hello"}, nil).Once()
	store.On("GetPublishedPostBySlug", mock.Anything, "missing").Return(repository.BlogPost{}, pgx.ErrNoRows)
	store.On("GetPublishedPostBySlug", mock.Anything, "broken").Return(repository.BlogPost{}, errors.New("down"))
	svc := newTestService(t, store)

	for range 2 {
		got, err := svc.Post(ctx, "hello")
		require.NoError(t, err)
		assert.Equal(t, "hello", got.Slug)
	}

	_, err := svc.Post(ctx, "missing")
	assert.ErrorIs(t, err, ErrPostNotFound)

	_, err = svc.Post(ctx, "broken")
	assert.ErrorIs(t, err, ErrStore)
	assert.NotErrorIs(t, err, ErrPostNotFound)

	store.AssertNumberOfCalls(t, "GetPublishedPostBySlug", 3)
}

func TestService_Post_NormalizesSlug(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	store := &storeMock{}
	store.On("GetPublishedPostBySlug", mock.Anything, "caf\u00e9-notes").Return(repository.BlogPost{Slug: "caf\u00e9-notes"}, nil).Once()
	svc := newTestService(t, store)

	for _, slug := range []string{"cafe\u0301-notes", " caf\u00e9-notes "} {
		got, err := svc.Post(ctx, slug)
		require.NoError(t, err)
		assert.Equal(t, "caf\u00e9-notes", got.Slug)
	}
	store.AssertNumberOfCalls(t, "GetPublishedPostBySlug", 1)
}

func TestService_Testimonials(t *testing.T) {
	t.Parallel()

	store := &storeMock{}
	store.On("ListPublishedTestimonials", mock.Anything).Return([]repository.Testimonial{{Name: "Sam", Rating: 5}}, nil).Once()
	svc := newTestService(t, store)

	for range 2 {
		got, err := svc.Testimonials(context.Background())
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Sam", got[0].Name)
	}
}

func TestService_Record(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("stores allowed event", func(t *testing.T) {
		t.Parallel()

		store := &storeMock{}
		store.On("CreateAnalyticsEvent", mock.Anything, repository.CreateAnalyticsEventParams{
			EventType: "blog_post_view",
			Metadata:  []byte(`{"slug":"x"}`),
		}).Return(nil).Once()

		err := newTestService(t, store).Record(ctx, Event{Type: "blog_post_view", Metadata: []byte(`{"slug":"x"}`)})
		require.NoError(t, err)
		store.AssertExpectations(t)
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		t.Parallel()

		store := &storeMock{}
		err := newTestService(t, store).Record(ctx, Event{Type: "contact_email_sent", Metadata: emptyObject})
		require.ErrorIs(t, err, ErrInvalidEvent)
		store.AssertNotCalled(t, "CreateAnalyticsEvent", mock.Anything, mock.Anything)
	})

	t.Run("store failure", func(t *testing.T) {
		t.Parallel()

		store := &storeMock{}
		store.On("CreateAnalyticsEvent", mock.Anything, mock.Anything).Return(errors.New("down"))

		err := newTestService(t, store).Record(ctx, Event{Type: "blog_post_view", Metadata: emptyObject})
		require.ErrorIs(t, err, ErrStore)
	})
}
