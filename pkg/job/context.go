package job

import "context"

// Enqueuer inserts jobs. *Manager implements it.
type Enqueuer interface {
	Enqueue(ctx context.Context, name string, payload any, opts ...EnqueueOption) error
}

type enqueuerKey struct{}

// WithEnqueuer attaches e to ctx. Workers do this for every task they run so
// a handler can chain follow-up jobs.
func WithEnqueuer(ctx context.Context, e Enqueuer) context.Context {
	return context.WithValue(ctx, enqueuerKey{}, e)
}

// EnqueuerFromContext returns the Enqueuer attached by WithEnqueuer.
func EnqueuerFromContext(ctx context.Context) (Enqueuer, bool) {
	e, ok := ctx.Value(enqueuerKey{}).(Enqueuer)
	return e, ok && e != nil
}
