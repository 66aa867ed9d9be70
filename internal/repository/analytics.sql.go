package repository

import (
	"context"
	"encoding/json"
	"time"
)

const createAnalyticsEvent = `-- name: CreateAnalyticsEvent :exec
INSERT INTO analytics (event_type, metadata)
VALUES ($1, $2)
`

type CreateAnalyticsEventParams struct {
	EventType string          `json:"event_type"`
	Metadata  json.RawMessage `json:"metadata"`
}

func (q *Queries) CreateAnalyticsEvent(ctx context.Context, arg CreateAnalyticsEventParams) error {
	_, err := q.db.Exec(ctx, createAnalyticsEvent, arg.EventType, arg.Metadata)
	return err
}

const deleteAnalyticsEventsBefore = `-- name: DeleteAnalyticsEventsBefore :execrows
DELETE FROM analytics
WHERE created_at < $1
`

func (q *Queries) DeleteAnalyticsEventsBefore(ctx context.Context, before time.Time) (int64, error) {
	result, err := q.db.Exec(ctx, deleteAnalyticsEventsBefore, before)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
