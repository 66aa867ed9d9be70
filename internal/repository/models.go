package repository

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Contact struct {
	CreatedAt time.Time `json:"created_at"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	ID        uuid.UUID `json:"id"`
}

type AnalyticsEvent struct {
	CreatedAt time.Time       `json:"created_at"`
	EventType string          `json:"event_type"`
	Metadata  json.RawMessage `json:"metadata"`
	ID        int64           `json:"id"`
}

type BlogPost struct {
	CreatedAt     time.Time `json:"created_at"`
	Excerpt       *string   `json:"excerpt"`
	FeaturedImage *string   `json:"featured_image"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Content       string    `json:"content"`
	Tags          []string  `json:"tags"`
	ID            uuid.UUID `json:"id"`
	Published     bool      `json:"published"`
}

type Testimonial struct {
	CreatedAt time.Time `json:"created_at"`
	AvatarUrl *string   `json:"avatar_url"`
	Name      string    `json:"name"`
	Position  string    `json:"position"`
	Company   string    `json:"company"`
	Content   string    `json:"content"`
	Rating    int32     `json:"rating"`
	ID        uuid.UUID `json:"id"`
	Published bool      `json:"published"`
}
