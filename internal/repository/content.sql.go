package repository

import (
	"context"
)

const listPublishedPosts = `-- name: ListPublishedPosts :many
SELECT id, title, slug, excerpt, content, featured_image, tags, published, created_at
FROM blog_posts
WHERE published
ORDER BY created_at DESC
`

func (q *Queries) ListPublishedPosts(ctx context.Context) ([]BlogPost, error) {
	rows, err := q.db.Query(ctx, listPublishedPosts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []BlogPost{}
	for rows.Next() {
		var i BlogPost
		if err := rows.Scan(
			&i.ID,
			&i.Title,
			&i.Slug,
			&i.Excerpt,
			&i.Content,
			&i.FeaturedImage,
			&i.Tags,
			&i.Published,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getPublishedPostBySlug = `-- name: GetPublishedPostBySlug :one
SELECT id, title, slug, excerpt, content, featured_image, tags, published, created_at
FROM blog_posts
WHERE slug = $1 AND published
`

func (q *Queries) GetPublishedPostBySlug(ctx context.Context, slug string) (BlogPost, error) {
	row := q.db.QueryRow(ctx, getPublishedPostBySlug, slug)
	var i BlogPost
	err := row.Scan(
		&i.ID,
		&i.Title,
		&i.Slug,
		&i.Excerpt,
		&i.Content,
		&i.FeaturedImage,
		&i.Tags,
		&i.Published,
		&i.CreatedAt,
	)
	return i, err
}

const listPublishedTestimonials = `-- name: ListPublishedTestimonials :many
SELECT id, name, position, company, content, avatar_url, rating, published, created_at
FROM testimonials
WHERE published
ORDER BY created_at DESC
`

func (q *Queries) ListPublishedTestimonials(ctx context.Context) ([]Testimonial, error) {
	rows, err := q.db.Query(ctx, listPublishedTestimonials)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Testimonial{}
	for rows.Next() {
		var i Testimonial
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Position,
			&i.Company,
			&i.Content,
			&i.AvatarUrl,
			&i.Rating,
			&i.Published,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
