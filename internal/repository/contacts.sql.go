package repository

import (
	"context"

	"github.com/google/uuid"
)

const createContact = `-- name: CreateContact :one
INSERT INTO contacts (id, name, email, subject, message)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, name, email, subject, message, created_at
`

type CreateContactParams struct {
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Subject string    `json:"subject"`
	Message string    `json:"message"`
	ID      uuid.UUID `json:"id"`
}

func (q *Queries) CreateContact(ctx context.Context, arg CreateContactParams) (Contact, error) {
	row := q.db.QueryRow(ctx, createContact,
		arg.ID,
		arg.Name,
		arg.Email,
		arg.Subject,
		arg.Message,
	)
	var i Contact
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Email,
		&i.Subject,
		&i.Message,
		&i.CreatedAt,
	)
	return i, err
}
