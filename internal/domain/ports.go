package domain

import "context"

// Lookups return (nil, nil) when no row matches.

type PistaRepository interface {
	// GetAll returns every pista ordered by id ascending, inactive ones included.
	GetAll(ctx context.Context) ([]Pista, error)
	GetByID(ctx context.Context, id int64) (*Pista, error)
}

type ClubRepository interface {
	// GetAll returns active clubs, newest first.
	GetAll(ctx context.Context) ([]Club, error)
	// GetByID ignores is_active.
	GetByID(ctx context.Context, id int64) (*Club, error)
	GetBySlug(ctx context.Context, slug string) (*Club, error)
}
