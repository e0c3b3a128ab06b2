package domain

import "time"

const ClubStatusActive = "ACTIVE"

type Club struct {
	ID          int64
	Name        string
	Slug        string
	Description *string
	LogoURL     *string
	IsActive    bool

	// administrative columns; loaded but never exposed over HTTP
	OwnerID         *string // uuid or integer id, rendered as text
	MaxMembers      int
	MonthlyFeeCents int
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
