// Package models contains domain types for growth-engine.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Contact represents a marketing lead captured from the landing pages or
// entered through the admin portal.
type Contact struct {
	ID        uuid.UUID `json:"id"`
	Email     *string   `json:"email,omitempty"`
	Name      string    `json:"name"`
	Company   string    `json:"company"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Opportunities holds the contact's pipeline records. Populated on
	// single-record reads, left nil on list reads.
	Opportunities []*Opportunity `json:"opportunities,omitempty"`
}
