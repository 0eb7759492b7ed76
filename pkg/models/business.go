package models

import (
	"time"

	"github.com/google/uuid"
)

// Business represents a company tracked in the sales pipeline.
type Business struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Opportunities []*Opportunity `json:"opportunities,omitempty"`
}
