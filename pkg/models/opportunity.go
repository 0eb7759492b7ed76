package models

import (
	"time"

	"github.com/google/uuid"
)

// Pipeline groups opportunities into a named sales funnel.
type Pipeline struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Opportunity is a sales pipeline record linking a contact and/or business
// to a stage and status. Both references are optional.
type Opportunity struct {
	ID         uuid.UUID  `json:"id"`
	ContactID  *uuid.UUID `json:"contactId,omitempty"`
	BusinessID *uuid.UUID `json:"businessId,omitempty"`
	PipelineID *uuid.UUID `json:"pipelineId,omitempty"`
	Stage      string     `json:"stage"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}
