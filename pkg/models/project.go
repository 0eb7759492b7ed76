package models

import (
	"time"

	"github.com/google/uuid"
)

// Project is a buyer-posted engagement request. Attachments defaults to an
// empty slice, never nil, so it serializes as [].
type Project struct {
	ID             uuid.UUID `json:"id"`
	BuyerProfileID uuid.UUID `json:"buyerProfileId"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Attachments    []string  `json:"attachments"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`

	Responses []*ProjectResponse `json:"responses,omitempty"`
}

// ProjectResponse is a provider's reply to a posted project.
type ProjectResponse struct {
	ID                uuid.UUID `json:"id"`
	ProjectID         uuid.UUID `json:"projectId"`
	ProviderProfileID uuid.UUID `json:"providerProfileId"`
	Message           string    `json:"message"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}
