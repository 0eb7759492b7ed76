package models

import (
	"time"

	"github.com/google/uuid"
)

// BuyerProfile is the buyer-side marketplace profile. Exactly one exists per
// user; upserts are keyed by UserID.
type BuyerProfile struct {
	ID          uuid.UUID `json:"id"`
	UserID      string    `json:"userId"`
	CompanyName string    `json:"companyName"`
	About       string    `json:"about"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Projects []*Project `json:"projects,omitempty"`
}

// ProviderProfile is the provider-side marketplace profile. Exactly one
// exists per user; upserts are keyed by UserID. ServiceLines and Industries
// default to empty slices, never nil, so they serialize as [].
type ProviderProfile struct {
	ID           uuid.UUID `json:"id"`
	UserID       string    `json:"userId"`
	CompanyName  string    `json:"companyName"`
	About        string    `json:"about"`
	ServiceLines []string  `json:"serviceLines"`
	Industries   []string  `json:"industries"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	Clients []*ProviderClient `json:"clients,omitempty"`
}

// ProviderClient is a reference client listed on a provider profile.
type ProviderClient struct {
	ID                uuid.UUID `json:"id"`
	ProviderProfileID uuid.UUID `json:"providerProfileId"`
	Name              string    `json:"name"`
	Industry          string    `json:"industry"`
	CreatedAt         time.Time `json:"createdAt"`
}
