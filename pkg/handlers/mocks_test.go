package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/upliftgrowth/growth-engine/pkg/auth"
	"github.com/upliftgrowth/growth-engine/pkg/models"
	"github.com/upliftgrowth/growth-engine/pkg/repositories"
	"github.com/upliftgrowth/growth-engine/pkg/services"
)

// ============================================================================
// Auth stubs
// ============================================================================

// stubAuthService implements auth.AuthService for route-level tests.
type stubAuthService struct {
	claims *auth.Claims
	err    error
}

func (s *stubAuthService) ValidateRequest(r *http.Request) (*auth.Claims, string, error) {
	if s.err != nil {
		return nil, "", s.err
	}
	return s.claims, "test-token", nil
}

// adminMiddleware returns an auth middleware that accepts every request as
// an authenticated admin.
func adminMiddleware() *auth.Middleware {
	claims := &auth.Claims{Roles: []string{auth.RoleAdmin}}
	claims.Subject = "test-user"
	return auth.NewMiddleware(&stubAuthService{claims: claims}, zap.NewNop())
}

// nonAdminMiddleware returns an auth middleware whose requests carry a valid
// token without the admin role.
func nonAdminMiddleware() *auth.Middleware {
	claims := &auth.Claims{Roles: []string{"member"}}
	claims.Subject = "test-user"
	return auth.NewMiddleware(&stubAuthService{claims: claims}, zap.NewNop())
}

// ============================================================================
// Repository mocks
// ============================================================================

// mockContactRepository implements repositories.ContactRepository.
type mockContactRepository struct {
	contact    *models.Contact
	contacts   []*models.Contact
	created    bool
	err        error
	lastUpsert *repositories.ContactUpsert
	lastSearch string
}

func (m *mockContactRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Contact, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.contact, nil
}

func (m *mockContactRepository) GetByEmail(ctx context.Context, email string) (*models.Contact, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.contact, nil
}

func (m *mockContactRepository) List(ctx context.Context, search string) ([]*models.Contact, error) {
	m.lastSearch = search
	if m.err != nil {
		return nil, m.err
	}
	return m.contacts, nil
}

func (m *mockContactRepository) Create(ctx context.Context, up *repositories.ContactUpsert) (*models.Contact, error) {
	m.lastUpsert = up
	if m.err != nil {
		return nil, m.err
	}
	return m.contact, nil
}

func (m *mockContactRepository) UpsertByID(ctx context.Context, up *repositories.ContactUpsert) (*models.Contact, bool, error) {
	m.lastUpsert = up
	if m.err != nil {
		return nil, false, m.err
	}
	return m.contact, m.created, nil
}

func (m *mockContactRepository) UpsertByEmail(ctx context.Context, up *repositories.ContactUpsert) (*models.Contact, bool, error) {
	m.lastUpsert = up
	if m.err != nil {
		return nil, false, m.err
	}
	return m.contact, m.created, nil
}

// mockBusinessRepository implements repositories.BusinessRepository.
type mockBusinessRepository struct {
	business   *models.Business
	businesses []*models.Business
	created    bool
	err        error
}

func (m *mockBusinessRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Business, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.business, nil
}

func (m *mockBusinessRepository) List(ctx context.Context, search string) ([]*models.Business, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.businesses, nil
}

func (m *mockBusinessRepository) Create(ctx context.Context, up *repositories.BusinessUpsert) (*models.Business, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.business, nil
}

func (m *mockBusinessRepository) UpsertByID(ctx context.Context, up *repositories.BusinessUpsert) (*models.Business, bool, error) {
	if m.err != nil {
		return nil, false, m.err
	}
	return m.business, m.created, nil
}

// mockOpportunityRepository implements repositories.OpportunityRepository.
type mockOpportunityRepository struct {
	opportunity   *models.Opportunity
	opportunities []*models.Opportunity
	created       bool
	err           error
	lastFilter    *repositories.OpportunityFilter
}

func (m *mockOpportunityRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Opportunity, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.opportunity, nil
}

func (m *mockOpportunityRepository) List(ctx context.Context, filter *repositories.OpportunityFilter) ([]*models.Opportunity, error) {
	m.lastFilter = filter
	if m.err != nil {
		return nil, m.err
	}
	return m.opportunities, nil
}

func (m *mockOpportunityRepository) Create(ctx context.Context, up *repositories.OpportunityUpsert) (*models.Opportunity, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.opportunity, nil
}

func (m *mockOpportunityRepository) UpsertByID(ctx context.Context, up *repositories.OpportunityUpsert) (*models.Opportunity, bool, error) {
	if m.err != nil {
		return nil, false, m.err
	}
	return m.opportunity, m.created, nil
}

// mockBuyerProfileRepository implements repositories.BuyerProfileRepository.
type mockBuyerProfileRepository struct {
	profile    *models.BuyerProfile
	created    bool
	err        error
	lastUpsert *repositories.BuyerProfileUpsert
}

func (m *mockBuyerProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.BuyerProfile, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.profile, nil
}

func (m *mockBuyerProfileRepository) GetByUserID(ctx context.Context, userID string) (*models.BuyerProfile, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.profile, nil
}

func (m *mockBuyerProfileRepository) UpsertByUserID(ctx context.Context, up *repositories.BuyerProfileUpsert) (*models.BuyerProfile, bool, error) {
	m.lastUpsert = up
	if m.err != nil {
		return nil, false, m.err
	}
	return m.profile, m.created, nil
}

func (m *mockBuyerProfileRepository) UpsertByID(ctx context.Context, up *repositories.BuyerProfileUpsert) (*models.BuyerProfile, bool, error) {
	m.lastUpsert = up
	if m.err != nil {
		return nil, false, m.err
	}
	return m.profile, m.created, nil
}

// mockProviderProfileRepository implements
// repositories.ProviderProfileRepository.
type mockProviderProfileRepository struct {
	profile    *models.ProviderProfile
	created    bool
	err        error
	lastUpsert *repositories.ProviderProfileUpsert
}

func (m *mockProviderProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ProviderProfile, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.profile, nil
}

func (m *mockProviderProfileRepository) GetByUserID(ctx context.Context, userID string) (*models.ProviderProfile, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.profile, nil
}

func (m *mockProviderProfileRepository) UpsertByUserID(ctx context.Context, up *repositories.ProviderProfileUpsert) (*models.ProviderProfile, bool, error) {
	m.lastUpsert = up
	if m.err != nil {
		return nil, false, m.err
	}
	return m.profile, m.created, nil
}

func (m *mockProviderProfileRepository) UpsertByID(ctx context.Context, up *repositories.ProviderProfileUpsert) (*models.ProviderProfile, bool, error) {
	m.lastUpsert = up
	if m.err != nil {
		return nil, false, m.err
	}
	return m.profile, m.created, nil
}

// mockProjectRepository implements repositories.ProjectRepository.
type mockProjectRepository struct {
	project    *models.Project
	projects   []*models.Project
	created    bool
	err        error
	lastUpsert *repositories.ProjectUpsert
}

func (m *mockProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.project, nil
}

func (m *mockProjectRepository) List(ctx context.Context, buyerProfileID *uuid.UUID) ([]*models.Project, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.projects, nil
}

func (m *mockProjectRepository) Create(ctx context.Context, up *repositories.ProjectUpsert) (*models.Project, error) {
	m.lastUpsert = up
	if m.err != nil {
		return nil, m.err
	}
	return m.project, nil
}

func (m *mockProjectRepository) UpsertByID(ctx context.Context, up *repositories.ProjectUpsert) (*models.Project, bool, error) {
	m.lastUpsert = up
	if m.err != nil {
		return nil, false, m.err
	}
	return m.project, m.created, nil
}

// ============================================================================
// Service mocks
// ============================================================================

// mockCopyService implements services.CopyService.
type mockCopyService struct {
	analysis *services.CompetitorAnalysisResult
	strategy *services.StrategyResult
	err      error
}

func (m *mockCopyService) CompetitorAnalysis(ctx context.Context, myInfo string, competitors []string) (*services.CompetitorAnalysisResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.analysis, nil
}

func (m *mockCopyService) Strategy(ctx context.Context, companyName, description, website string) (*services.StrategyResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.strategy, nil
}
