package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upliftgrowth/growth-engine/pkg/apperrors"
	"github.com/upliftgrowth/growth-engine/pkg/testhelpers"
)

func TestBuyerProfileRepository_UpsertByUserID_OnePerUser(t *testing.T) {
	testDB := testhelpers.GetTestDB(t)
	repo := NewBuyerProfileRepository(testDB.DB)
	ctx := context.Background()

	userID := "buyer-" + uuid.NewString()

	first, created, err := repo.UpsertByUserID(ctx, &BuyerProfileUpsert{
		UserID:      &userID,
		CompanyName: strPtr("Acme"),
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, userID, first.UserID)

	second, created, err := repo.UpsertByUserID(ctx, &BuyerProfileUpsert{
		UserID: &userID,
		About:  strPtr("We buy growth services."),
	})
	require.NoError(t, err)
	assert.False(t, created)

	// One profile per user: same row, partially updated.
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Acme", second.CompanyName)
	assert.Equal(t, "We buy growth services.", second.About)
}

func TestBuyerProfileRepository_GetByUserID_NotFound(t *testing.T) {
	testDB := testhelpers.GetTestDB(t)
	repo := NewBuyerProfileRepository(testDB.DB)

	_, err := repo.GetByUserID(context.Background(), "missing-"+uuid.NewString())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestBuyerProfileRepository_GetByUserID_IncludesProjects(t *testing.T) {
	testDB := testhelpers.GetTestDB(t)
	buyers := NewBuyerProfileRepository(testDB.DB)
	projects := NewProjectRepository(testDB.DB)
	ctx := context.Background()

	userID := "buyer-projects-" + uuid.NewString()
	profile, _, err := buyers.UpsertByUserID(ctx, &BuyerProfileUpsert{UserID: &userID})
	require.NoError(t, err)

	_, err = projects.Create(ctx, &ProjectUpsert{
		BuyerProfileID: &profile.ID,
		Title:          strPtr("SEO overhaul"),
	})
	require.NoError(t, err)

	fetched, err := buyers.GetByUserID(ctx, userID)
	require.NoError(t, err)
	require.Len(t, fetched.Projects, 1)
	assert.Equal(t, "SEO overhaul", fetched.Projects[0].Title)
}

func TestProviderProfileRepository_UpsertByUserID_ArrayColumns(t *testing.T) {
	testDB := testhelpers.GetTestDB(t)
	repo := NewProviderProfileRepository(testDB.DB)
	ctx := context.Background()

	userID := "provider-" + uuid.NewString()
	serviceLines := []string{"SEO", "PPC"}

	first, created, err := repo.UpsertByUserID(ctx, &ProviderProfileUpsert{
		UserID:       &userID,
		CompanyName:  strPtr("Growth Co"),
		ServiceLines: &serviceLines,
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, []string{"SEO", "PPC"}, first.ServiceLines)

	// Industries was never provided; it defaults to an empty array.
	assert.NotNil(t, first.Industries)
	assert.Empty(t, first.Industries)

	// A write without slices leaves the stored arrays untouched.
	second, created, err := repo.UpsertByUserID(ctx, &ProviderProfileUpsert{
		UserID: &userID,
		About:  strPtr("Full-funnel growth."),
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, []string{"SEO", "PPC"}, second.ServiceLines)
	assert.Equal(t, "Full-funnel growth.", second.About)
}

func TestProjectRepository_ListByBuyerProfile(t *testing.T) {
	testDB := testhelpers.GetTestDB(t)
	buyers := NewBuyerProfileRepository(testDB.DB)
	projects := NewProjectRepository(testDB.DB)
	ctx := context.Background()

	userID := "buyer-list-" + uuid.NewString()
	profile, _, err := buyers.UpsertByUserID(ctx, &BuyerProfileUpsert{UserID: &userID})
	require.NoError(t, err)

	_, err = projects.Create(ctx, &ProjectUpsert{
		BuyerProfileID: &profile.ID,
		Title:          strPtr("Campaign A"),
	})
	require.NoError(t, err)
	_, err = projects.Create(ctx, &ProjectUpsert{
		BuyerProfileID: &profile.ID,
		Title:          strPtr("Campaign B"),
	})
	require.NoError(t, err)

	listed, err := projects.List(ctx, &profile.ID)
	require.NoError(t, err)
	assert.Len(t, listed, 2)
}

func TestProjectRepository_UpsertByID_StatusPatch(t *testing.T) {
	testDB := testhelpers.GetTestDB(t)
	buyers := NewBuyerProfileRepository(testDB.DB)
	projects := NewProjectRepository(testDB.DB)
	ctx := context.Background()

	userID := "buyer-patch-" + uuid.NewString()
	profile, _, err := buyers.UpsertByUserID(ctx, &BuyerProfileUpsert{UserID: &userID})
	require.NoError(t, err)

	project, err := projects.Create(ctx, &ProjectUpsert{
		BuyerProfileID: &profile.ID,
		Title:          strPtr("Patch me"),
	})
	require.NoError(t, err)

	patched, created, err := projects.UpsertByID(ctx, &ProjectUpsert{
		ID:     &project.ID,
		Status: strPtr("closed"),
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "closed", patched.Status)
	assert.Equal(t, "Patch me", patched.Title)
}

func TestOpportunityRepository_List_Filters(t *testing.T) {
	testDB := testhelpers.GetTestDB(t)
	contacts := NewContactRepository(testDB.DB)
	opportunities := NewOpportunityRepository(testDB.DB)
	ctx := context.Background()

	email := "filter-" + uuid.NewString() + "@example.com"
	contact, err := contacts.Create(ctx, &ContactUpsert{Email: &email})
	require.NoError(t, err)

	_, err = opportunities.Create(ctx, &OpportunityUpsert{
		ContactID: &contact.ID,
		Stage:     strPtr("lead"),
	})
	require.NoError(t, err)

	filtered, err := opportunities.List(ctx, &OpportunityFilter{ContactID: &contact.ID})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	require.NotNil(t, filtered[0].ContactID)
	assert.Equal(t, contact.ID, *filtered[0].ContactID)

	// Filtering on a pipeline no opportunity references yields nothing.
	otherPipeline := uuid.New()
	empty, err := opportunities.List(ctx, &OpportunityFilter{
		ContactID:  &contact.ID,
		PipelineID: &otherPipeline,
	})
	require.NoError(t, err)
	assert.Empty(t, empty)
}
