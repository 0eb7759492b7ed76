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

func TestBusinessRepository_CreateAndGet(t *testing.T) {
	testDB := testhelpers.GetTestDB(t)
	businesses := NewBusinessRepository(testDB.DB)
	opportunities := NewOpportunityRepository(testDB.DB)
	ctx := context.Background()

	name := "Acme " + uuid.NewString()
	business, err := businesses.Create(ctx, &BusinessUpsert{Name: &name})
	require.NoError(t, err)

	_, err = opportunities.Create(ctx, &OpportunityUpsert{
		BusinessID: &business.ID,
		Stage:      strPtr("proposal"),
	})
	require.NoError(t, err)

	fetched, err := businesses.GetByID(ctx, business.ID)
	require.NoError(t, err)
	assert.Equal(t, name, fetched.Name)
	require.Len(t, fetched.Opportunities, 1)
	assert.Equal(t, "proposal", fetched.Opportunities[0].Stage)
}

func TestBusinessRepository_GetByID_NotFound(t *testing.T) {
	testDB := testhelpers.GetTestDB(t)
	businesses := NewBusinessRepository(testDB.DB)

	_, err := businesses.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestBusinessRepository_List_OrderedByName(t *testing.T) {
	testDB := testhelpers.GetTestDB(t)
	businesses := NewBusinessRepository(testDB.DB)
	ctx := context.Background()

	marker := uuid.NewString()
	nameB := "OrderTest-" + marker + "-B"
	nameA := "OrderTest-" + marker + "-A"

	_, err := businesses.Create(ctx, &BusinessUpsert{Name: &nameB})
	require.NoError(t, err)
	_, err = businesses.Create(ctx, &BusinessUpsert{Name: &nameA})
	require.NoError(t, err)

	results, err := businesses.List(ctx, "OrderTest-"+marker)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, nameA, results[0].Name)
	assert.Equal(t, nameB, results[1].Name)
}

func TestBusinessRepository_UpsertByID_Rename(t *testing.T) {
	testDB := testhelpers.GetTestDB(t)
	businesses := NewBusinessRepository(testDB.DB)
	ctx := context.Background()

	name := "Rename " + uuid.NewString()
	business, err := businesses.Create(ctx, &BusinessUpsert{Name: &name})
	require.NoError(t, err)

	newName := name + " GmbH"
	renamed, created, err := businesses.UpsertByID(ctx, &BusinessUpsert{
		ID:   &business.ID,
		Name: &newName,
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, newName, renamed.Name)
	assert.Equal(t, business.ID, renamed.ID)
}
