package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justsurfingit/internship-finder/internal/catalog"
	"github.com/justsurfingit/internship-finder/internal/gateway"
	"github.com/justsurfingit/internship-finder/internal/gateway/gatewaytest"
	"github.com/justsurfingit/internship-finder/internal/models"
)

func TestBrowse(t *testing.T) {
	svc := NewCompanyService(seededFake())

	view, err := svc.Browse(context.Background(), catalog.Query{Term: "bank"})
	require.NoError(t, err)
	require.Len(t, view.Featured, 1)
	assert.Equal(t, "Sunrise Bank", view.Featured[0].Name)
	assert.Empty(t, view.Regular)
	assert.Empty(t, view.EmptyMessage)
	assert.Equal(t, catalog.Summary{Companies: 2, TotalOpportunities: 3, DistinctLocations: 2}, view.Summary,
		"stats cover the unfiltered list")
	assert.NotEmpty(t, view.Options.Industries)
}

func TestBrowseEmptyMessages(t *testing.T) {
	svc := NewCompanyService(seededFake())

	view, err := svc.Browse(context.Background(), catalog.Query{
		Filters: catalog.Selection{Industry: catalog.Exactly("Healthcare")},
	})
	require.NoError(t, err)
	assert.Equal(t, "No companies found", view.EmptyMessage)
	assert.Equal(t, 1, view.ActiveFilters)

	view, err = NewCompanyService(gatewaytest.New()).Browse(context.Background(), catalog.Query{})
	require.NoError(t, err)
	assert.Equal(t, "No companies yet", view.EmptyMessage)
}

func TestBrowseFetchError(t *testing.T) {
	fake := seededFake()
	fake.ListErr[gateway.EntityCompany] = errors.New("timeout")

	_, err := NewCompanyService(fake).Browse(context.Background(), catalog.Query{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load companies")
}

func TestProfile(t *testing.T) {
	fake := seededFake()
	older := models.Review{CompanyID: "c1", UserName: "Ana", Rating: 5, Title: "Great", Comment: "Learned a lot"}
	older.ID, older.CreatedDate = "r1", at(1)
	newer := models.Review{CompanyID: "c1", UserName: "Ben", Rating: 3, Title: "Fine", Comment: "Long days"}
	newer.ID, newer.CreatedDate = "r2", at(5)
	other := models.Review{CompanyID: "c2", UserName: "Cy", Rating: 1, Title: "No", Comment: "No"}
	other.ID = "r3"
	fake.Seed(gateway.EntityReview, older, newer, other)

	user := studentWithResume()
	user.SavedCompanies = []string{"c1"}
	fake.User = user

	view, err := NewCompanyService(fake).Profile(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "Sunrise Bank", view.Company.Name)
	require.Len(t, view.Reviews, 2)
	assert.Equal(t, "r2", view.Reviews[0].ID, "newest review first")
	assert.Equal(t, catalog.Stats{Count: 2, Average: 4}, view.Stats)
	assert.True(t, view.Saved)
	require.NotNil(t, view.User)
	assert.Equal(t, "u1", view.User.ID)
}

func TestProfileAnonymousWithReviewFailure(t *testing.T) {
	fake := seededFake()
	fake.FilterErr[gateway.EntityReview] = errors.New("reviews table missing")

	view, err := NewCompanyService(fake).Profile(context.Background(), "c2")
	require.NoError(t, err, "review failures degrade to an empty list")
	assert.NotNil(t, view.Reviews)
	assert.Empty(t, view.Reviews)
	assert.Nil(t, view.User)
	assert.False(t, view.Saved)
}

func TestProfileNotFound(t *testing.T) {
	_, err := NewCompanyService(seededFake()).Profile(context.Background(), "nope")
	assert.ErrorIs(t, err, gateway.ErrNotFound)
}

func TestCompareAndMap(t *testing.T) {
	fake := gatewaytest.New()
	lat, lng := 18.02, -63.05
	mapped := testCompany("c1", "Harbour Hotel", "Tourism & Hospitality", "Philipsburg", true)
	mapped.Latitude, mapped.Longitude = &lat, &lng
	fake.Seed(gateway.EntityCompany, mapped, testCompany("c2", "Beach Cafe", "Retail", "Simpson Bay", false))
	svc := NewCompanyService(fake)

	got, err := svc.Compare(context.Background(), []string{"c2", "c1", "c2", "zz"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Beach Cafe", got[0].Name)

	markers, err := svc.MapMarkers(context.Background())
	require.NoError(t, err)
	require.Len(t, markers, 1)
	assert.Equal(t, "c1", markers[0].ID)
}
