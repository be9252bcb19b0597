package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justsurfingit/internship-finder/internal/gateway"
	"github.com/justsurfingit/internship-finder/internal/models"
)

func TestProfileServiceRequiresLogin(t *testing.T) {
	svc := NewProfileService(seededFake())

	_, err := svc.Me(context.Background())
	assert.ErrorIs(t, err, gateway.ErrNotLoggedIn)
	_, err = svc.Applications(context.Background())
	assert.ErrorIs(t, err, gateway.ErrNotLoggedIn)
	_, err = svc.SavedCompanies(context.Background())
	assert.ErrorIs(t, err, gateway.ErrNotLoggedIn)
}

func TestProfileServiceOwnRecords(t *testing.T) {
	fake := seededFake()
	fake.User = studentWithResume()

	mine := models.Application{UserID: "u1", CompanyID: "c1", InternshipTitle: "Risk Analyst Intern"}
	mine.ID, mine.CreatedDate = "a1", at(1)
	newer := models.Application{UserID: "u1", CompanyID: "c2", InternshipTitle: "Social Media Intern"}
	newer.ID, newer.CreatedDate = "a2", at(9)
	theirs := models.Application{UserID: "u2", CompanyID: "c1"}
	theirs.ID = "a3"
	fake.Seed(gateway.EntityApplication, mine, newer, theirs)

	later := models.Interview{UserID: "u1", CompanyName: "Beach Cafe", ScheduledAt: at(20)}
	sooner := models.Interview{UserID: "u1", CompanyName: "Sunrise Bank", ScheduledAt: at(10).Add(9 * time.Hour)}
	fake.Seed(gateway.EntityInterview, later, sooner)
	fake.Seed(gateway.EntityNotification, models.Notification{UserID: "u1", Title: "Application submitted"})

	svc := NewProfileService(fake)

	apps, err := svc.Applications(context.Background())
	require.NoError(t, err)
	require.Len(t, apps, 2)
	assert.Equal(t, "a2", apps[0].ID)

	interviews, err := svc.Interviews(context.Background())
	require.NoError(t, err)
	require.Len(t, interviews, 2)
	assert.Equal(t, "Sunrise Bank", interviews[0].CompanyName)

	notes, err := svc.Notifications(context.Background())
	require.NoError(t, err)
	assert.Len(t, notes, 1)

	fake.FilterErr[gateway.EntityNotification] = errors.New("down")
	_, err = svc.Notifications(context.Background())
	assert.ErrorContains(t, err, "load notifications")
}

func TestProfileServiceSavedCompanies(t *testing.T) {
	fake := seededFake()
	user := studentWithResume()
	user.SavedCompanies = []string{"c2", "gone", "c1"}
	fake.User = user

	saved, err := NewProfileService(fake).SavedCompanies(context.Background())
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, "Beach Cafe", saved[0].Name)
	assert.Equal(t, "Sunrise Bank", saved[1].Name)
}

func TestProfileServiceSaveAndUnsave(t *testing.T) {
	fake := seededFake()
	fake.User = studentWithResume()
	svc := NewProfileService(fake)
	ctx := context.Background()

	user, err := svc.SaveCompany(ctx, "c2")
	require.NoError(t, err)
	assert.Equal(t, []string{"c2"}, []string(user.SavedCompanies))

	user, err = svc.SaveCompany(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, []string{"c2", "c1"}, []string(user.SavedCompanies))

	_, err = svc.SaveCompany(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 2, fake.Updates(gateway.EntityUser), "saving twice does not write")

	saved, err := svc.SavedCompanies(ctx)
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, "Beach Cafe", saved[0].Name)

	user, err = svc.UnsaveCompany(ctx, "c2")
	require.NoError(t, err)
	assert.Equal(t, []string{"c1"}, []string(user.SavedCompanies))

	_, err = svc.UnsaveCompany(ctx, "c2")
	require.NoError(t, err)
	assert.Equal(t, 3, fake.Updates(gateway.EntityUser))
}

func TestProfileServiceSaveErrors(t *testing.T) {
	fake := seededFake()
	svc := NewProfileService(fake)
	ctx := context.Background()

	_, err := svc.SaveCompany(ctx, "c1")
	assert.ErrorIs(t, err, gateway.ErrNotLoggedIn)
	_, err = svc.UnsaveCompany(ctx, "c1")
	assert.ErrorIs(t, err, gateway.ErrNotLoggedIn)
	assert.Zero(t, fake.Updates(gateway.EntityUser))

	fake.User = studentWithResume()
	_, err = svc.SaveCompany(ctx, "missing")
	assert.ErrorIs(t, err, gateway.ErrNotFound)

	fake.UpdateErr[gateway.EntityUser] = errors.New("read-only replica")
	_, err = svc.SaveCompany(ctx, "c1")
	assert.ErrorContains(t, err, "update saved companies")
	me, err := svc.Me(ctx)
	require.NoError(t, err)
	assert.Empty(t, me.SavedCompanies)
}
