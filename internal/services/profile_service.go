package services

import (
	"context"
	"fmt"
	"slices"

	"github.com/lib/pq"

	"github.com/justsurfingit/internship-finder/internal/catalog"
	"github.com/justsurfingit/internship-finder/internal/gateway"
	"github.com/justsurfingit/internship-finder/internal/models"
)

// ProfileService serves the signed-in student's own records. Every method
// returns gateway.ErrNotLoggedIn for anonymous callers.
type ProfileService struct {
	Gateway gateway.Gateway
}

func NewProfileService(g gateway.Gateway) *ProfileService {
	return &ProfileService{Gateway: g}
}

func (s *ProfileService) Me(ctx context.Context) (*models.User, error) {
	user, err := gateway.ResolveUser(ctx, s.Gateway)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, gateway.ErrNotLoggedIn
	}
	return user, nil
}

func (s *ProfileService) Applications(ctx context.Context) ([]models.Application, error) {
	var apps []models.Application
	if err := s.ownRecords(ctx, gateway.EntityApplication, &apps); err != nil {
		return nil, err
	}
	slices.SortStableFunc(apps, func(a, b models.Application) int {
		return b.CreatedDate.Compare(a.CreatedDate)
	})
	return apps, nil
}

func (s *ProfileService) Notifications(ctx context.Context) ([]models.Notification, error) {
	var notes []models.Notification
	if err := s.ownRecords(ctx, gateway.EntityNotification, &notes); err != nil {
		return nil, err
	}
	slices.SortStableFunc(notes, func(a, b models.Notification) int {
		return b.CreatedDate.Compare(a.CreatedDate)
	})
	return notes, nil
}

// Interviews are returned soonest first.
func (s *ProfileService) Interviews(ctx context.Context) ([]models.Interview, error) {
	var interviews []models.Interview
	if err := s.ownRecords(ctx, gateway.EntityInterview, &interviews); err != nil {
		return nil, err
	}
	slices.SortStableFunc(interviews, func(a, b models.Interview) int {
		return a.ScheduledAt.Compare(b.ScheduledAt)
	})
	return interviews, nil
}

// SavedCompanies resolves the saved ids in the order they were saved.
func (s *ProfileService) SavedCompanies(ctx context.Context) ([]models.Company, error) {
	user, err := s.Me(ctx)
	if err != nil {
		return nil, err
	}
	var companies []models.Company
	if err := s.Gateway.List(ctx, gateway.EntityCompany, gateway.SortSpec{}, &companies); err != nil {
		return nil, fmt.Errorf("load companies: %w", err)
	}
	return catalog.Compare(companies, user.SavedCompanies), nil
}

// SaveCompany adds companyID to the user's saved list and returns the
// re-fetched user. Saving twice is a no-op.
func (s *ProfileService) SaveCompany(ctx context.Context, companyID string) (*models.User, error) {
	user, err := s.Me(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := gateway.FindCompany(ctx, s.Gateway, companyID); err != nil {
		return nil, err
	}
	if slices.Contains(user.SavedCompanies, companyID) {
		return user, nil
	}
	saved := append(slices.Clone(user.SavedCompanies), companyID)
	return s.setSaved(ctx, user, saved)
}

// UnsaveCompany removes companyID from the saved list. The company need not
// exist any more.
func (s *ProfileService) UnsaveCompany(ctx context.Context, companyID string) (*models.User, error) {
	user, err := s.Me(ctx)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(user.SavedCompanies, companyID) {
		return user, nil
	}
	saved := slices.DeleteFunc(slices.Clone(user.SavedCompanies), func(id string) bool { return id == companyID })
	return s.setSaved(ctx, user, saved)
}

func (s *ProfileService) setSaved(ctx context.Context, user *models.User, saved []string) (*models.User, error) {
	changes := gateway.Changes{"saved_companies": pq.StringArray(saved)}
	if err := s.Gateway.Update(ctx, gateway.EntityUser, user.ID, changes); err != nil {
		return nil, fmt.Errorf("update saved companies: %w", err)
	}
	return s.Me(ctx)
}

func (s *ProfileService) ownRecords(ctx context.Context, entity gateway.Entity, out any) error {
	user, err := s.Me(ctx)
	if err != nil {
		return err
	}
	if err := s.Gateway.Filter(ctx, entity, gateway.Criteria{"user_id": user.ID}, out); err != nil {
		return fmt.Errorf("load %s: %w", entity.Table(), err)
	}
	return nil
}
