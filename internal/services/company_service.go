package services

import (
	"context"
	"fmt"
	"log"
	"slices"

	"github.com/justsurfingit/internship-finder/internal/catalog"
	"github.com/justsurfingit/internship-finder/internal/gateway"
	"github.com/justsurfingit/internship-finder/internal/models"
)

type CompanyService struct {
	Gateway gateway.Gateway
}

func NewCompanyService(g gateway.Gateway) *CompanyService {
	return &CompanyService{Gateway: g}
}

// BrowseView is the home page: the filtered split plus stats over the full list.
type BrowseView struct {
	catalog.Result
	Query         catalog.Query   `json:"query"`
	Summary       catalog.Summary `json:"stats"`
	ActiveFilters int             `json:"active_filters"`
	EmptyMessage  string          `json:"empty_message,omitempty"`
	Options       catalog.Options `json:"options"`
}

func (s *CompanyService) Browse(ctx context.Context, q catalog.Query) (*BrowseView, error) {
	var companies []models.Company
	if err := s.Gateway.List(ctx, gateway.EntityCompany, gateway.SortSpec{}, &companies); err != nil {
		return nil, fmt.Errorf("load companies: %w", err)
	}
	view := &BrowseView{
		Result:        catalog.Apply(companies, q),
		Query:         q,
		Summary:       catalog.Summarize(companies),
		ActiveFilters: q.Filters.ActiveCount(),
		Options:       catalog.FilterOptions(),
	}
	if view.Len() == 0 {
		view.EmptyMessage = q.EmptyMessage()
	}
	return view, nil
}

type ProfileView struct {
	Company models.Company  `json:"company"`
	Reviews []models.Review `json:"reviews"`
	Stats   catalog.Stats   `json:"review_stats"`
	// User is nil for anonymous visitors.
	User *models.User `json:"user,omitempty"`
	// Saved reports whether the company is on the user's saved list.
	Saved bool `json:"saved"`
}

// Profile loads one company with its reviews. A review fetch failure shows
// an empty review list instead of failing the page.
func (s *CompanyService) Profile(ctx context.Context, id string) (*ProfileView, error) {
	company, err := gateway.FindCompany(ctx, s.Gateway, id)
	if err != nil {
		return nil, err
	}

	var reviews []models.Review
	if err := s.Gateway.Filter(ctx, gateway.EntityReview, gateway.Criteria{"company_id": id}, &reviews); err != nil {
		log.Printf("[Company %s] ⚠️ reviews unavailable: %v", id, err)
		reviews = nil
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	slices.SortStableFunc(reviews, func(a, b models.Review) int {
		return b.CreatedDate.Compare(a.CreatedDate)
	})

	user, err := gateway.ResolveUser(ctx, s.Gateway)
	if err != nil {
		log.Printf("[Company %s] ⚠️ could not resolve user: %v", id, err)
	}

	return &ProfileView{
		Company: *company,
		Reviews: reviews,
		Stats:   catalog.ReviewStats(reviews),
		User:    user,
		Saved:   user != nil && slices.Contains(user.SavedCompanies, id),
	}, nil
}

// Compare returns the requested companies in request order.
func (s *CompanyService) Compare(ctx context.Context, ids []string) ([]models.Company, error) {
	var companies []models.Company
	if err := s.Gateway.List(ctx, gateway.EntityCompany, gateway.SortSpec{}, &companies); err != nil {
		return nil, fmt.Errorf("load companies: %w", err)
	}
	return catalog.Compare(companies, ids), nil
}

func (s *CompanyService) MapMarkers(ctx context.Context) ([]catalog.Marker, error) {
	var companies []models.Company
	if err := s.Gateway.List(ctx, gateway.EntityCompany, gateway.SortSpec{}, &companies); err != nil {
		return nil, fmt.Errorf("load companies: %w", err)
	}
	return catalog.Mappable(companies), nil
}
