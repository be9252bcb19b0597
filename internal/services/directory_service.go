package services

import (
	"context"
	"fmt"

	"github.com/justsurfingit/internship-finder/internal/catalog"
	"github.com/justsurfingit/internship-finder/internal/gateway"
	"github.com/justsurfingit/internship-finder/internal/models"
)

// DirectoryService serves the read-only pages around the company list.
type DirectoryService struct {
	Gateway gateway.Gateway
}

func NewDirectoryService(g gateway.Gateway) *DirectoryService {
	return &DirectoryService{Gateway: g}
}

var newestFirst = gateway.MustSort("-created_date")

type MentorsView struct {
	Mentors    []models.Mentor    `json:"mentors"`
	Industries []string           `json:"industries"`
	Industry   catalog.Constraint `json:"industry"`
}

func (s *DirectoryService) Mentors(ctx context.Context, industry catalog.Constraint) (*MentorsView, error) {
	var mentors []models.Mentor
	if err := s.Gateway.List(ctx, gateway.EntityMentor, gateway.SortSpec{}, &mentors); err != nil {
		return nil, fmt.Errorf("load mentors: %w", err)
	}
	return &MentorsView{
		Mentors:    catalog.FilterMentors(mentors, industry),
		Industries: catalog.MentorIndustries(mentors),
		Industry:   industry,
	}, nil
}

type StoriesView struct {
	Featured []models.SuccessStory `json:"featured"`
	Regular  []models.SuccessStory `json:"regular"`
}

func (s *DirectoryService) SuccessStories(ctx context.Context) (*StoriesView, error) {
	var stories []models.SuccessStory
	if err := s.Gateway.List(ctx, gateway.EntitySuccessStory, newestFirst, &stories); err != nil {
		return nil, fmt.Errorf("load success stories: %w", err)
	}
	featured, regular := catalog.PartitionStories(stories)
	return &StoriesView{Featured: featured, Regular: regular}, nil
}

func (s *DirectoryService) Resources(ctx context.Context) ([]models.Resource, error) {
	var resources []models.Resource
	if err := s.Gateway.List(ctx, gateway.EntityResource, newestFirst, &resources); err != nil {
		return nil, fmt.Errorf("load resources: %w", err)
	}
	if resources == nil {
		resources = []models.Resource{}
	}
	return resources, nil
}

// Resource returns gateway.ErrNotFound for an unknown id.
func (s *DirectoryService) Resource(ctx context.Context, id string) (*models.Resource, error) {
	return gateway.FindResource(ctx, s.Gateway, id)
}
