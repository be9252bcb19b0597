// Package gateway is the boundary to the backend that owns every record:
// listing, exact-match filtering, creation, updates and the signed-in user.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/justsurfingit/internship-finder/internal/models"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrNotLoggedIn   = errors.New("not logged in")
	ErrUnknownEntity = errors.New("unknown entity")
	ErrInvalidSort   = errors.New("invalid sort field")
)

type Entity string

const (
	EntityCompany      Entity = "Company"
	EntityApplication  Entity = "Application"
	EntityReview       Entity = "Review"
	EntityMentor       Entity = "Mentor"
	EntitySuccessStory Entity = "SuccessStory"
	EntityResource     Entity = "Resource"
	EntityNotification Entity = "Notification"
	EntityInterview    Entity = "Interview"
	EntityUser         Entity = "User"
)

var tables = map[Entity]string{
	EntityCompany:      "companies",
	EntityApplication:  "applications",
	EntityReview:       "reviews",
	EntityMentor:       "mentors",
	EntitySuccessStory: "success_stories",
	EntityResource:     "resources",
	EntityNotification: "notifications",
	EntityInterview:    "interviews",
	EntityUser:         "users",
}

// Table is the backing table name, or "" for an unknown entity.
func (e Entity) Table() string {
	return tables[e]
}

func ParseEntity(s string) (Entity, error) {
	for e := range tables {
		if strings.EqualFold(string(e), s) {
			return e, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEntity, s)
}

var fieldPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// SortSpec orders a listing by one field. The zero value means backend order.
type SortSpec struct {
	Field string
	Desc  bool
}

// ParseSort reads the "-field" / "field" form used by listing calls.
func ParseSort(s string) (SortSpec, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return SortSpec{}, nil
	}
	spec := SortSpec{Field: s}
	if strings.HasPrefix(s, "-") {
		spec = SortSpec{Field: s[1:], Desc: true}
	}
	if !fieldPattern.MatchString(spec.Field) {
		return SortSpec{}, fmt.Errorf("%w: %q", ErrInvalidSort, s)
	}
	return spec, nil
}

// MustSort is ParseSort for literals known at compile time.
func MustSort(s string) SortSpec {
	spec, err := ParseSort(s)
	if err != nil {
		panic(err)
	}
	return spec
}

func (s SortSpec) IsZero() bool { return s.Field == "" }

func (s SortSpec) String() string {
	if s.Desc {
		return "-" + s.Field
	}
	return s.Field
}

// Criteria is an exact-match condition per field.
type Criteria map[string]any

// Keys returns the field names in a stable order.
func (c Criteria) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (c Criteria) validate() error {
	for k := range c {
		if !fieldPattern.MatchString(k) {
			return fmt.Errorf("invalid criteria field %q", k)
		}
	}
	return nil
}

// Changes sets columns on one existing record.
type Changes map[string]any

func (c Changes) validate() error {
	if len(c) == 0 {
		return fmt.Errorf("no changes")
	}
	for k := range c {
		if !fieldPattern.MatchString(k) {
			return fmt.Errorf("invalid change field %q", k)
		}
	}
	return nil
}

// Gateway is implemented by every backend. out and record are pointers to
// model slices and models respectively.
type Gateway interface {
	List(ctx context.Context, entity Entity, sort SortSpec, out any) error
	Filter(ctx context.Context, entity Entity, criteria Criteria, out any) error
	Create(ctx context.Context, entity Entity, record any) error
	// Update returns ErrNotFound when no record has id.
	Update(ctx context.Context, entity Entity, id string, changes Changes) error
	// CurrentUser returns ErrNotLoggedIn when no user is signed in.
	CurrentUser(ctx context.Context) (*models.User, error)
	LoginURL(returnURL string) string
}

// FindCompany lists companies and picks the one with id.
func FindCompany(ctx context.Context, g Gateway, id string) (*models.Company, error) {
	var companies []models.Company
	if err := g.List(ctx, EntityCompany, SortSpec{}, &companies); err != nil {
		return nil, err
	}
	for i := range companies {
		if companies[i].ID == id {
			return &companies[i], nil
		}
	}
	return nil, fmt.Errorf("company %s: %w", id, ErrNotFound)
}

// FindResource lists resources and picks the one with id.
func FindResource(ctx context.Context, g Gateway, id string) (*models.Resource, error) {
	var resources []models.Resource
	if err := g.List(ctx, EntityResource, SortSpec{}, &resources); err != nil {
		return nil, err
	}
	for i := range resources {
		if resources[i].ID == id {
			return &resources[i], nil
		}
	}
	return nil, fmt.Errorf("resource %s: %w", id, ErrNotFound)
}

// ResolveUser is CurrentUser with "not logged in" mapped to a nil user.
func ResolveUser(ctx context.Context, g Gateway) (*models.User, error) {
	user, err := g.CurrentUser(ctx)
	if errors.Is(err, ErrNotLoggedIn) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
