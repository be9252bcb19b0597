package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	supabase "github.com/nedpals/supabase-go"

	"github.com/justsurfingit/internship-finder/internal/auth"
	"github.com/justsurfingit/internship-finder/internal/models"
)

// SupabaseGateway delegates storage and auth to a hosted Supabase project.
type SupabaseGateway struct {
	client   *supabase.Client
	baseURL  string
	provider string
}

func NewSupabaseGateway(supabaseURL, supabaseKey, provider string) (*SupabaseGateway, error) {
	if supabaseURL == "" || supabaseKey == "" {
		return nil, fmt.Errorf("supabase URL and key must be provided")
	}
	// CreateClient returns *supabase.Client (no error)
	client := supabase.CreateClient(supabaseURL, supabaseKey)
	return &SupabaseGateway{
		client:   client,
		baseURL:  strings.TrimRight(supabaseURL, "/"),
		provider: provider,
	}, nil
}

func (g *SupabaseGateway) List(ctx context.Context, entity Entity, sort SortSpec, out any) error {
	table := entity.Table()
	if table == "" {
		return fmt.Errorf("%w: %q", ErrUnknownEntity, entity)
	}
	q := g.client.DB.From(table).Select("*")
	if !sort.IsZero() {
		direction := "asc"
		if sort.Desc {
			direction = "desc"
		}
		q = q.OrderBy(sort.Field, direction)
	}
	if err := q.Execute(out); err != nil {
		return fmt.Errorf("list %s: %w", entity, err)
	}
	return nil
}

func (g *SupabaseGateway) Filter(ctx context.Context, entity Entity, criteria Criteria, out any) error {
	table := entity.Table()
	if table == "" {
		return fmt.Errorf("%w: %q", ErrUnknownEntity, entity)
	}
	if err := criteria.validate(); err != nil {
		return err
	}

	keys := criteria.Keys()
	sel := g.client.DB.From(table).Select("*")
	if len(keys) == 0 {
		if err := sel.Execute(out); err != nil {
			return fmt.Errorf("filter %s: %w", entity, err)
		}
		return nil
	}

	f := sel.Eq(keys[0], criterionValue(criteria[keys[0]]))
	for _, k := range keys[1:] {
		f = f.Eq(k, criterionValue(criteria[k]))
	}
	if err := f.Execute(out); err != nil {
		return fmt.Errorf("filter %s: %w", entity, err)
	}
	return nil
}

// Create inserts record and decodes the stored row back into it so
// server-assigned columns (id, timestamps) are visible to the caller.
func (g *SupabaseGateway) Create(ctx context.Context, entity Entity, record any) error {
	table := entity.Table()
	if table == "" {
		return fmt.Errorf("%w: %q", ErrUnknownEntity, entity)
	}

	if s, ok := record.(interface{ Stamp(time.Time) }); ok {
		s.Stamp(time.Now().UTC())
	}

	var rows []json.RawMessage
	if err := g.client.DB.From(table).Insert(record).Execute(&rows); err != nil {
		return fmt.Errorf("create %s: %w", entity, err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("create %s: no row returned", entity)
	}
	if err := json.Unmarshal(rows[0], record); err != nil {
		return fmt.Errorf("decode created %s: %w", entity, err)
	}
	return nil
}

func (g *SupabaseGateway) Update(ctx context.Context, entity Entity, id string, changes Changes) error {
	table := entity.Table()
	if table == "" {
		return fmt.Errorf("%w: %q", ErrUnknownEntity, entity)
	}
	if err := changes.validate(); err != nil {
		return err
	}

	values := map[string]any{"updated_date": time.Now().UTC()}
	for k, v := range changes {
		values[k] = v
	}
	var rows []json.RawMessage
	if err := g.client.DB.From(table).Update(values).Eq("id", id).Execute(&rows); err != nil {
		return fmt.Errorf("update %s %s: %w", entity, id, err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("update %s %s: %w", entity, id, ErrNotFound)
	}
	return nil
}

// CurrentUser verifies the bearer token with Supabase auth and loads the
// matching profile row. Without a profile row the auth identity is used.
func (g *SupabaseGateway) CurrentUser(ctx context.Context) (*models.User, error) {
	token := auth.TokenFromContext(ctx)
	if token == "" {
		return nil, ErrNotLoggedIn
	}

	authUser, err := g.client.Auth.User(ctx, token)
	if err != nil || authUser == nil {
		return nil, ErrNotLoggedIn
	}

	var profiles []models.User
	err = g.client.DB.From(EntityUser.Table()).Select("*").Eq("id", authUser.ID).Execute(&profiles)
	if err != nil {
		return nil, fmt.Errorf("load profile %s: %w", authUser.ID, err)
	}
	if len(profiles) > 0 {
		return &profiles[0], nil
	}

	user := &models.User{Email: authUser.Email}
	user.ID = authUser.ID
	if name, ok := authUser.UserMetadata["full_name"].(string); ok && name != "" {
		user.FullName = &name
	}
	return user, nil
}

// LoginURL points at Supabase's hosted OAuth authorize endpoint.
func (g *SupabaseGateway) LoginURL(returnURL string) string {
	base := appendQuery(g.baseURL+"/auth/v1/authorize", "provider", g.provider)
	return appendQuery(base, "redirect_to", returnURL)
}

func criterionValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(v)
	}
}
