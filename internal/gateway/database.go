package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/justsurfingit/internship-finder/internal/auth"
	"github.com/justsurfingit/internship-finder/internal/models"
)

// DatabaseGateway serves entities straight from the application database.
type DatabaseGateway struct {
	DB       *gorm.DB
	loginURL string
}

func NewDatabaseGateway(db *gorm.DB, loginURL string) *DatabaseGateway {
	return &DatabaseGateway{DB: db, loginURL: loginURL}
}

func (g *DatabaseGateway) table(ctx context.Context, entity Entity) (*gorm.DB, error) {
	name := entity.Table()
	if name == "" {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEntity, entity)
	}
	return g.DB.WithContext(ctx).Table(name), nil
}

func (g *DatabaseGateway) List(ctx context.Context, entity Entity, sort SortSpec, out any) error {
	q, err := g.table(ctx, entity)
	if err != nil {
		return err
	}
	if !sort.IsZero() {
		q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: sort.Field}, Desc: sort.Desc})
	}
	if err := q.Find(out).Error; err != nil {
		return fmt.Errorf("list %s: %w", entity, err)
	}
	return nil
}

func (g *DatabaseGateway) Filter(ctx context.Context, entity Entity, criteria Criteria, out any) error {
	if err := criteria.validate(); err != nil {
		return err
	}
	q, err := g.table(ctx, entity)
	if err != nil {
		return err
	}
	if len(criteria) > 0 {
		q = q.Where(map[string]any(criteria))
	}
	if err := q.Find(out).Error; err != nil {
		return fmt.Errorf("filter %s: %w", entity, err)
	}
	return nil
}

func (g *DatabaseGateway) Create(ctx context.Context, entity Entity, record any) error {
	q, err := g.table(ctx, entity)
	if err != nil {
		return err
	}
	if err := q.Create(record).Error; err != nil {
		return fmt.Errorf("create %s: %w", entity, err)
	}
	return nil
}

func (g *DatabaseGateway) Update(ctx context.Context, entity Entity, id string, changes Changes) error {
	if err := changes.validate(); err != nil {
		return err
	}
	q, err := g.table(ctx, entity)
	if err != nil {
		return err
	}
	values := map[string]any{"updated_date": time.Now()}
	for k, v := range changes {
		values[k] = v
	}
	res := q.Where("id = ?", id).Updates(values)
	if res.Error != nil {
		return fmt.Errorf("update %s %s: %w", entity, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("update %s %s: %w", entity, id, ErrNotFound)
	}
	return nil
}

// CurrentUser looks the bearer token up in users.session_token.
func (g *DatabaseGateway) CurrentUser(ctx context.Context) (*models.User, error) {
	token := auth.TokenFromContext(ctx)
	if token == "" {
		return nil, ErrNotLoggedIn
	}

	var user models.User
	err := g.DB.WithContext(ctx).Where("session_token = ?", token).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotLoggedIn
	}
	if err != nil {
		return nil, fmt.Errorf("load current user: %w", err)
	}
	return &user, nil
}

func (g *DatabaseGateway) LoginURL(returnURL string) string {
	return appendQuery(g.loginURL, "return_to", returnURL)
}

func appendQuery(base, key, value string) string {
	if value == "" {
		return base
	}
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String()
}
