// Package gatewaytest provides an in-memory gateway for tests.
package gatewaytest

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/justsurfingit/internship-finder/internal/gateway"
	"github.com/justsurfingit/internship-finder/internal/models"
)

// Fake keeps records as JSON so any model slice can be listed back out.
type Fake struct {
	mu      sync.Mutex
	records map[gateway.Entity][]json.RawMessage
	creates map[gateway.Entity]int
	updates map[gateway.Entity]int

	User       *models.User
	ListErr    map[gateway.Entity]error
	FilterErr  map[gateway.Entity]error
	UpdateErr  map[gateway.Entity]error
	createErrs map[gateway.Entity][]error

	// BeforeCreate runs ahead of every create; a non-nil error fails it.
	BeforeCreate func(ctx context.Context, entity gateway.Entity) error

	Now func() time.Time
}

var _ gateway.Gateway = (*Fake)(nil)

func New() *Fake {
	return &Fake{
		records:    make(map[gateway.Entity][]json.RawMessage),
		creates:    make(map[gateway.Entity]int),
		updates:    make(map[gateway.Entity]int),
		ListErr:    make(map[gateway.Entity]error),
		FilterErr:  make(map[gateway.Entity]error),
		UpdateErr:  make(map[gateway.Entity]error),
		createErrs: make(map[gateway.Entity][]error),
		Now:        time.Now,
	}
}

// Seed stores records without counting them as creates.
func (f *Fake) Seed(entity gateway.Entity, records ...any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range records {
		b, err := json.Marshal(r)
		if err != nil {
			panic(err)
		}
		f.records[entity] = append(f.records[entity], b)
	}
}

// FailNextCreate makes the next create of entity return err.
func (f *Fake) FailNextCreate(entity gateway.Entity, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createErrs[entity] = append(f.createErrs[entity], err)
}

// Creates reports how many creates reached the fake for entity.
func (f *Fake) Creates(entity gateway.Entity) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.creates[entity]
}

func (f *Fake) List(ctx context.Context, entity gateway.Entity, spec gateway.SortSpec, out any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.ListErr[entity]; err != nil {
		return err
	}
	rows, err := f.decode(entity)
	if err != nil {
		return err
	}
	if !spec.IsZero() {
		sort.SliceStable(rows, func(i, j int) bool {
			a, b := fmt.Sprint(rows[i][spec.Field]), fmt.Sprint(rows[j][spec.Field])
			if spec.Desc {
				return a > b
			}
			return a < b
		})
	}
	return encodeInto(rows, out)
}

func (f *Fake) Filter(ctx context.Context, entity gateway.Entity, criteria gateway.Criteria, out any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.FilterErr[entity]; err != nil {
		return err
	}
	rows, err := f.decode(entity)
	if err != nil {
		return err
	}
	matched := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		ok := true
		for k, v := range criteria {
			if fmt.Sprint(row[k]) != fmt.Sprint(v) {
				ok = false
				break
			}
		}
		if ok {
			matched = append(matched, row)
		}
	}
	return encodeInto(matched, out)
}

func (f *Fake) Create(ctx context.Context, entity gateway.Entity, record any) error {
	if f.BeforeCreate != nil {
		if err := f.BeforeCreate(ctx, entity); err != nil {
			return err
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates[entity]++
	if errs := f.createErrs[entity]; len(errs) > 0 {
		f.createErrs[entity] = errs[1:]
		return errs[0]
	}
	if s, ok := record.(interface{ Stamp(time.Time) }); ok {
		s.Stamp(f.Now())
	}
	b, err := json.Marshal(record)
	if err != nil {
		return err
	}
	f.records[entity] = append(f.records[entity], b)
	return nil
}

// Updates reports how many updates reached the fake for entity.
func (f *Fake) Updates(entity gateway.Entity) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.updates[entity]
}

// Update changes the stored record with id. For users it also changes the
// signed-in User when the ids match, so CurrentUser sees the new values.
func (f *Fake) Update(ctx context.Context, entity gateway.Entity, id string, changes gateway.Changes) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates[entity]++
	if err := f.UpdateErr[entity]; err != nil {
		return err
	}

	found := false
	for i, raw := range f.records[entity] {
		var row map[string]any
		if err := json.Unmarshal(raw, &row); err != nil {
			return err
		}
		if row["id"] != id {
			continue
		}
		b, err := merge(row, changes)
		if err != nil {
			return err
		}
		f.records[entity][i] = b
		found = true
	}

	if entity == gateway.EntityUser && f.User != nil && f.User.ID == id {
		var row map[string]any
		b, err := json.Marshal(f.User)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(b, &row); err != nil {
			return err
		}
		if b, err = merge(row, changes); err != nil {
			return err
		}
		var u models.User
		if err := json.Unmarshal(b, &u); err != nil {
			return err
		}
		u.SessionToken = f.User.SessionToken
		f.User = &u
		found = true
	}

	if !found {
		return fmt.Errorf("update %s %s: %w", entity, id, gateway.ErrNotFound)
	}
	return nil
}

func merge(row map[string]any, changes gateway.Changes) ([]byte, error) {
	for k, v := range changes {
		row[k] = v
	}
	return json.Marshal(row)
}

func (f *Fake) CurrentUser(ctx context.Context) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.User == nil {
		return nil, gateway.ErrNotLoggedIn
	}
	u := *f.User
	return &u, nil
}

func (f *Fake) LoginURL(returnURL string) string {
	return "https://login.test/?return_to=" + returnURL
}

func (f *Fake) decode(entity gateway.Entity) ([]map[string]any, error) {
	rows := make([]map[string]any, 0, len(f.records[entity]))
	for _, raw := range f.records[entity] {
		var row map[string]any
		if err := json.Unmarshal(raw, &row); err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func encodeInto(rows []map[string]any, out any) error {
	b, err := json.Marshal(rows)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}
