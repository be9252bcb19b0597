// Package catalog derives the company views shown to students: the
// filter/search pass over a company list, its aggregates and the smaller
// directory helpers for mentors, stories, maps and comparisons.
package catalog

import "strings"

// All is the external spelling of "no constraint".
const All = "all"

// Constraint is either unconstrained or an exact-match value.
type Constraint struct {
	value string
	set   bool
}

// Any matches every value.
func Any() Constraint { return Constraint{} }

// Exactly matches only v.
func Exactly(v string) Constraint { return Constraint{value: v, set: true} }

// ParseConstraint reads the form value; "all" and "" are unconstrained.
func ParseConstraint(s string) Constraint {
	s = strings.TrimSpace(s)
	if s == "" || s == All {
		return Any()
	}
	return Exactly(s)
}

func (c Constraint) IsSet() bool { return c.set }

// Value is the exact-match value, or "" when unconstrained.
func (c Constraint) Value() string { return c.value }

func (c Constraint) Allows(v string) bool {
	return !c.set || c.value == v
}

// String renders the external form.
func (c Constraint) String() string {
	if !c.set {
		return All
	}
	return c.value
}

func (c Constraint) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Constraint) UnmarshalText(b []byte) error {
	*c = ParseConstraint(string(b))
	return nil
}

const (
	KeyIndustry    = "industry"
	KeyLocation    = "location"
	KeyCompanySize = "company_size"
)

// Selection is the filter panel state.
type Selection struct {
	Industry    Constraint `json:"industry"`
	Location    Constraint `json:"location"`
	CompanySize Constraint `json:"company_size"`
}

// ParseSelection reads the three recognised keys; absent keys are
// unconstrained and unknown keys are ignored.
func ParseSelection(values map[string]string) Selection {
	return Selection{
		Industry:    ParseConstraint(values[KeyIndustry]),
		Location:    ParseConstraint(values[KeyLocation]),
		CompanySize: ParseConstraint(values[KeyCompanySize]),
	}
}

// ActiveCount is the number of constrained keys.
func (s Selection) ActiveCount() int {
	n := 0
	for _, c := range []Constraint{s.Industry, s.Location, s.CompanySize} {
		if c.IsSet() {
			n++
		}
	}
	return n
}

// Clear returns a copy with key unconstrained.
func (s Selection) Clear(key string) Selection {
	switch key {
	case KeyIndustry:
		s.Industry = Any()
	case KeyLocation:
		s.Location = Any()
	case KeyCompanySize:
		s.CompanySize = Any()
	}
	return s
}

// Map is the external form with every key present.
func (s Selection) Map() map[string]string {
	return map[string]string{
		KeyIndustry:    s.Industry.String(),
		KeyLocation:    s.Location.String(),
		KeyCompanySize: s.CompanySize.String(),
	}
}

// Query is the browse view state passed into Apply.
type Query struct {
	Term    string    `json:"search"`
	Filters Selection `json:"filters"`
}

// HasActiveFilters is true when a term or any constraint narrows the list.
func (q Query) HasActiveFilters() bool {
	return q.Term != "" || q.Filters.ActiveCount() > 0
}

// EmptyMessage is the wording shown when Apply returns nothing.
func (q Query) EmptyMessage() string {
	if q.HasActiveFilters() {
		return "No companies found"
	}
	return "No companies yet"
}
