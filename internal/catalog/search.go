package catalog

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/justsurfingit/internship-finder/internal/models"
)

// Result is the filtered list split for display.
type Result struct {
	Featured []models.Company `json:"featured"`
	Regular  []models.Company `json:"regular"`
}

func (r Result) Len() int { return len(r.Featured) + len(r.Regular) }

// folder is not safe for concurrent use; make one per call.
type folder struct {
	caser cases.Caser
}

func newFolder() *folder {
	return &folder{caser: cases.Fold()}
}

func (f *folder) fold(s string) string {
	return f.caser.String(norm.NFC.String(s))
}

func (f *folder) contains(haystack, needle string) bool {
	return strings.Contains(f.fold(haystack), needle)
}

// Matches reports whether c passes the term and every constraint of q.
func Matches(c models.Company, q Query) bool {
	return matches(newFolder(), c, q.Filters, q.Term)
}

func matches(f *folder, c models.Company, s Selection, term string) bool {
	if !s.Industry.Allows(c.Industry) || !s.Location.Allows(c.Location) || !s.CompanySize.Allows(c.CompanySize) {
		return false
	}
	if term == "" {
		return true
	}
	needle := f.fold(term)
	for _, field := range []string{c.Name, c.Description, c.Industry, c.Location} {
		if f.contains(field, needle) {
			return true
		}
	}
	for _, o := range c.InternshipOpportunities {
		if f.contains(o.Title, needle) || f.contains(o.Department, needle) {
			return true
		}
	}
	return false
}

// Apply filters companies by q and splits the survivors into featured and
// regular, each in input order. companies is not modified.
func Apply(companies []models.Company, q Query) Result {
	f := newFolder()
	res := Result{
		Featured: []models.Company{},
		Regular:  []models.Company{},
	}
	for _, c := range companies {
		if !matches(f, c, q.Filters, q.Term) {
			continue
		}
		if c.IsFeatured {
			res.Featured = append(res.Featured, c)
		} else {
			res.Regular = append(res.Regular, c)
		}
	}
	return res
}

// Summary holds the header stats, always over the unfiltered list.
type Summary struct {
	Companies          int `json:"companies"`
	TotalOpportunities int `json:"total_opportunities"`
	DistinctLocations  int `json:"distinct_locations"`
}

func Summarize(companies []models.Company) Summary {
	locations := make(map[string]struct{})
	s := Summary{Companies: len(companies)}
	for _, c := range companies {
		s.TotalOpportunities += len(c.InternshipOpportunities)
		locations[c.Location] = struct{}{}
	}
	s.DistinctLocations = len(locations)
	return s
}
