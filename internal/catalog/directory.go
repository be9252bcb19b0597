package catalog

import (
	"github.com/justsurfingit/internship-finder/internal/models"
)

// FilterMentors keeps mentors whose industry passes c, in input order.
func FilterMentors(mentors []models.Mentor, c Constraint) []models.Mentor {
	out := make([]models.Mentor, 0, len(mentors))
	for _, m := range mentors {
		if c.Allows(m.Industry) {
			out = append(out, m)
		}
	}
	return out
}

// MentorIndustries lists distinct non-empty industries in first-seen order.
func MentorIndustries(mentors []models.Mentor) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, m := range mentors {
		if m.Industry == "" || seen[m.Industry] {
			continue
		}
		seen[m.Industry] = true
		out = append(out, m.Industry)
	}
	return out
}

// PartitionStories splits success stories the same way Apply splits companies.
func PartitionStories(stories []models.SuccessStory) (featured, regular []models.SuccessStory) {
	featured, regular = []models.SuccessStory{}, []models.SuccessStory{}
	for _, s := range stories {
		if s.IsFeatured {
			featured = append(featured, s)
		} else {
			regular = append(regular, s)
		}
	}
	return featured, regular
}

// Marker is a company pin on the map view.
type Marker struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Industry         string  `json:"industry"`
	Location         string  `json:"location"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	OpportunityCount int     `json:"opportunity_count"`
	IsFeatured       bool    `json:"is_featured"`
}

// Mappable returns markers for companies with both coordinates set.
func Mappable(companies []models.Company) []Marker {
	out := []Marker{}
	for _, c := range companies {
		if c.Latitude == nil || c.Longitude == nil {
			continue
		}
		out = append(out, Marker{
			ID:               c.ID,
			Name:             c.Name,
			Industry:         c.Industry,
			Location:         c.Location,
			Latitude:         *c.Latitude,
			Longitude:        *c.Longitude,
			OpportunityCount: len(c.InternshipOpportunities),
			IsFeatured:       c.IsFeatured,
		})
	}
	return out
}

// Compare picks companies by id in the order requested. Unknown and
// repeated ids are dropped.
func Compare(companies []models.Company, ids []string) []models.Company {
	byID := make(map[string]models.Company, len(companies))
	for _, c := range companies {
		byID[c.ID] = c
	}
	seen := make(map[string]bool, len(ids))
	out := []models.Company{}
	for _, id := range ids {
		c, ok := byID[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, c)
	}
	return out
}

type Stats struct {
	Count   int     `json:"count"`
	Average float64 `json:"average"`
}

// ReviewStats averages the ratings; zero reviews give a zero average.
func ReviewStats(reviews []models.Review) Stats {
	s := Stats{Count: len(reviews)}
	if s.Count == 0 {
		return s
	}
	total := 0
	for _, r := range reviews {
		total += r.Rating
	}
	s.Average = float64(total) / float64(s.Count)
	return s
}
