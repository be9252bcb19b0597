package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/justsurfingit/internship-finder/internal/models"
)

func TestFilterMentors(t *testing.T) {
	mentors := []models.Mentor{
		{Name: "Ana", Industry: "Technology"},
		{Name: "Ben", Industry: "Healthcare"},
		{Name: "Cy", Industry: "Technology"},
		{Name: "Dee"},
	}

	assert.Len(t, FilterMentors(mentors, Any()), 4)
	got := FilterMentors(mentors, Exactly("Technology"))
	assert.Equal(t, "Ana", got[0].Name)
	assert.Equal(t, "Cy", got[1].Name)
	assert.Len(t, got, 2)
	assert.Equal(t, []string{"Technology", "Healthcare"}, MentorIndustries(mentors))
}

func TestPartitionStories(t *testing.T) {
	featured, regular := PartitionStories([]models.SuccessStory{
		{StudentName: "A", IsFeatured: true},
		{StudentName: "B"},
		{StudentName: "C", IsFeatured: true},
	})
	assert.Len(t, featured, 2)
	assert.Equal(t, "C", featured[1].StudentName)
	assert.Len(t, regular, 1)

	featured, regular = PartitionStories(nil)
	assert.NotNil(t, featured)
	assert.NotNil(t, regular)
}

func TestMappable(t *testing.T) {
	lat, lng := 18.02, -63.05
	withCoords := company("a", "Harbour Hotel", "Tourism & Hospitality", "Philipsburg", true,
		models.Opportunity{Title: "Front Desk"})
	withCoords.Latitude, withCoords.Longitude = &lat, &lng
	latOnly := company("b", "Beach Cafe", "Retail", "Simpson Bay", false)
	latOnly.Latitude = &lat

	markers := Mappable([]models.Company{withCoords, latOnly, company("c", "Clinic", "Healthcare", "Cay Bay", false)})
	assert.Equal(t, []Marker{{
		ID: "a", Name: "Harbour Hotel", Industry: "Tourism & Hospitality", Location: "Philipsburg",
		Latitude: lat, Longitude: lng, OpportunityCount: 1, IsFeatured: true,
	}}, markers)
}

func TestCompare(t *testing.T) {
	input := sampleCompanies()
	got := Compare(input, []string{"d", "missing", "a", "d"})
	assert.Equal(t, []string{"Sunrise Bank", "Tech Solutions NV"}, names(got))
	assert.Empty(t, Compare(input, nil))
}

func TestReviewStats(t *testing.T) {
	assert.Equal(t, Stats{}, ReviewStats(nil))
	assert.Equal(t, Stats{Count: 3, Average: 4}, ReviewStats([]models.Review{
		{Rating: 5}, {Rating: 3}, {Rating: 4},
	}))
}
