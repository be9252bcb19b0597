package dtos

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/justsurfingit/internship-finder/internal/catalog"
	"github.com/justsurfingit/internship-finder/internal/services"
)

func TestBrowseQueryToQuery(t *testing.T) {
	q := BrowseQuery{Search: "bank", Industry: "all", Location: "Philipsburg"}.ToQuery()

	assert.Equal(t, "bank", q.Term)
	assert.Equal(t, catalog.Selection{Location: catalog.Exactly("Philipsburg")}, q.Filters)
}

func TestReviewRequestToForm(t *testing.T) {
	got := ReviewRequest{Rating: 4, Title: "t", Comment: "c"}.ToForm()
	assert.Equal(t, services.ReviewForm{Rating: 4, Title: "t", Comment: "c"}, got)
}
