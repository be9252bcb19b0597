package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConstraint(t *testing.T) {
	tests := []struct {
		in   string
		want Constraint
	}{
		{in: "", want: Any()},
		{in: "all", want: Any()},
		{in: "  ", want: Any()},
		{in: "Retail", want: Exactly("Retail")},
		{in: "All", want: Exactly("All")},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseConstraint(tt.in))
		})
	}
}

func TestSelectionAbsentKeysAreUnconstrained(t *testing.T) {
	s := ParseSelection(map[string]string{KeyIndustry: "Retail", "colour": "blue"})

	assert.Equal(t, Exactly("Retail"), s.Industry)
	assert.False(t, s.Location.IsSet())
	assert.False(t, s.CompanySize.IsSet())
	assert.Equal(t, 1, s.ActiveCount())
	assert.Equal(t, map[string]string{
		KeyIndustry: "Retail", KeyLocation: "all", KeyCompanySize: "all",
	}, s.Map())
}

func TestSelectionClear(t *testing.T) {
	s := Selection{Industry: Exactly("Retail"), Location: Exactly("Maho")}
	cleared := s.Clear(KeyLocation)

	assert.Equal(t, 1, cleared.ActiveCount())
	assert.Equal(t, 2, s.ActiveCount(), "Clear returns a copy")
	assert.Equal(t, cleared, cleared.Clear("unknown"))
}

func TestQueryEmptyMessage(t *testing.T) {
	assert.Equal(t, "No companies yet", Query{}.EmptyMessage())
	assert.Equal(t, "No companies found", Query{Term: "x"}.EmptyMessage())
	assert.Equal(t, "No companies found", Query{Filters: Selection{Industry: Exactly("Retail")}}.EmptyMessage())
}

func TestSelectionJSON(t *testing.T) {
	b, err := json.Marshal(Selection{Industry: Exactly("Retail")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"industry":"Retail","location":"all","company_size":"all"}`, string(b))

	var s Selection
	require.NoError(t, json.Unmarshal([]byte(`{"industry":"all","location":"Maho"}`), &s))
	assert.Equal(t, Selection{Location: Exactly("Maho")}, s)
}

func TestFilterOptionsAreCopies(t *testing.T) {
	a := FilterOptions()
	a.Industries[0] = "changed"
	assert.Equal(t, "Tourism & Hospitality", FilterOptions().Industries[0])
	assert.Len(t, FilterOptions().CompanySizes, 4)
}
