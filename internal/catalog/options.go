package catalog

var (
	industries = []string{
		"Tourism & Hospitality", "Banking & Finance", "Healthcare", "Education",
		"Government", "Retail", "Technology", "Construction", "Legal Services",
		"Real Estate", "Transportation", "Media & Communications", "Non-Profit", "Other",
	}
	locations = []string{
		"Philipsburg", "Simpson Bay", "Cole Bay", "Cay Bay", "Maho", "Oyster Pond",
		"Dawn Beach", "Point Blanche", "Dutch Quarter", "Saunders", "Other",
	}
	companySizes = []string{
		"1-10 employees", "11-50 employees", "51-200 employees", "200+ employees",
	}
)

// Options are the choices offered by the filter panel.
type Options struct {
	Industries   []string `json:"industries"`
	Locations    []string `json:"locations"`
	CompanySizes []string `json:"company_sizes"`
}

// FilterOptions returns fresh copies so callers may modify them.
func FilterOptions() Options {
	return Options{
		Industries:   append([]string(nil), industries...),
		Locations:    append([]string(nil), locations...),
		CompanySizes: append([]string(nil), companySizes...),
	}
}
