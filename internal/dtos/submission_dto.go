package dtos

import (
	"github.com/justsurfingit/internship-finder/internal/catalog"
	"github.com/justsurfingit/internship-finder/internal/services"
)

// BrowseQuery is the home page query string.
type BrowseQuery struct {
	Search      string `form:"search"`
	Industry    string `form:"industry"`
	Location    string `form:"location"`
	CompanySize string `form:"company_size"`
}

func (q BrowseQuery) ToQuery() catalog.Query {
	return catalog.Query{
		Term: q.Search,
		Filters: catalog.ParseSelection(map[string]string{
			catalog.KeyIndustry:    q.Industry,
			catalog.KeyLocation:    q.Location,
			catalog.KeyCompanySize: q.CompanySize,
		}),
	}
}

type OpenSubmissionRequest struct {
	Kind            string `json:"kind" binding:"required,oneof=application review"`
	CompanyID       string `json:"company_id" binding:"required"`
	InternshipTitle string `json:"internship_title" binding:"required_if=Kind application"`
}

// ApplicationRequest is the apply dialog body.
type ApplicationRequest struct {
	CoverLetter string `json:"cover_letter" binding:"max=10000"`
}

func (r ApplicationRequest) ToForm() services.ApplicationForm {
	return services.ApplicationForm{CoverLetter: r.CoverLetter}
}

// ReviewRequest is the review dialog body. Required fields are checked by
// the submission workflow so the error can name them.
type ReviewRequest struct {
	Rating             int    `json:"rating"`
	Title              string `json:"title" binding:"max=200"`
	Comment            string `json:"comment" binding:"max=5000"`
	InternshipPosition string `json:"internship_position" binding:"max=200"`
}

func (r ReviewRequest) ToForm() services.ReviewForm {
	return services.ReviewForm{
		Rating:             r.Rating,
		Title:              r.Title,
		Comment:            r.Comment,
		InternshipPosition: r.InternshipPosition,
	}
}
