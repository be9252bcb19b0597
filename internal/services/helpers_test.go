package services

import (
	"time"

	"github.com/justsurfingit/internship-finder/internal/gateway"
	"github.com/justsurfingit/internship-finder/internal/gateway/gatewaytest"
	"github.com/justsurfingit/internship-finder/internal/models"
)

func ptr[T any](v T) *T { return &v }

func testCompany(id, name, industry, location string, featured bool, opps ...models.Opportunity) models.Company {
	c := models.Company{
		Name:                    name,
		Industry:                industry,
		Location:                location,
		CompanySize:             "11-50 employees",
		IsFeatured:              featured,
		InternshipOpportunities: opps,
	}
	c.ID = id
	return c
}

func seededFake() *gatewaytest.Fake {
	fake := gatewaytest.New()
	fake.Seed(gateway.EntityCompany,
		testCompany("c1", "Sunrise Bank", "Banking & Finance", "Philipsburg", true,
			models.Opportunity{Title: "Risk Analyst Intern", Department: "Risk"}),
		testCompany("c2", "Beach Cafe", "Retail", "Simpson Bay", false,
			models.Opportunity{Title: "Social Media Intern", Department: "Marketing"},
			models.Opportunity{Title: "Barista Intern", Department: "Operations"}),
	)
	return fake
}

func studentWithResume() *models.User {
	u := &models.User{
		Email:     "student@example.com",
		FullName:  ptr("Sam Student"),
		ResumeURL: ptr("https://files.example.com/cv.pdf"),
	}
	u.ID = "u1"
	return u
}

func at(day int) time.Time {
	return time.Date(2025, 1, day, 0, 0, 0, 0, time.UTC)
}
