package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type NavLink struct {
	Label string `json:"label"`
	Page  string `json:"page"`
	// API is the endpoint backing the page, when there is one.
	API string `json:"api,omitempty"`
}

var navigation = []NavLink{
	{Label: "Home", Page: "Home", API: "/api/v1/companies"},
	{Label: "Map View", Page: "MapView", API: "/api/v1/companies/map"},
	{Label: "Resources", Page: "Resources", API: "/api/v1/resources"},
	{Label: "Saved Internships", Page: "SavedInternships", API: "/api/v1/me/saved"},
	{Label: "My Applications", Page: "MyApplications", API: "/api/v1/me/applications"},
	{Label: "My Profile", Page: "Profile", API: "/api/v1/me"},
	{Label: "Notifications", Page: "Notifications", API: "/api/v1/me/notifications"},
	{Label: "Calendar", Page: "CalendarView", API: "/api/v1/me/interviews"},
	{Label: "Interviews", Page: "InterviewScheduler", API: "/api/v1/me/interviews"},
	{Label: "Compare Companies", Page: "CompanyComparison", API: "/api/v1/companies/compare"},
	{Label: "Find a Mentor", Page: "Mentorship", API: "/api/v1/mentors"},
	{Label: "Success Stories", Page: "SuccessStories", API: "/api/v1/success-stories"},
}

// Navigation is the sidebar link list.
func Navigation(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"links": navigation})
}
