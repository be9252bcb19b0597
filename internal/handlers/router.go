package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/internship-finder/internal/auth"
	"github.com/justsurfingit/internship-finder/internal/gateway"
	"github.com/justsurfingit/internship-finder/internal/services"
)

// Services is everything the routes call into.
type Services struct {
	Gateway     gateway.Gateway
	Companies   *services.CompanyService
	Directory   *services.DirectoryService
	Profile     *services.ProfileService
	Submissions *services.SubmissionService
}

// CORS allows the listed origins; "*" allows any.
func CORS(origins []string) gin.HandlerFunc {
	config := cors.DefaultConfig()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = origins
	}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	return cors.New(config)
}

// Register mounts the API on r.
func Register(r gin.IRouter, s Services) {
	companies := NewCompanyHandler(s.Gateway, s.Companies, s.Submissions)
	submissions := NewSubmissionHandler(s.Gateway, s.Submissions)
	directory := NewDirectoryHandler(s.Directory)
	profile := NewProfileHandler(s.Gateway, s.Profile)

	api := r.Group("/api/v1", auth.BearerToken())
	{
		api.GET("/health", HealthCheck)
		api.GET("/navigation", Navigation)

		api.GET("/companies", companies.Browse)
		api.GET("/companies/map", companies.Map)
		api.GET("/companies/compare", companies.Compare)
		api.GET("/companies/:id", companies.Profile)
		api.POST("/companies/:id/reviews", companies.CreateReview)

		api.POST("/submissions", submissions.Open)
		api.GET("/submissions/:sid", submissions.Get)
		api.POST("/submissions/:sid/submit", submissions.Submit)
		api.POST("/submissions/:sid/cover-letter", submissions.CoverLetter)
		api.DELETE("/submissions/:sid", submissions.Close)

		api.GET("/mentors", directory.Mentors)
		api.GET("/success-stories", directory.SuccessStories)
		api.GET("/resources", directory.Resources)
		api.GET("/resources/:id", directory.Resource)

		api.GET("/me", profile.Me)
		api.GET("/me/applications", profile.Applications)
		api.GET("/me/notifications", profile.Notifications)
		api.GET("/me/interviews", profile.Interviews)
		api.GET("/me/saved", profile.Saved)
		api.PUT("/me/saved/:id", profile.SaveCompany)
		api.DELETE("/me/saved/:id", profile.UnsaveCompany)
	}
}

// NewServices wires the services over one gateway.
func NewServices(g gateway.Gateway, submissions *services.SubmissionService) Services {
	return Services{
		Gateway:     g,
		Companies:   services.NewCompanyService(g),
		Directory:   services.NewDirectoryService(g),
		Profile:     services.NewProfileService(g),
		Submissions: submissions,
	}
}
