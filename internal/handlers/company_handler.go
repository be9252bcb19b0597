package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/internship-finder/internal/dtos"
	"github.com/justsurfingit/internship-finder/internal/gateway"
	"github.com/justsurfingit/internship-finder/internal/services"
)

const companiesPath = "/api/v1/companies"

type CompanyHandler struct {
	Gateway     gateway.Gateway
	Companies   *services.CompanyService
	Submissions *services.SubmissionService
}

func NewCompanyHandler(g gateway.Gateway, companies *services.CompanyService, submissions *services.SubmissionService) *CompanyHandler {
	return &CompanyHandler{Gateway: g, Companies: companies, Submissions: submissions}
}

// Browse is GET /companies with search and filter query parameters.
func (h *CompanyHandler) Browse(c *gin.Context) {
	var q dtos.BrowseQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	view, err := h.Companies.Browse(c.Request.Context(), q.ToQuery())
	if err != nil {
		fetchFailed(c, "companies", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *CompanyHandler) Map(c *gin.Context) {
	markers, err := h.Companies.MapMarkers(c.Request.Context())
	if err != nil {
		fetchFailed(c, "companies", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"markers": markers})
}

// Compare is GET /companies/compare?ids=a,b.
func (h *CompanyHandler) Compare(c *gin.Context) {
	var ids []string
	for _, id := range strings.Split(c.Query("ids"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	companies, err := h.Companies.Compare(c.Request.Context(), ids)
	if err != nil {
		fetchFailed(c, "companies for comparison", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"companies": companies})
}

// Profile redirects to the listing when the id is unknown.
func (h *CompanyHandler) Profile(c *gin.Context) {
	view, err := h.Companies.Profile(c.Request.Context(), c.Param("id"))
	if errors.Is(err, gateway.ErrNotFound) {
		c.Redirect(http.StatusFound, companiesPath)
		return
	}
	if err != nil {
		fetchFailed(c, "company details", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// CreateReview is the one-shot review form on the profile page.
func (h *CompanyHandler) CreateReview(c *gin.Context) {
	var req dtos.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	review, err := h.Submissions.ReviewOnce(c.Request.Context(), c.Param("id"), req.ToForm())
	if err != nil {
		submissionFailed(c, h.Gateway, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}
