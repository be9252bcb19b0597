package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/internship-finder/internal/gateway"
	"github.com/justsurfingit/internship-finder/internal/models"
	"github.com/justsurfingit/internship-finder/internal/services"
)

type ProfileHandler struct {
	Gateway gateway.Gateway
	Profile *services.ProfileService
}

func NewProfileHandler(g gateway.Gateway, p *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{Gateway: g, Profile: p}
}

// respond writes data under key, or the login prompt, or a fetch banner.
func (h *ProfileHandler) respond(c *gin.Context, what, key string, data any, err error) {
	switch {
	case errors.Is(err, gateway.ErrNotLoggedIn):
		loginRequired(c, h.Gateway)
	case err != nil:
		fetchFailed(c, what, err)
	default:
		c.JSON(http.StatusOK, gin.H{key: data})
	}
}

func (h *ProfileHandler) Me(c *gin.Context) {
	user, err := h.Profile.Me(c.Request.Context())
	h.respond(c, "your profile", "user", user, err)
}

func (h *ProfileHandler) Applications(c *gin.Context) {
	apps, err := h.Profile.Applications(c.Request.Context())
	h.respond(c, "your applications", "applications", apps, err)
}

func (h *ProfileHandler) Notifications(c *gin.Context) {
	notes, err := h.Profile.Notifications(c.Request.Context())
	h.respond(c, "notifications", "notifications", notes, err)
}

func (h *ProfileHandler) Interviews(c *gin.Context) {
	interviews, err := h.Profile.Interviews(c.Request.Context())
	h.respond(c, "interviews", "interviews", interviews, err)
}

func (h *ProfileHandler) Saved(c *gin.Context) {
	companies, err := h.Profile.SavedCompanies(c.Request.Context())
	h.respond(c, "saved internships", "companies", companies, err)
}

func (h *ProfileHandler) SaveCompany(c *gin.Context) {
	user, err := h.Profile.SaveCompany(c.Request.Context(), c.Param("id"))
	h.saved(c, user, err)
}

func (h *ProfileHandler) UnsaveCompany(c *gin.Context) {
	user, err := h.Profile.UnsaveCompany(c.Request.Context(), c.Param("id"))
	h.saved(c, user, err)
}

func (h *ProfileHandler) saved(c *gin.Context, user *models.User, err error) {
	switch {
	case errors.Is(err, gateway.ErrNotLoggedIn):
		loginRequired(c, h.Gateway)
	case errors.Is(err, gateway.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "That company no longer exists."})
	case err != nil:
		log.Printf("[API %s] ❌ %v", c.FullPath(), err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Could not update your saved companies. Please try again."})
	default:
		c.JSON(http.StatusOK, gin.H{"user": user, "saved_companies": user.SavedCompanies})
	}
}
