package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/internship-finder/internal/catalog"
	"github.com/justsurfingit/internship-finder/internal/gateway"
	"github.com/justsurfingit/internship-finder/internal/services"
)

const resourcesPath = "/api/v1/resources"

type DirectoryHandler struct {
	Directory *services.DirectoryService
}

func NewDirectoryHandler(d *services.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{Directory: d}
}

func (h *DirectoryHandler) Mentors(c *gin.Context) {
	view, err := h.Directory.Mentors(c.Request.Context(), catalog.ParseConstraint(c.Query("industry")))
	if err != nil {
		fetchFailed(c, "mentors", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *DirectoryHandler) SuccessStories(c *gin.Context) {
	view, err := h.Directory.SuccessStories(c.Request.Context())
	if err != nil {
		fetchFailed(c, "success stories", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *DirectoryHandler) Resources(c *gin.Context) {
	resources, err := h.Directory.Resources(c.Request.Context())
	if err != nil {
		fetchFailed(c, "resources", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"resources": resources})
}

func (h *DirectoryHandler) Resource(c *gin.Context) {
	resource, err := h.Directory.Resource(c.Request.Context(), c.Param("id"))
	if errors.Is(err, gateway.ErrNotFound) {
		c.Redirect(http.StatusFound, resourcesPath)
		return
	}
	if err != nil {
		fetchFailed(c, "resource", err)
		return
	}
	c.JSON(http.StatusOK, resource)
}
