package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/internship-finder/internal/dtos"
	"github.com/justsurfingit/internship-finder/internal/gateway"
	"github.com/justsurfingit/internship-finder/internal/services"
)

// SubmissionHandler drives apply and review dialogs that stay open across
// requests.
type SubmissionHandler struct {
	Gateway     gateway.Gateway
	Submissions *services.SubmissionService
}

func NewSubmissionHandler(g gateway.Gateway, s *services.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{Gateway: g, Submissions: s}
}

func (h *SubmissionHandler) Open(c *gin.Context) {
	var req dtos.OpenSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	var (
		view *services.SessionView
		err  error
	)
	if req.Kind == services.KindApplication {
		view, err = h.Submissions.OpenApplication(c.Request.Context(), req.CompanyID, req.InternshipTitle)
	} else {
		view, err = h.Submissions.OpenReview(c.Request.Context(), req.CompanyID)
	}
	if err != nil {
		submissionFailed(c, h.Gateway, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *SubmissionHandler) Get(c *gin.Context) {
	view, err := h.Submissions.View(c.Param("sid"))
	if err != nil {
		submissionFailed(c, h.Gateway, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Submit binds the body according to the session kind.
func (h *SubmissionHandler) Submit(c *gin.Context) {
	id := c.Param("sid")
	kind, err := h.Submissions.Kind(id)
	if err != nil {
		submissionFailed(c, h.Gateway, err)
		return
	}

	var record any
	switch kind {
	case services.KindApplication:
		var req dtos.ApplicationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		record, err = h.Submissions.SubmitApplication(c.Request.Context(), id, req.ToForm())
	default:
		var req dtos.ReviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		record, err = h.Submissions.SubmitReview(c.Request.Context(), id, req.ToForm())
	}
	if err != nil {
		submissionFailed(c, h.Gateway, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": record})
}

func (h *SubmissionHandler) CoverLetter(c *gin.Context) {
	letter, err := h.Submissions.DraftCoverLetter(c.Request.Context(), c.Param("sid"))
	if err != nil {
		submissionFailed(c, h.Gateway, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cover_letter": letter})
}

func (h *SubmissionHandler) Close(c *gin.Context) {
	if err := h.Submissions.Close(c.Param("sid")); err != nil {
		submissionFailed(c, h.Gateway, err)
		return
	}
	c.Status(http.StatusNoContent)
}
