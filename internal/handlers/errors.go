package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/internship-finder/internal/gateway"
	"github.com/justsurfingit/internship-finder/internal/services"
	"github.com/justsurfingit/internship-finder/internal/workflow"
)

// loginRequired hands the client the login URL that returns it here.
func loginRequired(c *gin.Context, g gateway.Gateway) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"error":     "Please log in to continue.",
		"login_url": g.LoginURL(c.Request.URL.RequestURI()),
	})
}

// fetchFailed is the page banner for a listing that could not load.
func fetchFailed(c *gin.Context, what string, err error) {
	log.Printf("[API %s] ❌ load %s: %v", c.FullPath(), what, err)
	c.JSON(http.StatusBadGateway, gin.H{"error": "Could not load " + what + ". Please try again."})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
}

// submissionFailed maps everything the submission endpoints can return.
func submissionFailed(c *gin.Context, g gateway.Gateway, err error) {
	var we *workflow.Error
	switch {
	case errors.Is(err, gateway.ErrNotLoggedIn):
		loginRequired(c, g)
	case errors.As(err, &we):
		switch we.Kind {
		case workflow.KindPrecondition:
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": we.Message, "fields": we.Fields})
		case workflow.KindBusy, workflow.KindClosed, workflow.KindDone:
			c.JSON(http.StatusConflict, gin.H{"error": we.Message})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": we.Message})
		}
	case errors.Is(err, services.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "This submission is no longer open."})
	case errors.Is(err, services.ErrWrongKind):
		c.JSON(http.StatusBadRequest, gin.H{"error": "This submission does not accept that request."})
	case errors.Is(err, gateway.ErrNotFound), errors.Is(err, services.ErrOpportunityNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "That company or internship no longer exists."})
	case errors.Is(err, services.ErrLLMDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Cover letter drafts are not available right now."})
	default:
		log.Printf("[API %s] ❌ %v", c.FullPath(), err)
		c.JSON(http.StatusBadGateway, gin.H{"error": workflow.RemoteMessage})
	}
}
