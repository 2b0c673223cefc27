package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack-be/internal/middleware"
	"fintrack-be/internal/models"
	"fintrack-be/internal/service"
)

type FeedbackController struct {
	feedbackService service.FeedbackService
}

func NewFeedbackController(feedbackService service.FeedbackService) *FeedbackController {
	return &FeedbackController{feedbackService: feedbackService}
}

// AddFeedback handles POST /api/v1/feedback. The caller may be anonymous.
func (fc *FeedbackController) AddFeedback(c *gin.Context) {
	var req models.FeedbackAddDTO
	if !bindJSON(c, &req) {
		return
	}
	feedback, err := fc.feedbackService.AddFeedback(c.Request.Context(), middleware.CallerFrom(c), req)
	respond(c, http.StatusCreated, feedback, err)
}

// GetFeedbacks handles GET /api/v1/feedback
func (fc *FeedbackController) GetFeedbacks(c *gin.Context) {
	q, ok := pagination(c)
	if !ok {
		return
	}
	page, err := fc.feedbackService.GetFeedbacks(c.Request.Context(), middleware.CallerFrom(c), q)
	respond(c, http.StatusOK, page, err)
}

// GetFeedback handles GET /api/v1/feedback/:id
func (fc *FeedbackController) GetFeedback(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	feedback, err := fc.feedbackService.GetFeedback(c.Request.Context(), middleware.CallerFrom(c), id)
	respond(c, http.StatusOK, feedback, err)
}
