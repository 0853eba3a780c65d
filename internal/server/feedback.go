package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	feedbackdomain "github.com/blessnhq/blessn/internal/feedback/domain"
)

func (s *Server) SubmitFeedback(c *gin.Context) {
	var req feedbackdomain.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	feedback, err := s.feedbackSvc.Submit(c.Request.Context(), &req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": feedback})
}

func (s *Server) MyFeedback(c *gin.Context) {
	items, err := s.feedbackSvc.Mine(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (s *Server) ListAllFeedback(c *gin.Context) {
	items, err := s.feedbackSvc.ListAll(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}

type respondFeedbackRequest struct {
	Response string `json:"response"`
}

func (s *Server) RespondToFeedback(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		AbortWithError(c, invalidRequestError())
		return
	}

	var req respondFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	feedback, err := s.feedbackSvc.Respond(c.Request.Context(), id, strings.TrimSpace(req.Response))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": feedback})
}

func (s *Server) MarkFeedbackRead(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.feedbackSvc.MarkRead(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) MarkAllFeedbackRead(c *gin.Context) {
	if err := s.feedbackSvc.MarkAllRead(c.Request.Context()); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) DeleteFeedback(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.feedbackSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
