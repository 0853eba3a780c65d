package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) ListNotifications(c *gin.Context) {
	notifications, err := s.notificationSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": notifications})
}

func (s *Server) MarkNotificationSeen(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.notificationSvc.MarkSeen(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) MarkAllNotificationsSeen(c *gin.Context) {
	if err := s.notificationSvc.MarkAllSeen(c.Request.Context()); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
