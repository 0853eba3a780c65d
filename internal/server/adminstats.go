package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	adminstatsdomain "github.com/blessnhq/blessn/internal/adminstats/domain"
)

func (s *Server) RegistrationStats(c *gin.Context) {
	var period adminstatsdomain.Period
	if err := c.ShouldBindQuery(&period); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	stats, err := s.statsSvc.Registrations(c.Request.Context(), period)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": stats})
}

func (s *Server) ActivityStats(c *gin.Context) {
	var period adminstatsdomain.Period
	if err := c.ShouldBindQuery(&period); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	stats, err := s.statsSvc.Activity(c.Request.Context(), period)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": stats})
}
