package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	userdomain "github.com/blessnhq/blessn/internal/user/domain"
)

type registerUserRequest struct {
	Name          string `json:"name"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email"`
	TermsAccepted bool   `json:"terms_accepted"`
}

func (s *Server) RegisterUser(c *gin.Context) {
	var req registerUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	user, err := s.usersvc.Register(c.Request.Context(), userdomain.RegisterUserRequest{
		Name:          strings.TrimSpace(req.Name),
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      strings.TrimSpace(req.LastName),
		Email:         strings.TrimSpace(req.Email),
		TermsAccepted: req.TermsAccepted,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": user})
}

func (s *Server) Me(c *gin.Context) {
	user, err := s.usersvc.Me(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": user})
}

type notificationSettingsRequest struct {
	Master *bool `json:"master"`
	InApp  *bool `json:"in_app"`
	Push   *bool `json:"push"`
	Email  *bool `json:"email"`
}

func (s *Server) UpdateNotificationSettings(c *gin.Context) {
	var req notificationSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	user, err := s.usersvc.UpdateNotificationSettings(c.Request.Context(), userdomain.UpdateNotificationSettingsRequest{
		Master: req.Master,
		InApp:  req.InApp,
		Push:   req.Push,
		Email:  req.Email,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": user})
}

type pushTokenRequest struct {
	RegistrationID string `json:"registration_id"`
}

func (s *Server) SetPushToken(c *gin.Context) {
	var req pushTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.usersvc.SetPushToken(c.Request.Context(), req.RegistrationID); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) DeactivateUser(c *gin.Context) {
	if err := s.usersvc.Deactivate(c.Request.Context()); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
