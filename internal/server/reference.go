package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func (s *Server) ListCategories(c *gin.Context) {
	categories, err := s.referenceSvc.ListCategories(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": categories})
}

func (s *Server) ListOccasions(c *gin.Context) {
	occasions, err := s.referenceSvc.ListOccasions(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": occasions})
}

type createCategoryRequest struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

func (s *Server) CreateCategory(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	category, err := s.referenceSvc.CreateCategory(c.Request.Context(), strings.TrimSpace(req.Name), strings.TrimSpace(req.Icon))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": category})
}

func (s *Server) DeleteCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.referenceSvc.DeleteCategory(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type createOccasionRequest struct {
	Name string `json:"name"`
}

func (s *Server) CreateOccasion(c *gin.Context) {
	var req createOccasionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	occasion, err := s.referenceSvc.CreateOccasion(c.Request.Context(), strings.TrimSpace(req.Name))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": occasion})
}

func (s *Server) DeleteOccasion(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.referenceSvc.DeleteOccasion(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
