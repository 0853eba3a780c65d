package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	contributordomain "github.com/blessnhq/blessn/internal/contributor/domain"
)

func (s *Server) ApplyContributor(c *gin.Context) {
	var req contributordomain.ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	contributor, err := s.contributorSvc.Apply(c.Request.Context(), &req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": contributor})
}

func (s *Server) GetContributor(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		AbortWithError(c, invalidRequestError())
		return
	}

	contributor, err := s.contributorSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": contributor})
}

func (s *Server) UpdateContributorProfile(c *gin.Context) {
	var req contributordomain.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	contributor, err := s.contributorSvc.UpdateProfile(c.Request.Context(), &req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": contributor})
}

func (s *Server) AddPhotoVideo(c *gin.Context) {
	var req contributordomain.AddPhotoVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	item, err := s.contributorSvc.AddPhotoVideo(c.Request.Context(), &req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": item})
}

func (s *Server) ListPhotoVideos(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		AbortWithError(c, invalidRequestError())
		return
	}

	items, err := s.contributorSvc.ListPhotoVideos(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (s *Server) RemovePhotoVideo(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.contributorSvc.RemovePhotoVideo(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) ApproveContributor(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.contributorSvc.Approve(c.Request.Context(), userID); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
