package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) FollowContributor(c *gin.Context) {
	contributorID, ok := pathID(c, "contributorId")
	if !ok {
		AbortWithError(c, invalidRequestError())
		return
	}

	follow, err := s.socialSvc.Follow(c.Request.Context(), contributorID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": follow})
}

func (s *Server) UnfollowContributor(c *gin.Context) {
	contributorID, ok := pathID(c, "contributorId")
	if !ok {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.socialSvc.Unfollow(c.Request.Context(), contributorID); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) MyFollows(c *gin.Context) {
	follows, err := s.socialSvc.MyFollows(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": follows})
}

func (s *Server) FollowerCount(c *gin.Context) {
	contributorID, ok := pathID(c, "id")
	if !ok {
		AbortWithError(c, invalidRequestError())
		return
	}

	count, err := s.socialSvc.FollowerCount(c.Request.Context(), contributorID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"count": count}})
}

func (s *Server) BlockUser(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		AbortWithError(c, invalidRequestError())
		return
	}

	block, err := s.socialSvc.Block(c.Request.Context(), userID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": block})
}

func (s *Server) UnblockUser(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.socialSvc.Unblock(c.Request.Context(), userID); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) MyBlocks(c *gin.Context) {
	blocks, err := s.socialSvc.MyBlocks(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": blocks})
}
