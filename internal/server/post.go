package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	postdomain "github.com/blessnhq/blessn/internal/post/domain"
)

func (s *Server) CreatePost(c *gin.Context) {
	var req postdomain.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	post, err := s.postSvc.Create(c.Request.Context(), &req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": post})
}

func (s *Server) GetPost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		AbortWithError(c, invalidRequestError())
		return
	}

	post, err := s.postSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": post})
}

func (s *Server) ListPosts(c *gin.Context) {
	contributorID, err := parseOptionalSnowflakeID(c.Query("contributor_id"))
	if err != nil || contributorID == nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	posts, err := s.postSvc.ListByContributor(c.Request.Context(), *contributorID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": posts})
}

func (s *Server) DeletePost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.postSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) TogglePostLike(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		AbortWithError(c, invalidRequestError())
		return
	}

	liked, err := s.postSvc.ToggleLike(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"liked": liked}})
}

type addCommentRequest struct {
	ParentID *string `json:"parent_id"`
	Text     string  `json:"text"`
}

func (s *Server) AddComment(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		AbortWithError(c, invalidRequestError())
		return
	}

	var req addCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	domainReq := postdomain.AddCommentRequest{
		PostID: postID,
		Text:   strings.TrimSpace(req.Text),
	}
	if req.ParentID != nil {
		parentID, err := parseOptionalSnowflakeID(*req.ParentID)
		if err != nil || parentID == nil {
			AbortWithError(c, invalidRequestError())
			return
		}
		domainReq.ParentID = parentID
	}

	comment, err := s.postSvc.AddComment(c.Request.Context(), &domainReq)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": comment})
}

func (s *Server) ListComments(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		AbortWithError(c, invalidRequestError())
		return
	}

	comments, err := s.postSvc.Comments(c.Request.Context(), postID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": comments})
}

func (s *Server) DeleteComment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.postSvc.DeleteComment(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) ToggleCommentLike(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		AbortWithError(c, invalidRequestError())
		return
	}

	liked, err := s.postSvc.ToggleCommentLike(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"liked": liked}})
}
