package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	feeddomain "github.com/blessnhq/blessn/internal/feed/domain"
	"github.com/blessnhq/blessn/pkg/db/pagination"
)

func (s *Server) Feed(c *gin.Context) {
	var query pagination.Pagination
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.feedSvc.Feed(c.Request.Context(), &feeddomain.FeedRequest{
		Pagination: query,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
