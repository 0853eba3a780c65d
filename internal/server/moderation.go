package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func (s *Server) ListBannedWords(c *gin.Context) {
	words, err := s.moderationSvc.ListWords(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": words})
}

type addBannedWordRequest struct {
	Word string `json:"word"`
}

func (s *Server) AddBannedWord(c *gin.Context) {
	var req addBannedWordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	word, err := s.moderationSvc.AddWord(c.Request.Context(), strings.TrimSpace(req.Word))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": word})
}

func (s *Server) RemoveBannedWord(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.moderationSvc.RemoveWord(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
