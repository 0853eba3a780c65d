package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	chatdomain "github.com/blessnhq/blessn/internal/chat/domain"
)

func (s *Server) MyChats(c *gin.Context) {
	resp, err := s.chatSvc.MyChats(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ChatMessages(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		AbortWithError(c, invalidRequestError())
		return
	}

	messages, err := s.chatSvc.Messages(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": messages})
}

func (s *Server) PublishChatMessage(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		AbortWithError(c, invalidRequestError())
		return
	}

	var req chatdomain.PublishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ChannelID = id

	message, err := s.chatSvc.Publish(c.Request.Context(), &req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": message})
}

func (s *Server) MarkChatRead(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.chatSvc.MarkRead(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
