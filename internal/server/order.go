package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"

	orderdomain "github.com/blessnhq/blessn/internal/order/domain"
	"github.com/blessnhq/blessn/pkg/db/pagination"
)

func (s *Server) PlaceOrder(c *gin.Context) {
	var req orderdomain.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	order, err := s.orderSvc.Place(c.Request.Context(), &req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": order})
}

func (s *Server) GetOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		AbortWithError(c, invalidRequestError())
		return
	}

	order, err := s.orderSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": order})
}

func (s *Server) ListOrders(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Status        string `form:"status"`
		Archived      string `form:"archived"`
		ConsumerID    string `form:"consumer_id"`
		ContributorID string `form:"contributor_id"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var filter orderdomain.ListFilter
	if trimmed := strings.TrimSpace(query.Status); trimmed != "" {
		status, ok := orderdomain.ParseStatus(trimmed)
		if !ok {
			AbortWithError(c, invalidRequestError())
			return
		}
		filter.Status = &status
	}

	archived, err := parseOptionalBool(query.Archived)
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	filter.Archived = archived

	if filter.ConsumerID, err = parseOptionalSnowflakeID(query.ConsumerID); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if filter.ContributorID, err = parseOptionalSnowflakeID(query.ContributorID); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.orderSvc.List(c.Request.Context(), &orderdomain.ListOrdersRequest{
		Filter:     filter,
		Pagination: query.Pagination,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type deliverOrderRequest struct {
	VideoURL string `json:"video_url"`
}

func (s *Server) MarkDelivered(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		AbortWithError(c, invalidRequestError())
		return
	}

	var req deliverOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	order, err := s.orderSvc.MarkDelivered(c.Request.Context(), id, strings.TrimSpace(req.VideoURL))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": order})
}

func (s *Server) RequestRedo(c *gin.Context) {
	s.transition(c, s.orderSvc.RequestRedo)
}

func (s *Server) MarkRedone(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		AbortWithError(c, invalidRequestError())
		return
	}

	var req deliverOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	order, err := s.orderSvc.MarkRedone(c.Request.Context(), id, strings.TrimSpace(req.VideoURL))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": order})
}

func (s *Server) RequestRefund(c *gin.Context) {
	s.transition(c, s.orderSvc.RequestRefund)
}

func (s *Server) MarkRefunded(c *gin.Context) {
	s.transition(c, s.orderSvc.MarkRefunded)
}

func (s *Server) RequestCancellation(c *gin.Context) {
	s.transition(c, s.orderSvc.RequestCancellation)
}

type cancelOrderRequest struct {
	Reason string `json:"reason"`
}

func (s *Server) MarkCancelled(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		AbortWithError(c, invalidRequestError())
		return
	}

	var req cancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	order, err := s.orderSvc.MarkCancelled(c.Request.Context(), id, strings.TrimSpace(req.Reason))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": order})
}

type flagOrderRequest struct {
	Reason string `json:"reason"`
}

func (s *Server) FlagOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		AbortWithError(c, invalidRequestError())
		return
	}

	var req flagOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	order, err := s.orderSvc.Flag(c.Request.Context(), id, strings.TrimSpace(req.Reason))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": order})
}

type leaveReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (s *Server) LeaveReview(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		AbortWithError(c, invalidRequestError())
		return
	}

	var req leaveReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	review, err := s.orderSvc.LeaveReview(c.Request.Context(), &orderdomain.LeaveReviewRequest{
		OrderID: id,
		Rating:  req.Rating,
		Comment: strings.TrimSpace(req.Comment),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": review})
}

func (s *Server) ArchiveOrder(c *gin.Context) {
	s.setArchived(c, true)
}

func (s *Server) UnarchiveOrder(c *gin.Context) {
	s.setArchived(c, false)
}

func (s *Server) setArchived(c *gin.Context, archived bool) {
	id, ok := pathID(c, "id")
	if !ok {
		AbortWithError(c, invalidRequestError())
		return
	}

	order, err := s.orderSvc.SetArchived(c.Request.Context(), id, archived)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": order})
}

func (s *Server) transition(c *gin.Context, fn func(ctx context.Context, id snowflake.ID) (*orderdomain.Order, error)) {
	id, ok := pathID(c, "id")
	if !ok {
		AbortWithError(c, invalidRequestError())
		return
	}

	order, err := fn(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": order})
}
