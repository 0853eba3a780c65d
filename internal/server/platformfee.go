package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func (s *Server) GetBookingFee(c *gin.Context) {
	percent, err := s.feeSvc.CurrentPercent(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"percent": percent}})
}

type setBookingFeeRequest struct {
	Percent decimal.Decimal `json:"percent"`
}

func (s *Server) SetBookingFee(c *gin.Context) {
	var req setBookingFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	fee, err := s.feeSvc.SetPercent(c.Request.Context(), req.Percent)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": fee})
}
