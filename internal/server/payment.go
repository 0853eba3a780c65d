package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	paymentdomain "github.com/blessnhq/blessn/internal/payment/domain"
)

func (s *Server) ListPaymentMethods(c *gin.Context) {
	cards, err := s.paymentSvc.ListCards(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": cards})
}

type addPaymentMethodRequest struct {
	PaymentMethod string `json:"payment_method"`
}

func (s *Server) AddPaymentMethod(c *gin.Context) {
	var req addPaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	ref := strings.TrimSpace(req.PaymentMethod)
	if ref == "" {
		AbortWithError(c, paymentdomain.ErrInvalidPaymentMethod)
		return
	}

	card, err := s.paymentSvc.AddCard(c.Request.Context(), ref)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": card})
}

func (s *Server) RemovePaymentMethod(c *gin.Context) {
	ref := strings.TrimSpace(c.Param("id"))
	if ref == "" {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.paymentSvc.RemoveCard(c.Request.Context(), ref); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
