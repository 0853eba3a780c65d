package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTPMetrics tracks inbound request volume and latency.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewHTTPMetrics() *HTTPMetrics {
	return &HTTPMetrics{
		requests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		duration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route and method.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
}

// Metrics tracks marketplace domain events.
type Metrics struct {
	ordersPlaced    prometheus.Counter
	chargesFailed   prometheus.Counter
	refundsIssued   prometheus.Counter
	refundsFailed   prometheus.Counter
	messagesSent    prometheus.Counter
	moderationBlock prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		ordersPlaced: promauto.NewCounter(prometheus.CounterOpts{
			Name: "orders_placed_total",
			Help: "Orders successfully placed and charged.",
		}),
		chargesFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "order_charges_failed_total",
			Help: "Order placements rejected by the payment gateway.",
		}),
		refundsIssued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "payment_refunds_total",
			Help: "Payments refunded through the gateway.",
		}),
		refundsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "payment_refund_failures_total",
			Help: "Gateway refund attempts that did not succeed.",
		}),
		messagesSent: promauto.NewCounter(prometheus.CounterOpts{
			Name: "chat_messages_published_total",
			Help: "Chat messages accepted and fanned out.",
		}),
		moderationBlock: promauto.NewCounter(prometheus.CounterOpts{
			Name: "moderation_rejections_total",
			Help: "Submissions rejected by the banned-word filter.",
		}),
	}
}

func (m *Metrics) RecordOrderPlaced() {
	if m != nil {
		m.ordersPlaced.Inc()
	}
}

func (m *Metrics) RecordOrderChargeFailed() {
	if m != nil {
		m.chargesFailed.Inc()
	}
}

func (m *Metrics) RecordPaymentRefund() {
	if m != nil {
		m.refundsIssued.Inc()
	}
}

func (m *Metrics) RecordPaymentRefundFailure() {
	if m != nil {
		m.refundsFailed.Inc()
	}
}

func (m *Metrics) RecordChatMessagePublished() {
	if m != nil {
		m.messagesSent.Inc()
	}
}

func (m *Metrics) RecordModerationRejection() {
	if m != nil {
		m.moderationBlock.Inc()
	}
}

// GinMiddleware records request metrics per route.
func GinMiddleware(m *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		m.requests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}
