package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/blessnhq/blessn/internal/adminstats"
	adminstatsdomain "github.com/blessnhq/blessn/internal/adminstats/domain"
	"github.com/blessnhq/blessn/internal/chat"
	chatdomain "github.com/blessnhq/blessn/internal/chat/domain"
	"github.com/blessnhq/blessn/internal/config"
	"github.com/blessnhq/blessn/internal/consumer"
	"github.com/blessnhq/blessn/internal/contributor"
	contributordomain "github.com/blessnhq/blessn/internal/contributor/domain"
	"github.com/blessnhq/blessn/internal/feed"
	feeddomain "github.com/blessnhq/blessn/internal/feed/domain"
	"github.com/blessnhq/blessn/internal/feedback"
	feedbackdomain "github.com/blessnhq/blessn/internal/feedback/domain"
	"github.com/blessnhq/blessn/internal/moderation"
	moderationdomain "github.com/blessnhq/blessn/internal/moderation/domain"
	"github.com/blessnhq/blessn/internal/notification"
	notificationdomain "github.com/blessnhq/blessn/internal/notification/domain"
	obsmetrics "github.com/blessnhq/blessn/internal/observability/metrics"
	obstracing "github.com/blessnhq/blessn/internal/observability/tracing"
	"github.com/blessnhq/blessn/internal/order"
	orderdomain "github.com/blessnhq/blessn/internal/order/domain"
	"github.com/blessnhq/blessn/internal/payment"
	paymentdomain "github.com/blessnhq/blessn/internal/payment/domain"
	"github.com/blessnhq/blessn/internal/platformfee"
	platformfeedomain "github.com/blessnhq/blessn/internal/platformfee/domain"
	"github.com/blessnhq/blessn/internal/post"
	postdomain "github.com/blessnhq/blessn/internal/post/domain"
	"github.com/blessnhq/blessn/internal/providers"
	"github.com/blessnhq/blessn/internal/reference"
	referencedomain "github.com/blessnhq/blessn/internal/reference/domain"
	"github.com/blessnhq/blessn/internal/social"
	socialdomain "github.com/blessnhq/blessn/internal/social/domain"
	"github.com/blessnhq/blessn/internal/user"
	userdomain "github.com/blessnhq/blessn/internal/user/domain"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	providers.Module,
	user.Module,
	consumer.Module,
	contributor.Module,
	reference.Module,
	moderation.Module,
	platformfee.Module,
	payment.Module,
	chat.Module,
	order.Module,
	notification.Module,
	social.Module,
	post.Module,
	feed.Module,
	feedback.Module,
	adminstats.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(log))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(log, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine          *gin.Engine
	cfg             config.Config
	db              *gorm.DB
	usersvc         userdomain.Service
	contributorSvc  contributordomain.Service
	orderSvc        orderdomain.Service
	paymentSvc      paymentdomain.Service
	chatSvc         chatdomain.Service
	postSvc         postdomain.Service
	feedSvc         feeddomain.Service
	socialSvc       socialdomain.Service
	notificationSvc notificationdomain.Service
	feedbackSvc     feedbackdomain.Service
	moderationSvc   moderationdomain.Service
	referenceSvc    referencedomain.Service
	feeSvc          platformfeedomain.Service
	statsSvc        adminstatsdomain.Service
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	Cfg             config.Config
	DB              *gorm.DB
	UserSvc         userdomain.Service
	ContributorSvc  contributordomain.Service
	OrderSvc        orderdomain.Service
	PaymentSvc      paymentdomain.Service
	ChatSvc         chatdomain.Service
	PostSvc         postdomain.Service
	FeedSvc         feeddomain.Service
	SocialSvc       socialdomain.Service
	NotificationSvc notificationdomain.Service
	FeedbackSvc     feedbackdomain.Service
	ModerationSvc   moderationdomain.Service
	ReferenceSvc    referencedomain.Service
	FeeSvc          platformfeedomain.Service
	StatsSvc        adminstatsdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		db:              p.DB,
		usersvc:         p.UserSvc,
		contributorSvc:  p.ContributorSvc,
		orderSvc:        p.OrderSvc,
		paymentSvc:      p.PaymentSvc,
		chatSvc:         p.ChatSvc,
		postSvc:         p.PostSvc,
		feedSvc:         p.FeedSvc,
		socialSvc:       p.SocialSvc,
		notificationSvc: p.NotificationSvc,
		feedbackSvc:     p.FeedbackSvc,
		moderationSvc:   p.ModerationSvc,
		referenceSvc:    p.ReferenceSvc,
		feeSvc:          p.FeeSvc,
		statsSvc:        p.StatsSvc,
	}

	svc.engine.Use(svc.Identity())
	svc.registerAPIRoutes()
	svc.registerAdminRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	// -------- Users --------
	api.POST("/users", s.RegisterUser)
	api.GET("/users/me", s.UserRequired(), s.Me)
	api.PATCH("/users/me/notification-settings", s.UserRequired(), s.UpdateNotificationSettings)
	api.PUT("/users/me/push-token", s.UserRequired(), s.SetPushToken)
	api.DELETE("/users/me", s.UserRequired(), s.DeactivateUser)

	// -------- Contributors --------
	api.POST("/contributors/apply", s.UserRequired(), s.ApplyContributor)
	api.GET("/contributors/:id", s.GetContributor)
	api.PATCH("/contributors/me", s.UserRequired(), s.UpdateContributorProfile)
	api.POST("/contributors/me/gallery", s.UserRequired(), s.AddPhotoVideo)
	api.GET("/contributors/:id/gallery", s.ListPhotoVideos)
	api.DELETE("/contributors/me/gallery/:id", s.UserRequired(), s.RemovePhotoVideo)
	api.GET("/contributors/:id/followers/count", s.FollowerCount)

	// -------- References --------
	api.GET("/categories", s.ListCategories)
	api.GET("/occasions", s.ListOccasions)

	// -------- Orders --------
	// One POST per lifecycle transition; party checks live in the service.
	api.POST("/orders", s.UserRequired(), s.PlaceOrder)
	api.GET("/orders", s.UserRequired(), s.ListOrders)
	api.GET("/orders/:id", s.UserRequired(), s.GetOrder)
	api.POST("/orders/:id/deliver", s.UserRequired(), s.MarkDelivered)
	api.POST("/orders/:id/request-redo", s.UserRequired(), s.RequestRedo)
	api.POST("/orders/:id/redeliver", s.UserRequired(), s.MarkRedone)
	api.POST("/orders/:id/request-refund", s.UserRequired(), s.RequestRefund)
	api.POST("/orders/:id/request-cancellation", s.UserRequired(), s.RequestCancellation)
	api.POST("/orders/:id/cancel", s.UserRequired(), s.MarkCancelled)
	api.POST("/orders/:id/review", s.UserRequired(), s.LeaveReview)
	api.POST("/orders/:id/archive", s.UserRequired(), s.ArchiveOrder)
	api.POST("/orders/:id/unarchive", s.UserRequired(), s.UnarchiveOrder)

	// -------- Payment methods --------
	api.GET("/payments/methods", s.UserRequired(), s.ListPaymentMethods)
	api.POST("/payments/methods", s.UserRequired(), s.AddPaymentMethod)
	api.DELETE("/payments/methods/:id", s.UserRequired(), s.RemovePaymentMethod)

	// -------- Chats --------
	api.GET("/chats", s.UserRequired(), s.MyChats)
	api.GET("/chats/:id/messages", s.UserRequired(), s.ChatMessages)
	api.POST("/chats/:id/messages", s.UserRequired(), s.PublishChatMessage)
	api.POST("/chats/:id/read", s.UserRequired(), s.MarkChatRead)

	// -------- Posts --------
	api.POST("/posts", s.UserRequired(), s.CreatePost)
	api.GET("/posts", s.ListPosts)
	api.GET("/posts/:id", s.GetPost)
	api.DELETE("/posts/:id", s.UserRequired(), s.DeletePost)
	api.POST("/posts/:id/like", s.UserRequired(), s.TogglePostLike)
	api.GET("/posts/:id/comments", s.ListComments)
	api.POST("/posts/:id/comments", s.UserRequired(), s.AddComment)
	api.DELETE("/comments/:id", s.UserRequired(), s.DeleteComment)
	api.POST("/comments/:id/like", s.UserRequired(), s.ToggleCommentLike)

	// -------- Feed --------
	// Anonymous viewers are allowed; the ranking formula degrades.
	api.GET("/feed", s.Feed)

	// -------- Social graph --------
	api.GET("/follows", s.UserRequired(), s.MyFollows)
	api.POST("/follows/:contributorId", s.UserRequired(), s.FollowContributor)
	api.DELETE("/follows/:contributorId", s.UserRequired(), s.UnfollowContributor)
	api.GET("/blocks", s.UserRequired(), s.MyBlocks)
	api.POST("/blocks/:userId", s.UserRequired(), s.BlockUser)
	api.DELETE("/blocks/:userId", s.UserRequired(), s.UnblockUser)

	// -------- Notifications --------
	api.GET("/notifications", s.UserRequired(), s.ListNotifications)
	api.POST("/notifications/:id/seen", s.UserRequired(), s.MarkNotificationSeen)
	api.POST("/notifications/seen", s.UserRequired(), s.MarkAllNotificationsSeen)

	// -------- Feedback --------
	api.POST("/feedback", s.UserRequired(), s.SubmitFeedback)
	api.GET("/feedback/mine", s.UserRequired(), s.MyFeedback)
}

func (s *Server) registerAdminRoutes() {
	admin := s.engine.Group("/admin")
	admin.Use(s.UserRequired())
	admin.Use(s.AdminRequired())

	// -------- Contributors --------
	admin.POST("/contributors/:userId/approve", s.ApproveContributor)

	// -------- Orders --------
	admin.POST("/orders/:id/refund", s.MarkRefunded)
	admin.POST("/orders/:id/flag", s.FlagOrder)

	// -------- Booking fee --------
	admin.GET("/booking-fee", s.GetBookingFee)
	admin.PUT("/booking-fee", s.SetBookingFee)

	// -------- Banned words --------
	admin.GET("/banned-words", s.ListBannedWords)
	admin.POST("/banned-words", s.AddBannedWord)
	admin.DELETE("/banned-words/:id", s.RemoveBannedWord)

	// -------- References --------
	admin.POST("/categories", s.CreateCategory)
	admin.DELETE("/categories/:id", s.DeleteCategory)
	admin.POST("/occasions", s.CreateOccasion)
	admin.DELETE("/occasions/:id", s.DeleteOccasion)

	// -------- Feedback --------
	admin.GET("/feedback", s.ListAllFeedback)
	admin.POST("/feedback/:id/respond", s.RespondToFeedback)
	admin.POST("/feedback/:id/read", s.MarkFeedbackRead)
	admin.POST("/feedback/read-all", s.MarkAllFeedbackRead)
	admin.DELETE("/feedback/:id", s.DeleteFeedback)

	// -------- Stats --------
	admin.GET("/stats/registrations", s.RegistrationStats)
	admin.GET("/stats/activity", s.ActivityStats)
}
