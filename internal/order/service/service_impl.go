package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	chatdomain "github.com/blessnhq/blessn/internal/chat/domain"
	"github.com/blessnhq/blessn/internal/clock"
	consumerdomain "github.com/blessnhq/blessn/internal/consumer/domain"
	contributordomain "github.com/blessnhq/blessn/internal/contributor/domain"
	moderationdomain "github.com/blessnhq/blessn/internal/moderation/domain"
	notificationdomain "github.com/blessnhq/blessn/internal/notification/domain"
	"github.com/blessnhq/blessn/internal/observability/metrics"
	"github.com/blessnhq/blessn/internal/order/domain"
	paymentdomain "github.com/blessnhq/blessn/internal/payment/domain"
	platformfeedomain "github.com/blessnhq/blessn/internal/platformfee/domain"
	gateway "github.com/blessnhq/blessn/internal/providers/payment"
	referencedomain "github.com/blessnhq/blessn/internal/reference/domain"
	userdomain "github.com/blessnhq/blessn/internal/user/domain"
	"github.com/blessnhq/blessn/internal/usercontext"
	"github.com/blessnhq/blessn/pkg/db/option"
	"github.com/blessnhq/blessn/pkg/db/pagination"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock

	Repo            domain.Repository
	PaymentRepo     paymentdomain.Repository
	ChatRepo        chatdomain.Repository
	ContributorRepo contributordomain.Repository
	ReferenceRepo   referencedomain.Repository

	Consumers  consumerdomain.Service
	Moderation moderationdomain.Service
	Fees       platformfeedomain.Service
	Notifier   notificationdomain.Service
	Gateway    gateway.Gateway
	Metrics    *metrics.Metrics `optional:"true"`
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock

	repo            domain.Repository
	paymentRepo     paymentdomain.Repository
	chatRepo        chatdomain.Repository
	contributorRepo contributordomain.Repository
	referenceRepo   referencedomain.Repository

	consumers  consumerdomain.Service
	moderation moderationdomain.Service
	fees       platformfeedomain.Service
	notifier   notificationdomain.Service
	gateway    gateway.Gateway
	metrics    *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:              p.DB,
		log:             p.Log.Named("order.service"),
		genID:           p.GenID,
		clock:           p.Clock,
		repo:            p.Repo,
		paymentRepo:     p.PaymentRepo,
		chatRepo:        p.ChatRepo,
		contributorRepo: p.ContributorRepo,
		referenceRepo:   p.ReferenceRepo,
		consumers:       p.Consumers,
		moderation:      p.Moderation,
		fees:            p.Fees,
		notifier:        p.Notifier,
		gateway:         p.Gateway,
		metrics:         p.Metrics,
	}
}

func (s *Service) Place(ctx context.Context, req *domain.PlaceOrderRequest) (*domain.Order, error) {
	buyerID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || buyerID == 0 {
		return nil, userdomain.ErrInvalidUser
	}

	for _, text := range []string{req.ToWhom, req.Instructions} {
		if err := s.moderation.Screen(ctx, text); err != nil {
			return nil, err
		}
	}

	turnaround, ok := contributordomain.ParseTurnaround(strings.TrimSpace(req.Turnaround))
	if !ok {
		return nil, domain.ErrInvalidTurnaround
	}

	contributor, err := s.contributorRepo.FindByID(ctx, s.db, req.ContributorID)
	if err != nil {
		return nil, err
	}
	if contributor == nil {
		return nil, contributordomain.ErrContributorNotFound
	}

	if req.OccasionID != nil {
		occasion, err := s.referenceRepo.FindOccasionByID(ctx, s.db, *req.OccasionID)
		if err != nil {
			return nil, err
		}
		if occasion == nil {
			return nil, referencedomain.ErrOccasionNotFound
		}
	}

	videoFee, ok := contributor.PriceFor(turnaround)
	if !ok {
		return nil, domain.ErrInvalidTurnaround
	}

	percent, err := s.fees.CurrentPercent(ctx)
	if err != nil {
		return nil, err
	}
	bookingFee := videoFee.Mul(percent).Div(decimal.NewFromInt(100)).Round(2)
	total := videoFee.Add(bookingFee)

	consumer, err := s.consumers.EnsureCustomer(ctx)
	if err != nil {
		return nil, err
	}

	orderID := s.genID.Generate()
	charge, err := s.gateway.Charge(ctx, gateway.ChargeRequest{
		CustomerID:      consumer.CustomerRef,
		PaymentMethodID: strings.TrimSpace(req.PaymentMethodRef),
		Amount:          total,
		Currency:        "usd",
		Description:     fmt.Sprintf("order %d", orderID),
	})
	if err != nil {
		s.metrics.RecordOrderChargeFailed()
		s.log.Warn("charge failed",
			zap.Int64("order_id", int64(orderID)),
			zap.Int64("user_id", int64(buyerID)),
			zap.Error(err),
		)
		return nil, domain.ErrChargeFailed
	}

	now := s.clock.Now()
	contributorID := contributor.ID
	order := &domain.Order{
		ID:            orderID,
		ConsumerID:    &buyerID,
		ContributorID: &contributorID,
		OccasionID:    req.OccasionID,
		ToWhom:        strings.TrimSpace(req.ToWhom),
		Instructions:  strings.TrimSpace(req.Instructions),
		Turnaround:    turnaround,
		VideoFee:      videoFee,
		BookingFee:    bookingFee,
		Total:         total,
		Status:        domain.StatusInProgress,
		PaidAt:        &now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Insert(ctx, tx, order); err != nil {
			return err
		}

		payment := &paymentdomain.Payment{
			ID:               s.genID.Generate(),
			OrderID:          orderID,
			ConsumerID:       buyerID,
			Amount:           total,
			Currency:         "usd",
			CustomerRef:      consumer.CustomerRef,
			PaymentMethodRef: strings.TrimSpace(req.PaymentMethodRef),
			ChargeRef:        charge.ChargeID,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if err := s.paymentRepo.Insert(ctx, tx, payment); err != nil {
			return err
		}

		channel := &chatdomain.ChatChannel{
			ID:            s.genID.Generate(),
			OrderID:       orderID,
			ExternalID:    fmt.Sprintf("order_%d", orderID),
			ConsumerID:    buyerID,
			ContributorID: contributor.UserID,
			CreatedAt:     now,
		}
		return s.chatRepo.InsertChannel(ctx, tx, channel)
	})
	if err != nil {
		// The charge went through but persistence failed. Release the funds
		// so the buyer is not charged for an order that does not exist.
		if _, refundErr := s.gateway.Refund(ctx, charge.ChargeID); refundErr != nil {
			s.log.Error("compensating refund failed after persistence error",
				zap.Int64("order_id", int64(orderID)),
				zap.String("charge_ref", charge.ChargeID),
				zap.Error(refundErr),
			)
		}
		return nil, err
	}

	s.metrics.RecordOrderPlaced()
	s.notify(ctx, contributor.UserID, "New order",
		fmt.Sprintf("You have a new %s order.", turnaround), order.ID)

	s.log.Info("order placed",
		zap.Int64("order_id", int64(orderID)),
		zap.Int64("consumer_id", int64(buyerID)),
		zap.Int64("contributor_id", int64(contributor.ID)),
		zap.String("total", total.String()),
	)
	return order, nil
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (*domain.Order, error) {
	order, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	if err := s.ensureParty(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *Service) List(ctx context.Context, req *domain.ListOrdersRequest) (*domain.ListOrdersResponse, error) {
	if err := s.ensureListScope(ctx, &req.Filter); err != nil {
		return nil, err
	}

	size := req.Pagination.PageSize
	if size <= 0 {
		size = 10
	}

	orders, err := s.repo.List(ctx, s.db, req.Filter,
		option.ApplyPagination(req.Pagination),
		option.WithSortBy("created_at DESC, id DESC"),
	)
	if err != nil {
		return nil, err
	}

	pageInfo := pagination.PageInfo{}
	if len(orders) > size {
		orders = orders[:size]
		pageInfo.HasMore = true

		last := orders[len(orders)-1]
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        last.ID.String(),
			CreatedAt: last.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return nil, err
		}
		pageInfo.NextPageToken = token
	}

	return &domain.ListOrdersResponse{Orders: orders, PageInfo: pageInfo}, nil
}

func (s *Service) MarkDelivered(ctx context.Context, id snowflake.ID, videoURL string) (*domain.Order, error) {
	return s.transition(ctx, id, domain.StatusDelivered, s.ensureContributor, func(order *domain.Order, now time.Time) {
		order.VideoURL = strings.TrimSpace(videoURL)
		if order.DeliveredAt == nil {
			order.DeliveredAt = &now
		}
	}, func(order *domain.Order) {
		if order.ConsumerID != nil {
			s.notify(ctx, *order.ConsumerID, "Order delivered", "Your video is ready.", order.ID)
		}
	})
}

func (s *Service) RequestRedo(ctx context.Context, id snowflake.ID) (*domain.Order, error) {
	return s.transition(ctx, id, domain.StatusRedoRequested, s.ensureConsumer, func(order *domain.Order, now time.Time) {
		order.RedoRequestedAt = &now
	}, func(order *domain.Order) {
		s.notifyContributor(ctx, order, "Redo requested", "The buyer asked for a new version.")
	})
}

func (s *Service) MarkRedone(ctx context.Context, id snowflake.ID, videoURL string) (*domain.Order, error) {
	return s.transition(ctx, id, domain.StatusRedone, s.ensureContributor, func(order *domain.Order, now time.Time) {
		if strings.TrimSpace(videoURL) != "" {
			order.VideoURL = strings.TrimSpace(videoURL)
		}
		order.RedoneAt = &now
	}, func(order *domain.Order) {
		if order.ConsumerID != nil {
			s.notify(ctx, *order.ConsumerID, "Order redone", "A new version of your video was uploaded.", order.ID)
		}
	})
}

func (s *Service) RequestRefund(ctx context.Context, id snowflake.ID) (*domain.Order, error) {
	return s.transition(ctx, id, domain.StatusRefundRequested, s.ensureConsumer, func(order *domain.Order, now time.Time) {
		order.RefundRequestedAt = &now
	}, nil)
}

func (s *Service) MarkRefunded(ctx context.Context, id snowflake.ID) (*domain.Order, error) {
	return s.refundingTransition(ctx, id, domain.StatusRefunded, func(order *domain.Order, now time.Time) {
		order.RefundedAt = &now
	}, "Order refunded", "Your payment was returned.")
}

func (s *Service) RequestCancellation(ctx context.Context, id snowflake.ID) (*domain.Order, error) {
	return s.transition(ctx, id, domain.StatusCancelRequested, s.ensureParty, func(order *domain.Order, now time.Time) {
		order.CancelRequestedAt = &now
	}, nil)
}

func (s *Service) MarkCancelled(ctx context.Context, id snowflake.ID, reason string) (*domain.Order, error) {
	return s.refundingTransition(ctx, id, domain.StatusCancelled, func(order *domain.Order, now time.Time) {
		order.CancelReason = strings.TrimSpace(reason)
		order.CancelledAt = &now
	}, "Order cancelled", "Your order was cancelled and refunded.")
}

func (s *Service) Flag(ctx context.Context, id snowflake.ID, reason string) (*domain.Order, error) {
	return s.refundingTransition(ctx, id, domain.StatusFlagged, func(order *domain.Order, now time.Time) {
		order.FlaggedReason = strings.TrimSpace(reason)
		order.FlaggedAt = &now
	}, "Order flagged", "Your order was flagged and refunded.")
}

func (s *Service) LeaveReview(ctx context.Context, req *domain.LeaveReviewRequest) (*domain.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, domain.ErrInvalidRating
	}
	if err := s.moderation.Screen(ctx, req.Comment); err != nil {
		return nil, err
	}

	var review *domain.Review
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.repo.FindByIDForUpdate(ctx, tx, req.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrOrderNotFound
		}
		if err := s.ensureConsumer(ctx, order); err != nil {
			return err
		}
		if order.Status != domain.StatusDelivered {
			return domain.ErrInvalidTransition
		}

		existing, err := s.repo.FindReviewByOrder(ctx, tx, req.OrderID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrReviewExists
		}

		var contributorID snowflake.ID
		if order.ContributorID != nil {
			contributorID = *order.ContributorID
		}
		var consumerID snowflake.ID
		if order.ConsumerID != nil {
			consumerID = *order.ConsumerID
		}

		review = &domain.Review{
			ID:            s.genID.Generate(),
			OrderID:       order.ID,
			ConsumerID:    consumerID,
			ContributorID: contributorID,
			Rating:        req.Rating,
			Comment:       strings.TrimSpace(req.Comment),
			CreatedAt:     s.clock.Now(),
		}
		if err := s.repo.InsertReview(ctx, tx, review); err != nil {
			return err
		}

		order.Reviewed = true
		order.UpdatedAt = s.clock.Now()
		return s.repo.Update(ctx, tx, order)
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}

func (s *Service) SetArchived(ctx context.Context, id snowflake.ID, archived bool) (*domain.Order, error) {
	var order *domain.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		order, err = s.repo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrOrderNotFound
		}
		if err := s.ensureParty(ctx, order); err != nil {
			return err
		}

		order.Archived = archived
		order.UpdatedAt = s.clock.Now()
		return s.repo.Update(ctx, tx, order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

type guardFunc func(ctx context.Context, order *domain.Order) error

// transition applies one state change under a row lock. mutate runs after the
// guard passes; afterCommit runs only once the transaction commits.
func (s *Service) transition(ctx context.Context, id snowflake.ID, target domain.Status, guard guardFunc, mutate func(*domain.Order, time.Time), afterCommit func(*domain.Order)) (*domain.Order, error) {
	var order *domain.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		order, err = s.repo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrOrderNotFound
		}
		if guard != nil {
			if err := guard(ctx, order); err != nil {
				return err
			}
		}
		if !order.CanTransition(target) {
			return domain.ErrInvalidTransition
		}

		now := s.clock.Now()
		order.Status = target
		if mutate != nil {
			mutate(order, now)
		}
		order.UpdatedAt = now
		return s.repo.Update(ctx, tx, order)
	})
	if err != nil {
		return nil, err
	}

	if afterCommit != nil {
		afterCommit(order)
	}
	s.log.Info("order transition",
		zap.Int64("order_id", int64(order.ID)),
		zap.String("status", string(order.Status)),
	)
	return order, nil
}

// refundingTransition handles the admin-only transitions that return money:
// every non-refunded payment is refunded through the gateway; successfully
// refunded payments stay marked even when others fail, so a retry only
// touches what is still outstanding. The status only advances when all
// payments are refunded.
func (s *Service) refundingTransition(ctx context.Context, id snowflake.ID, target domain.Status, mutate func(*domain.Order, time.Time), notifyTitle, notifyBody string) (*domain.Order, error) {
	if !usercontext.IsAdmin(ctx) {
		return nil, domain.ErrNotOrderParty
	}

	var (
		order     *domain.Order
		refundErr error
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		order, err = s.repo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrOrderNotFound
		}
		if !order.CanTransition(target) {
			return domain.ErrInvalidTransition
		}

		// Commit even on partial refund failure so the refunded flags of the
		// payments that did go through are not rolled back.
		if refundErr = s.refundPayments(ctx, tx, order); refundErr != nil {
			return nil
		}

		now := s.clock.Now()
		order.Status = target
		mutate(order, now)
		order.UpdatedAt = now
		return s.repo.Update(ctx, tx, order)
	})
	if err != nil {
		return nil, err
	}
	if refundErr != nil {
		return nil, refundErr
	}

	if order.ConsumerID != nil {
		s.notify(ctx, *order.ConsumerID, notifyTitle, notifyBody, order.ID)
	}
	s.log.Info("order transition",
		zap.Int64("order_id", int64(order.ID)),
		zap.String("status", string(order.Status)),
	)
	return order, nil
}

func (s *Service) refundPayments(ctx context.Context, tx *gorm.DB, order *domain.Order) error {
	payments, err := s.paymentRepo.FindByOrder(ctx, tx, order.ID)
	if err != nil {
		return err
	}

	failed := false
	for i := range payments {
		p := &payments[i]
		if p.Refunded {
			continue
		}

		if _, err := s.gateway.Refund(ctx, p.ChargeRef); err != nil {
			failed = true
			s.metrics.RecordPaymentRefundFailure()
			s.log.Warn("payment refund failed",
				zap.Int64("order_id", int64(order.ID)),
				zap.Int64("payment_id", int64(p.ID)),
				zap.Error(err),
			)
			continue
		}

		now := s.clock.Now()
		p.Refunded = true
		p.RefundedAt = &now
		p.UpdatedAt = now
		if err := s.paymentRepo.Update(ctx, tx, p); err != nil {
			return err
		}
		s.metrics.RecordPaymentRefund()
	}

	if failed {
		return domain.ErrRefundIncomplete
	}
	return nil
}

func (s *Service) ensureParty(ctx context.Context, order *domain.Order) error {
	if usercontext.IsAdmin(ctx) {
		return nil
	}
	if s.ensureConsumer(ctx, order) == nil {
		return nil
	}
	return s.ensureContributor(ctx, order)
}

func (s *Service) ensureConsumer(ctx context.Context, order *domain.Order) error {
	if usercontext.IsAdmin(ctx) {
		return nil
	}
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || order.ConsumerID == nil || *order.ConsumerID != userID {
		return domain.ErrNotOrderParty
	}
	return nil
}

func (s *Service) ensureContributor(ctx context.Context, order *domain.Order) error {
	if usercontext.IsAdmin(ctx) {
		return nil
	}
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || order.ContributorID == nil {
		return domain.ErrNotOrderParty
	}

	contributor, err := s.contributorRepo.FindByID(ctx, s.db, *order.ContributorID)
	if err != nil {
		return err
	}
	if contributor == nil || contributor.UserID != userID {
		return domain.ErrNotOrderParty
	}
	return nil
}

// ensureListScope pins non-admin listings to the caller's own orders.
func (s *Service) ensureListScope(ctx context.Context, filter *domain.ListFilter) error {
	if usercontext.IsAdmin(ctx) {
		return nil
	}

	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return userdomain.ErrInvalidUser
	}

	if filter.ContributorID != nil {
		contributor, err := s.contributorRepo.FindByID(ctx, s.db, *filter.ContributorID)
		if err != nil {
			return err
		}
		if contributor == nil || contributor.UserID != userID {
			return domain.ErrNotOrderParty
		}
		return nil
	}

	filter.ConsumerID = &userID
	return nil
}

func (s *Service) notifyContributor(ctx context.Context, order *domain.Order, title, body string) {
	if order.ContributorID == nil {
		return
	}
	contributor, err := s.contributorRepo.FindByID(ctx, s.db, *order.ContributorID)
	if err != nil || contributor == nil {
		return
	}
	s.notify(ctx, contributor.UserID, title, body, order.ID)
}

func (s *Service) notify(ctx context.Context, userID snowflake.ID, title, body string, orderID snowflake.ID) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(ctx, userID, title, body, map[string]string{
		"order_id": orderID.String(),
	})
}
