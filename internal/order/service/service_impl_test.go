package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	chatrepository "github.com/blessnhq/blessn/internal/chat/repository"
	"github.com/blessnhq/blessn/internal/clock"
	consumerdomain "github.com/blessnhq/blessn/internal/consumer/domain"
	contributordomain "github.com/blessnhq/blessn/internal/contributor/domain"
	contributorrepository "github.com/blessnhq/blessn/internal/contributor/repository"
	"github.com/blessnhq/blessn/internal/migration"
	moderationdomain "github.com/blessnhq/blessn/internal/moderation/domain"
	notificationdomain "github.com/blessnhq/blessn/internal/notification/domain"
	"github.com/blessnhq/blessn/internal/order/domain"
	orderrepository "github.com/blessnhq/blessn/internal/order/repository"
	paymentdomain "github.com/blessnhq/blessn/internal/payment/domain"
	paymentrepository "github.com/blessnhq/blessn/internal/payment/repository"
	platformfeedomain "github.com/blessnhq/blessn/internal/platformfee/domain"
	gateway "github.com/blessnhq/blessn/internal/providers/payment"
	referencerepository "github.com/blessnhq/blessn/internal/reference/repository"
	userdomain "github.com/blessnhq/blessn/internal/user/domain"
	"github.com/blessnhq/blessn/internal/usercontext"
)

type gatewayStub struct {
	mu          sync.Mutex
	chargeErr   error
	refundFails map[string]bool
	charges     int
	refunds     []string
}

func (g *gatewayStub) CreateCustomer(ctx context.Context, email, name string) (string, error) {
	return "cus_test", nil
}

func (g *gatewayStub) AttachPaymentMethod(ctx context.Context, customerID, paymentMethodID string) (*gateway.PaymentMethod, error) {
	return &gateway.PaymentMethod{ID: paymentMethodID}, nil
}

func (g *gatewayStub) ListPaymentMethods(ctx context.Context, customerID string) ([]gateway.PaymentMethod, error) {
	return nil, nil
}

func (g *gatewayStub) DetachPaymentMethod(ctx context.Context, paymentMethodID string) error {
	return nil
}

func (g *gatewayStub) Charge(ctx context.Context, req gateway.ChargeRequest) (*gateway.ChargeResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.charges++
	if g.chargeErr != nil {
		return nil, g.chargeErr
	}
	return &gateway.ChargeResult{ChargeID: fmt.Sprintf("ch_%d", g.charges), Status: "succeeded"}, nil
}

func (g *gatewayStub) Refund(ctx context.Context, chargeID string) (*gateway.RefundResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.refunds = append(g.refunds, chargeID)
	if g.refundFails[chargeID] {
		return nil, gateway.ErrGatewayUnavailable
	}
	return &gateway.RefundResult{RefundID: "re_" + chargeID, Status: "succeeded"}, nil
}

func (g *gatewayStub) ChargeCalls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.charges
}

func (g *gatewayStub) RefundCalls() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.refunds...)
}

type moderationStub struct {
	screenErr error
}

func (m *moderationStub) AddWord(ctx context.Context, word string) (*moderationdomain.BannedWord, error) {
	return nil, nil
}

func (m *moderationStub) ListWords(ctx context.Context) ([]moderationdomain.BannedWord, error) {
	return nil, nil
}

func (m *moderationStub) RemoveWord(ctx context.Context, id snowflake.ID) error {
	return nil
}

func (m *moderationStub) Screen(ctx context.Context, text string) error {
	return m.screenErr
}

type feesStub struct {
	percent decimal.Decimal
}

func (f *feesStub) CurrentPercent(ctx context.Context) (decimal.Decimal, error) {
	return f.percent, nil
}

func (f *feesStub) SetPercent(ctx context.Context, percent decimal.Decimal) (*platformfeedomain.BookingFee, error) {
	return nil, nil
}

type consumersStub struct {
	consumer consumerdomain.Consumer
}

func (c *consumersStub) EnsureCustomer(ctx context.Context) (*consumerdomain.Consumer, error) {
	buyer, _ := usercontext.UserIDFromContext(ctx)
	out := c.consumer
	out.UserID = buyer
	return &out, nil
}

type notifierStub struct {
	mu     sync.Mutex
	titles []string
}

func (n *notifierStub) Notify(ctx context.Context, userID snowflake.ID, title, body string, metadata map[string]string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.titles = append(n.titles, title)
}

func (n *notifierStub) List(ctx context.Context) ([]notificationdomain.Notification, error) {
	return nil, nil
}

func (n *notifierStub) MarkSeen(ctx context.Context, id snowflake.ID) error { return nil }

func (n *notifierStub) MarkAllSeen(ctx context.Context) error { return nil }

type orderFixture struct {
	svc           domain.Service
	db            *gorm.DB
	gw            *gatewayStub
	notifier      *notifierStub
	clock         *clock.FakeClock
	buyerID       snowflake.ID
	sellerUserID  snowflake.ID
	contributorID snowflake.ID
}

func setupOrderService(t *testing.T) *orderFixture {
	t.Helper()

	node := mustNode(t)
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, migration.AutoMigrate(db))

	fake := clock.NewFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	buyer := userdomain.User{ID: node.Generate(), Name: "Buyer", Email: "buyer@example.com", Active: true}
	seller := userdomain.User{ID: node.Generate(), Name: "Seller", Email: "seller@example.com", Active: true, ApprovedContributor: true}
	require.NoError(t, db.Create(&buyer).Error)
	require.NoError(t, db.Create(&seller).Error)

	contributor := contributordomain.Contributor{
		ID:                   node.Generate(),
		UserID:               seller.ID,
		NormalDeliveryPrice:  decimal.NewFromInt(40),
		FastDeliveryPrice:    decimal.NewFromInt(60),
		SameDayDeliveryPrice: decimal.NewFromInt(100),
	}
	require.NoError(t, db.Create(&contributor).Error)

	gw := &gatewayStub{refundFails: map[string]bool{}}
	notifier := &notifierStub{}

	svc := New(Params{
		DB:              db,
		Log:             zap.NewNop(),
		GenID:           node,
		Clock:           fake,
		Repo:            orderrepository.Provide(),
		PaymentRepo:     paymentrepository.Provide(),
		ChatRepo:        chatrepository.Provide(),
		ContributorRepo: contributorrepository.Provide(),
		ReferenceRepo:   referencerepository.Provide(),
		Consumers:       &consumersStub{consumer: consumerdomain.Consumer{ID: node.Generate(), CustomerRef: "cus_test"}},
		Moderation:      &moderationStub{},
		Fees:            &feesStub{percent: decimal.NewFromInt(25)},
		Notifier:        notifier,
		Gateway:         gw,
	})

	return &orderFixture{
		svc:           svc,
		db:            db,
		gw:            gw,
		notifier:      notifier,
		clock:         fake,
		buyerID:       buyer.ID,
		sellerUserID:  seller.ID,
		contributorID: contributor.ID,
	}
}

func (f *orderFixture) buyerCtx() context.Context {
	return usercontext.WithUserID(context.Background(), f.buyerID)
}

func (f *orderFixture) sellerCtx() context.Context {
	return usercontext.WithUserID(context.Background(), f.sellerUserID)
}

func (f *orderFixture) adminCtx() context.Context {
	return usercontext.WithAdmin(usercontext.WithUserID(context.Background(), f.buyerID))
}

func (f *orderFixture) place(t *testing.T) *domain.Order {
	t.Helper()
	order, err := f.svc.Place(f.buyerCtx(), &domain.PlaceOrderRequest{
		ContributorID:    f.contributorID,
		ToWhom:           "Alex",
		Instructions:     "Happy birthday",
		Turnaround:       "fast",
		PaymentMethodRef: "pm_test",
	})
	require.NoError(t, err)
	return order
}

func mustNode(t *testing.T) *snowflake.Node {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return node
}

func TestPlaceOrderFeeSnapshot(t *testing.T) {
	f := setupOrderService(t)

	order := f.place(t)

	assert.Equal(t, domain.StatusInProgress, order.Status)
	assert.True(t, order.VideoFee.Equal(decimal.NewFromInt(60)), "video fee %s", order.VideoFee)
	assert.True(t, order.BookingFee.Equal(decimal.NewFromInt(15)), "booking fee %s", order.BookingFee)
	assert.True(t, order.Total.Equal(decimal.NewFromInt(75)), "total %s", order.Total)
	assert.NotNil(t, order.PaidAt)

	var payments []paymentdomain.Payment
	require.NoError(t, f.db.Where("order_id = ?", order.ID).Find(&payments).Error)
	require.Len(t, payments, 1)
	assert.True(t, payments[0].Amount.Equal(order.Total))

	var channelCount int64
	require.NoError(t, f.db.Table("chat_channels").Where("order_id = ?", order.ID).Count(&channelCount).Error)
	assert.EqualValues(t, 1, channelCount)

	assert.Contains(t, f.notifier.titles, "New order")
}

func TestPlaceOrderInvalidTurnaround(t *testing.T) {
	f := setupOrderService(t)

	_, err := f.svc.Place(f.buyerCtx(), &domain.PlaceOrderRequest{
		ContributorID:    f.contributorID,
		Turnaround:       "overnight",
		PaymentMethodRef: "pm_test",
	})
	require.ErrorIs(t, err, domain.ErrInvalidTurnaround)
	assert.Zero(t, f.gw.ChargeCalls(), "gateway must not be reached for invalid input")
}

func TestPlaceOrderChargeDeclinedLeavesNothing(t *testing.T) {
	f := setupOrderService(t)
	f.gw.chargeErr = gateway.ErrGatewayDeclined

	_, err := f.svc.Place(f.buyerCtx(), &domain.PlaceOrderRequest{
		ContributorID:    f.contributorID,
		Turnaround:       "normal",
		PaymentMethodRef: "pm_test",
	})
	require.ErrorIs(t, err, domain.ErrChargeFailed)

	var orders int64
	require.NoError(t, f.db.Table("orders").Count(&orders).Error)
	assert.Zero(t, orders)
	var payments int64
	require.NoError(t, f.db.Table("payments").Count(&payments).Error)
	assert.Zero(t, payments)
}

func TestPlaceOrderPersistFailureRefundsCharge(t *testing.T) {
	f := setupOrderService(t)

	// Break the chat channel table so the placement transaction fails after
	// the charge succeeded.
	require.NoError(t, f.db.Migrator().DropTable("chat_channels"))

	_, err := f.svc.Place(f.buyerCtx(), &domain.PlaceOrderRequest{
		ContributorID:    f.contributorID,
		Turnaround:       "normal",
		PaymentMethodRef: "pm_test",
	})
	require.Error(t, err)

	require.Len(t, f.gw.RefundCalls(), 1, "charge must be compensated")

	var orders int64
	require.NoError(t, f.db.Table("orders").Count(&orders).Error)
	assert.Zero(t, orders)
}

func TestDeliverRequiresContributor(t *testing.T) {
	f := setupOrderService(t)
	order := f.place(t)

	_, err := f.svc.MarkDelivered(f.buyerCtx(), order.ID, "https://cdn.example.com/v.mp4")
	require.ErrorIs(t, err, domain.ErrNotOrderParty)

	delivered, err := f.svc.MarkDelivered(f.sellerCtx(), order.ID, "https://cdn.example.com/v.mp4")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelivered, delivered.Status)
	assert.NotNil(t, delivered.DeliveredAt)
}

func TestRedoCycle(t *testing.T) {
	f := setupOrderService(t)
	order := f.place(t)

	_, err := f.svc.MarkDelivered(f.sellerCtx(), order.ID, "https://cdn.example.com/v1.mp4")
	require.NoError(t, err)

	// Only the buyer may ask for a redo.
	_, err = f.svc.RequestRedo(f.sellerCtx(), order.ID)
	require.ErrorIs(t, err, domain.ErrNotOrderParty)

	_, err = f.svc.RequestRedo(f.buyerCtx(), order.ID)
	require.NoError(t, err)

	redone, err := f.svc.MarkRedone(f.sellerCtx(), order.ID, "https://cdn.example.com/v2.mp4")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRedone, redone.Status)
	assert.Equal(t, "https://cdn.example.com/v2.mp4", redone.VideoURL)

	delivered, err := f.svc.MarkDelivered(f.sellerCtx(), order.ID, "")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelivered, delivered.Status)
}

func TestInvalidTransitionRejected(t *testing.T) {
	f := setupOrderService(t)
	order := f.place(t)

	// Redo can only follow a delivery.
	_, err := f.svc.RequestRedo(f.buyerCtx(), order.ID)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	// A second delivery of an in-progress order is fine, but delivering a
	// refund-requested order is not.
	_, err = f.svc.RequestRefund(f.buyerCtx(), order.ID)
	require.NoError(t, err)
	_, err = f.svc.MarkDelivered(f.sellerCtx(), order.ID, "https://cdn.example.com/v.mp4")
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestMarkRefundedRequiresAdmin(t *testing.T) {
	f := setupOrderService(t)
	order := f.place(t)

	_, err := f.svc.RequestRefund(f.buyerCtx(), order.ID)
	require.NoError(t, err)

	_, err = f.svc.MarkRefunded(f.buyerCtx(), order.ID)
	require.ErrorIs(t, err, domain.ErrNotOrderParty)

	refunded, err := f.svc.MarkRefunded(f.adminCtx(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRefunded, refunded.Status)

	var payment paymentdomain.Payment
	require.NoError(t, f.db.Where("order_id = ?", order.ID).First(&payment).Error)
	assert.True(t, payment.Refunded)
}

func TestRefundPartialFailureIsRetryable(t *testing.T) {
	f := setupOrderService(t)
	order := f.place(t)

	_, err := f.svc.RequestRefund(f.buyerCtx(), order.ID)
	require.NoError(t, err)

	// A second payment simulates an extra charge against the same order.
	node := mustNode(t)
	extra := paymentdomain.Payment{
		ID:         node.Generate(),
		OrderID:    order.ID,
		ConsumerID: f.buyerID,
		Amount:     decimal.NewFromInt(10),
		Currency:   "usd",
		ChargeRef:  "ch_extra",
	}
	require.NoError(t, f.db.Create(&extra).Error)

	f.gw.refundFails["ch_extra"] = true

	_, err = f.svc.MarkRefunded(f.adminCtx(), order.ID)
	require.ErrorIs(t, err, domain.ErrRefundIncomplete)

	// The order stays put, but the refund that did succeed is recorded.
	current, err := f.svc.Get(f.adminCtx(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRefundRequested, current.Status)

	var refunded int64
	require.NoError(t, f.db.Table("payments").Where("order_id = ? AND refunded = ?", order.ID, true).Count(&refunded).Error)
	assert.EqualValues(t, 1, refunded)

	// Retry only touches the outstanding payment.
	f.gw.refundFails["ch_extra"] = false
	before := len(f.gw.RefundCalls())

	done, err := f.svc.MarkRefunded(f.adminCtx(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRefunded, done.Status)
	assert.Equal(t, before+1, len(f.gw.RefundCalls()))
}

func TestFlagRefundsFromAnyNonTerminalStatus(t *testing.T) {
	f := setupOrderService(t)
	order := f.place(t)

	flagged, err := f.svc.Flag(f.adminCtx(), order.ID, "dispute")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFlagged, flagged.Status)
	assert.Equal(t, "dispute", flagged.FlaggedReason)

	var payment paymentdomain.Payment
	require.NoError(t, f.db.Where("order_id = ?", order.ID).First(&payment).Error)
	assert.True(t, payment.Refunded)

	// Terminal statuses stay terminal.
	_, err = f.svc.Flag(f.adminCtx(), order.ID, "again")
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestLeaveReview(t *testing.T) {
	f := setupOrderService(t)
	order := f.place(t)

	_, err := f.svc.LeaveReview(f.buyerCtx(), &domain.LeaveReviewRequest{OrderID: order.ID, Rating: 6})
	require.ErrorIs(t, err, domain.ErrInvalidRating)

	// Reviews require a delivered order.
	_, err = f.svc.LeaveReview(f.buyerCtx(), &domain.LeaveReviewRequest{OrderID: order.ID, Rating: 5})
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = f.svc.MarkDelivered(f.sellerCtx(), order.ID, "https://cdn.example.com/v.mp4")
	require.NoError(t, err)

	review, err := f.svc.LeaveReview(f.buyerCtx(), &domain.LeaveReviewRequest{OrderID: order.ID, Rating: 5, Comment: "great"})
	require.NoError(t, err)
	assert.Equal(t, 5, review.Rating)

	_, err = f.svc.LeaveReview(f.buyerCtx(), &domain.LeaveReviewRequest{OrderID: order.ID, Rating: 4})
	require.ErrorIs(t, err, domain.ErrReviewExists)

	current, err := f.svc.Get(f.buyerCtx(), order.ID)
	require.NoError(t, err)
	assert.True(t, current.Reviewed)
}

func TestListScopedToCaller(t *testing.T) {
	f := setupOrderService(t)
	f.place(t)
	f.place(t)

	resp, err := f.svc.List(f.buyerCtx(), &domain.ListOrdersRequest{})
	require.NoError(t, err)
	assert.Len(t, resp.Orders, 2)
	for _, o := range resp.Orders {
		require.NotNil(t, o.ConsumerID)
		assert.Equal(t, f.buyerID, *o.ConsumerID)
	}
}
