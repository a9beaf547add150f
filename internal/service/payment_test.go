package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"studynotes/internal/config"
	"studynotes/internal/model"
	"studynotes/internal/orders"
	"studynotes/internal/repository"
	repomocks "studynotes/internal/repository/mocks"
)

const testKeySecret = "whsec_test"

func sign(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(testKeySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func testPaymentConfig() config.PaymentConfig {
	return config.PaymentConfig{
		KeyID:       "rzp_test_1",
		KeySecret:   testKeySecret,
		Amount:      9900,
		Currency:    "INR",
		Plan:        "Lifetime Access",
		ProductName: "StudyNotes",
	}
}

type mockOrderGateway struct {
	mock.Mock
}

func (m *mockOrderGateway) CreateOrder(ctx context.Context, in orders.CreateRequest) (*orders.Order, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orders.Order), args.Error(1)
}

type paymentDeps struct {
	grants  *repomocks.MockGrantRepository
	orders  *repomocks.MockOrderRepository
	gateway *mockOrderGateway
}

func newPaymentForTest(now time.Time) (*paymentService, paymentDeps) {
	d := paymentDeps{
		grants:  new(repomocks.MockGrantRepository),
		orders:  new(repomocks.MockOrderRepository),
		gateway: new(mockOrderGateway),
	}
	svc := NewPaymentService(testPaymentConfig(), d.grants, d.orders, d.gateway, zap.NewNop(), nil).(*paymentService)
	svc.now = func() time.Time { return now }
	return svc, d
}

func issuedOrder() *model.PaymentOrder {
	return &model.PaymentOrder{ID: "order_1", UserID: "user-1", Amount: 9900, Currency: "INR", Receipt: "receipt_1"}
}

func TestPaymentService_Checkout(t *testing.T) {
	ctx := context.Background()
	now := time.UnixMilli(1760000000000)
	id := model.Identity{UserID: "user-1", Email: "a@b.edu"}

	t.Run("creates and records a provider order", func(t *testing.T) {
		svc, d := newPaymentForTest(now)
		want := orders.CreateRequest{
			Amount:   9900,
			Currency: "INR",
			Receipt:  "receipt_1760000000000",
			Notes:    map[string]string{"user_id": "user-1"},
		}
		d.gateway.On("CreateOrder", mock.Anything, want).
			Return(&orders.Order{ID: "order_1", Amount: 9900, Currency: "INR", Receipt: want.Receipt, Status: "created"}, nil)
		d.orders.On("Create", mock.Anything, mock.MatchedBy(func(o *model.PaymentOrder) bool {
			return o.ID == "order_1" && o.UserID == "user-1" && o.Amount == 9900 && o.Receipt == want.Receipt
		})).Return(issuedOrder(), nil)

		opts, err := svc.Checkout(ctx, id)

		require.NoError(t, err)
		assert.Equal(t, "rzp_test_1", opts.Key)
		assert.Equal(t, "order_1", opts.OrderID)
		assert.Equal(t, int64(9900), opts.Amount)
		assert.Equal(t, "receipt_1760000000000", opts.Receipt)
		assert.Equal(t, "₹99", opts.Price)
		assert.Equal(t, "a@b.edu", opts.Email)
		d.gateway.AssertExpectations(t)
		d.orders.AssertExpectations(t)
	})

	t.Run("anonymous", func(t *testing.T) {
		svc, d := newPaymentForTest(now)
		_, err := svc.Checkout(ctx, model.Identity{})
		assert.ErrorIs(t, err, ErrIdentityRequired)
		d.gateway.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	})

	t.Run("provider failure records nothing", func(t *testing.T) {
		svc, d := newPaymentForTest(now)
		d.gateway.On("CreateOrder", mock.Anything, mock.Anything).Return(nil, orders.ErrUpstream)

		_, err := svc.Checkout(ctx, id)

		assert.ErrorIs(t, err, ErrPaymentProvider)
		d.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("no gateway", func(t *testing.T) {
		svc := NewPaymentService(testPaymentConfig(), new(repomocks.MockGrantRepository), new(repomocks.MockOrderRepository), nil, zap.NewNop(), nil)
		_, err := svc.Checkout(ctx, id)
		assert.ErrorIs(t, err, ErrPaymentUnavailable)
	})
}

func TestPaymentService_Confirm(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	id := model.Identity{UserID: "user-1", Email: "a@b.edu"}
	in := ConfirmInput{OrderID: "order_1", PaymentID: "pay_1", Signature: sign("order_1", "pay_1")}

	t.Run("writes lifetime grant", func(t *testing.T) {
		svc, d := newPaymentForTest(now)

		d.orders.On("FindByID", mock.Anything, "order_1").Return(issuedOrder(), nil)
		d.grants.On("FindByPaymentID", mock.Anything, "pay_1").Return(nil, sql.ErrNoRows)
		d.grants.On("Create", mock.Anything, mock.MatchedBy(func(g *model.AccessGrant) bool {
			return g.UserID == "user-1" && g.Active && g.PaymentID == "pay_1" && g.ExpiresAt.Equal(lifetimeExpiry)
		})).Return(&model.AccessGrant{ID: "g-1", UserID: "user-1", Plan: "Lifetime Access", Active: true, ExpiresAt: lifetimeExpiry, PaymentID: "pay_1"}, nil)

		g, err := svc.Confirm(ctx, id, in)

		require.NoError(t, err)
		assert.Equal(t, "g-1", g.ID)
		assert.True(t, g.ValidAt(now))
		d.grants.AssertExpectations(t)
	})

	t.Run("bad signature writes nothing", func(t *testing.T) {
		svc, d := newPaymentForTest(now)

		bad := in
		bad.Signature = sign("order_1", "pay_2")
		_, err := svc.Confirm(ctx, id, bad)

		assert.ErrorIs(t, err, ErrInvalidSignature)
		d.orders.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
		d.grants.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("order not issued here", func(t *testing.T) {
		svc, d := newPaymentForTest(now)
		other := ConfirmInput{OrderID: "order_x", PaymentID: "pay_1", Signature: sign("order_x", "pay_1")}
		d.orders.On("FindByID", mock.Anything, "order_x").Return(nil, sql.ErrNoRows)

		_, err := svc.Confirm(ctx, id, other)

		assert.ErrorIs(t, err, ErrOrderMismatch)
		d.grants.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("order issued at another price", func(t *testing.T) {
		svc, d := newPaymentForTest(now)
		cheap := issuedOrder()
		cheap.Amount = 100
		d.orders.On("FindByID", mock.Anything, "order_1").Return(cheap, nil)

		_, err := svc.Confirm(ctx, id, in)

		assert.ErrorIs(t, err, ErrOrderMismatch)
		d.grants.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("order issued to another user", func(t *testing.T) {
		svc, d := newPaymentForTest(now)
		theirs := issuedOrder()
		theirs.UserID = "user-9"
		d.orders.On("FindByID", mock.Anything, "order_1").Return(theirs, nil)

		_, err := svc.Confirm(ctx, id, in)

		assert.ErrorIs(t, err, ErrOrderMismatch)
	})

	t.Run("order lookup failure", func(t *testing.T) {
		svc, d := newPaymentForTest(now)
		d.orders.On("FindByID", mock.Anything, "order_1").Return(nil, errors.New("conn reset"))

		_, err := svc.Confirm(ctx, id, in)

		assert.ErrorContains(t, err, "lookup order")
		assert.NotErrorIs(t, err, ErrOrderMismatch)
	})

	t.Run("missing fields", func(t *testing.T) {
		svc, _ := newPaymentForTest(now)
		_, err := svc.Confirm(ctx, id, ConfirmInput{OrderID: "order_1"})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("anonymous", func(t *testing.T) {
		svc, _ := newPaymentForTest(now)
		_, err := svc.Confirm(ctx, model.Identity{}, in)
		assert.ErrorIs(t, err, ErrIdentityRequired)
	})

	t.Run("replay returns existing grant", func(t *testing.T) {
		svc, d := newPaymentForTest(now)
		existing := &model.AccessGrant{ID: "g-1", UserID: "user-1", PaymentID: "pay_1", Active: true, ExpiresAt: lifetimeExpiry}
		d.orders.On("FindByID", mock.Anything, "order_1").Return(issuedOrder(), nil)
		d.grants.On("FindByPaymentID", mock.Anything, "pay_1").Return(existing, nil)

		g, err := svc.Confirm(ctx, id, in)

		require.NoError(t, err)
		assert.Same(t, existing, g)
		d.grants.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("payment claimed by another user", func(t *testing.T) {
		svc, d := newPaymentForTest(now)
		d.orders.On("FindByID", mock.Anything, "order_1").Return(issuedOrder(), nil)
		d.grants.On("FindByPaymentID", mock.Anything, "pay_1").Return(&model.AccessGrant{ID: "g-9", UserID: "user-9", PaymentID: "pay_1"}, nil)

		_, err := svc.Confirm(ctx, id, in)

		assert.ErrorIs(t, err, ErrPaymentClaimed)
	})

	t.Run("concurrent insert resolves to the winner", func(t *testing.T) {
		svc, d := newPaymentForTest(now)
		winner := &model.AccessGrant{ID: "g-2", UserID: "user-1", PaymentID: "pay_1", Active: true, ExpiresAt: lifetimeExpiry}

		d.orders.On("FindByID", mock.Anything, "order_1").Return(issuedOrder(), nil)
		d.grants.On("FindByPaymentID", mock.Anything, "pay_1").Return(nil, sql.ErrNoRows).Once()
		d.grants.On("Create", mock.Anything, mock.Anything).Return(nil, repository.ErrDuplicate)
		d.grants.On("FindByPaymentID", mock.Anything, "pay_1").Return(winner, nil).Once()

		g, err := svc.Confirm(ctx, id, in)

		require.NoError(t, err)
		assert.Equal(t, "g-2", g.ID)
	})

	t.Run("not configured", func(t *testing.T) {
		svc := NewPaymentService(config.PaymentConfig{}, new(repomocks.MockGrantRepository), new(repomocks.MockOrderRepository), nil, zap.NewNop(), nil)
		_, err := svc.Confirm(ctx, id, in)
		assert.ErrorIs(t, err, ErrPaymentUnavailable)
	})
}

func TestPaymentService_Status(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

	svc, d := newPaymentForTest(now)
	grants := d.grants

	st, err := svc.Status(ctx, model.Identity{})
	require.NoError(t, err)
	assert.Equal(t, FreePlan, st.Plan)

	grants.On("FindActive", mock.Anything, "user-1", now).Return(nil, sql.ErrNoRows)
	st, err = svc.Status(ctx, model.Identity{UserID: "user-1"})
	require.NoError(t, err)
	assert.Equal(t, FreePlan, st.Plan)
	assert.False(t, st.Active)

	grants.On("FindActive", mock.Anything, "user-2", now).Return(&model.AccessGrant{UserID: "user-2", Plan: "Lifetime Access", Active: true, ExpiresAt: lifetimeExpiry}, nil)
	st, err = svc.Status(ctx, model.Identity{UserID: "user-2"})
	require.NoError(t, err)
	assert.Equal(t, "Lifetime Access", st.Plan)
	assert.True(t, st.Active)
	require.NotNil(t, st.ExpiresAt)
}

func TestVerifySignature(t *testing.T) {
	assert.True(t, VerifySignature(testKeySecret, "o", "p", sign("o", "p")))
	assert.False(t, VerifySignature(testKeySecret, "o", "p", "zz-not-hex"))
	assert.False(t, VerifySignature("other", "o", "p", sign("o", "p")))
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "₹99", FormatPrice(9900, "INR"))
	assert.Equal(t, "$4.50", FormatPrice(450, "usd"))
	assert.Equal(t, "GBP 10", FormatPrice(1000, "GBP"))
}
