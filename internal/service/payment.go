package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"studynotes/internal/config"
	"studynotes/internal/model"
	"studynotes/internal/orders"
	"studynotes/internal/repository"
)

// FreePlan is reported for callers without a valid grant.
const FreePlan = "Free Plan"

// lifetimeExpiry is the expiry written on lifetime grants.
var lifetimeExpiry = time.Date(2099, 12, 31, 0, 0, 0, 0, time.UTC)

// CheckoutOptions are handed to the browser's checkout widget.
type CheckoutOptions struct {
	Key         string `json:"key"`
	OrderID     string `json:"order_id"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Receipt     string `json:"receipt"`
	Price       string `json:"price"`
	Email       string `json:"prefill_email,omitempty"`
}

// ConfirmInput is the payment provider's callback payload.
type ConfirmInput struct {
	OrderID   string `json:"razorpay_order_id" validate:"required"`
	PaymentID string `json:"razorpay_payment_id" validate:"required"`
	Signature string `json:"razorpay_signature" validate:"required,hexadecimal"`
}

// PlanStatus describes the caller's current plan.
type PlanStatus struct {
	Plan      string     `json:"plan"`
	Active    bool       `json:"active"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// OrderGateway creates orders with the payment provider.
type OrderGateway interface {
	CreateOrder(ctx context.Context, in orders.CreateRequest) (*orders.Order, error)
}

// PaymentService turns verified payments into access grants.
type PaymentService interface {
	// Checkout creates a provider order for lifetime access and returns the widget options for it.
	Checkout(ctx context.Context, id model.Identity) (*CheckoutOptions, error)

	// Confirm verifies the provider signature and the order it was made against, then writes the
	// grant. Confirming the same payment twice for the same user returns the existing grant.
	Confirm(ctx context.Context, id model.Identity, in ConfirmInput) (*model.AccessGrant, error)

	// Status reports the caller's plan.
	Status(ctx context.Context, id model.Identity) (*PlanStatus, error)
}

type paymentService struct {
	cfg      config.PaymentConfig
	grants   repository.GrantRepository
	orders   repository.OrderRepository
	gateway  OrderGateway
	validate *validator.Validate
	log      *zap.Logger
	metrics  *Metrics
	now      func() time.Time
}

// NewPaymentService constructs a PaymentService.
func NewPaymentService(
	cfg config.PaymentConfig,
	grants repository.GrantRepository,
	issued repository.OrderRepository,
	gateway OrderGateway,
	log *zap.Logger,
	m *Metrics,
) PaymentService {
	return &paymentService{
		cfg:      cfg,
		grants:   grants,
		orders:   issued,
		gateway:  gateway,
		validate: validator.New(),
		log:      log,
		metrics:  m,
		now:      time.Now,
	}
}

func (s *paymentService) Checkout(ctx context.Context, id model.Identity) (*CheckoutOptions, error) {
	if !id.Known() {
		return nil, ErrIdentityRequired
	}
	if s.cfg.KeyID == "" || s.gateway == nil {
		return nil, ErrPaymentUnavailable
	}

	ctx, span := tracer.Start(ctx, "payments.checkout", trace.WithAttributes(
		attribute.String("user.id", id.UserID),
	))
	defer span.End()

	now := s.now().UTC()
	receipt := "receipt_" + strconv.FormatInt(now.UnixMilli(), 10)
	o, err := s.gateway.CreateOrder(ctx, orders.CreateRequest{
		Amount:   s.cfg.Amount,
		Currency: s.cfg.Currency,
		Receipt:  receipt,
		Notes:    map[string]string{"user_id": id.UserID},
	})
	if err != nil {
		span.RecordError(err)
		s.log.Warn("payment_order_failed", zap.String("user_id", id.UserID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrPaymentProvider, err)
	}

	if _, err := s.orders.Create(ctx, &model.PaymentOrder{
		ID:        o.ID,
		UserID:    id.UserID,
		Amount:    o.Amount,
		Currency:  o.Currency,
		Receipt:   receipt,
		CreatedAt: now,
	}); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("record order: %w", err)
	}

	return &CheckoutOptions{
		Key:         s.cfg.KeyID,
		OrderID:     o.ID,
		Amount:      o.Amount,
		Currency:    o.Currency,
		Name:        s.cfg.ProductName,
		Description: s.cfg.Plan,
		Receipt:     receipt,
		Price:       FormatPrice(o.Amount, o.Currency),
		Email:       id.Email,
	}, nil
}

func (s *paymentService) Confirm(ctx context.Context, id model.Identity, in ConfirmInput) (*model.AccessGrant, error) {
	if !id.Known() {
		return nil, ErrIdentityRequired
	}
	if s.cfg.KeySecret == "" {
		return nil, ErrPaymentUnavailable
	}
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	ctx, span := tracer.Start(ctx, "payments.confirm", trace.WithAttributes(
		attribute.String("user.id", id.UserID),
		attribute.String("payment.id", in.PaymentID),
	))
	defer span.End()

	if !VerifySignature(s.cfg.KeySecret, in.OrderID, in.PaymentID, in.Signature) {
		span.SetStatus(codes.Error, "signature mismatch")
		s.log.Warn("payment_signature_mismatch",
			zap.String("user_id", id.UserID),
			zap.String("payment_id", in.PaymentID),
		)
		return nil, ErrInvalidSignature
	}

	if err := s.issued(ctx, id, in.OrderID); err != nil {
		span.SetStatus(codes.Error, "order mismatch")
		return nil, err
	}

	if g, err := s.existing(ctx, id, in.PaymentID); err != nil || g != nil {
		return g, err
	}

	now := s.now().UTC()
	g, err := s.grants.Create(ctx, &model.AccessGrant{
		ID:        uuid.NewString(),
		UserID:    id.UserID,
		Plan:      s.cfg.Plan,
		Active:    true,
		ExpiresAt: lifetimeExpiry,
		PaymentID: in.PaymentID,
		CreatedAt: now,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// A concurrent confirm of the same payment won the insert.
			if g, err := s.existing(ctx, id, in.PaymentID); err != nil || g != nil {
				return g, err
			}
		}
		span.RecordError(err)
		return nil, fmt.Errorf("write access grant: %w", err)
	}

	s.metrics.grantWritten()
	s.log.Info("access_granted",
		zap.String("user_id", id.UserID),
		zap.String("payment_id", in.PaymentID),
		zap.String("plan", g.Plan),
	)
	return g, nil
}

// issued checks that orderID was created by Checkout for this user at the configured price.
func (s *paymentService) issued(ctx context.Context, id model.Identity, orderID string) error {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.log.Warn("payment_order_unknown", zap.String("user_id", id.UserID), zap.String("order_id", orderID))
			return ErrOrderMismatch
		}
		return fmt.Errorf("lookup order: %w", err)
	}
	if o.UserID != id.UserID || o.Amount != s.cfg.Amount || !strings.EqualFold(o.Currency, s.cfg.Currency) {
		s.log.Warn("payment_order_mismatch",
			zap.String("user_id", id.UserID),
			zap.String("order_id", orderID),
			zap.Int64("order_amount", o.Amount),
		)
		return ErrOrderMismatch
	}
	return nil
}

// existing returns the grant already written for paymentID, nil when there is none.
func (s *paymentService) existing(ctx context.Context, id model.Identity, paymentID string) (*model.AccessGrant, error) {
	g, err := s.grants.FindByPaymentID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lookup payment: %w", err)
	}
	if g.UserID != id.UserID {
		return nil, ErrPaymentClaimed
	}
	return g, nil
}

func (s *paymentService) Status(ctx context.Context, id model.Identity) (*PlanStatus, error) {
	if !id.Known() {
		return &PlanStatus{Plan: FreePlan}, nil
	}
	now := s.now()
	g, err := s.grants.FindActive(ctx, id.UserID, now)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &PlanStatus{Plan: FreePlan}, nil
		}
		return nil, err
	}
	if !g.ValidAt(now) {
		return &PlanStatus{Plan: FreePlan}, nil
	}
	exp := g.ExpiresAt
	return &PlanStatus{Plan: g.Plan, Active: true, ExpiresAt: &exp}, nil
}

// VerifySignature checks the provider's HMAC-SHA256 of "orderID|paymentID" keyed with secret.
func VerifySignature(secret, orderID, paymentID, signature string) bool {
	want, err := hex.DecodeString(strings.TrimSpace(signature))
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hmac.Equal(mac.Sum(nil), want)
}

// FormatPrice renders an amount in minor units, e.g. 9900 INR as "₹99".
func FormatPrice(amount int64, currency string) string {
	symbol := currency + " "
	switch strings.ToUpper(currency) {
	case "INR":
		symbol = "₹"
	case "USD":
		symbol = "$"
	case "EUR":
		symbol = "€"
	}
	major, minor := amount/100, amount%100
	if minor == 0 {
		return fmt.Sprintf("%s%d", symbol, major)
	}
	return fmt.Sprintf("%s%d.%02d", symbol, major, minor)
}
