package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"studynotes/internal/cache"
	"studynotes/internal/repository"
)

// EntitlementService answers whether a user currently holds a valid access grant.
type EntitlementService interface {
	// IsEntitled never returns an error: an unknown user, a missing grant and a failed lookup
	// are all "not entitled".
	IsEntitled(ctx context.Context, userID string) bool
}

type entitlementService struct {
	grants   repository.GrantRepository
	cache    cache.EntitlementCache
	cacheTTL time.Duration
	log      *zap.Logger
	metrics  *Metrics
	now      func() time.Time
}

// NewEntitlementService constructs an EntitlementService. A nil cache disables caching.
func NewEntitlementService(grants repository.GrantRepository, c cache.EntitlementCache, cacheTTL time.Duration, log *zap.Logger, m *Metrics) EntitlementService {
	if c == nil {
		c = cache.Noop{}
	}
	return &entitlementService{
		grants:   grants,
		cache:    c,
		cacheTTL: cacheTTL,
		log:      log,
		metrics:  m,
		now:      time.Now,
	}
}

func (s *entitlementService) IsEntitled(ctx context.Context, userID string) bool {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		s.metrics.entitlementChecked(resultAnonymous)
		return false
	}

	ctx, span := tracer.Start(ctx, "entitlement.check", trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()

	if ok, err := s.cache.Entitled(ctx, userID); err != nil {
		s.log.Warn("entitlement_cache_read_failed", zap.String("user_id", userID), zap.Error(err))
	} else if ok {
		span.SetAttributes(attribute.Bool("entitlement.cached", true))
		s.metrics.entitlementChecked(resultEntitled)
		return true
	}

	now := s.now()
	g, err := s.grants.FindActive(ctx, userID, now)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.metrics.entitlementChecked(resultNotEntitled)
			return false
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "grant lookup failed")
		s.log.Warn("entitlement_check_failed", zap.String("user_id", userID), zap.Error(err))
		s.metrics.entitlementChecked(resultError)
		return false
	}
	if !g.ValidAt(now) {
		s.metrics.entitlementChecked(resultNotEntitled)
		return false
	}

	ttl := s.cacheTTL
	if remaining := g.ExpiresAt.Sub(now); remaining < ttl {
		ttl = remaining
	}
	if err := s.cache.MarkEntitled(ctx, userID, ttl); err != nil {
		s.log.Warn("entitlement_cache_write_failed", zap.String("user_id", userID), zap.Error(err))
	}

	s.metrics.entitlementChecked(resultEntitled)
	return true
}
