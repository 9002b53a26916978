package services

import (
	"context"

	"transparencyhub/internal/logger"
)

// QuotaChecker decides whether one more provider call may be made.
type QuotaChecker interface {
	Allow(ctx context.Context) (bool, error)
}

// quotaGuard refuses provider calls once the shared budget is spent. Checker
// errors fail open so a Redis outage never blocks augmentation.
type quotaGuard struct {
	next    TextGenerator
	checker QuotaChecker
	name    string
}

// WithQuota wraps next so every call first consults checker.
func WithQuota(next TextGenerator, checker QuotaChecker, provider string) TextGenerator {
	if next == nil || checker == nil {
		return next
	}
	return &quotaGuard{next: next, checker: checker, name: provider}
}

func (q *quotaGuard) GenerateText(ctx context.Context, prompt string) (string, error) {
	allowed, err := q.checker.Allow(ctx)
	if err != nil {
		logger.Warn("quota check failed, allowing call", "provider", q.name, "error", err)
	} else if !allowed {
		return "", &ProviderError{Provider: q.name, Err: ErrQuotaExceeded}
	}
	return q.next.GenerateText(ctx, prompt)
}
