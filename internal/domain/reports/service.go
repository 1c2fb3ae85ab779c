package reports

import (
	"context"
	"fmt"
	"time"

	"retailhub/internal/core/apperror"
	"retailhub/internal/core/id"
	"retailhub/internal/domain/orders"
	"retailhub/pkg/logger"
)

// SummaryCache caches rendered summaries. Misses are never errors.
type SummaryCache interface {
	Get(ctx context.Context, key string) (*Summary, bool)
	Set(ctx context.Context, key string, s *Summary, ttl time.Duration)
}

// Service loads snapshots, runs the pure reporting core and caches results.
type Service struct {
	repo  Repository
	cache SummaryCache

	cacheTTL time.Duration

	// txLimit caps ledger reads for usage reports; 0 reads full history.
	txLimit int
}

// Option configures the report service.
type Option func(*Service)

// WithCache enables summary caching.
func WithCache(c SummaryCache, ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = c
		s.cacheTTL = ttl
	}
}

// WithTransactionLimit caps ledger reads for usage reports.
func WithTransactionLimit(n int) Option {
	return func(s *Service) { s.txLimit = n }
}

// NewService creates a report service.
func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		cacheTTL: 10 * time.Minute,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProfitSummary builds a profit report. The classification strategy is a
// required, explicit argument: the strict and heuristic strategies can put
// the same order in different channels, so the caller must choose rather
// than have report numbers silently change.
//
// Channels are recomputed from raw fields on every report because legacy
// records carry an inconsistent type vocabulary.
func (s *Service) ProfitSummary(ctx context.Context, filter Filter, strategy orders.Strategy) (Summary, error) {
	if !strategy.Valid() {
		return Summary{}, apperror.NewValidation("unknown classification strategy").
			WithDetail("strategy", string(strategy))
	}
	if err := filter.Range.Validate(); err != nil {
		return Summary{}, err
	}

	key := summaryKey(filter, strategy)
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, key); ok {
			logger.Debug(ctx, "profit summary served from cache", "key", key)
			return *cached, nil
		}
	}

	orderList, err := s.repo.FetchOrders(ctx, filter.StoreID)
	if err != nil {
		return Summary{}, fmt.Errorf("fetch orders: %w", err)
	}
	if orderList == nil {
		orderList = []*orders.Order{}
	}

	for _, o := range orderList {
		if o == nil {
			continue
		}
		ch, err := orders.Classify(strategy, o.RawFields("", string(o.Channel)))
		if err != nil {
			return Summary{}, err
		}
		o.Channel = ch
	}

	summary, err := Aggregate(orderList, filter)
	if err != nil {
		return Summary{}, err
	}

	if summary.SkippedCount > 0 {
		logger.Warn(ctx, "profit summary skipped malformed orders",
			"skipped", summary.SkippedCount,
		)
	}

	if s.cache != nil {
		s.cache.Set(ctx, key, &summary, s.cacheTTL)
	}

	return summary, nil
}

// Usage builds the stock usage report for a period.
func (s *Service) Usage(ctx context.Context, storeID *id.ID, period Period) (ReconcileResult, error) {
	if err := period.Validate(); err != nil {
		return ReconcileResult{}, err
	}

	transactions, err := s.repo.FetchTransactions(ctx, storeID, s.txLimit)
	if err != nil {
		return ReconcileResult{}, fmt.Errorf("fetch transactions: %w", err)
	}
	stock, err := s.repo.FetchCurrentStock(ctx)
	if err != nil {
		return ReconcileResult{}, fmt.Errorf("fetch stock: %w", err)
	}

	result, err := Reconcile(stock, transactions, period)
	if err != nil {
		return ReconcileResult{}, err
	}

	for _, w := range result.Warnings {
		logger.Warn(ctx, "reconciliation warning", "detail", w)
	}

	return result, nil
}

func summaryKey(filter Filter, strategy orders.Strategy) string {
	storeKey := "all"
	if filter.StoreID != nil {
		storeKey = filter.StoreID.String()
	}
	channelKey := "all"
	if filter.Channel != nil {
		channelKey = string(*filter.Channel)
	}
	return fmt.Sprintf("report:summary:%s:%s:%s:%s:%s:%d",
		strategy, storeKey, channelKey, filter.Range.From, filter.Range.To, filter.TopN)
}
