// Package service provides the lookup orchestration: aggregation, verdict
// and evidence, plus the ledger-derived extras shown next to a verdict.
package service

import (
	"context"
	"strings"

	aggregator "halal_scanner_backend/internal/aggregator/transport"
	"halal_scanner_backend/internal/lookup/transport"
	"halal_scanner_backend/internal/verdict/classifier"
	"halal_scanner_backend/internal/verdict/evidence"
	verdict "halal_scanner_backend/internal/verdict/transport"
	"halal_scanner_backend/platform/apperr"
	"halal_scanner_backend/platform/logger"
)

// Aggregator resolves a lookup key across the providers.
type Aggregator interface {
	Aggregate(ctx context.Context, key string) aggregator.Result
}

// Service runs lookups.
type Service struct {
	aggregator Aggregator
	cache      Cache
	log        *logger.Logger
}

// New creates a lookup service. A nil cache disables caching.
func New(agg Aggregator, cache Cache, log *logger.Logger) *Service {
	if cache == nil {
		cache = NoopCache{}
	}
	return &Service{aggregator: agg, cache: cache, log: log}
}

// Run resolves key into a product, a verdict and its provenance. A missing
// product is not an error: Product and Verdict are nil and the ledger is kept.
func (s *Service) Run(ctx context.Context, key string) (transport.LookupResult, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return transport.LookupResult{}, apperr.Validation("lookup key is required").WithOp("lookup.Run")
	}

	if cached, ok := s.cache.Get(ctx, key); ok {
		s.log.WithContext(ctx).Debug("lookup served from cache", "lookup_key", key)
		return cached, nil
	}

	ctx = context.WithValue(ctx, logger.LookupKeyKey, key)
	agg := s.aggregator.Aggregate(ctx, key)

	result := transport.LookupResult{
		Key:          key,
		Product:      agg.Product,
		Ledger:       agg.Ledger,
		SuccessCount: agg.SuccessCount,
		CountryInfo:  countryInfo(agg),
		BoycottFlag:  boycottFlag(agg),
		Alternatives: alternatives(agg),
	}
	if result.Ledger == nil {
		result.Ledger = []aggregator.Outcome{}
	}

	if agg.Product != nil {
		v := evidence.Attach(classifier.Classify(agg.Product.Ingredients), agg.QuranEvidence, agg.HadithEvidence)
		result.Verdict = &v
	}

	s.log.WithContext(ctx).LookupCompleted(key, result.Found(), result.SuccessCount, len(result.Ledger))
	// A lookup cut short by the caller's deadline holds partial data.
	if ctx.Err() == nil {
		s.cache.Set(ctx, key, result)
	}
	return result, nil
}

// Classify runs the classifier on a bare ingredient list and attaches the
// curated evidence for the resulting status. No provider is called.
func (s *Service) Classify(ingredients []string) verdict.Verdict {
	return evidence.Attach(classifier.Classify(ingredients), nil, nil)
}
