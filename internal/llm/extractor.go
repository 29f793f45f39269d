package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/ppiankov/caregap/internal/cache"
	"github.com/ppiankov/caregap/internal/model"
)

// Extractor wraps a provider with response caching and request rate
// limiting. Extraction over a facility list is the only network-bound stage
// in the application, and providers meter requests per second.
type Extractor struct {
	provider Provider
	cache    cache.Cache
	limiter  *rate.Limiter
	model    string
}

// NewExtractor creates an extractor. A nil cache disables caching;
// requestsPerSecond <= 0 disables rate limiting.
func NewExtractor(provider Provider, responseCache cache.Cache, requestsPerSecond float64, chatModel string) *Extractor {
	var limiter *rate.Limiter
	if requestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), 1)
	}

	return &Extractor{
		provider: provider,
		cache:    responseCache,
		limiter:  limiter,
		model:    chatModel,
	}
}

// ExtractFacility produces the raw claims for one facility, serving
// repeated identical inputs from the cache without touching the provider.
func (e *Extractor) ExtractFacility(ctx context.Context, facility model.Facility) ([]model.RawClaim, error) {
	if facility.Description == "" {
		return nil, nil
	}

	key := cache.ExtractionKey(e.provider.Name(), e.model, facility.Description)
	if e.cache != nil {
		if data, found := e.cache.Get(key); found {
			var claims []model.RawClaim
			if err := json.Unmarshal(data, &claims); err == nil {
				return claims, nil
			}
			// Corrupt entry: fall through and re-extract
			_ = e.cache.Delete(key)
		}
	}

	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	resp, err := e.provider.Extract(ctx, ExtractionRequest{
		FacilityName: facility.Name,
		FacilityType: facility.Type,
		Text:         facility.Description,
		Model:        e.model,
	})
	if err != nil {
		return nil, fmt.Errorf("extract facility %s: %w", facility.ID, err)
	}

	if e.cache != nil {
		if data, err := json.Marshal(resp.Claims); err == nil {
			_ = e.cache.Set(key, data, 0)
		}
	}

	return resp.Claims, nil
}

// ExtractAll builds facility batches for the whole facility list. Failures
// are collected per facility, never aborting the rest of the run.
func (e *Extractor) ExtractAll(ctx context.Context, facilities []model.Facility) ([]model.FacilityBatch, []model.FacilityFailure) {
	var batches []model.FacilityBatch
	var failures []model.FacilityFailure

	for _, facility := range facilities {
		if err := ctx.Err(); err != nil {
			failures = append(failures, model.FacilityFailure{FacilityID: facility.ID, Error: err.Error()})
			continue
		}

		claims, err := e.ExtractFacility(ctx, facility)
		if err != nil {
			failures = append(failures, model.FacilityFailure{FacilityID: facility.ID, Error: err.Error()})
			continue
		}
		batches = append(batches, model.FacilityBatch{Facility: facility, Claims: claims})
	}

	return batches, failures
}
