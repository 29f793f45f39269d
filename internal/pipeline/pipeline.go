// Package pipeline orchestrates validation, scoring, and regional
// aggregation over facility batches. The pipeline itself performs no I/O:
// all inputs are in memory and every stage is a pure transformation.
package pipeline

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/ppiankov/caregap/internal/desert"
	"github.com/ppiankov/caregap/internal/model"
	"github.com/ppiankov/caregap/internal/ontology"
	"github.com/ppiankov/caregap/internal/score"
	"github.com/ppiankov/caregap/internal/validate"
	"github.com/ppiankov/caregap/internal/worker"
)

// Pipeline runs the validate → score → aggregate flow
type Pipeline struct {
	validator  *validate.Validator
	scorer     *score.Scorer
	aggregator *desert.Aggregator
	config     *model.Config
}

// New creates a pipeline over a shared read-only ontology. The plausibility
// table may be nil, in which case the built-in table applies.
func New(cfg *model.Config, ont *ontology.Ontology, table validate.PlausibilityTable) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.SimilarityThreshold > 0 {
		ont = ont.WithSimilarity(cfg.SimilarityThreshold)
	}

	return &Pipeline{
		validator:  validate.NewValidator(ont, table, cfg.LowEvidenceThreshold),
		scorer:     score.NewScorer(cfg.Weights),
		aggregator: desert.NewAggregator(ont, cfg.Severity),
		config:     cfg,
	}, nil
}

// ProcessFacility validates and scores all claims for one facility.
// Implements worker.Processor.
func (p *Pipeline) ProcessFacility(ctx context.Context, batch model.FacilityBatch) (model.FacilityProfile, error) {
	// Cooperative cancellation between facility batches; the work per
	// facility is CPU-bound and cheap
	if err := ctx.Err(); err != nil {
		return model.FacilityProfile{}, err
	}

	validated, err := p.validator.ValidateBatch(batch)
	if err != nil {
		return model.FacilityProfile{}, err
	}

	scored := p.scorer.ScoreBatch(validated)

	return model.FacilityProfile{
		Facility: batch.Facility,
		Claims:   scored,
		Stats:    profileStats(scored),
	}, nil
}

// Run processes all facility batches in parallel, then aggregates regions
// once every facility has completed. Per-facility failures are collected in
// the report, never aborting the run.
func (p *Pipeline) Run(ctx context.Context, batches []model.FacilityBatch) (*model.BatchReport, error) {
	processor := worker.NewBatchProcessor(p, p.config.Concurrency)
	results := processor.ProcessBatches(ctx, batches)

	report := &model.BatchReport{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		MinTrust:    p.config.MinTrust,
	}

	for _, result := range results {
		if result.Err != nil {
			report.Failures = append(report.Failures, model.FacilityFailure{
				FacilityID: result.FacilityID,
				Error:      result.Err.Error(),
			})
			continue
		}
		report.Profiles = append(report.Profiles, result.Profile)
	}

	// Pool results arrive in completion order; sort for reproducible output
	sort.Slice(report.Profiles, func(i, j int) bool {
		return report.Profiles[i].Facility.ID < report.Profiles[j].Facility.ID
	})
	sort.Slice(report.Failures, func(i, j int) bool {
		return report.Failures[i].FacilityID < report.Failures[j].FacilityID
	})

	regions, err := p.aggregator.Analyze(report.Profiles, p.config.MinTrust)
	if err != nil {
		return nil, err
	}
	report.Regions = regions

	return report, nil
}

func profileStats(claims []model.ScoredClaim) model.ProfileStats {
	stats := model.ProfileStats{TotalClaims: len(claims)}
	if len(claims) == 0 {
		return stats
	}

	sum := 0.0
	for _, c := range claims {
		sum += c.Trust
		switch c.Tier {
		case model.TierHigh:
			stats.HighTrust++
		case model.TierMedium:
			stats.MediumTrust++
		default:
			stats.LowTrust++
		}
	}
	stats.MeanTrust = sum / float64(len(claims))
	return stats
}
