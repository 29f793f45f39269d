package worker

import (
	"context"

	"github.com/ppiankov/caregap/internal/model"
)

// Processor defines the per-facility unit of work. All claims for one
// facility are processed together; that is the only synchronization
// boundary in the pipeline.
type Processor interface {
	ProcessFacility(ctx context.Context, batch model.FacilityBatch) (model.FacilityProfile, error)
}

// FacilityJob processes one facility batch
type FacilityJob struct {
	Batch     model.FacilityBatch
	Processor Processor
}

// Execute runs validation and scoring for the facility
func (j *FacilityJob) Execute(ctx context.Context) Result {
	profile, err := j.Processor.ProcessFacility(ctx, j.Batch)
	return &FacilityResult{
		FacilityID: j.Batch.Facility.ID,
		Profile:    profile,
		Err:        err,
	}
}

// FacilityResult is the outcome of one facility job. A failed facility never
// aborts the rest of the batch; failures are collected alongside successes.
type FacilityResult struct {
	FacilityID string
	Profile    model.FacilityProfile
	Err        error
}

// GetError returns the error from the facility result
func (r *FacilityResult) GetError() error {
	return r.Err
}

// BatchProcessor runs facility batches concurrently. Facilities are fully
// independent, so this is an embarrassingly parallel fan-out with a barrier
// before aggregation.
type BatchProcessor struct {
	processor   Processor
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(processor Processor, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		processor:   processor,
		concurrency: concurrency,
	}
}

// ProcessBatches processes all facility batches and returns one result per batch
func (b *BatchProcessor) ProcessBatches(ctx context.Context, batches []model.FacilityBatch) []*FacilityResult {
	if len(batches) == 0 {
		return []*FacilityResult{}
	}

	pool := NewPoolWithContext(ctx, b.concurrency)
	pool.Start()

	for _, batch := range batches {
		pool.Submit(&FacilityJob{
			Batch:     batch,
			Processor: b.processor,
		})
	}

	results := pool.Wait()

	facilityResults := make([]*FacilityResult, 0, len(batches))
	delivered := make(map[string]int, len(results))
	for _, result := range results {
		fr := result.(*FacilityResult)
		facilityResults = append(facilityResults, fr)
		delivered[fr.FacilityID]++
	}

	// On cancellation the pool abandons queued jobs; those facilities must
	// still appear in the report, as failures rather than silent omissions
	if err := ctx.Err(); err != nil {
		for _, batch := range batches {
			if delivered[batch.Facility.ID] > 0 {
				delivered[batch.Facility.ID]--
				continue
			}
			facilityResults = append(facilityResults, &FacilityResult{
				FacilityID: batch.Facility.ID,
				Err:        err,
			})
		}
	}

	return facilityResults
}
