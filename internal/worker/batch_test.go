package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ppiankov/caregap/internal/model"
)

// MockProcessor implements Processor
type MockProcessor struct {
	ShouldError bool
}

func (m *MockProcessor) ProcessFacility(ctx context.Context, batch model.FacilityBatch) (model.FacilityProfile, error) {
	time.Sleep(10 * time.Millisecond) // Simulate work
	if m.ShouldError {
		return model.FacilityProfile{}, errors.New("processing error")
	}
	return model.FacilityProfile{
		Facility: batch.Facility,
		Stats:    model.ProfileStats{TotalClaims: len(batch.Claims)},
	}, nil
}

func facilityBatches(ids ...string) []model.FacilityBatch {
	batches := make([]model.FacilityBatch, len(ids))
	for i, id := range ids {
		batches[i] = model.FacilityBatch{
			Facility: model.Facility{ID: id, Name: "Facility " + id},
		}
	}
	return batches
}

func TestBatchProcessor_ProcessBatches(t *testing.T) {
	processor := NewBatchProcessor(&MockProcessor{}, 2)

	results := processor.ProcessBatches(context.Background(), facilityBatches("fac-1", "fac-2", "fac-3"))

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	successCount := 0
	seen := make(map[string]bool)
	for _, res := range results {
		if res.Err == nil {
			successCount++
		} else {
			t.Errorf("unexpected error for %s: %v", res.FacilityID, res.Err)
		}
		seen[res.FacilityID] = true
	}

	if successCount != 3 {
		t.Errorf("expected 3 successes, got %d", successCount)
	}
	for _, id := range []string{"fac-1", "fac-2", "fac-3"} {
		if !seen[id] {
			t.Errorf("missing result for %s", id)
		}
	}
}

func TestBatchProcessor_ProcessBatches_Error(t *testing.T) {
	processor := NewBatchProcessor(&MockProcessor{ShouldError: true}, 2)

	results := processor.ProcessBatches(context.Background(), facilityBatches("fac-1"))

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}

	if results[0].Err == nil {
		t.Error("expected error, got nil")
	}
	if results[0].FacilityID != "fac-1" {
		t.Errorf("failure must carry the facility id, got %q", results[0].FacilityID)
	}
}

func TestBatchProcessor_ProcessBatches_Cancelled(t *testing.T) {
	processor := NewBatchProcessor(&MockProcessor{}, 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := processor.ProcessBatches(ctx, facilityBatches("fac-1", "fac-2", "fac-3"))

	// Every facility gets a result: the ones the pool never ran come back
	// as failures carrying the context error
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	seen := make(map[string]bool)
	for _, res := range results {
		if res.Err == nil {
			t.Errorf("facility %s: expected a failure after cancellation", res.FacilityID)
		}
		seen[res.FacilityID] = true
	}
	for _, id := range []string{"fac-1", "fac-2", "fac-3"} {
		if !seen[id] {
			t.Errorf("missing result for %s", id)
		}
	}
}

func TestBatchProcessor_ProcessBatches_Empty(t *testing.T) {
	processor := NewBatchProcessor(&MockProcessor{}, 2)

	results := processor.ProcessBatches(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("expected 0 results, got %d", len(results))
	}
}

func TestFacilityResult_GetError(t *testing.T) {
	r1 := &FacilityResult{FacilityID: "fac-1"}
	if r1.GetError() != nil {
		t.Errorf("expected nil error, got %v", r1.GetError())
	}

	expected := errors.New("processing failed")
	r2 := &FacilityResult{FacilityID: "fac-1", Err: expected}
	if r2.GetError() != expected {
		t.Errorf("expected %v, got %v", expected, r2.GetError())
	}
}
