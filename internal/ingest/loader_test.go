package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ppiankov/caregap/internal/model"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadBatches(t *testing.T) {
	path := writeTemp(t, "batch.json", `[
  {
    "facility": {"facility_id": "fac-1", "name": "Tamale Central", "facility_type": "District Hospital", "region": "Northern"},
    "claims": [
      {"capability": "emergency care", "evidence": ["24/7 emergency department"], "confidence": 0.9, "availability": "permanent"}
    ]
  },
  {
    "facility": {"facility_id": "fac-2", "name": "Ho Clinic", "region": "Volta"},
    "claims": []
  }
]`)

	batches, err := LoadBatches(path)
	if err != nil {
		t.Fatalf("LoadBatches failed: %v", err)
	}
	if len(batches) != 2 {
		t.Fatalf("expected 2 batches, got %d", len(batches))
	}

	if batches[0].Facility.ID != "fac-1" || batches[0].Facility.Region != "Northern" {
		t.Errorf("unexpected facility: %+v", batches[0].Facility)
	}
	if len(batches[0].Claims) != 1 {
		t.Fatalf("expected 1 claim, got %d", len(batches[0].Claims))
	}
	claim := batches[0].Claims[0]
	if claim.Capability != "emergency care" || claim.Availability != model.AvailabilityPermanent {
		t.Errorf("unexpected claim: %+v", claim)
	}
}

func TestLoadBatches_RejectsMissingID(t *testing.T) {
	path := writeTemp(t, "batch.json", `[{"facility": {"name": "No ID"}, "claims": []}]`)

	if _, err := LoadBatches(path); err == nil {
		t.Error("expected error for facility without id")
	}
}

func TestLoadBatches_RejectsDuplicateIDs(t *testing.T) {
	path := writeTemp(t, "batch.json", `[
  {"facility": {"facility_id": "fac-1", "name": "A"}, "claims": []},
  {"facility": {"facility_id": "fac-1", "name": "B"}, "claims": []}
]`)

	if _, err := LoadBatches(path); err == nil {
		t.Error("expected error for duplicate facility ids")
	}
}

func TestLoadBatches_CleansDescriptions(t *testing.T) {
	path := writeTemp(t, "batch.json", `[
  {"facility": {"facility_id": "fac-1", "name": "A", "description": "<p>24-hour  emergency</p><script>alert(1)</script>"}, "claims": []}
]`)

	batches, err := LoadBatches(path)
	if err != nil {
		t.Fatalf("LoadBatches failed: %v", err)
	}
	if got := batches[0].Facility.Description; got != "24-hour emergency" {
		t.Errorf("expected cleaned description, got %q", got)
	}
}

func TestLoadBatches_Missing(t *testing.T) {
	if _, err := LoadBatches("/nonexistent/batch.json"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteBatches_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	in := []model.FacilityBatch{
		{
			Facility: model.Facility{ID: "fac-1", Name: "Tamale Central", Region: "Northern"},
			Claims: []model.RawClaim{
				{Capability: "pharmacy", Confidence: 0.8, Availability: model.AvailabilityAvailable},
			},
		},
	}

	if err := WriteBatches(in, path); err != nil {
		t.Fatalf("WriteBatches failed: %v", err)
	}

	out, err := LoadBatches(path)
	if err != nil {
		t.Fatalf("LoadBatches failed: %v", err)
	}
	if len(out) != 1 || out[0].Facility.ID != "fac-1" || len(out[0].Claims) != 1 {
		t.Errorf("round trip mismatch: %+v", out)
	}
}

func TestLoadFacilitiesCSV(t *testing.T) {
	path := writeTemp(t, "facilities.csv",
		"facility_id,name,facility_type,region,district,description\n"+
			"fac-1,Tamale Central,District Hospital,Northern,Tamale,24-hour emergency department\n"+
			",Ho Clinic,Clinic,Volta,Ho,\n")

	facilities, err := LoadFacilitiesCSV(path)
	if err != nil {
		t.Fatalf("LoadFacilitiesCSV failed: %v", err)
	}
	if len(facilities) != 2 {
		t.Fatalf("expected 2 facilities, got %d", len(facilities))
	}

	if facilities[0].ID != "fac-1" || facilities[0].Type != "District Hospital" {
		t.Errorf("unexpected facility: %+v", facilities[0])
	}

	// Rows without an id get a generated one
	if facilities[1].ID == "" {
		t.Error("expected generated id for row without one")
	}
}

func TestLoadFacilitiesCSV_ColumnAliases(t *testing.T) {
	path := writeTemp(t, "facilities.csv",
		"row_id,facility_name,facility_type_simple,address_stateorregion,address_city,facility_context\n"+
			"r1,Korle Bu,Teaching Hospital,Greater Accra,Accra,major referral hospital\n")

	facilities, err := LoadFacilitiesCSV(path)
	if err != nil {
		t.Fatalf("LoadFacilitiesCSV failed: %v", err)
	}
	if len(facilities) != 1 {
		t.Fatalf("expected 1 facility, got %d", len(facilities))
	}

	f := facilities[0]
	if f.ID != "r1" || f.Name != "Korle Bu" || f.Region != "Greater Accra" || f.District != "Accra" {
		t.Errorf("alias columns not mapped: %+v", f)
	}
	if f.Description != "major referral hospital" {
		t.Errorf("expected description from facility_context, got %q", f.Description)
	}
}

func TestLoadFacilitiesCSV_RequiresName(t *testing.T) {
	path := writeTemp(t, "facilities.csv", "facility_id,name\nfac-1,\n")

	if _, err := LoadFacilitiesCSV(path); err == nil {
		t.Error("expected error for row without a name")
	}
}

func TestCleanText(t *testing.T) {
	cases := map[string]string{
		"plain  text   here":                      "plain text here",
		"<p>Emergency <b>unit</b></p>":            "Emergency unit",
		"<div>beds</div><style>p{}</style>":       "beds",
		"<script>evil()</script>visible":          "visible",
		"":                                        "",
		"a < b but not markup, just a comparison": "a < b but not markup, just a comparison",
	}
	for in, want := range cases {
		if got := CleanText(in); got != want {
			t.Errorf("CleanText(%q) = %q, want %q", in, got, want)
		}
	}
}
