package impact

import (
	"math"
	"testing"
)

func TestAssessHealthcareBaseline(t *testing.T) {
	svc := NewService()

	assessment, err := svc.Assess("Healthcare", 0, 15)
	if err != nil {
		t.Fatalf("Assess error: %v", err)
	}
	// 50,000 records at $429 each, 15% annual probability.
	if assessment.RecordsAtRisk != 50_000 {
		t.Fatalf("records = %d, want industry average 50000", assessment.RecordsAtRisk)
	}
	if math.Abs(assessment.TotalBreachCostUSD-21_450_000) > 1e-6 {
		t.Fatalf("breach cost = %f, want 21450000", assessment.TotalBreachCostUSD)
	}
	if math.Abs(assessment.ExpectedAnnualLoss-3_217_500) > 1e-6 {
		t.Fatalf("expected loss = %f, want 3217500", assessment.ExpectedAnnualLoss)
	}
	wantROI := (3_217_500.0 - 150_000.0) / 150_000.0 * 100
	if math.Abs(assessment.ROIPercent-wantROI) > 1e-6 {
		t.Fatalf("roi = %f, want %f", assessment.ROIPercent, wantROI)
	}
}

func TestAssessCustomRecords(t *testing.T) {
	svc := NewService()

	assessment, err := svc.Assess("Retail / E-Commerce", 10_000, 5)
	if err != nil {
		t.Fatalf("Assess error: %v", err)
	}
	if math.Abs(assessment.TotalBreachCostUSD-1_690_000) > 1e-6 {
		t.Fatalf("breach cost = %f, want 1690000", assessment.TotalBreachCostUSD)
	}
	// Expected loss below guardrail cost means negative ROI.
	if assessment.ROIPercent >= 0 {
		t.Fatalf("roi = %f, want negative", assessment.ROIPercent)
	}
}

func TestProfileLookup(t *testing.T) {
	svc := NewService()

	if got := len(svc.Profiles()); got != 4 {
		t.Fatalf("expected 4 profiles, got %d", got)
	}
	if _, ok := svc.Profile("financial"); !ok {
		t.Fatal("prefix lookup failed")
	}
	if _, ok := svc.Profile("agriculture"); ok {
		t.Fatal("lookup should miss for unknown industries")
	}
}

func TestAssessValidation(t *testing.T) {
	svc := NewService()

	if _, err := svc.Assess("Mining", 1000, 15); err == nil {
		t.Fatal("unknown industry must error")
	}
	if _, err := svc.Assess("Healthcare", 1000, 0); err == nil {
		t.Fatal("zero probability must error")
	}
	if _, err := svc.Assess("Healthcare", 1000, 150); err == nil {
		t.Fatal("probability over 100 must error")
	}
}
