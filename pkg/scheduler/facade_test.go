package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/kochimetro/induct-scheduler/internal/fixture"
	schedErrors "github.com/kochimetro/induct-scheduler/pkg/errors"
	"github.com/kochimetro/induct-scheduler/pkg/model"
)

func snapshotTime() time.Time {
	return time.Date(2026, 8, 3, 6, 0, 0, 0, time.UTC)
}

func TestOptimiseGoldenPathFillsRoster(t *testing.T) {
	ds := fixture.Generate(40, 15)
	sched := New(ds)

	req := Request{SnapshotTime: snapshotTime(), RosterSize: 12, SolverBudgetSeconds: 1, Seed: 1}
	res, err := sched.Optimise(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Selected) != 12 {
		t.Fatalf("expected 12 selected trainsets, got %d", len(res.Selected))
	}
	if res.Status == StatusInfeasible {
		t.Fatalf("did not expect an infeasible result")
	}
}

func TestOptimiseEmergencyJobCardExcludesTopScorer(t *testing.T) {
	b := fixture.NewBuilder()
	top := b.AddTrainset("TS001", model.VendorA, model.DepotA, 2024, 80000)
	b.AddJobCard(top, model.PriorityEmergency)
	b.SetBranding(top, model.BrandingCritical, 10, 100, "2026-01-01", "2026-12-31")
	for i := 0; i < 5; i++ {
		b.AddTrainset("TS0"+string(rune('2'+i)), model.VendorA, model.DepotA, 2024, 80000)
	}
	b.AddBay(model.DepotA, "line-1", 1)
	b.AddBay(model.DepotA, "line-1", 2)
	b.AddBay(model.DepotA, "line-1", 3)

	ds := fixture.NewSource(b)
	sched := New(ds)
	req := Request{SnapshotTime: snapshotTime(), RosterSize: 3, SolverBudgetSeconds: 1, EnableRelaxation: true, Seed: 1}
	res, err := sched.Optimise(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, s := range res.Selected {
		if s.Trainset.ID == top.ID {
			t.Fatalf("expected the open-emergency trainset to be excluded from the strict/relaxed roster")
		}
	}
}

func TestOptimiseInsufficientFleetSurfacesError(t *testing.T) {
	b := fixture.NewBuilder()
	b.AddTrainset("TS001", model.VendorA, model.DepotA, 2024, 80000)
	ds := fixture.NewSource(b)
	sched := New(ds)

	req := Request{SnapshotTime: snapshotTime(), RosterSize: 5, SolverBudgetSeconds: 1}
	_, err := sched.Optimise(context.Background(), req)
	if err == nil {
		t.Fatalf("expected an insufficient fleet error")
	}
	if !schedErrors.Is(err, schedErrors.CodeInsufficientFleet) {
		t.Fatalf("expected CodeInsufficientFleet, got %v", err)
	}
}

func TestOptimiseNegativeRosterSizeIsInvalidInput(t *testing.T) {
	ds := fixture.Generate(10, 5)
	sched := New(ds)
	_, err := sched.Optimise(context.Background(), Request{SnapshotTime: snapshotTime(), RosterSize: -1})
	if !schedErrors.Is(err, schedErrors.CodeInvalidInput) {
		t.Fatalf("expected CodeInvalidInput, got %v", err)
	}
}

func TestOptimiseIsDeterministicForFixedSeed(t *testing.T) {
	ds := fixture.Generate(30, 12)
	req := Request{SnapshotTime: snapshotTime(), RosterSize: 10, SolverBudgetSeconds: 1, Seed: 9}

	a, err := New(ds).Optimise(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := New(ds).Optimise(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.ObjectiveValue != b.ObjectiveValue {
		t.Fatalf("expected the same seed to reproduce the same objective, got %d and %d", a.ObjectiveValue, b.ObjectiveValue)
	}
	if len(a.Selected) != len(b.Selected) {
		t.Fatalf("expected the same seed to reproduce the same roster size")
	}
}
