package solver

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/kochimetro/induct-scheduler/pkg/model"
	"github.com/kochimetro/induct-scheduler/pkg/modelbuilder"
)

func buildTinyModel(t *testing.T, n, rosterSize int, bayCount int) modelbuilder.Model {
	t.Helper()
	var facts []modelbuilder.TrainsetFacts
	for i := 0; i < n; i++ {
		facts = append(facts, modelbuilder.TrainsetFacts{
			Trainset: &model.Trainset{BaseModel: model.BaseModel{ID: uuid.New()}, HomeDepot: model.DepotA, YearBuilt: 2020},
			Score:    model.Score{Total: float64(50 + i)},
			Tier:     model.TierStrict,
		})
	}
	var bays []*model.StablingBay
	for i := 0; i < bayCount; i++ {
		bays = append(bays, &model.StablingBay{BayID: uuid.New(), Depot: model.DepotA, PositionOrder: i + 1})
	}
	opt := modelbuilder.DefaultOptions(2026)
	opt.RosterSize = rosterSize
	return modelbuilder.Build(facts, bays, opt)
}

func TestGreedySolverRespectsRosterSizeAndBayCapacity(t *testing.T) {
	m := buildTinyModel(t, 10, 6, 6)
	res := GreedySolver{}.Solve(context.Background(), m, 0)
	if res.Status != StatusOptimal && res.Status != StatusFeasible {
		t.Fatalf("expected a feasible greedy solution, got status %s", res.Status)
	}
	selected := 0
	for k, v := range res.Valuation {
		if v && k.Bay == (uuid.UUID{}) {
			selected++
		}
	}
	if selected != 6 {
		t.Fatalf("expected exactly 6 selected trainsets, got %d", selected)
	}
	if !satisfied(m, res.Valuation) {
		t.Fatalf("expected greedy solution to satisfy every constraint")
	}
}

func TestGreedySolverInfeasibleWhenPoolSmallerThanRoster(t *testing.T) {
	m := buildTinyModel(t, 3, 6, 6)
	res := GreedySolver{}.Solve(context.Background(), m, 0)
	if res.Status != StatusInfeasible {
		t.Fatalf("expected infeasible when fewer trainsets than roster size, got %s", res.Status)
	}
}

func TestGreedySolverIsDeterministic(t *testing.T) {
	m := buildTinyModel(t, 12, 6, 6)
	a := GreedySolver{}.Solve(context.Background(), m, 0)
	b := GreedySolver{}.Solve(context.Background(), m, 0)
	if a.Objective != b.Objective {
		t.Fatalf("expected deterministic objective across runs, got %d and %d", a.Objective, b.Objective)
	}
	for k, v := range a.Valuation {
		if b.Valuation[k] != v {
			t.Fatalf("expected identical valuations across runs for key %+v", k)
		}
	}
}

func TestLocalSearchSolverSameSeedIsDeterministic(t *testing.T) {
	m := buildTinyModel(t, 12, 6, 6)
	cfg := DefaultLocalSearchConfig(42)
	cfg.PlateauIters = 50

	a := LocalSearchSolver{Config: cfg}.Solve(context.Background(), m, 200*time.Millisecond)
	b := LocalSearchSolver{Config: cfg}.Solve(context.Background(), m, 200*time.Millisecond)
	if a.Objective != b.Objective {
		t.Fatalf("expected same seed to reproduce the same objective, got %d and %d", a.Objective, b.Objective)
	}
}

func TestLocalSearchSolverResultSatisfiesEveryConstraint(t *testing.T) {
	m := buildTinyModel(t, 15, 6, 6)
	cfg := DefaultLocalSearchConfig(7)
	cfg.PlateauIters = 200

	ls := LocalSearchSolver{Config: cfg}.Solve(context.Background(), m, 300*time.Millisecond)
	if ls.Status != StatusOptimal && ls.Status != StatusFeasible {
		t.Fatalf("expected a feasible local search result, got %s", ls.Status)
	}
	if !satisfied(m, ls.Valuation) {
		t.Fatalf("expected the reported incumbent to satisfy every constraint, including soft bounds")
	}
	if got := objectiveValue(m, ls.Valuation); got != ls.Objective {
		t.Fatalf("expected reported objective %d to match the valuation's actual objective %d", ls.Objective, got)
	}
}

func TestLocalSearchSolverInfeasibleWhenGreedyStartInfeasible(t *testing.T) {
	m := buildTinyModel(t, 3, 6, 6)
	res := LocalSearchSolver{Config: DefaultLocalSearchConfig(1)}.Solve(context.Background(), m, 50*time.Millisecond)
	if res.Status != StatusInfeasible {
		t.Fatalf("expected infeasible when the greedy seed itself is infeasible, got %s", res.Status)
	}
}
