// Package extractor turns a solver valuation into the Roster the rest
// of the system reports on, deriving a human-readable reason for every
// selected and rejected trainset.
package extractor

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/kochimetro/induct-scheduler/pkg/model"
	"github.com/kochimetro/induct-scheduler/pkg/modelbuilder"
	"github.com/kochimetro/induct-scheduler/pkg/scoring"
	"github.com/kochimetro/induct-scheduler/pkg/solver"
)

// ScoreThreshold is the cutoff below which an unselected trainset is
// reported as excluded "on score" rather than "not selected by
// optimisation".
const ScoreThreshold = 30.0

// GateExcluded is a trainset the eligibility gate never admitted to
// the model, with the reason the gate excluded it: maintenance status,
// an open emergency job card, or simply not needed once a stricter tier
// already covered the roster.
type GateExcluded struct {
	Trainset *model.Trainset
	Score    model.Score
	Reason   string
}

// Input bundles everything the extractor needs beyond the raw solver
// result: the admitted facts (in the same order the model was built
// from), the bays offered, and the trainsets the gate excluded outright.
type Input struct {
	Facts        []modelbuilder.TrainsetFacts
	Bays         []*model.StablingBay
	GateExcluded []GateExcluded
	Snapshot     time.Time
}

// Outcome is the extractor's result: the roster plus bookkeeping the
// façade needs to set the overall status and violations list.
type Outcome struct {
	Roster       model.Roster
	FallbackUsed bool
	Violations   []string
}

// Extract builds the Roster from a solver Result. If the result is
// infeasible or errored, it falls back to the greedy solver over the
// same model and records a violation note; this is the only place the
// fallback path is triggered, so callers never need to special-case it.
func Extract(in Input, m modelbuilder.Model, res solver.Result, budget time.Duration) Outcome {
	fallbackUsed := false
	var violations []string

	if res.Status == solver.StatusInfeasible || res.Status == solver.StatusError {
		res = solver.GreedySolver{}.Solve(context.Background(), m, budget)
		fallbackUsed = true
		violations = append(violations, "solver_fallback_used")
	}

	bayByID := make(map[model.BayID]*model.StablingBay, len(in.Bays))
	for _, b := range in.Bays {
		bayByID[b.BayID] = b
	}
	factByID := make(map[model.TrainsetID]modelbuilder.TrainsetFacts, len(in.Facts))
	for _, f := range in.Facts {
		factByID[f.Trainset.ID] = f
	}

	var roster model.Roster
	if res.Valuation != nil {
		for _, f := range in.Facts {
			if !res.Valuation[modelbuilder.VarKey{Trainset: f.Trainset.ID}] {
				continue
			}
			var bay *model.StablingBay
			for k, v := range res.Valuation {
				if v && k.Trainset == f.Trainset.ID && k.Bay != (model.BayID{}) {
					bay = bayByID[k.Bay]
					break
				}
			}
			roster.Selected = append(roster.Selected, model.SelectedEntry{
				Trainset:        f.Trainset,
				Bay:             bay,
				Score:           f.Score.Total,
				Breakdown:       f.Score.Breakdown,
				Tier:            f.Tier,
				SelectionReason: selectionReason(f),
				ActiveCritical:  f.ActiveCritical,
			})
		}
	}

	selectedSet := make(map[model.TrainsetID]bool, len(roster.Selected))
	for _, s := range roster.Selected {
		selectedSet[s.Trainset.ID] = true
	}

	for _, f := range in.Facts {
		if selectedSet[f.Trainset.ID] {
			continue
		}
		roster.Rejected = append(roster.Rejected, model.RejectedEntry{
			Trainset:        f.Trainset,
			Score:           f.Score.Total,
			ExclusionReason: exclusionReason(f),
		})
	}
	for _, g := range in.GateExcluded {
		roster.Rejected = append(roster.Rejected, model.RejectedEntry{
			Trainset:        g.Trainset,
			Score:           g.Score.Total,
			ExclusionReason: g.Reason,
		})
	}

	totalKM := make(map[model.TrainsetID]float64, len(in.Facts)+len(in.GateExcluded))
	for _, f := range in.Facts {
		totalKM[f.Trainset.ID] = f.Trainset.TotalKM
	}
	for _, g := range in.GateExcluded {
		totalKM[g.Trainset.ID] = g.Trainset.TotalKM
	}
	sortSelected(roster.Selected, totalKM)
	sortRejected(roster.Rejected, totalKM)

	return Outcome{Roster: roster, FallbackUsed: fallbackUsed, Violations: violations}
}

// selectionReason returns the first applicable sentence in priority
// order, falling back to the generic multi-criteria explanation.
func selectionReason(f modelbuilder.TrainsetFacts) string {
	switch {
	case f.ActiveCriticalLow:
		return "urgent critical branding"
	case minCertHeadroomAtLeast60(f):
		return "long-term fitness headroom"
	case f.Score.Breakdown.MileageBand >= 18:
		return "needs mileage balancing"
	case f.Score.Breakdown.CleaningRecency == 10:
		return "recently cleaned"
	default:
		return "optimal multi-criteria fit"
	}
}

// minCertHeadroomAtLeast60 approximates "min cert headroom >= 60 d" from
// the fitness dimension score: every valid-and-long-headroom domain
// contributes 8.33, so a trainset whose fitness score already sits at
// the three-domain maximum necessarily has every domain past the 60-day
// mark.
func minCertHeadroomAtLeast60(f modelbuilder.TrainsetFacts) bool {
	return f.Score.Breakdown.Fitness >= 24.9
}

// exclusionReason chooses the first matching clause in the declared
// priority order.
func exclusionReason(f modelbuilder.TrainsetFacts) string {
	switch {
	case f.Trainset.Status == model.StatusMaintenance:
		return "under maintenance — excluded from scheduling"
	case f.FitnessInvalid:
		return "invalid fitness certificates"
	case f.HasBlockingJob:
		return "emergency work order open"
	case f.Score.Total < ScoreThreshold:
		return fmt.Sprintf("score below threshold (%.1f)", f.Score.Total)
	default:
		return "not selected by optimisation"
	}
}

func sortSelected(selected []model.SelectedEntry, totalKM map[model.TrainsetID]float64) {
	sort.SliceStable(selected, func(i, j int) bool {
		a := model.Score{TrainsetID: selected[i].Trainset.ID, Total: selected[i].Score, Breakdown: selected[i].Breakdown}
		b := model.Score{TrainsetID: selected[j].Trainset.ID, Total: selected[j].Score, Breakdown: selected[j].Breakdown}
		return scoring.Less(a, b, totalKM)
	})
}

func sortRejected(rejected []model.RejectedEntry, totalKM map[model.TrainsetID]float64) {
	sort.SliceStable(rejected, func(i, j int) bool {
		a := model.Score{TrainsetID: rejected[i].Trainset.ID, Total: rejected[i].Score}
		b := model.Score{TrainsetID: rejected[j].Trainset.ID, Total: rejected[j].Score}
		return scoring.Less(a, b, totalKM)
	})
}
