package solver

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kochimetro/induct-scheduler/pkg/modelbuilder"
)

// GreedySolver is the fallback strategy taken whenever the primary
// solver reports infeasible or errors. It selects the top-N trainsets
// by their objective score coefficient, then assigns bays in that same
// order, each trainset taking its best still-available bay. H1 and H3
// hold by construction; when fewer bays are available than trainsets
// selected, the last ones get no bay, and any unmet bound (H2 or soft)
// makes the status feasible rather than optimal.
type GreedySolver struct{}

// Name identifies this solver in reporting and logs.
func (GreedySolver) Name() string { return "greedy" }

// Solve implements Solver. The budget is accepted for interface
// conformance but unused: the greedy projection is O(n log n) and
// always finishes well inside any realistic budget.
func (GreedySolver) Solve(ctx context.Context, m modelbuilder.Model, _ time.Duration) Result {
	select {
	case <-ctx.Done():
		return Result{Status: StatusError, Err: ctx.Err()}
	default:
	}

	target := rosterSize(m)
	fixedZero := fixedZeroTrainsets(m)
	scoreOf := scoreCoefficients(m)

	candidates := make([]uuid.UUID, 0, len(m.SelectVars))
	for _, v := range m.SelectVars {
		if fixedZero[v.Trainset] {
			continue
		}
		candidates = append(candidates, v.Trainset)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		si, sj := scoreOf[candidates[i]], scoreOf[candidates[j]]
		if si != sj {
			return si > sj
		}
		return candidates[i].String() < candidates[j].String()
	})

	if len(candidates) < target {
		return Result{Status: StatusInfeasible}
	}
	selected := candidates[:target]

	valuation := make(map[modelbuilder.VarKey]bool, len(selected)*2)
	for _, t := range selected {
		valuation[modelbuilder.VarKey{Trainset: t}] = true
	}

	assignBaysGreedy(m, selected, valuation)

	status := StatusFeasible
	if satisfied(m, valuation) {
		status = StatusOptimal
	}
	return Result{
		Status:    status,
		Objective: objectiveValue(m, valuation),
		Valuation: valuation,
	}
}

// rosterSize reads the H1 constraint's bound back out of the model
// rather than taking it as a separate parameter, so a GreedySolver is
// interchangeable with any other Solver given just the Model.
func rosterSize(m modelbuilder.Model) int {
	for _, c := range m.Constraints {
		if c.Name == "H1_roster_size" && c.Bound.Lo != nil {
			return *c.Bound.Lo
		}
	}
	return 0
}

func fixedZeroTrainsets(m modelbuilder.Model) map[uuid.UUID]bool {
	out := map[uuid.UUID]bool{}
	for _, c := range m.Constraints {
		if !strings.HasPrefix(c.Name, "H4_fix_zero_") {
			continue
		}
		if c.Bound.Hi != nil && *c.Bound.Hi == 0 && len(c.Terms) == 1 {
			out[c.Terms[0].Var.Trainset] = true
		}
	}
	return out
}

// scoreCoefficients reads each trainset's x[t] objective coefficient,
// which is round(100*score(t)) by construction of the model builder.
func scoreCoefficients(m modelbuilder.Model) map[uuid.UUID]int {
	out := map[uuid.UUID]int{}
	zero := uuid.UUID{}
	for _, t := range m.Objective.Terms {
		if t.Var.Bay == zero {
			out[t.Var.Trainset] = t.Coeff
		}
	}
	return out
}

// assignBaysGreedy assigns each selected trainset, in the given order,
// to its highest-bonus still-available bay. Deterministic and
// independent of any external iteration order, per the redesigned
// fallback behaviour: two runs over the same model produce the same
// bay map.
func assignBaysGreedy(m modelbuilder.Model, selected []uuid.UUID, valuation map[modelbuilder.VarKey]bool) {
	type bonusEntry struct {
		bay   uuid.UUID
		bonus int
	}
	bonuses := make(map[uuid.UUID][]bonusEntry, len(selected))
	for _, t := range m.Objective.Terms {
		if t.Var.Bay == (uuid.UUID{}) {
			continue
		}
		bonuses[t.Var.Trainset] = append(bonuses[t.Var.Trainset], bonusEntry{bay: t.Var.Bay, bonus: t.Coeff})
	}
	for _, entries := range bonuses {
		sort.SliceStable(entries, func(i, j int) bool {
			if entries[i].bonus != entries[j].bonus {
				return entries[i].bonus > entries[j].bonus
			}
			return entries[i].bay.String() < entries[j].bay.String()
		})
	}

	taken := map[uuid.UUID]bool{}
	for _, t := range selected {
		for _, e := range bonuses[t] {
			if taken[e.bay] {
				continue
			}
			valuation[modelbuilder.VarKey{Trainset: t, Bay: e.bay}] = true
			taken[e.bay] = true
			break
		}
	}
}
