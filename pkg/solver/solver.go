// Package solver adapts the assembled constraint model to a concrete
// search strategy. Solver is the sole seam between the core and any
// integer/constraint-programming backend; callers depend only on this
// interface, never on a particular implementation's types.
package solver

import (
	"context"
	"time"

	"github.com/kochimetro/induct-scheduler/pkg/modelbuilder"
)

// Status is the solver's verdict on one solve call.
type Status string

const (
	StatusOptimal    Status = "optimal"
	StatusFeasible   Status = "feasible"
	StatusInfeasible Status = "infeasible"
	StatusTimeout    Status = "timeout"
	StatusError      Status = "error"
)

// Result is what a Solver returns: the verdict, the objective value
// achieved (meaningless when infeasible or erroring), and the variable
// valuation keyed the same way the model's terms are keyed.
type Result struct {
	Status    Status
	Objective int
	Valuation map[modelbuilder.VarKey]bool
	Err       error
}

// Solver is implemented by every search strategy the core can submit a
// model to: a simulated-annealing local search, a greedy stand-in, or
// (outside this package's reach) a true CP/MIP backend.
type Solver interface {
	Name() string
	Solve(ctx context.Context, m modelbuilder.Model, budget time.Duration) Result
}

// satisfied reports whether every constraint term in m sums within its
// bound under valuation. Used by every Solver to check candidate
// solutions before returning them.
func satisfied(m modelbuilder.Model, valuation map[modelbuilder.VarKey]bool) bool {
	for _, c := range m.Constraints {
		sum := 0
		for _, t := range c.Terms {
			if valuation[t.Var] {
				sum += t.Coeff
			}
		}
		if c.Bound.Lo != nil && sum < *c.Bound.Lo {
			return false
		}
		if c.Bound.Hi != nil && sum > *c.Bound.Hi {
			return false
		}
	}
	return true
}

// objectiveValue sums the objective's terms under valuation.
func objectiveValue(m modelbuilder.Model, valuation map[modelbuilder.VarKey]bool) int {
	total := 0
	for _, t := range m.Objective.Terms {
		if valuation[t.Var] {
			total += t.Coeff
		}
	}
	return total
}
