// Package modelbuilder assembles the decision variables, hard and soft
// constraints, and linear objective the solver adapter consumes. It
// owns no package-level state: every call produces a fresh Model.
package modelbuilder

import (
	"github.com/kochimetro/induct-scheduler/pkg/model"
)

// VarKey identifies a decision variable. Bay is the zero UUID for a
// selection variable x[t]; set for an assignment variable y[t,b].
type VarKey struct {
	Trainset model.TrainsetID
	Bay      model.BayID
}

// ConstraintKind distinguishes hard from soft constraints for reporting.
type ConstraintKind string

const (
	Hard ConstraintKind = "hard"
	Soft ConstraintKind = "soft"
)

// Bound is an inclusive linear bound lo ≤ Σ coeff·var ≤ hi. A nil bound
// side means unbounded on that side.
type Bound struct {
	Lo *int
	Hi *int
}

// Term is one coefficient·variable pair in a linear expression.
type Term struct {
	Var   VarKey
	Coeff int
}

// Constraint is one named linear constraint over the model's variables.
type Constraint struct {
	Name  string
	Kind  ConstraintKind
	Terms []Term
	Bound Bound
}

// Objective is the linear expression the solver maximizes.
type Objective struct {
	Terms []Term
}

// Model is the fully assembled constraint-programming problem for one
// Optimise invocation.
type Model struct {
	SelectVars  []VarKey // x[t], one per eligible trainset
	AssignVars  []VarKey // y[t,b], one per (trainset, bay) pair offered
	Constraints []Constraint
	Objective   Objective
	OmittedSoft []string // soft constraint names skipped by the sufficiency rule
}

// intPtr is a small helper so callers can write bound literals inline.
func intPtr(v int) *int { return &v }
