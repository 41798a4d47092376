package solver

import (
	"context"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/kochimetro/induct-scheduler/pkg/modelbuilder"
)

// LocalSearchConfig tunes the simulated-annealing acceptance schedule
// and tabu-list size.
type LocalSearchConfig struct {
	Seed         int64
	InitialTemp  float64
	CoolingRate  float64
	MinTemp      float64
	TabuSize     int
	PlateauIters int // consecutive non-improving iterations before stopping early
}

// DefaultLocalSearchConfig returns settings tuned for a few thousand
// iterations inside a 10-15 second budget.
func DefaultLocalSearchConfig(seed int64) LocalSearchConfig {
	return LocalSearchConfig{
		Seed:         seed,
		InitialTemp:  100,
		CoolingRate:  0.995,
		MinTemp:      0.01,
		TabuSize:     64,
		PlateauIters: 500,
	}
}

// LocalSearchSolver searches the selection/assignment space with
// simulated annealing, using a tabu list to avoid immediately undoing
// a recent move. It plays the role of the CP/MIP backend the Solver
// interface is built to abstract over; the core never imports any
// solver-specific type outside this package.
//
// Determinism: every random choice is drawn from a rand.Rand seeded
// from Config.Seed, never from the wall clock, so two Solve calls over
// the same model and seed that stop after the same number of steps
// produce the same valuation. The wall-clock budget can end the search
// at a different step on each run, in which case the results may differ.
type LocalSearchSolver struct {
	Config LocalSearchConfig
}

// Name identifies this solver in reporting and logs.
func (s LocalSearchSolver) Name() string { return "local_search" }

// Solve implements Solver.
func (s LocalSearchSolver) Solve(ctx context.Context, m modelbuilder.Model, budget time.Duration) Result {
	deadline := time.Now().Add(budget)
	rng := rand.New(rand.NewSource(s.Config.Seed))

	current, ok := greedyStart(m)
	if !ok {
		return Result{Status: StatusInfeasible}
	}
	currentObj := objectiveValue(m, current)

	// best only ever holds a valuation that satisfies every constraint,
	// soft bounds included; the greedy start itself may not, since
	// greedy picks top-N by score without regard to S1-S6.
	var best map[modelbuilder.VarKey]bool
	bestObj := math.MinInt
	if satisfied(m, current) {
		best = cloneValuation(current)
		bestObj = currentObj
	}

	tabu := newTabuList(s.Config.TabuSize)
	temp := s.Config.InitialTemp
	plateau := 0

	moves := buildNeighborhoodMoves(m)
	if len(moves) == 0 {
		return finishResult(m, best, bestObj)
	}

	for temp > s.Config.MinTemp {
		select {
		case <-ctx.Done():
			return finishTimeoutResult(m, best, bestObj, ctx.Err())
		default:
		}
		if time.Now().After(deadline) {
			return finishResult(m, best, bestObj)
		}

		mv := moves[rng.Intn(len(moves))]
		if tabu.contains(mv.key) {
			continue
		}
		candidate, applied := mv.apply(current)
		if !applied || !satisfied(m, candidate) {
			plateau++
			if plateau > s.Config.PlateauIters {
				break
			}
			continue
		}
		candObj := objectiveValue(m, candidate)
		delta := float64(candObj - currentObj)

		if delta > 0 || boltzmannAccept(rng, delta, temp) {
			current = candidate
			currentObj = candObj
			tabu.push(mv.key)
			if candObj > bestObj {
				best = cloneValuation(candidate)
				bestObj = candObj
				plateau = 0
			} else {
				plateau++
			}
		} else {
			plateau++
		}
		if plateau > s.Config.PlateauIters {
			break
		}
		temp *= s.Config.CoolingRate
	}

	return finishResult(m, best, bestObj)
}

func finishResult(m modelbuilder.Model, valuation map[modelbuilder.VarKey]bool, objective int) Result {
	if valuation == nil {
		return Result{Status: StatusInfeasible}
	}
	status := StatusFeasible
	if satisfied(m, valuation) {
		status = StatusOptimal
	} else {
		return Result{Status: StatusInfeasible}
	}
	return Result{Status: status, Objective: objective, Valuation: valuation}
}

func finishTimeoutResult(m modelbuilder.Model, valuation map[modelbuilder.VarKey]bool, objective int, err error) Result {
	if len(valuation) == 0 || !satisfied(m, valuation) {
		return Result{Status: StatusError, Err: err}
	}
	return Result{Status: StatusTimeout, Objective: objective, Valuation: valuation, Err: err}
}

func boltzmannAccept(rng *rand.Rand, delta, temp float64) bool {
	if temp <= 0 {
		return false
	}
	p := math.Exp(delta / temp)
	return rng.Float64() < p
}

func cloneValuation(v map[modelbuilder.VarKey]bool) map[modelbuilder.VarKey]bool {
	out := make(map[modelbuilder.VarKey]bool, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// greedyStart seeds the search with the greedy solver's projection. It
// fails only when that projection is infeasible or empty; the returned
// start may still violate soft bounds.
func greedyStart(m modelbuilder.Model) (map[modelbuilder.VarKey]bool, bool) {
	res := GreedySolver{}.Solve(context.Background(), m, 0)
	if res.Status == StatusInfeasible || res.Valuation == nil {
		return nil, false
	}
	return res.Valuation, true
}

// tabuList rejects the last TabuSize move keys: a map-backed set for
// lookup plus a slice recording insertion order, so the oldest key is
// evicted once the window is full. The keys are small fixed structs,
// used directly as map keys.
type tabuList struct {
	size  int
	seen  map[moveKey]int
	order []moveKey
	tick  int
}

func newTabuList(size int) *tabuList {
	if size <= 0 {
		size = 1
	}
	return &tabuList{size: size, seen: map[moveKey]int{}}
}

func (t *tabuList) contains(k moveKey) bool {
	_, ok := t.seen[k]
	return ok
}

func (t *tabuList) push(k moveKey) {
	t.tick++
	t.seen[k] = t.tick
	t.order = append(t.order, k)
	if len(t.order) > t.size {
		old := t.order[0]
		t.order = t.order[1:]
		delete(t.seen, old)
	}
}

// moveKey identifies a move for tabu purposes.
type moveKey struct {
	kind string
	a, b uuid.UUID
}

// move is one candidate neighborhood step: swap a selected trainset for
// an unselected one, or swap the bay assignments of two selected
// trainsets. apply returns the mutated valuation and whether the move
// was structurally applicable (e.g. a swap needs both sides present).
type move struct {
	key   moveKey
	apply func(map[modelbuilder.VarKey]bool) (map[modelbuilder.VarKey]bool, bool)
}

// buildNeighborhoodMoves enumerates the swap-selection and swap-bay move
// families over the model's variables. Enumerating once per Solve call
// keeps the solver itself free of named trainset/bay logic: it moves
// variables, the model builder decides what they mean.
func buildNeighborhoodMoves(m modelbuilder.Model) []move {
	var trainsets []uuid.UUID
	for _, v := range m.SelectVars {
		trainsets = append(trainsets, v.Trainset)
	}
	sort.Slice(trainsets, func(i, j int) bool { return trainsets[i].String() < trainsets[j].String() })

	bayVarsByTrainset := map[uuid.UUID][]modelbuilder.VarKey{}
	for _, v := range m.AssignVars {
		bayVarsByTrainset[v.Trainset] = append(bayVarsByTrainset[v.Trainset], v)
	}

	var moves []move
	for i := 0; i < len(trainsets); i++ {
		for j := i + 1; j < len(trainsets); j++ {
			a, b := trainsets[i], trainsets[j]
			moves = append(moves, move{
				key: moveKey{kind: "swap_select", a: a, b: b},
				apply: func(v map[modelbuilder.VarKey]bool) (map[modelbuilder.VarKey]bool, bool) {
					return swapSelection(v, a, b, bayVarsByTrainset)
				},
			})
			moves = append(moves, move{
				key: moveKey{kind: "swap_bay", a: a, b: b},
				apply: func(v map[modelbuilder.VarKey]bool) (map[modelbuilder.VarKey]bool, bool) {
					return swapBays(v, a, b)
				},
			})
		}
	}
	return moves
}

// swapSelection toggles trainset a out and b in, if a is currently
// selected and b is not; a's bay (if any) is freed and given to b. If a
// had no bay, b is left unbayed (H2 then requires a follow-up bay
// assignment move or satisfied() rejects the candidate, so the search
// avoids orphaning b).
func swapSelection(v map[modelbuilder.VarKey]bool, a, b uuid.UUID, bayVars map[uuid.UUID][]modelbuilder.VarKey) (map[modelbuilder.VarKey]bool, bool) {
	xa := modelbuilder.VarKey{Trainset: a}
	xb := modelbuilder.VarKey{Trainset: b}
	if !v[xa] || v[xb] {
		return nil, false
	}
	out := cloneValuation(v)
	out[xa] = false
	out[xb] = true
	var freedBay modelbuilder.VarKey
	for _, bv := range bayVars[a] {
		if out[bv] {
			out[bv] = false
			freedBay = bv
			break
		}
	}
	emptyBay := uuid.UUID{}
	for _, bv := range bayVars[b] {
		if freedBay.Bay != emptyBay && bv.Bay == freedBay.Bay {
			out[bv] = true
			break
		}
	}
	return out, true
}

// swapBays exchanges the bay assignments of two currently selected
// trainsets.
func swapBays(v map[modelbuilder.VarKey]bool, a, b uuid.UUID) (map[modelbuilder.VarKey]bool, bool) {
	xa := modelbuilder.VarKey{Trainset: a}
	xb := modelbuilder.VarKey{Trainset: b}
	if !v[xa] || !v[xb] {
		return nil, false
	}
	out := cloneValuation(v)
	var bayA, bayB modelbuilder.VarKey
	found := 0
	for k, val := range v {
		if !val {
			continue
		}
		if k.Trainset == a && k.Bay != (uuid.UUID{}) {
			bayA = k
			found++
		}
		if k.Trainset == b && k.Bay != (uuid.UUID{}) {
			bayB = k
			found++
		}
	}
	if found != 2 {
		return nil, false
	}
	out[bayA] = false
	out[bayB] = false
	out[modelbuilder.VarKey{Trainset: a, Bay: bayB.Bay}] = true
	out[modelbuilder.VarKey{Trainset: b, Bay: bayA.Bay}] = true
	return out, true
}
