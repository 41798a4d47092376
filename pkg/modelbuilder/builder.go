package modelbuilder

import (
	"github.com/kochimetro/induct-scheduler/pkg/model"
)

// Options carries the tunable thresholds the soft constraints and bay
// bonus compare against; the zero value is invalid, use DefaultOptions.
type Options struct {
	RosterSize          int
	DepotBalanceLo      int
	DepotBalanceHi      int
	AgeNewYearsMax      int
	CriticalBrandingMin int
	MileageBandLo       float64
	MileageBandHi       float64
	HomeBayMin          int
	SnapshotYear        int
	MaxPositionOrder    int
}

// DefaultOptions returns the thresholds matching the out-of-the-box
// constraint model.
func DefaultOptions(snapshotYear int) Options {
	return Options{
		RosterSize:          24,
		DepotBalanceLo:      9,
		DepotBalanceHi:      15,
		AgeNewYearsMax:      5,
		CriticalBrandingMin: 6,
		MileageBandLo:       50000,
		MileageBandHi:       150000,
		HomeBayMin:          18,
		SnapshotYear:        snapshotYear,
	}
}

// TrainsetFacts is the subset of a trainset's derived facts the builder
// needs to decide which soft constraints apply and with what coefficients.
type TrainsetFacts struct {
	Trainset          *model.Trainset
	Score             model.Score
	Tier              model.AdmissionTier
	FitnessInvalid    bool
	HasBlockingJob    bool
	ActiveCritical    bool // active critical branding commitment, any achieved ratio
	ActiveCriticalLow bool // active critical branding with achieved/target < 0.5
	HomeBayAvailable  bool
}

// Build assembles the model for the admitted pool and the offered bays.
// admissions must come from eligibility.Run; bays should be the full set
// FleetDataSource.Bays returned, available or not — H3 only binds
// available ones by omitting y-vars for blocked/occupied bays.
func Build(facts []TrainsetFacts, bays []*model.StablingBay, opt Options) Model {
	m := Model{}
	bayByID := make(map[model.BayID]*model.StablingBay, len(bays))
	var availableBays []*model.StablingBay
	for _, b := range bays {
		bayByID[b.BayID] = b
		if b.Available() {
			availableBays = append(availableBays, b)
		}
	}

	for _, f := range facts {
		m.SelectVars = append(m.SelectVars, VarKey{Trainset: f.Trainset.ID})
		for _, b := range availableBays {
			m.AssignVars = append(m.AssignVars, VarKey{Trainset: f.Trainset.ID, Bay: b.BayID})
		}
	}

	m.Constraints = append(m.Constraints, buildH1(m.SelectVars, opt.RosterSize))
	m.Constraints = append(m.Constraints, buildH2(facts, availableBays)...)
	m.Constraints = append(m.Constraints, buildH3(facts, availableBays)...)
	m.Constraints = append(m.Constraints, buildH4(facts, opt.RosterSize)...)

	soft, omitted := buildSoft(facts, opt)
	m.Constraints = append(m.Constraints, soft...)
	m.OmittedSoft = omitted

	m.Objective = buildObjective(facts, availableBays, opt)
	return m
}

// buildH1 pins the selection count to exactly the roster size.
func buildH1(selectVars []VarKey, rosterSize int) Constraint {
	terms := make([]Term, len(selectVars))
	for i, v := range selectVars {
		terms[i] = Term{Var: v, Coeff: 1}
	}
	return Constraint{
		Name:  "H1_roster_size",
		Kind:  Hard,
		Terms: terms,
		Bound: Bound{Lo: intPtr(rosterSize), Hi: intPtr(rosterSize)},
	}
}

// buildH2 ties each trainset's bay assignments to its selection var:
// Σ_b y[t,b] = x[t], expressed as Σ_b y[t,b] - x[t] = 0.
func buildH2(facts []TrainsetFacts, bays []*model.StablingBay) []Constraint {
	out := make([]Constraint, 0, len(facts))
	for _, f := range facts {
		terms := []Term{{Var: VarKey{Trainset: f.Trainset.ID}, Coeff: -1}}
		for _, b := range bays {
			terms = append(terms, Term{Var: VarKey{Trainset: f.Trainset.ID, Bay: b.BayID}, Coeff: 1})
		}
		out = append(out, Constraint{
			Name:  "H2_bay_link_" + f.Trainset.ID.String(),
			Kind:  Hard,
			Terms: terms,
			Bound: Bound{Lo: intPtr(0), Hi: intPtr(0)},
		})
	}
	return out
}

// buildH3 caps each bay at one occupant: Σ_t y[t,b] ≤ 1.
func buildH3(facts []TrainsetFacts, bays []*model.StablingBay) []Constraint {
	out := make([]Constraint, 0, len(bays))
	for _, b := range bays {
		var terms []Term
		for _, f := range facts {
			terms = append(terms, Term{Var: VarKey{Trainset: f.Trainset.ID, Bay: b.BayID}, Coeff: 1})
		}
		out = append(out, Constraint{
			Name:  "H3_bay_capacity_" + b.BayID.String(),
			Kind:  Hard,
			Terms: terms,
			Bound: Bound{Hi: intPtr(1)},
		})
	}
	return out
}

// buildH4 fixes x[t]=0 for a Tier-F trainset with invalid fitness or a
// blocking job only when enough Tier S/R candidates already cover the
// roster size; otherwise it leaves the variable free, since the gate
// has already proven this trainset is needed.
func buildH4(facts []TrainsetFacts, rosterSize int) []Constraint {
	srCount := 0
	for _, f := range facts {
		if f.Tier == model.TierStrict || f.Tier == model.TierRelaxed {
			srCount++
		}
	}
	var out []Constraint
	for _, f := range facts {
		if f.Tier != model.TierFallback {
			continue
		}
		if !f.FitnessInvalid && !f.HasBlockingJob {
			continue
		}
		if srCount < rosterSize {
			continue
		}
		out = append(out, Constraint{
			Name:  "H4_fix_zero_" + f.Trainset.ID.String(),
			Kind:  Hard,
			Terms: []Term{{Var: VarKey{Trainset: f.Trainset.ID}, Coeff: 1}},
			Bound: Bound{Lo: intPtr(0), Hi: intPtr(0)},
		})
	}
	return out
}
