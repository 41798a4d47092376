package modelbuilder

import (
	"testing"

	"github.com/google/uuid"

	"github.com/kochimetro/induct-scheduler/pkg/model"
)

func fact(depot model.Depot, tier model.AdmissionTier, total float64) TrainsetFacts {
	return TrainsetFacts{
		Trainset: &model.Trainset{BaseModel: model.BaseModel{ID: uuid.New()}, HomeDepot: depot, YearBuilt: 2020},
		Score:    model.Score{Total: total},
		Tier:     tier,
	}
}

func TestBuildH1PinsSelectionToRosterSize(t *testing.T) {
	facts := []TrainsetFacts{fact(model.DepotA, model.TierStrict, 80), fact(model.DepotB, model.TierStrict, 70)}
	m := Build(facts, nil, DefaultOptions(2026))

	var h1 *Constraint
	for i := range m.Constraints {
		if m.Constraints[i].Name == "H1_roster_size" {
			h1 = &m.Constraints[i]
		}
	}
	if h1 == nil {
		t.Fatalf("expected H1_roster_size constraint")
	}
	if *h1.Bound.Lo != 24 || *h1.Bound.Hi != 24 {
		t.Fatalf("expected H1 bound pinned to roster size 24, got lo=%d hi=%d", *h1.Bound.Lo, *h1.Bound.Hi)
	}
	if len(h1.Terms) != len(facts) {
		t.Fatalf("expected one H1 term per fact, got %d", len(h1.Terms))
	}
}

func TestBuildH4OnlyFixesZeroWhenStrictAndRelaxedCoverRoster(t *testing.T) {
	opt := DefaultOptions(2026)
	opt.RosterSize = 1

	facts := []TrainsetFacts{fact(model.DepotA, model.TierStrict, 90)}
	facts[0].Tier = model.TierStrict
	fallback := fact(model.DepotA, model.TierFallback, 10)
	fallback.FitnessInvalid = true
	facts = append(facts, fallback)

	m := Build(facts, nil, opt)
	found := false
	for _, c := range m.Constraints {
		if c.Name == "H4_fix_zero_"+fallback.Trainset.ID.String() {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected H4 to fix the fallback trainset to zero once Tier S alone covers the roster")
	}
}

func TestBuildH4LeavesFallbackFreeWhenRosterNotYetCovered(t *testing.T) {
	opt := DefaultOptions(2026)
	opt.RosterSize = 5

	fallback := fact(model.DepotA, model.TierFallback, 10)
	fallback.FitnessInvalid = true
	facts := []TrainsetFacts{fact(model.DepotA, model.TierStrict, 90), fallback}

	m := Build(facts, nil, opt)
	for _, c := range m.Constraints {
		if c.Name == "H4_fix_zero_"+fallback.Trainset.ID.String() {
			t.Fatalf("did not expect H4 to fix the fallback trainset when the roster still needs it")
		}
	}
}

func TestBuildOmitsSoftConstraintsBelowSufficiencyThreshold(t *testing.T) {
	facts := []TrainsetFacts{fact(model.DepotA, model.TierStrict, 80)}
	m := Build(facts, nil, DefaultOptions(2026))

	omitted := map[string]bool{}
	for _, name := range m.OmittedSoft {
		omitted[name] = true
	}
	if !omitted["S1_depot_balance"] {
		t.Fatalf("expected S1 omitted with trainsets in only one depot")
	}
	if !omitted["S4_branding_urgency"] {
		t.Fatalf("expected S4 omitted with no active critical branding commitments")
	}
}

func TestS4BrandingUrgencyAppliesRegardlessOfAchievedRatio(t *testing.T) {
	f := fact(model.DepotA, model.TierStrict, 80)
	f.ActiveCritical = true
	f.ActiveCriticalLow = false // already past its achieved-ratio target, still an active critical commitment
	m := Build([]TrainsetFacts{f}, nil, DefaultOptions(2026))

	for _, name := range m.OmittedSoft {
		if name == "S4_branding_urgency" {
			t.Fatalf("expected S4 to stay applied for an active critical commitment even past its achieved ratio")
		}
	}
}

func TestBuildAppliesVendorDiversityAtFourOrMore(t *testing.T) {
	var facts []TrainsetFacts
	for i := 0; i < 4; i++ {
		f := fact(model.DepotA, model.TierStrict, 80)
		f.Trainset.Vendor = model.VendorA
		facts = append(facts, f)
	}
	m := Build(facts, nil, DefaultOptions(2026))
	applied := false
	for _, c := range m.Constraints {
		if c.Name == "S3_vendor_diversity_A" {
			applied = true
		}
	}
	if !applied {
		t.Fatalf("expected S3 applied with exactly 4 Vendor A trainsets")
	}
}

func TestBayBonusFavoursHomeDepotAndLowPositionOrder(t *testing.T) {
	ts := &model.Trainset{HomeDepot: model.DepotA}
	home := &model.StablingBay{Depot: model.DepotA, PositionOrder: 1}
	away := &model.StablingBay{Depot: model.DepotB, PositionOrder: 1}
	farHome := &model.StablingBay{Depot: model.DepotA, PositionOrder: 10}

	if BayBonus(ts, home, 10) <= BayBonus(ts, away, 10) {
		t.Fatalf("expected a home-depot bay to score higher than a cross-depot bay")
	}
	if BayBonus(ts, home, 10) <= BayBonus(ts, farHome, 10) {
		t.Fatalf("expected a closer bay (lower position_order) to score higher")
	}
}
