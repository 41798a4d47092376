package modelbuilder

import (
	"fmt"

	"github.com/kochimetro/induct-scheduler/pkg/model"
)

// buildSoft evaluates the sufficiency rule for S1-S6 and returns the
// constraints that apply plus the names of the ones omitted.
func buildSoft(facts []TrainsetFacts, opt Options) ([]Constraint, []string) {
	var constraints []Constraint
	var omitted []string

	depotA, depotB := partitionByDepot(facts)
	if len(depotA) > 0 && len(depotB) > 0 {
		constraints = append(constraints, depotBalanceConstraint(depotA, opt))
	} else {
		omitted = append(omitted, "S1_depot_balance")
	}

	newTrains := filterNew(facts, opt)
	if len(newTrains) >= 8 {
		constraints = append(constraints, ageDiversityConstraint(newTrains))
	} else {
		omitted = append(omitted, "S2_age_diversity")
	}

	for _, vendor := range []model.Vendor{model.VendorA, model.VendorB, model.VendorC} {
		group := filterVendor(facts, vendor)
		if len(group) >= 4 {
			constraints = append(constraints, vendorDiversityConstraint(vendor, group))
		} else {
			omitted = append(omitted, "S3_vendor_diversity_"+string(vendor))
		}
	}

	criticalPool := filterActiveCritical(facts)
	if len(criticalPool) > 0 {
		constraints = append(constraints, brandingUrgencyConstraint(criticalPool, opt.CriticalBrandingMin))
	} else {
		omitted = append(omitted, "S4_branding_urgency")
	}

	bandPool := filterMileageBand(facts, opt)
	if len(bandPool) > 0 {
		constraints = append(constraints, mileageBandConstraint(bandPool))
	} else {
		omitted = append(omitted, "S5_mileage_band")
	}

	homeBayPool := filterHomeBayAvailable(facts)
	if len(homeBayPool) > 0 {
		constraints = append(constraints, bayPreferenceConstraint(homeBayPool, opt.HomeBayMin))
	} else {
		omitted = append(omitted, "S6_bay_preference")
	}

	return constraints, omitted
}

func partitionByDepot(facts []TrainsetFacts) (a, b []TrainsetFacts) {
	for _, f := range facts {
		if f.Trainset.HomeDepot == model.DepotA {
			a = append(a, f)
		} else {
			b = append(b, f)
		}
	}
	return
}

func filterNew(facts []TrainsetFacts, opt Options) []TrainsetFacts {
	var out []TrainsetFacts
	for _, f := range facts {
		if f.Trainset.AgeYears(opt.SnapshotYear) <= opt.AgeNewYearsMax {
			out = append(out, f)
		}
	}
	return out
}

func filterVendor(facts []TrainsetFacts, v model.Vendor) []TrainsetFacts {
	var out []TrainsetFacts
	for _, f := range facts {
		if f.Trainset.Vendor == v {
			out = append(out, f)
		}
	}
	return out
}

func filterActiveCritical(facts []TrainsetFacts) []TrainsetFacts {
	var out []TrainsetFacts
	for _, f := range facts {
		if f.ActiveCritical {
			out = append(out, f)
		}
	}
	return out
}

func filterMileageBand(facts []TrainsetFacts, opt Options) []TrainsetFacts {
	var out []TrainsetFacts
	for _, f := range facts {
		km := f.Trainset.TotalKM
		if km >= opt.MileageBandLo && km <= opt.MileageBandHi {
			out = append(out, f)
		}
	}
	return out
}

func filterHomeBayAvailable(facts []TrainsetFacts) []TrainsetFacts {
	var out []TrainsetFacts
	for _, f := range facts {
		if f.HomeBayAvailable {
			out = append(out, f)
		}
	}
	return out
}

func toTerms(facts []TrainsetFacts) []Term {
	terms := make([]Term, len(facts))
	for i, f := range facts {
		terms[i] = Term{Var: VarKey{Trainset: f.Trainset.ID}, Coeff: 1}
	}
	return terms
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func depotBalanceConstraint(depotA []TrainsetFacts, opt Options) Constraint {
	return Constraint{
		Name:  "S1_depot_balance",
		Kind:  Soft,
		Terms: toTerms(depotA),
		Bound: Bound{Lo: intPtr(opt.DepotBalanceLo), Hi: intPtr(opt.DepotBalanceHi)},
	}
}

func ageDiversityConstraint(newTrains []TrainsetFacts) Constraint {
	return Constraint{
		Name:  "S2_age_diversity",
		Kind:  Soft,
		Terms: toTerms(newTrains),
		Bound: Bound{Lo: intPtr(8)},
	}
}

func vendorDiversityConstraint(vendor model.Vendor, group []TrainsetFacts) Constraint {
	return Constraint{
		Name:  fmt.Sprintf("S3_vendor_diversity_%s", vendor),
		Kind:  Soft,
		Terms: toTerms(group),
		Bound: Bound{Lo: intPtr(4)},
	}
}

func brandingUrgencyConstraint(criticalPool []TrainsetFacts, min int) Constraint {
	return Constraint{
		Name:  "S4_branding_urgency",
		Kind:  Soft,
		Terms: toTerms(criticalPool),
		Bound: Bound{Lo: intPtr(minInt(min, len(criticalPool)))},
	}
}

func mileageBandConstraint(bandPool []TrainsetFacts) Constraint {
	return Constraint{
		Name:  "S5_mileage_band",
		Kind:  Soft,
		Terms: toTerms(bandPool),
		Bound: Bound{Lo: intPtr(minInt(12, len(bandPool)))},
	}
}

func bayPreferenceConstraint(homeBayPool []TrainsetFacts, min int) Constraint {
	return Constraint{
		Name:  "S6_bay_preference",
		Kind:  Soft,
		Terms: toTerms(homeBayPool),
		Bound: Bound{Lo: intPtr(minInt(min, len(homeBayPool)))},
	}
}
