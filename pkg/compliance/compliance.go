// Package compliance projects a Roster into aggregate metrics and a
// list of soft-constraint violations. It adds no business logic beyond
// what the model builder and extractor already decided.
package compliance

import (
	"fmt"
	"sort"

	"github.com/kochimetro/induct-scheduler/pkg/model"
)

// DepotCounts tallies selected trainsets per depot.
type DepotCounts map[model.Depot]int

// VendorCounts tallies selected trainsets per vendor.
type VendorCounts map[model.Vendor]int

// Report is the Compliance Reporter's output.
type Report struct {
	Depots                DepotCounts
	DepotBalanceRatio     float64 // min/max across depots, 1 if only one depot present
	Vendors               VendorCounts
	NewTrainCount         int
	NewTrainShare         float64
	CriticalBrandingCount int
	CriticalBrandingRatio float64
	HomeBayAvailableCount int
	HomeBayAvailableRatio float64
	BayAccessDispersion   float64 // Gini coefficient over assigned position_order, supplemental metric
	Violations            []string
}

// Options carries the same thresholds the model builder used, so the
// reporter flags a band as violated using the declared configuration
// rather than a hardcoded default.
type Options struct {
	DepotBalanceLo      int
	DepotBalanceHi      int
	AgeNewYearsMax      int
	CriticalBrandingMin int
	MileageBandLo       float64
	MileageBandHi       float64
	HomeBayMin          int
	SnapshotYear        int

	// Pool sizes from the eligible (pre-selection) population, needed to
	// reproduce the sufficiency-rule thresholds exactly: a band is only
	// violated relative to min(cap, poolSize), never the raw cap.
	CriticalPoolSize    int
	MileageBandPoolSize int
	HomeBayPoolSize     int
}

// Build computes the Report from a Roster's selected entries, the
// model's omitted-soft-constraint list (so a never-imposed bound is
// never reported as violated), and the reporting Options.
func Build(selected []model.SelectedEntry, omittedSoft []string, opt Options) Report {
	omitted := make(map[string]bool, len(omittedSoft))
	for _, name := range omittedSoft {
		omitted[name] = true
	}

	r := Report{Depots: DepotCounts{}, Vendors: VendorCounts{}}
	var positionOrders []float64
	newCount, criticalCount, homeBayCount := 0, 0, 0
	var mileageBandCount int

	for _, s := range selected {
		r.Depots[s.Trainset.HomeDepot]++
		r.Vendors[s.Trainset.Vendor]++
		if s.Trainset.AgeYears(opt.SnapshotYear) <= opt.AgeNewYearsMax {
			newCount++
		}
		if s.ActiveCritical {
			criticalCount++
		}
		if s.Bay != nil {
			positionOrders = append(positionOrders, float64(s.Bay.PositionOrder))
			if s.Bay.Depot == s.Trainset.HomeDepot {
				homeBayCount++
			}
		}
		if s.Trainset.TotalKM >= opt.MileageBandLo && s.Trainset.TotalKM <= opt.MileageBandHi {
			mileageBandCount++
		}
	}

	total := len(selected)
	r.NewTrainCount = newCount
	if total > 0 {
		r.NewTrainShare = float64(newCount) / float64(total)
	}
	r.CriticalBrandingCount = criticalCount
	if total > 0 {
		r.CriticalBrandingRatio = float64(criticalCount) / float64(total)
	}
	r.HomeBayAvailableCount = homeBayCount
	if total > 0 {
		r.HomeBayAvailableRatio = float64(homeBayCount) / float64(total)
	}
	r.DepotBalanceRatio = depotBalanceRatio(r.Depots)
	r.BayAccessDispersion = gini(positionOrders)

	r.Violations = violations(r, total, mileageBandCount, omitted, opt)
	return r
}

func depotBalanceRatio(counts DepotCounts) float64 {
	if len(counts) == 0 {
		return 1
	}
	min, max := -1, -1
	for _, c := range counts {
		if min == -1 || c < min {
			min = c
		}
		if max == -1 || c > max {
			max = c
		}
	}
	if max == 0 {
		return 1
	}
	return float64(min) / float64(max)
}

// violations flags every soft constraint whose realised value falls
// outside its declared band, skipping any constraint the model builder
// omitted under the sufficiency rule.
func violations(r Report, total, mileageBandCount int, omitted map[string]bool, opt Options) []string {
	var out []string

	if !omitted["S1_depot_balance"] {
		c := r.Depots[model.DepotA]
		if c < opt.DepotBalanceLo || c > opt.DepotBalanceHi {
			out = append(out, fmt.Sprintf("S1_depot_balance: DepotA=%d outside [%d,%d]", c, opt.DepotBalanceLo, opt.DepotBalanceHi))
		}
	}
	if !omitted["S2_age_diversity"] && r.NewTrainCount < 8 {
		out = append(out, fmt.Sprintf("S2_age_diversity: %d new trains, below 8", r.NewTrainCount))
	}
	for _, v := range []model.Vendor{model.VendorA, model.VendorB, model.VendorC} {
		name := "S3_vendor_diversity_" + string(v)
		if !omitted[name] && r.Vendors[v] < 4 {
			out = append(out, fmt.Sprintf("%s: %d selected, below 4", name, r.Vendors[v]))
		}
	}
	if !omitted["S4_branding_urgency"] {
		want := min(opt.CriticalBrandingMin, opt.CriticalPoolSize)
		if r.CriticalBrandingCount < want {
			out = append(out, fmt.Sprintf("S4_branding_urgency: %d critical, below target %d", r.CriticalBrandingCount, want))
		}
	}
	if !omitted["S5_mileage_band"] {
		want := min(12, opt.MileageBandPoolSize)
		if mileageBandCount < want {
			out = append(out, fmt.Sprintf("S5_mileage_band: %d in band, below target %d", mileageBandCount, want))
		}
	}
	if !omitted["S6_bay_preference"] {
		want := min(opt.HomeBayMin, opt.HomeBayPoolSize)
		if r.HomeBayAvailableCount < want {
			out = append(out, fmt.Sprintf("S6_bay_preference: %d home-bay, below target %d", r.HomeBayAvailableCount, want))
		}
	}

	sort.Strings(out)
	return out
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// gini computes the Gini coefficient of the given values: 0 is perfect
// equality, 1 is maximal dispersion.
func gini(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range sorted {
		sum += v
	}
	if sum == 0 {
		return 0
	}

	cumulative := 0.0
	g := 0.0
	for i, v := range sorted {
		cumulative += v
		g += (2*float64(i+1) - float64(n) - 1) * v
	}
	return g / (float64(n) * sum)
}
