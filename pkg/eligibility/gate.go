// Package eligibility implements the three-tier admission funnel that
// decides which trainsets enter the optimisation pool.
package eligibility

import (
	"fmt"

	"github.com/kochimetro/induct-scheduler/pkg/model"
)

// Candidate bundles one trainset with the fields the gate inspects.
type Candidate struct {
	Trainset         *model.Trainset
	ValidCertCount   int // count of currently-valid fitness certificates, 0-3
	HasOpenEmergency bool
}

// Admission records the tier at which a trainset entered the pool.
type Admission struct {
	Candidate Candidate
	Tier      model.AdmissionTier
}

// Pool is the funnel's output: every admitted trainset with its tier,
// plus every trainset not admitted: those that clear no tier, and those
// that clear a tier the funnel did not need to open (or Tier F with
// relaxation off).
type Pool struct {
	Admitted []Admission
	Excluded []Candidate
}

// InsufficientFleetError reports that even after full relaxation the
// admitted pool is smaller than the target roster.
type InsufficientFleetError struct {
	Have int
	Need int
}

func (e *InsufficientFleetError) Error() string {
	return fmt.Sprintf("need %d, have %d", e.Need, e.Have)
}

// Run applies Tier S, then R, then F (unless relaxation is disabled),
// stopping as soon as the pool reaches targetSize. A maintenance
// trainset is never admitted by any tier.
func Run(candidates []Candidate, targetSize int, enableRelaxation bool) (Pool, error) {
	var pool Pool
	var rest []Candidate

	for _, c := range candidates {
		if c.Trainset.Status == model.StatusMaintenance {
			pool.Excluded = append(pool.Excluded, c)
			continue
		}
		rest = append(rest, c)
	}

	var tierS, tierR, tierF []Candidate
	for _, c := range rest {
		switch {
		case qualifiesStrict(c):
			tierS = append(tierS, c)
		case qualifiesRelaxed(c):
			tierR = append(tierR, c)
		default:
			tierF = append(tierF, c)
		}
	}

	for _, c := range tierS {
		pool.Admitted = append(pool.Admitted, Admission{Candidate: c, Tier: model.TierStrict})
	}

	if len(pool.Admitted) < targetSize {
		for _, c := range tierR {
			pool.Admitted = append(pool.Admitted, Admission{Candidate: c, Tier: model.TierRelaxed})
		}
	} else {
		pool.Excluded = append(pool.Excluded, tierR...)
		pool.Excluded = append(pool.Excluded, tierF...)
		return pool, nil
	}

	if len(pool.Admitted) < targetSize && enableRelaxation {
		for _, c := range tierF {
			pool.Admitted = append(pool.Admitted, Admission{Candidate: c, Tier: model.TierFallback})
		}
	} else {
		pool.Excluded = append(pool.Excluded, tierF...)
	}

	if len(pool.Admitted) < targetSize {
		return pool, &InsufficientFleetError{Have: len(pool.Admitted), Need: targetSize}
	}
	return pool, nil
}

// qualifiesStrict implements Tier S admission.
func qualifiesStrict(c Candidate) bool {
	return c.ValidCertCount >= 2 && !c.HasOpenEmergency
}

// qualifiesRelaxed implements Tier R admission.
func qualifiesRelaxed(c Candidate) bool {
	return c.ValidCertCount >= 1 && !c.HasOpenEmergency
}
