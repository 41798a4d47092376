package scheduler

import (
	"time"

	"github.com/kochimetro/induct-scheduler/pkg/eligibility"
	"github.com/kochimetro/induct-scheduler/pkg/model"
	"github.com/kochimetro/induct-scheduler/pkg/modelbuilder"
)

// homeBayAvailability reports, for every trainset, whether at least one
// available bay exists in its home depot.
func homeBayAvailability(trainsets []*model.Trainset, bays []*model.StablingBay) map[model.TrainsetID]bool {
	freeByDepot := map[model.Depot]bool{}
	for _, b := range bays {
		if b.Available() {
			freeByDepot[b.Depot] = true
		}
	}
	out := make(map[model.TrainsetID]bool, len(trainsets))
	for _, t := range trainsets {
		out[t.ID] = freeByDepot[t.HomeDepot]
	}
	return out
}

// validCertCount counts how many of the three fitness-certificate
// domains are currently valid for the given certificate map.
func validCertCount(certs map[model.CertDomain]*model.FitnessCertificate, snapshot time.Time) int {
	n := 0
	for _, domain := range model.AllCertDomains {
		if c, ok := certs[domain]; ok && c != nil && c.IsValid(snapshot) {
			n++
		}
	}
	return n
}

// gateExclusionReason explains why the eligibility gate excluded a
// candidate it never passed into the model, checking in order:
// maintenance status, no valid fitness certificate, an open emergency
// job card, and otherwise "not selected by optimisation" (a trainset a
// stricter tier already covered the roster without).
func gateExclusionReason(c eligibility.Candidate) string {
	switch {
	case c.Trainset.Status == model.StatusMaintenance:
		return "under maintenance — excluded from scheduling"
	case c.ValidCertCount == 0:
		return "invalid fitness certificates"
	case c.HasOpenEmergency:
		return "emergency work order open"
	default:
		return "not selected by optimisation"
	}
}

// hasOpenEmergency reports whether any job card is an open emergency.
func hasOpenEmergency(cards []*model.JobCard) bool {
	for _, c := range cards {
		if c != nil && c.IsOpenEmergency() {
			return true
		}
	}
	return false
}

// buildFacts derives the per-trainset facts the model builder needs
// from the eligibility pool and the already-computed scores.
func buildFacts(
	pool eligibility.Pool,
	scoreByID map[model.TrainsetID]model.Score,
	certs map[model.TrainsetID]map[model.CertDomain]*model.FitnessCertificate,
	jobs map[model.TrainsetID][]*model.JobCard,
	branding map[model.TrainsetID]*model.BrandingCommitment,
	homeBayFree map[model.TrainsetID]bool,
	snapshot time.Time,
) []modelbuilder.TrainsetFacts {
	out := make([]modelbuilder.TrainsetFacts, 0, len(pool.Admitted))
	for _, a := range pool.Admitted {
		t := a.Candidate.Trainset
		out = append(out, modelbuilder.TrainsetFacts{
			Trainset:          t,
			Score:             scoreByID[t.ID],
			Tier:              a.Tier,
			FitnessInvalid:    validCertCount(certs[t.ID], snapshot) == 0,
			HasBlockingJob:    a.Candidate.HasOpenEmergency,
			ActiveCritical:    activeCritical(branding[t.ID], snapshot),
			ActiveCriticalLow: activeCriticalLow(branding[t.ID], snapshot),
			HomeBayAvailable:  homeBayFree[t.ID],
		})
	}
	return out
}

// activeCritical reports whether a branding commitment is a currently
// active critical-priority one, regardless of how much of its target
// has already been achieved. This is the domain used for S4's eligible
// pool and the compliance count against CriticalBrandingMin.
func activeCritical(b *model.BrandingCommitment, snapshot time.Time) bool {
	if b == nil {
		return false
	}
	snap := model.DateOnlyOf(snapshot)
	return b.IsActive(snap) && b.Priority == model.BrandingCritical
}

// activeCriticalLow narrows activeCritical to commitments running
// behind target, used only for the "urgent critical branding"
// selection-reason sentence.
func activeCriticalLow(b *model.BrandingCommitment, snapshot time.Time) bool {
	if !activeCritical(b, snapshot) {
		return false
	}
	return b.AchievedRatio() < 0.5
}

func countActiveCritical(facts []modelbuilder.TrainsetFacts) int {
	n := 0
	for _, f := range facts {
		if f.ActiveCritical {
			n++
		}
	}
	return n
}

func countInMileageBand(facts []modelbuilder.TrainsetFacts, lo, hi float64) int {
	n := 0
	for _, f := range facts {
		if f.Trainset.TotalKM >= lo && f.Trainset.TotalKM <= hi {
			n++
		}
	}
	return n
}

func countHomeBayAvailable(facts []modelbuilder.TrainsetFacts) int {
	n := 0
	for _, f := range facts {
		if f.HomeBayAvailable {
			n++
		}
	}
	return n
}
