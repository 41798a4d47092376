package scoring

import "github.com/kochimetro/induct-scheduler/pkg/model"

// brandingScore follows the urgency ladder: no active commitment is
// worth the least, an active critical commitment far behind its target
// is worth the most.
func brandingScore(b *model.BrandingCommitment, snapshot model.DateOnly) float64 {
	if b == nil || !b.IsActive(snapshot) {
		return 3
	}
	if b.Priority != model.BrandingCritical {
		return 5
	}
	ratio := b.AchievedRatio()
	switch {
	case ratio < 0.5:
		return 15
	case ratio < 0.8:
		return 10
	default:
		return 5
	}
}
