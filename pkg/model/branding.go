package model

// BrandingPriority is the contractual importance of an advertising campaign.
type BrandingPriority string

const (
	BrandingCritical BrandingPriority = "critical"
	BrandingNormal   BrandingPriority = "normal"
)

// BrandingCommitment is a per-trainset advertising obligation.
type BrandingCommitment struct {
	TrainsetID            TrainsetID       `json:"trainset_id"`
	Advertiser            string           `json:"advertiser"`
	Priority              BrandingPriority `json:"priority"`
	TargetExposureHours   float64          `json:"target_exposure_hours"`
	AchievedExposureHours float64          `json:"achieved_exposure_hours"`
	CampaignStart         DateOnly         `json:"campaign_start"`
	CampaignEnd           DateOnly         `json:"campaign_end"`
	HasPenalty            bool             `json:"has_penalty"`
}

// IsActive reports whether the commitment is running at the given snapshot.
func (b *BrandingCommitment) IsActive(snapshot DateOnly) bool {
	start := b.CampaignStart.Parse()
	end := b.CampaignEnd.Parse()
	s := snapshot.Parse()
	if start.IsZero() || end.IsZero() || s.IsZero() {
		return false
	}
	return !s.Before(start) && !s.After(end)
}

// ExposureDeficit returns target - achieved (may be negative if ahead).
func (b *BrandingCommitment) ExposureDeficit() float64 {
	return b.TargetExposureHours - b.AchievedExposureHours
}

// AchievedRatio returns achieved/target, or 1 when target is zero.
func (b *BrandingCommitment) AchievedRatio() float64 {
	if b.TargetExposureHours <= 0 {
		return 1
	}
	return b.AchievedExposureHours / b.TargetExposureHours
}
