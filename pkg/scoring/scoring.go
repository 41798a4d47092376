// Package scoring computes the per-trainset priority score the rest of
// the core ranks, selects, and reports on.
package scoring

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kochimetro/induct-scheduler/pkg/model"
)

// Input bundles one trainset with every related record the scoring
// dimensions read. A nil or empty field degrades its dimension to the
// conservative fallback rather than panicking.
type Input struct {
	Trainset     *model.Trainset
	Certificates map[model.CertDomain]*model.FitnessCertificate
	JobCards     []*model.JobCard
	Branding     *model.BrandingCommitment
	Mileage      *model.MileageRecord
	Cleaning     []*model.CleaningSlot
	HomeBayFree  bool
}

// Config carries the band thresholds the scoring dimensions compare
// against. Zero value is invalid; use DefaultConfig.
type Config struct {
	MileageBandLo     float64
	MileageBandHi     float64
	MileageAdjacentLo float64 // lower bound of the adjacent, partially-rewarded band
	MileageAdjacentHi float64 // upper bound of the adjacent, partially-rewarded band
}

// DefaultConfig returns the scoring configuration matching the
// out-of-the-box constraint model.
func DefaultConfig() Config {
	return Config{
		MileageBandLo:     50000,
		MileageBandHi:     150000,
		MileageAdjacentLo: 30000,
		MileageAdjacentHi: 200000,
	}
}

// Score computes one trainset's total and per-dimension breakdown at
// the given snapshot. Pure and deterministic: no wall-clock reads, no
// shared state.
func Score(in Input, snapshot time.Time, cfg Config) model.Score {
	b := model.ScoreBreakdown{
		Fitness:         fitnessScore(in.Certificates, snapshot),
		JobCardLoad:     jobCardScore(in.JobCards),
		Branding:        brandingScore(in.Branding, model.DateOnlyOf(snapshot)),
		MileageBand:     mileageBandScore(in.Mileage, cfg),
		ComponentWear:   componentWearScore(in.Mileage),
		CleaningRecency: cleaningRecencyScore(in.Cleaning, model.DateOnlyOf(snapshot)),
		StablingAccess:  stablingAccessScore(in.HomeBayFree),
	}
	total := roundTo1(b.Sum())
	return model.Score{
		TrainsetID: in.Trainset.ID,
		Total:      total,
		Breakdown:  b,
	}
}

// ScoreAll scores every input concurrently using errgroup, preserving
// the input order in the returned slice regardless of completion order.
// Pure per-element work with no shared mutable state makes this safe
// (the scoring dimensions never touch a shared map or counter).
func ScoreAll(ctx context.Context, inputs []Input, snapshot time.Time, cfg Config) ([]model.Score, error) {
	out := make([]model.Score, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	for i, in := range inputs {
		i, in := i, in
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			out[i] = Score(in, snapshot, cfg)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Less implements the tie-break rule of §4.1: higher total first, then
// higher fitness sub-score, then lower total_km, then lower trainset id
// (compared lexically, since ids are UUIDs with no natural magnitude).
func Less(a, b model.Score, totalKM map[model.TrainsetID]float64) bool {
	if a.Total != b.Total {
		return a.Total > b.Total
	}
	if a.Breakdown.Fitness != b.Breakdown.Fitness {
		return a.Breakdown.Fitness > b.Breakdown.Fitness
	}
	ka, kb := totalKM[a.TrainsetID], totalKM[b.TrainsetID]
	if ka != kb {
		return ka < kb
	}
	return a.TrainsetID.String() < b.TrainsetID.String()
}

// SortByPriority sorts scores in place by the §4.1 tie-break ordering.
func SortByPriority(scores []model.Score, totalKM map[model.TrainsetID]float64) {
	sort.SliceStable(scores, func(i, j int) bool {
		return Less(scores[i], scores[j], totalKM)
	})
}

func roundTo1(v float64) float64 {
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	return float64(int(v*10+0.5)) / 10
}
