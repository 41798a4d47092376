package scoring

import "github.com/kochimetro/induct-scheduler/pkg/model"

// mileageBandScore rewards the sweet-spot usage band most, the
// adjoining bands less, and anything outside both least.
func mileageBandScore(m *model.MileageRecord, cfg Config) float64 {
	if m == nil {
		return 10
	}
	if m.InMileageBand(cfg.MileageBandLo, cfg.MileageBandHi) {
		return 20
	}
	lowAdj := m.TotalKM >= cfg.MileageAdjacentLo && m.TotalKM < cfg.MileageBandLo
	highAdj := m.TotalKM > cfg.MileageBandHi && m.TotalKM <= cfg.MileageAdjacentHi
	if lowAdj || highAdj {
		return 15
	}
	return 10
}

// componentWearScore rewards a healthy bogie condition index.
func componentWearScore(m *model.MileageRecord) float64 {
	if m == nil {
		return 1
	}
	switch {
	case m.BogieCondition >= 80:
		return 5
	case m.BogieCondition >= 60:
		return 3
	default:
		return 1
	}
}
