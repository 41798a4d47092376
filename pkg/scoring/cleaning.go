package scoring

import "github.com/kochimetro/induct-scheduler/pkg/model"

// cleaningRecencyScore sums per-slot credit for recently completed
// cleaning, capped at 10; a fleet with no recent completion still gets
// a small baseline rather than zero.
func cleaningRecencyScore(slots []*model.CleaningSlot, snapshot model.DateOnly) float64 {
	total := 0.0
	for _, s := range slots {
		if s == nil || s.Status != model.CleaningCompleted {
			continue
		}
		age := s.DaysAgo(snapshot)
		switch {
		case age >= 0 && age <= 7:
			total += 5
		case age >= 8 && age <= 14:
			total += 3
		}
	}
	if total == 0 {
		return 1
	}
	if total > 10 {
		return 10
	}
	return total
}
