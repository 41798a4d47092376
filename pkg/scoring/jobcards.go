package scoring

import "github.com/kochimetro/induct-scheduler/pkg/model"

// jobCardScore starts at the 20-point cap and subtracts per open job by
// priority, flooring at zero.
func jobCardScore(cards []*model.JobCard) float64 {
	total := 20.0
	for _, c := range cards {
		if c == nil {
			continue
		}
		switch {
		case c.IsOpenEmergency():
			total -= 10
		case c.IsOpenHigh():
			total -= 5
		case c.IsInProgress():
			total -= 2
		}
	}
	if total < 0 {
		total = 0
	}
	return total
}
