package scheduler

import "github.com/kochimetro/induct-scheduler/pkg/model"

// SchedulingSummary is the headline numbers every Report document leads
// with.
type SchedulingSummary struct {
	Status         Status `json:"status"`
	SelectedCount  int    `json:"selected_count"`
	RejectedCount  int    `json:"rejected_count"`
	ObjectiveValue int    `json:"objective_value"`
	ExecutionMS    int64  `json:"execution_ms"`
}

// Document is the stable, ordered record Report produces. Field names
// and ordering are part of the external contract: downstream consumers
// key off them directly.
type Document struct {
	SchedulingSummary SchedulingSummary     `json:"scheduling_summary"`
	Compliance        interface{}           `json:"compliance"`
	Selected          []model.SelectedEntry `json:"selected"`
	Rejected          []model.RejectedEntry `json:"rejected"`
	BayAssignments    map[string]string     `json:"bay_assignments"`
}

// Report is a pure projection over a Result: it introduces no business
// logic of its own, only reshapes already-decided fields for display.
func Report(result Result) Document {
	bayAssignments := make(map[string]string, len(result.Selected))
	for _, s := range result.Selected {
		if s.Bay != nil {
			bayAssignments[s.Trainset.Number] = s.Bay.BayID.String()
		}
	}
	return Document{
		SchedulingSummary: SchedulingSummary{
			Status:         result.Status,
			SelectedCount:  len(result.Selected),
			RejectedCount:  len(result.Rejected),
			ObjectiveValue: result.ObjectiveValue,
			ExecutionMS:    result.ExecutionMS,
		},
		Compliance:     result.Compliance,
		Selected:       result.Selected,
		Rejected:       result.Rejected,
		BayAssignments: bayAssignments,
	}
}
