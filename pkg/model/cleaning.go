package model

// CleaningKind is the category of a cleaning slot.
type CleaningKind string

const (
	CleaningFumigation CleaningKind = "fumigation"
	CleaningDeep       CleaningKind = "deep"
	CleaningDetailing  CleaningKind = "detailing"
	CleaningTrip       CleaningKind = "trip"
)

// CleaningStatus is the lifecycle state of a cleaning slot.
type CleaningStatus string

const (
	CleaningScheduled  CleaningStatus = "scheduled"
	CleaningInProgress CleaningStatus = "in_progress"
	CleaningCompleted  CleaningStatus = "completed"
)

// CleaningSlot is one scheduled, in-progress, or completed cleaning event.
type CleaningSlot struct {
	TrainsetID TrainsetID     `json:"trainset_id"`
	Kind       CleaningKind   `json:"kind"`
	Status     CleaningStatus `json:"status"`
	SlotTime   DateOnly       `json:"slot_time"`
	Bay        string         `json:"bay,omitempty"`
	Staff      string         `json:"staff,omitempty"`
}

// DaysAgo returns the whole number of days between SlotTime and snapshot.
// Negative if SlotTime is in the future relative to snapshot.
func (c *CleaningSlot) DaysAgo(snapshot DateOnly) int {
	return c.SlotTime.DaysUntil(snapshot)
}
