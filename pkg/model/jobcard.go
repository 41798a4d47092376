package model

// JobPriority is the urgency of a maintenance job card.
type JobPriority string

const (
	PriorityEmergency JobPriority = "emergency"
	PriorityHigh      JobPriority = "high"
	PriorityMedium    JobPriority = "medium"
	PriorityLow       JobPriority = "low"
)

// JobStatus is the lifecycle state of a job card.
type JobStatus string

const (
	JobOpen       JobStatus = "open"
	JobInProgress JobStatus = "in_progress"
	JobClosed     JobStatus = "closed"
)

// JobCard is a maintenance work order against a trainset.
type JobCard struct {
	TrainsetID          TrainsetID  `json:"trainset_id"`
	Category            string      `json:"category"`
	Priority            JobPriority `json:"priority"`
	Status              JobStatus   `json:"status"`
	CreatedOn           DateOnly    `json:"created_on"`
	ExpectedCompletion  DateOnly    `json:"expected_completion,omitempty"`
}

// IsOpenEmergency reports whether this job card is an open emergency.
func (j *JobCard) IsOpenEmergency() bool {
	return j.Status == JobOpen && j.Priority == PriorityEmergency
}

// IsOpenHigh reports whether this job card is an open high-priority job.
func (j *JobCard) IsOpenHigh() bool {
	return j.Status == JobOpen && j.Priority == PriorityHigh
}

// IsInProgress reports whether this job card is in progress.
func (j *JobCard) IsInProgress() bool {
	return j.Status == JobInProgress
}
