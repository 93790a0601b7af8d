package report

import "time"

// State tags the report lifecycle. The transition is one-directional:
// pending becomes ready and never reverts; a regeneration overwrites the
// ready report with a fresh ready one.
type State string

const (
	StatePending State = "pending"
	StateReady   State = "ready"
)

// Report is the computed performance summary for one player-user. At most
// one report exists per user; a new generation overwrites the prior one.
type Report struct {
	ID               string    `json:"id"`
	UserID           string    `json:"userId"`
	OverallRating    float64   `json:"overallRating"`
	RoleFit          string    `json:"roleFit"`
	Strengths        []string  `json:"strengths"`
	AreasToImprove   []string  `json:"areasToImprove"`
	ConsistencyScore int       `json:"consistencyScore"`
	RecentForm       string    `json:"recentForm"`
	Status           State     `json:"status"`
	CreatedAt        time.Time `json:"createdAt"`
}

// Status is the pipeline state advertised to callers. ETA is an advisory
// estimate and only set while pending.
type Status struct {
	State State
	ETA   string
}
