package solver

// State is a SolverLoop state.
type State int

const (
	Ready State = iota
	Scoring
	AwaitingFeedback
	Filtering
	Terminated
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Scoring:
		return "scoring"
	case AwaitingFeedback:
		return "awaiting_feedback"
	case Filtering:
		return "filtering"
	case Terminated:
		return "terminated"
	}
	return "unknown"
}

// MarshalText renders the state name in JSON payloads.
func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Termination reasons reported to observers.
const (
	ReasonSolved     = "solved"
	ReasonExhausted  = "exhausted"
	ReasonRoundLimit = "round_limit"
)

// Outcome describes the loop after one Filtering step.
type Outcome struct {
	Round     int    `json:"round"`
	Pool      int    `json:"pool"`
	State     State  `json:"state"`
	Solved    string `json:"solved,omitempty"` // set when exactly one candidate remains
	Exhausted bool   `json:"exhausted"`        // no candidate is consistent with the feedback
	Limited   bool   `json:"limited"`          // stopped by Options.MaxRounds
}

// Done reports whether the loop has terminated.
func (o Outcome) Done() bool { return o.State == Terminated }
