package models

// Stage is the processing stage observed for a user's batch. Transitions go
// NotStarted → Partial → Complete, with NotStarted → Complete also reachable
// when the external worker finishes before the first poll. No transition
// leaves Complete within a polling session.
type Stage int

const (
	StageNotStarted Stage = iota
	StagePartial
	StageComplete
)

func (s Stage) String() string {
	switch s {
	case StagePartial:
		return "partial"
	case StageComplete:
		return "complete"
	default:
		return "not_started"
	}
}

// PartialFraction is the fixed midpoint estimate reported while items are
// being processed. The external worker exposes no finer-grained signal than
// presence of processed items and the terminal summary row, so true
// fractional progress is not observable.
const PartialFraction = 0.5

// Status is the derived processing signal for one poll. It is recomputed on
// every poll and never persisted.
type Status struct {
	Stage    Stage
	Fraction float64
}

// NotStarted constructs the zero-progress status.
func NotStarted() Status { return Status{Stage: StageNotStarted, Fraction: 0} }

// Partial constructs the in-flight status with the fixed midpoint estimate.
func Partial() Status { return Status{Stage: StagePartial, Fraction: PartialFraction} }

// Complete constructs the terminal status.
func Complete() Status { return Status{Stage: StageComplete, Fraction: 1} }
