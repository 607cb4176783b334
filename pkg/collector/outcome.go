package collector

import "fmt"

// OutcomeKind classifies the result of one step of a run.
type OutcomeKind int

const (
	// Success means the step produced its value.
	Success OutcomeKind = iota
	// Skip means the step produced nothing and the run continues.
	Skip
	// Abort means the run ends without output.
	Abort
)

func (k OutcomeKind) String() string {
	switch k {
	case Success:
		return "success"
	case Skip:
		return "skip"
	case Abort:
		return "abort"
	}
	return fmt.Sprintf("OutcomeKind(%d)", int(k))
}

// Outcome is the result of a step whose value is held by the caller.
type Outcome struct {
	Kind   OutcomeKind
	Reason string
	Err    error
}

func succeeded() Outcome {
	return Outcome{Kind: Success}
}

func skipped(reason string, err error) Outcome {
	return Outcome{Kind: Skip, Reason: reason, Err: err}
}

func aborted(err error) Outcome {
	return Outcome{Kind: Abort, Reason: err.Error(), Err: err}
}
