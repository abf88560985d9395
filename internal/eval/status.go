// Package eval owns the lifecycle of asynchronous expression evaluation:
// the tagged status a field moves through, the evaluator contract, and the
// orchestrator that keeps concurrent requests from racing each other.
package eval

// Status is the lifecycle state of one field's evaluation attempt. It is an
// explicit four-state variant so handling is exhaustive, not a convention
// over optional fields.
type Status int

const (
	StatusIdle Status = iota
	StatusEvaluating
	StatusComplete
	StatusFailed
)

// String returns the lowercase status name.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusEvaluating:
		return "evaluating"
	case StatusComplete:
		return "complete"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the current outcome for one field. Value is meaningful only
// when Status is StatusComplete, Err only when StatusFailed.
type Result struct {
	Status Status
	Value  string
	Err    error
}

// Idle is the zero result.
func Idle() Result { return Result{Status: StatusIdle} }

// Evaluating marks an in-flight request.
func Evaluating() Result { return Result{Status: StatusEvaluating} }

// Complete wraps a resolved value.
func Complete(value string) Result { return Result{Status: StatusComplete, Value: value} }

// Failed wraps an evaluation error.
func Failed(err error) Result { return Result{Status: StatusFailed, Err: err} }

// ErrorMessage returns the error text, or "" when not failed.
func (r Result) ErrorMessage() string {
	if r.Status == StatusFailed && r.Err != nil {
		return r.Err.Error()
	}
	return ""
}
