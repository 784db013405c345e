package debate

import "fmt"

// SchemaError reports a model response missing a required field, or carrying
// a field of invalid shape, for the current phase and variant. Never retried;
// the run aborts.
type SchemaError struct {
	Phase   string
	Variant Variant
	Field   string
	Detail  string
}

func (e *SchemaError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s response (%s): invalid field %q: %s", e.Phase, e.Variant, e.Field, e.Detail)
	}
	return fmt.Sprintf("%s response (%s): missing required field %q", e.Phase, e.Variant, e.Field)
}

// SequenceError reports an operation invoked before its precondition phase.
// This is an orchestration bug, always fatal to the run.
type SequenceError struct {
	Op     string
	Reason string
}

func (e *SequenceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

// ConsistencyError reports a hybrid decision that disagrees with the declared
// winner's defended position. Distinct from SchemaError so callers can tell
// an incoherent judgment apart from malformed output.
type ConsistencyError struct {
	Winner         Winner
	Decision       Position
	WinnerPosition Position
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("decision %q does not match winner %s's position %q",
		e.Decision, e.Winner, e.WinnerPosition)
}
