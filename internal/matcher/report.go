package matcher

import "github.com/funvibe/sizes/internal/dims"

// Fault classifies what went wrong at one pattern position.
type Fault int

const (
	// FaultNone means the position matched.
	FaultNone Fault = iota
	// FaultExact means an exact token disagreed with the actual size.
	FaultExact
	// FaultWildcard means the wildcard at this position belongs to a label
	// that resolved inconsistently across the pass.
	FaultWildcard
)

// PosDetail carries what the renderer needs for one pattern position: the
// declared token, the actual size it was paired with and how they relate.
type PosDetail struct {
	Token  dims.Dim
	Actual int
	Fault  Fault
}

// ArgReport is the per-argument view of one validation pass.
type ArgReport struct {
	Name    string
	Pattern dims.Pattern
	Actual  dims.Shape

	// CountMismatch is set when the argument's dimension count cannot fit
	// the pattern; it preempts per-dimension detail for the argument.
	CountMismatch bool
	HasRun        bool

	// Prefix holds annotated positions left-aligned against the actual
	// shape. For patterns without a run marker it covers every position.
	Prefix []PosDetail
	// Suffix holds annotated positions right-aligned against the actual
	// shape; only run-marker patterns have one.
	Suffix []PosDetail

	// Faulty is set when the argument has any fault at all; fault-free
	// arguments are omitted from the rendered detail list.
	Faulty bool
}

// Report is the structured outcome of one validation pass.
type Report struct {
	// Args lists every declared argument in declaration order.
	Args []ArgReport
	// CountMismatches names the arguments whose dimension count did not fit
	// their pattern, in declaration order.
	CountMismatches []string
	// InconsistentLabels lists wildcard labels bound to more than one
	// distinct size, sorted.
	InconsistentLabels []string
	// ExactMismatch is set when any exact token anywhere disagreed.
	ExactMismatch bool
}

// OK reports whether the call is accepted.
func (r *Report) OK() bool {
	return len(r.CountMismatches) == 0 && len(r.InconsistentLabels) == 0 && !r.ExactMismatch
}

// MismatchError is the aggregate validation failure for one call: count
// mismatches, exact mismatches and inconsistent wildcards combined into a
// single error. The structured report is the contract; the message is
// rendered from it on demand.
type MismatchError struct {
	Report *Report
	Color  bool
}

func (e *MismatchError) Error() string {
	return Renderer{Color: e.Color}.Render(e.Report)
}
