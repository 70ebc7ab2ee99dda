package matcher

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/funvibe/sizes/internal/config"
	"github.com/funvibe/sizes/internal/dims"
)

// Renderer turns a Report into the combined human-readable diagnostic.
// Color styling wraps conflicting positions in red; the structured content
// is identical either way.
type Renderer struct {
	Color bool
}

// Render produces the full diagnostic: a summary line naming every
// count-mismatched argument, every inconsistent wildcard label and whether
// any exact dimension disagreed, followed by one annotated pattern line per
// faulty argument.
func (r Renderer) Render(rep *Report) string {
	var summary []string
	if len(rep.CountMismatches) > 0 {
		summary = append(summary,
			"argument(s) had different number of dims than expected: "+strings.Join(rep.CountMismatches, ", "))
	}
	if len(rep.InconsistentLabels) > 0 {
		summary = append(summary,
			"inconsistent wildcard(s): "+strings.Join(rep.InconsistentLabels, ", "))
	}
	if rep.ExactMismatch {
		summary = append(summary, "static dims do not match")
	}

	var details []string
	for i := range rep.Args {
		if !rep.Args[i].Faulty {
			continue
		}
		details = append(details, r.renderArg(&rep.Args[i]))
	}

	msg := "sizes: " + strings.Join(summary, "; ")
	if len(details) > 0 {
		msg += "\n  " + strings.Join(details, "\n  ")
	}
	return msg
}

func (r Renderer) renderArg(ar *ArgReport) string {
	var parts []string

	switch {
	case !ar.HasRun && ar.CountMismatch:
		// Count mismatch preempts per-dimension detail.
		parts = []string{fmt.Sprintf("Expected %d dims, got %d dims.", len(ar.Pattern), len(ar.Actual))}
	case !ar.HasRun:
		parts = r.renderDetails(ar.Prefix)
	default:
		parts = r.renderDetails(ar.Prefix)
		parts = append(parts, "...")
		if ar.CountMismatch {
			parts = append(parts, r.conflict("(suffix mismatch?)"))
		} else {
			parts = append(parts, r.renderDetails(ar.Suffix)...)
		}
	}

	return ar.Name + ": (" + strings.Join(parts, ",") + ")"
}

func (r Renderer) renderDetails(details []PosDetail) []string {
	parts := make([]string, 0, len(details))
	for _, d := range details {
		parts = append(parts, r.renderPos(d))
	}
	return parts
}

// renderPos renders one position: the actual value alone when an exact
// token matched, the wildcard label alone when its binding is consistent,
// and declared=actual marked as a conflict otherwise.
func (r Renderer) renderPos(d PosDetail) string {
	switch tok := d.Token.(type) {
	case dims.Exact:
		if d.Fault == FaultExact {
			return tok.String() + r.conflict("="+strconv.Itoa(d.Actual))
		}
		return strconv.Itoa(d.Actual)
	case dims.Wild:
		if d.Fault == FaultWildcard {
			return tok.Label + r.conflict("="+strconv.Itoa(d.Actual))
		}
		return tok.Label
	case dims.AnyRun:
		panic("matcher: run marker reached position rendering")
	default:
		panic(fmt.Sprintf("matcher: unknown dimension token %T", d.Token))
	}
}

func (r Renderer) conflict(s string) string {
	if !r.Color {
		return s
	}
	return config.AnsiRed + s + config.AnsiReset
}
