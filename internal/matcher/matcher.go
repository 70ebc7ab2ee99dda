package matcher

import (
	"fmt"
	"sort"

	"github.com/funvibe/sizes/internal/dims"
)

// Arg is one declared argument entering a validation pass: its name, its
// declared pattern and the shape observed on the actual value.
type Arg struct {
	Name    string
	Pattern dims.Pattern
	Actual  dims.Shape
}

// pass holds the transient state of one validation run. It is built fresh
// per call and discarded with the pass; nothing is shared across calls.
type pass struct {
	bindings      map[string]map[int]struct{}
	exactMismatch bool
}

// unifyDim pairs one dimension token against one actual size. Exact
// disagreements only raise a flag so every mismatch across all arguments is
// collected before reporting. Run markers are split out before unification
// begins, so seeing one here is an impossible state.
func (p *pass) unifyDim(d dims.Dim, actual int) {
	switch d := d.(type) {
	case dims.Exact:
		if d.Size != actual {
			p.exactMismatch = true
		}
	case dims.Wild:
		set, ok := p.bindings[d.Label]
		if !ok {
			set = make(map[int]struct{})
			p.bindings[d.Label] = set
		}
		set[actual] = struct{}{}
	case dims.AnyRun:
		panic("matcher: run marker reached dimension unification")
	default:
		panic(fmt.Sprintf("matcher: unknown dimension token %T", d))
	}
}

// Match runs one validation pass over the declared arguments and returns
// the structured outcome. A dimension-count mismatch on one argument stops
// unification for that argument only; the remaining arguments still bind
// their wildcards, so cross-argument inconsistencies surface in the same
// pass.
func Match(args []Arg) *Report {
	p := &pass{bindings: make(map[string]map[int]struct{})}
	rep := &Report{Args: make([]ArgReport, 0, len(args))}

	for _, arg := range args {
		prefix, suffix, hasRun := arg.Pattern.Split()
		ar := ArgReport{
			Name:    arg.Name,
			Pattern: arg.Pattern,
			Actual:  arg.Actual,
			HasRun:  hasRun,
		}

		if !hasRun {
			if len(arg.Pattern) != len(arg.Actual) {
				ar.CountMismatch = true
				rep.CountMismatches = append(rep.CountMismatches, arg.Name)
				rep.Args = append(rep.Args, ar)
				continue
			}
			for i, d := range arg.Pattern {
				p.unifyDim(d, arg.Actual[i])
			}
			rep.Args = append(rep.Args, ar)
			continue
		}

		if len(prefix)+len(suffix) > len(arg.Actual) {
			ar.CountMismatch = true
			rep.CountMismatches = append(rep.CountMismatches, arg.Name)
			rep.Args = append(rep.Args, ar)
			continue
		}
		for i, d := range prefix {
			p.unifyDim(d, arg.Actual[i])
		}
		// The middle run absorbs everything between prefix and suffix and
		// is never checked against anything.
		tail := arg.Actual[len(arg.Actual)-len(suffix):]
		for i, d := range suffix {
			p.unifyDim(d, tail[i])
		}
		rep.Args = append(rep.Args, ar)
	}

	inconsistent := make(map[string]bool)
	for label, set := range p.bindings {
		if len(set) != 1 {
			inconsistent[label] = true
			rep.InconsistentLabels = append(rep.InconsistentLabels, label)
		}
	}
	sort.Strings(rep.InconsistentLabels)
	rep.ExactMismatch = p.exactMismatch

	for i := range rep.Args {
		annotate(&rep.Args[i], inconsistent)
	}
	return rep
}

// annotate fills in the per-position detail the renderer needs, classifying
// each matched pair now that the full binding table is known.
func annotate(ar *ArgReport, inconsistent map[string]bool) {
	prefix, suffix, hasRun := ar.Pattern.Split()

	if !hasRun {
		if ar.CountMismatch {
			ar.Faulty = true
			return
		}
		ar.Prefix = detailPairs(prefix, ar.Actual, inconsistent)
	} else {
		// Prefix detail stays useful even on a count mismatch; pair up only
		// what the actual shape covers.
		n := len(prefix)
		if n > len(ar.Actual) {
			n = len(ar.Actual)
		}
		ar.Prefix = detailPairs(prefix[:n], ar.Actual[:n], inconsistent)
		if !ar.CountMismatch {
			tail := ar.Actual[len(ar.Actual)-len(suffix):]
			ar.Suffix = detailPairs(suffix, tail, inconsistent)
		}
	}

	ar.Faulty = ar.CountMismatch
	for _, d := range ar.Prefix {
		if d.Fault != FaultNone {
			ar.Faulty = true
		}
	}
	for _, d := range ar.Suffix {
		if d.Fault != FaultNone {
			ar.Faulty = true
		}
	}
}

func detailPairs(tokens dims.Pattern, actual dims.Shape, inconsistent map[string]bool) []PosDetail {
	details := make([]PosDetail, 0, len(tokens))
	for i, d := range tokens {
		pd := PosDetail{Token: d, Actual: actual[i]}
		switch d := d.(type) {
		case dims.Exact:
			if d.Size != actual[i] {
				pd.Fault = FaultExact
			}
		case dims.Wild:
			if inconsistent[d.Label] {
				pd.Fault = FaultWildcard
			}
		case dims.AnyRun:
			panic("matcher: run marker reached position annotation")
		default:
			panic(fmt.Sprintf("matcher: unknown dimension token %T", d))
		}
		details = append(details, pd)
	}
	return details
}
