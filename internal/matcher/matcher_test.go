package matcher

import (
	"reflect"
	"testing"

	"github.com/funvibe/sizes/internal/dims"
)

func mustPattern(t *testing.T, raw string) dims.Pattern {
	t.Helper()
	p, err := dims.ParsePattern(raw)
	if err != nil {
		t.Fatalf("ParsePattern(%q): %v", raw, err)
	}
	return p
}

func TestMatchAccepted(t *testing.T) {
	tests := []struct {
		name string
		args []Arg
	}{
		{
			name: "wildcard consistent across arguments",
			args: []Arg{
				{Name: "a", Pattern: dims.Pattern{dims.Exact{Size: 3}, dims.Wild{Label: "N"}}, Actual: dims.Shape{3, 3}},
				{Name: "b", Pattern: dims.Pattern{dims.Exact{Size: 4}, dims.Exact{Size: 4}, dims.Wild{Label: "N"}}, Actual: dims.Shape{4, 4, 3}},
			},
		},
		{
			name: "run marker absorbs middle",
			args: []Arg{
				{Name: "x", Pattern: dims.Pattern{dims.Exact{Size: 4}, dims.AnyRun{}}, Actual: dims.Shape{4, 1, 2, 3, 4}},
			},
		},
		{
			name: "run marker of length zero",
			args: []Arg{
				{Name: "x", Pattern: dims.Pattern{dims.Exact{Size: 4}, dims.AnyRun{}}, Actual: dims.Shape{4}},
			},
		},
		{
			name: "prefix and suffix around run",
			args: []Arg{
				{Name: "y", Pattern: dims.Pattern{dims.Exact{Size: 2}, dims.AnyRun{}, dims.Wild{Label: "N"}, dims.Exact{Size: 5}}, Actual: dims.Shape{2, 7, 8, 9, 5}},
			},
		},
		{
			name: "repeated wildcard agreeing",
			args: []Arg{
				{Name: "m", Pattern: dims.Pattern{dims.Wild{Label: "K"}, dims.Wild{Label: "K"}}, Actual: dims.Shape{6, 6}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep := Match(tt.args)
			if !rep.OK() {
				t.Errorf("Match rejected: %s", Renderer{}.Render(rep))
			}
		})
	}
}

func TestMatchInconsistentWildcard(t *testing.T) {
	rep := Match([]Arg{
		{Name: "a", Pattern: mustPattern(t, "3,N"), Actual: dims.Shape{3, 3}},
		{Name: "b", Pattern: mustPattern(t, "4,4,N"), Actual: dims.Shape{3, 4, 4}},
	})
	if rep.OK() {
		t.Fatal("Match accepted inconsistent wildcard")
	}
	if !reflect.DeepEqual(rep.InconsistentLabels, []string{"N"}) {
		t.Errorf("InconsistentLabels = %v, want [N]", rep.InconsistentLabels)
	}
	if !rep.ExactMismatch {
		t.Error("ExactMismatch not set for b's first dimension")
	}
	if len(rep.CountMismatches) != 0 {
		t.Errorf("CountMismatches = %v, want none", rep.CountMismatches)
	}
}

func TestMatchExactMismatch(t *testing.T) {
	rep := Match([]Arg{
		{Name: "x", Pattern: mustPattern(t, "4,..."), Actual: dims.Shape{3, 4}},
	})
	if rep.OK() {
		t.Fatal("Match accepted exact mismatch in prefix")
	}
	if !rep.ExactMismatch {
		t.Error("ExactMismatch not set")
	}
	if len(rep.InconsistentLabels) != 0 || len(rep.CountMismatches) != 0 {
		t.Errorf("unexpected faults: labels %v counts %v", rep.InconsistentLabels, rep.CountMismatches)
	}
}

func TestMatchCountMismatch(t *testing.T) {
	rep := Match([]Arg{
		{Name: "a", Pattern: mustPattern(t, "3,N"), Actual: dims.Shape{3, 3, 7}},
	})
	if rep.OK() {
		t.Fatal("Match accepted wrong dimension count")
	}
	if !reflect.DeepEqual(rep.CountMismatches, []string{"a"}) {
		t.Errorf("CountMismatches = %v, want [a]", rep.CountMismatches)
	}
	// Count mismatch must not leak into the other fault classes.
	if rep.ExactMismatch || len(rep.InconsistentLabels) != 0 {
		t.Errorf("unexpected faults: exact %v labels %v", rep.ExactMismatch, rep.InconsistentLabels)
	}
}

func TestMatchRunCountBoundary(t *testing.T) {
	// prefix(1) + suffix(2) == len(actual)=3 is accepted: middle run empty.
	rep := Match([]Arg{
		{Name: "y", Pattern: mustPattern(t, "2,...,N,5"), Actual: dims.Shape{2, 9, 5}},
	})
	if !rep.OK() {
		t.Fatalf("Match rejected zero-length middle run: %s", Renderer{}.Render(rep))
	}

	rep = Match([]Arg{
		{Name: "y", Pattern: mustPattern(t, "2,...,N,5"), Actual: dims.Shape{2, 5}},
	})
	if rep.OK() {
		t.Fatal("Match accepted actual shorter than prefix+suffix")
	}
	if !reflect.DeepEqual(rep.CountMismatches, []string{"y"}) {
		t.Errorf("CountMismatches = %v, want [y]", rep.CountMismatches)
	}
}

// A count mismatch on one argument stops unification for that argument
// only; the remaining arguments still bind wildcards and report
// inconsistencies in the same pass.
func TestMatchBestEffortPartialUnification(t *testing.T) {
	rep := Match([]Arg{
		{Name: "a", Pattern: mustPattern(t, "3,N"), Actual: dims.Shape{3, 3, 7}},
		{Name: "b", Pattern: mustPattern(t, "N"), Actual: dims.Shape{4}},
		{Name: "c", Pattern: mustPattern(t, "N"), Actual: dims.Shape{5}},
	})
	if rep.OK() {
		t.Fatal("Match accepted faulty pass")
	}
	if !reflect.DeepEqual(rep.CountMismatches, []string{"a"}) {
		t.Errorf("CountMismatches = %v, want [a]", rep.CountMismatches)
	}
	if !reflect.DeepEqual(rep.InconsistentLabels, []string{"N"}) {
		t.Errorf("InconsistentLabels = %v, want [N]", rep.InconsistentLabels)
	}
}

// The count-mismatched argument must not contribute bindings: a's N would
// otherwise agree with b's and hide nothing, but a skipped argument that
// would DISAGREE must stay silent too.
func TestMatchCountMismatchBindsNothing(t *testing.T) {
	rep := Match([]Arg{
		{Name: "a", Pattern: mustPattern(t, "N"), Actual: dims.Shape{3, 9}},
		{Name: "b", Pattern: mustPattern(t, "N"), Actual: dims.Shape{4}},
	})
	if reflect.DeepEqual(rep.InconsistentLabels, []string{"N"}) {
		t.Error("skipped argument contributed a wildcard binding")
	}
	if !reflect.DeepEqual(rep.CountMismatches, []string{"a"}) {
		t.Errorf("CountMismatches = %v, want [a]", rep.CountMismatches)
	}
}

func TestMatchFaultyFlags(t *testing.T) {
	rep := Match([]Arg{
		{Name: "good", Pattern: mustPattern(t, "2,2"), Actual: dims.Shape{2, 2}},
		{Name: "bad", Pattern: mustPattern(t, "2,3"), Actual: dims.Shape{2, 9}},
	})
	if rep.OK() {
		t.Fatal("Match accepted exact mismatch")
	}
	var good, bad *ArgReport
	for i := range rep.Args {
		switch rep.Args[i].Name {
		case "good":
			good = &rep.Args[i]
		case "bad":
			bad = &rep.Args[i]
		}
	}
	if good == nil || bad == nil {
		t.Fatal("missing per-argument reports")
	}
	if good.Faulty {
		t.Error("fault-free argument marked faulty")
	}
	if !bad.Faulty {
		t.Error("faulty argument not marked")
	}
	if bad.Prefix[1].Fault != FaultExact {
		t.Errorf("bad position fault = %v, want FaultExact", bad.Prefix[1].Fault)
	}
}
