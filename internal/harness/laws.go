package harness

import (
	"fmt"
	"slices"

	"github.com/roach88/timeset/internal/instant"
	"github.com/roach88/timeset/internal/ir"
	"github.com/roach88/timeset/internal/timeset"
)

// Law names accepted in a scenario's laws list.
const (
	LawIdempotence       = "idempotence"
	LawCommutativity     = "commutativity"
	LawAssociativity     = "associativity"
	LawIdentity          = "identity"
	LawDisjointness      = "disjointness"
	LawSubsetReflexivity = "subset_reflexivity"
	LawMembership        = "membership"
	LawUnionMerge        = "union_merge"

	// LawAll expands to every law above.
	LawAll = "all"
)

// AllLaws lists every law in evaluation order.
var AllLaws = []string{
	LawIdempotence,
	LawCommutativity,
	LawAssociativity,
	LawIdentity,
	LawDisjointness,
	LawSubsetReflexivity,
	LawMembership,
	LawUnionMerge,
}

// lawCheck returns a description of the first counterexample, or "" if
// the law holds for every tuple of declared sets.
type lawCheck func(h *Harness, names []string) string

var lawChecks = map[string]lawCheck{
	LawIdempotence:       checkIdempotence,
	LawCommutativity:     checkCommutativity,
	LawAssociativity:     checkAssociativity,
	LawIdentity:          checkIdentity,
	LawDisjointness:      checkDisjointness,
	LawSubsetReflexivity: checkSubsetReflexivity,
	LawMembership:        checkMembership,
	LawUnionMerge:        checkUnionMerge,
}

// requestedLaws expands "all" and removes duplicates, keeping AllLaws order.
func requestedLaws(laws []string) []string {
	if slices.Contains(laws, LawAll) {
		return AllLaws
	}
	var out []string
	for _, law := range AllLaws {
		if slices.Contains(laws, law) {
			out = append(out, law)
		}
	}
	return out
}

// checkLaws evaluates every requested law over the declared sets. Sets bound
// by steps are not included.
func (h *Harness) checkLaws() error {
	names := h.scenario.SetNames()
	for _, law := range requestedLaws(h.scenario.Laws) {
		var violation string
		err := instant.Guard(func() { violation = lawChecks[law](h, names) })
		if err != nil {
			return &ScenarioError{Code: ErrCodeTypeMismatch, Step: -1, Message: "law " + law, Err: err}
		}

		event := TraceEvent{
			Seq:    h.clock.Next(),
			Op:     "law:" + law,
			Args:   names,
			Result: ir.IRBool(violation == ""),
		}
		h.result.Trace = append(h.result.Trace, event)
		h.logger.Debug("law checked", "seq", event.Seq, "law", law, "held", violation == "")

		if violation != "" {
			h.result.AddError(newScenarioError(ErrCodeLawViolated, -1, "%s: %s", law, violation).Error())
		}
	}
	return nil
}

func emptySet() instant.ValueSet { return instant.NewValueSet() }

func checkIdempotence(h *Harness, names []string) string {
	for _, n := range names {
		s := h.sets[n]
		if !instant.NewValueSet(s.Intervals()...).Equal(s) {
			return fmt.Sprintf("canonicalizing %s again changed it", n)
		}
		if !s.Union(s).Equal(s) {
			return fmt.Sprintf("%s ∪ %s = %v", n, n, s.Union(s))
		}
		if !s.Intersection(s).Equal(s) {
			return fmt.Sprintf("%s ∩ %s = %v", n, n, s.Intersection(s))
		}
	}
	return ""
}

func checkCommutativity(h *Harness, names []string) string {
	for _, x := range names {
		for _, y := range names {
			a, b := h.sets[x], h.sets[y]
			if !a.Union(b).Equal(b.Union(a)) {
				return fmt.Sprintf("%s ∪ %s != %s ∪ %s", x, y, y, x)
			}
			if !a.Intersection(b).Equal(b.Intersection(a)) {
				return fmt.Sprintf("%s ∩ %s != %s ∩ %s", x, y, y, x)
			}
		}
	}
	return ""
}

func checkAssociativity(h *Harness, names []string) string {
	for _, x := range names {
		for _, y := range names {
			for _, z := range names {
				a, b, c := h.sets[x], h.sets[y], h.sets[z]
				if !a.Union(b).Union(c).Equal(a.Union(b.Union(c))) {
					return fmt.Sprintf("union is not associative over (%s, %s, %s)", x, y, z)
				}
				if !a.Intersection(b).Intersection(c).Equal(a.Intersection(b.Intersection(c))) {
					return fmt.Sprintf("intersection is not associative over (%s, %s, %s)", x, y, z)
				}
			}
		}
	}
	return ""
}

func checkIdentity(h *Harness, names []string) string {
	e := emptySet()
	for _, n := range names {
		s := h.sets[n]
		switch {
		case !s.Union(e).Equal(s):
			return fmt.Sprintf("%s ∪ ∅ != %s", n, n)
		case !s.Intersection(e).IsEmpty():
			return fmt.Sprintf("%s ∩ ∅ is not empty", n)
		case !s.Difference(e).Equal(s):
			return fmt.Sprintf("%s - ∅ != %s", n, n)
		case !e.Difference(s).IsEmpty():
			return fmt.Sprintf("∅ - %s is not empty", n)
		}
	}
	return ""
}

func checkDisjointness(h *Harness, names []string) string {
	for _, x := range names {
		for _, y := range names {
			a, b := h.sets[x], h.sets[y]
			d := a.Difference(b)
			if !d.Intersection(b).IsEmpty() {
				return fmt.Sprintf("(%s - %s) ∩ %s = %v", x, y, y, d.Intersection(b))
			}
			if !d.IsSubset(a) {
				return fmt.Sprintf("(%s - %s) is not a subset of %s", x, y, x)
			}
		}
	}
	return ""
}

func checkSubsetReflexivity(h *Harness, names []string) string {
	if !emptySet().IsSubset(emptySet()) {
		return "∅ is not a subset of ∅"
	}
	for _, n := range names {
		if !h.sets[n].IsSubset(h.sets[n]) {
			return fmt.Sprintf("%s is not a subset of itself", n)
		}
	}
	return ""
}

// checkMembership compares the canonical set with the raw intervals it was
// built from at every raw boundary and one unit before it.
func checkMembership(h *Harness, names []string) string {
	for _, n := range names {
		s, raw := h.sets[n], h.raw[n]
		for _, p := range probePoints(raw) {
			want := false
			for _, iv := range raw {
				if iv.Contains(p) {
					want = true
					break
				}
			}
			if got := s.Contains(p); got != want {
				return fmt.Sprintf("%s contains %v = %t, raw intervals say %t", n, p, got, want)
			}
		}
	}
	return ""
}

func checkUnionMerge(h *Harness, names []string) string {
	for _, x := range names {
		for _, y := range names {
			a, b := h.sets[x], h.sets[y]
			merged := a.Union(b).Intervals()
			full := timeset.Canonicalize(append(a.Intervals(), b.Intervals()...))
			if !slices.EqualFunc(merged, full, instant.ValueInterval.Equal) {
				return fmt.Sprintf("%s ∪ %s merged to %v, full canonicalization gives %v", x, y, merged, full)
			}
		}
	}
	return ""
}
