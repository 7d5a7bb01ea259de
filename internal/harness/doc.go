// Package harness runs conformance scenarios against the timeset engine.
//
// A scenario declares named interval sets, evaluates set operations over
// them step by step, checks each step against an expected value, and can
// additionally verify algebraic laws and cross-check membership against
// the SQLite oracle.
//
// # Scenario Format
//
// Scenarios are YAML (.yaml, .yml) or CUE (.cue) files:
//
//	name: difference_with_gap
//	description: "Subtracting two pieces leaves the gap between them"
//	run_id: "test-run-001"        # optional, UUIDv7 otherwise
//	cross_check: true             # optional, compare with the oracle
//	laws: [disjointness]          # optional, or [all]
//	sets:
//	  whole: [[0, 4]]
//	  cuts:  [[0, 2], [3, 5]]
//	steps:
//	  - op: difference
//	    args: [whole, cuts]
//	    as: gap
//	    expect: [[2, 3]]
//	  - op: contains
//	    args: [gap]
//	    at: 3
//	    expect: false
//
// Instants are integers (logical ticks) or RFC 3339 timestamps; durations
// for translate are integers or Go duration strings. A scenario must use a
// single representation throughout; mixing them is a type mismatch and the
// scenario is rejected at load time.
//
// # Operations
//
//   - union, intersection, difference: two set args, produce a set
//   - translate (by), clip (window): one set arg, produce a set
//   - contains (at), is_empty, span: one set arg
//   - is_subset, is_disjoint, equal: two set args, produce a bool
//
// Set-producing steps may bind their result with "as" for later steps.
//
// # Laws
//
// idempotence, commutativity, associativity, identity, disjointness,
// subset_reflexivity, membership and union_merge are checked over every
// declared set (and pair or triple of sets where the law needs it).
//
// # Deterministic Output
//
// Every trace event is stamped by a testutil.SeqClock, sets are encoded
// with ir.MarshalCanonical, and a pinned run_id is included in snapshots,
// so repeated runs produce byte-identical golden files.
package harness
