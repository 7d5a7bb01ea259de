package testutil

// DefaultRunID is used by FixedRunID when no id is configured.
const DefaultRunID = "test-run-default"

// FixedRunID hands out the same run id on every call, so repeated scenario
// runs produce byte-identical traces.
//
// Thread-safety: FixedRunID is immutable and safe for concurrent use.
type FixedRunID struct {
	id string
}

// NewFixedRunID returns a generator for id, or DefaultRunID when id is
// empty. Scenario files usually pin the id:
//
//	run_id: "test-run-00000000-0000-0000-0000-000000000001"
func NewFixedRunID(id string) *FixedRunID {
	if id == "" {
		id = DefaultRunID
	}
	return &FixedRunID{id: id}
}

// Generate returns the fixed id.
func (g *FixedRunID) Generate() string {
	return g.id
}
