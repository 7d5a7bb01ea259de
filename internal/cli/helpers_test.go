package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const passingScenario = `
name: bridging
description: An interval bridging two pieces fuses them
run_id: cli-run-001
cross_check: true
laws: [identity]
sets:
  a: [[0, 2], [3, 4]]
  b: [[1, 3]]
steps:
  - op: union
    args: [a, b]
    as: u
    expect: [[0, 4]]
  - op: contains
    args: [u]
    at: 4
    expect: false
`

// passingGolden is the canonical trace of passingScenario.
const passingGolden = `{"run_id":"cli-run-001","scenario_name":"bridging","trace":[` +
	`{"args":["a","b"],"as":"u","op":"union","result":{"intervals":[[0,4]],"kind":"tick"},"seq":1},` +
	`{"args":["u"],"op":"contains","param":4,"result":false,"seq":2},` +
	`{"args":["a","b"],"op":"law:identity","result":true,"seq":3}]}`

const failingScenario = `
name: wrong_expectation
description: Expects the wrong intersection
sets:
  a: [[0, 2]]
  b: [[1, 3]]
steps:
  - op: intersection
    args: [a, b]
    expect: [[0, 3]]
`

const mismatchedScenario = `
name: mixed
description: Ticks and times in one document
sets:
  a: [[0, 2]]
  b: [["2024-01-01T00:00:00Z", "2024-01-02T00:00:00Z"]]
steps:
  - op: union
    args: [a, b]
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
