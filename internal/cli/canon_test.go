package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/timeset/internal/instant"
)

func executeCanon(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewCanonCommand(&RootOptions{Format: format})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestCanonCommand_Text(t *testing.T) {
	out, err := executeCanon(t, "text", "3/5", "0/2", "1/3", "7/6", "--contains", "5", "--contains", "4")
	require.NoError(t, err)

	assert.Contains(t, out, "{[0, 5)}\n")
	assert.Regexp(t, `set_id: [0-9a-f]{64}\n`, out)
	assert.Contains(t, out, "contains 5: false\n")
	assert.Contains(t, out, "contains 4: true\n")
}

func TestCanonCommand_JSON(t *testing.T) {
	out, err := executeCanon(t, "json",
		"2024-03-01T12:00:00Z/2024-03-01T13:00:00Z",
		"2024-03-01T09:00:00+01:00/2024-03-01T12:00:00Z",
	)
	require.NoError(t, err)

	var resp struct {
		Status string      `json:"status"`
		Data   CanonResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 1, resp.Data.Len)
	assert.JSONEq(t, `{"intervals":[["2024-03-01T08:00:00Z","2024-03-01T13:00:00Z"]],"kind":"time"}`, string(resp.Data.Set))
	assert.Len(t, resp.Data.SetID, 64)
}

func TestCanonCommand_SameSetSameID(t *testing.T) {
	a, err := executeCanon(t, "text", "0/2", "2/4")
	require.NoError(t, err)
	b, err := executeCanon(t, "text", "0/4")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCanonCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing slash", []string{"0-2"}, "E201"},
		{"bad instant", []string{"zero/2"}, "E201"},
		{"mixed bounds", []string{"0/2024-03-01T00:00:00Z"}, "E202"},
		{"mixed intervals", []string{"0/2", "2024-03-01T00:00:00Z/2024-03-02T00:00:00Z"}, "E202"},
		{"mixed probe", []string{"0/2", "--contains", "2024-03-01T00:00:00Z"}, "E202"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeCanon(t, "text", tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestParseInterval(t *testing.T) {
	iv, err := ParseInterval(" 1 / 4 ")
	require.NoError(t, err)
	assert.Equal(t, "[1, 4)", iv.String())

	_, err = ParseInterval("1/2024-01-01T00:00:00Z")
	assert.ErrorIs(t, err, instant.ErrTypeMismatch)
}
