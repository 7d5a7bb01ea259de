package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, formatter.Success(map[string]string{"result": "success"}))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotNil(t, resp.Data)
	assert.Nil(t, resp.Error)
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, formatter.Error(ErrCodeBadInterval, "invalid interval", map[string]string{"arg": "0-1"}))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeBadInterval, resp.Error.Code)
	assert.Equal(t, "invalid interval", resp.Error.Message)
	assert.NotNil(t, resp.Error.Details)
}

func TestOutputFormatter_TextError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf, Verbose: true}

	require.NoError(t, formatter.Error("E001", "boom", "more"))
	assert.Equal(t, "Error [E001]: boom\nDetails: more\n", buf.String())
}

func TestOutputFormatter_Fail(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}

	err := formatter.Fail(ExitCommandError, ErrCodeNotFound, "path not found", errors.New("stat failed"))
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), "Error [E005]: path not found")
}

func TestOutputFormatter_VerboseLogGoesToErrWriter(t *testing.T) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: out, ErrWriter: errOut, Verbose: true}

	formatter.VerboseLog("checking %d file(s)", 3)
	assert.Empty(t, out.String())
	assert.Equal(t, "checking 3 file(s)\n", errOut.String())

	formatter.Verbose = false
	formatter.VerboseLog("silent")
	assert.NotContains(t, errOut.String(), "silent")
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "bad")))

	wrapped := fmt.Errorf("outer: %w", WrapExitError(ExitFailure, "failed", errors.New("inner")))
	assert.Equal(t, ExitFailure, GetExitCode(wrapped))
	assert.Equal(t, "outer: failed: inner", wrapped.Error())
}

func TestReportError(t *testing.T) {
	var buf bytes.Buffer

	ReportError(&buf, nil)
	assert.Empty(t, buf.String())

	// Already reported by the formatter.
	ReportError(&buf, WrapExitError(ExitCommandError, "invalid interval", errors.New("want start/end")))
	ReportError(&buf, fmt.Errorf("run: %w", NewExitError(ExitFailure, "1 scenario(s) failed")))
	assert.Empty(t, buf.String())

	// Cobra argument and flag errors never reach a formatter.
	ReportError(&buf, errors.New(`invalid format "xml": must be one of [text json]`))
	assert.Equal(t, "invalid format \"xml\": must be one of [text json]\n", buf.String())
}

func TestFailReportsOnce(t *testing.T) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: out, ErrWriter: errOut}

	err := formatter.Fail(ExitCommandError, ErrCodeBadInterval, "invalid interval \"x\"", errors.New("want start/end"))
	ReportError(errOut, err)

	reported := out.String() + errOut.String()
	assert.Equal(t, 1, strings.Count(reported, "invalid interval"), reported)
}
