package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/eventcheck/internal/config"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(config.Load())
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestCheckValidFile(t *testing.T) {
	path := writeFile(t, "ok.json", `{"evt1": {"Jets": [{"eta": 1.0, "phi": 2.0}]}}`)

	out, err := execute(t, "check", path)
	require.NoError(t, err)
	assert.Contains(t, out, "OK (0 errors, 0 warnings)")
}

func TestCheckInvalidFileFails(t *testing.T) {
	path := writeFile(t, "bad.json", `{"evt1": {"Tracks": [{}]}}`)

	out, err := execute(t, "check", path)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, out, "/evt1/Tracks/0/pos")
}

func TestCheckMultipleInputs(t *testing.T) {
	good := writeFile(t, "good.json", `{}`)
	bad := writeFile(t, "bad.json", `{"evt1": 5}`)

	out, err := execute(t, "check", good, bad)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, out, "OK (0 errors, 0 warnings)")
	assert.Contains(t, out, "INVALID (1 errors, 0 warnings)")
}

func TestCheckStrictTreatsWarningsAsFailure(t *testing.T) {
	path := writeFile(t, "warn.json", `{"evt1": {"mystery": []}}`)

	_, err := execute(t, "check", path)
	require.NoError(t, err, "warnings alone never fail a normal check")

	_, err = execute(t, "check", "--strict", path)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCheckJSONFormatWithJQ(t *testing.T) {
	path := writeFile(t, "bad.json", `{"evt1": {"Tracks": [{}]}}`)

	out, err := execute(t, "check", "--format", "json", "--jq", ".[0].errors", path)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "1\n", out)
}

func TestCheckRejectsUnknownFormat(t *testing.T) {
	path := writeFile(t, "ok.json", `{}`)

	_, err := execute(t, "check", "--format", "xml", path)
	assert.ErrorContains(t, err, "unknown format")
}

func TestCheckUnreadableInput(t *testing.T) {
	_, err := execute(t, "check", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestSchemaCommand(t *testing.T) {
	out, err := execute(t, "schema")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "object", doc["type"])
}
