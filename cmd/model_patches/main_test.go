package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/erikproper/big-modelling-tools.go.v1/generics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tBundle struct {
	Model   json.RawMessage   `json:"model"`
	Diffs   []json.RawMessage `json:"diffs"`
	MaxRows int               `json:"maxRows"`
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	filePath := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))

	return filePath
}

func runTool(args ...string) (int, string, string) {
	stdout, stderr := bytes.Buffer{}, bytes.Buffer{}
	code := run(args, &stdout, &stderr)

	return code, stdout.String(), stderr.String()
}

func TestAppendedRow(t *testing.T) {
	code, stdout, stderr := runTool(writeFile(t, "models.json", `[{"X":[1,2]},{"X":[1,2,3]}]`))
	require.Equal(t, generics.ExitOK, code, stderr)

	assert.Equal(t, byte('\n'), stdout[len(stdout)-1])

	bundle := tBundle{}
	require.NoError(t, json.Unmarshal([]byte(stdout), &bundle))
	assert.JSONEq(t, `{"X":[1,2]}`, string(bundle.Model))
	assert.Equal(t, 3, bundle.MaxRows)
	require.Len(t, bundle.Diffs, 1)
	assert.Contains(t, string(bundle.Diffs[0]), `"op":"add"`)
}

func TestSingleModel(t *testing.T) {
	code, stdout, _ := runTool(writeFile(t, "models.json", `[{"X":["only"]}]`))
	require.Equal(t, generics.ExitOK, code)

	assert.Equal(t, "{\"model\":{\"X\":[\"only\"]},\"diffs\":[],\"maxRows\":1}\n", stdout)
}

func TestFailures(t *testing.T) {
	cases := []struct {
		name  string
		input string
		code  int
	}{
		{"invalid JSON", `[{"X":[1]`, generics.ExitParse},
		{"not an array", `{"X":[1]}`, generics.ExitParse},
		{"no models", `[]`, generics.ExitShape},
		{"no rows field", `[{"X":[]},{"Y":[]}]`, generics.ExitShape},
		{"rows field not an array", `[{"X":[]},{"X":"3"}]`, generics.ExitShape},
		{"last model not an object", `[{"X":[]},[1,2]]`, generics.ExitShape},
	}

	for _, c := range cases {
		code, stdout, stderr := runTool(writeFile(t, "models.json", c.input))

		assert.Equal(t, c.code, code, c.name)
		assert.Empty(t, stdout, c.name)
		assert.Contains(t, stderr, "ERROR:", c.name)
	}
}

func TestUsage(t *testing.T) {
	code, stdout, stderr := runTool()
	assert.Equal(t, generics.ExitUsage, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Usage: model_patches")

	code, _, _ = runTool("-no-such-flag", "models.json")
	assert.Equal(t, generics.ExitUsage, code)
}

func TestMissingFiles(t *testing.T) {
	code, stdout, _ := runTool(filepath.Join(t.TempDir(), "missing.json"))
	assert.Equal(t, generics.ExitIO, code)
	assert.Empty(t, stdout)

	models := writeFile(t, "models.json", `[{"X":[]}]`)
	code, _, _ = runTool("-config", filepath.Join(t.TempDir(), "missing.ini"), models)
	assert.Equal(t, generics.ExitIO, code)
}

func TestWorkersVerifyAndReplay(t *testing.T) {
	modelsJSON := `[
		{"X":[],"name":"<start>"},
		{"X":[{"a":1}],"name":"<start>"},
		{"X":[{"a":1},{"b":[1,2]}],"name":"middle"},
		{"X":[{"b":[2]}],"name":"middle","tags":["x"]},
		{"X":[{"b":[2]},{"c":"&"},{"d":true}],"tags":[]}
	]`
	models := writeFile(t, "models.json", modelsJSON)

	code, bundleJSON, stderr := runTool("-workers", "3", "-verify", models)
	require.Equal(t, generics.ExitOK, code, stderr)
	assert.Contains(t, stderr, "Verified")

	bundle := tBundle{}
	require.NoError(t, json.Unmarshal([]byte(bundleJSON), &bundle))
	assert.Len(t, bundle.Diffs, 4)
	assert.Equal(t, 3, bundle.MaxRows)
	assert.Contains(t, bundleJSON, `"name":"<start>"`)

	code, replayedJSON, stderr := runTool("-replay", writeFile(t, "bundle.json", bundleJSON))
	require.Equal(t, generics.ExitOK, code, stderr)
	assert.JSONEq(t, modelsJSON, replayedJSON)
}

func TestReplayFailures(t *testing.T) {
	code, _, _ := runTool("-replay", writeFile(t, "bundle.json", `{"model":`))
	assert.Equal(t, generics.ExitParse, code)

	code, _, _ = runTool("-replay", writeFile(t, "bundle.json", `{"diffs":[]}`))
	assert.Equal(t, generics.ExitShape, code)

	code, _, _ = runTool("-replay", writeFile(t, "bundle.json", `{"model":{"X":[]},"diffs":[[{"op":"remove","path":"/Y"}]],"maxRows":0}`))
	assert.Equal(t, generics.ExitShape, code)
}

func TestQuiet(t *testing.T) {
	code, stdout, stderr := runTool("-quiet", "-verify", writeFile(t, "models.json", `[{"X":[]},{"X":[1]}]`))
	require.Equal(t, generics.ExitOK, code)

	assert.NotEmpty(t, stdout)
	assert.Empty(t, stderr)
}

func TestConfig(t *testing.T) {
	config := writeFile(t, "tools.ini", `
[reporting]
level    = 0
progress = false

[patches]
rows_field = rows
workers    = 2
verify     = true
lcs        = true
`)

	code, stdout, stderr := runTool("-config", config, writeFile(t, "models.json", `[{"rows":[]},{"rows":[1,2]},{"rows":[2]}]`))
	require.Equal(t, generics.ExitOK, code, stderr)
	assert.Empty(t, stderr)

	bundle := tBundle{}
	require.NoError(t, json.Unmarshal([]byte(stdout), &bundle))
	assert.Equal(t, 1, bundle.MaxRows)
	assert.Len(t, bundle.Diffs, 2)

	code, _, _ = runTool("-config", config, writeFile(t, "models.json", `[{"X":[]}]`))
	assert.Equal(t, generics.ExitShape, code)
}

func TestVerifyWithNulls(t *testing.T) {
	code, stdout, stderr := runTool("-verify", writeFile(t, "models.json", `[{"X":[]},{"X":[null]}]`))
	require.Equal(t, generics.ExitOK, code, stderr)

	bundle := tBundle{}
	require.NoError(t, json.Unmarshal([]byte(stdout), &bundle))
	assert.Equal(t, 1, bundle.MaxRows)
}

func TestInvertibleDiffsVerifyAndReplay(t *testing.T) {
	config := writeFile(t, "tools.ini", "[patches]\ninvertible = true\nverify = true\n")
	modelsJSON := `[{"X":[],"s":"<a>"},{"X":[]},{"X":[null,"&"]}]`

	code, bundleJSON, stderr := runTool("-config", config, writeFile(t, "models.json", modelsJSON))
	require.Equal(t, generics.ExitOK, code, stderr)
	assert.NotContains(t, bundleJSON, `\u003c`)
	assert.NotContains(t, bundleJSON, `\u0026`)

	code, replayedJSON, stderr := runTool("-replay", writeFile(t, "bundle.json", bundleJSON))
	require.Equal(t, generics.ExitOK, code, stderr)
	assert.JSONEq(t, modelsJSON, replayedJSON)
}

func TestUnknownProgressSetting(t *testing.T) {
	config := writeFile(t, "tools.ini", "[reporting]\nprogress = sometimes\n")

	code, stdout, stderr := runTool("-config", config, writeFile(t, "models.json", `[{"X":[]}]`))
	assert.Equal(t, generics.ExitUsage, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, `"sometimes"`)
}
