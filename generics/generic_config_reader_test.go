package generics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func silentReporter() *TReporter {
	return CreateReporter(func(string) {}, func(string) {})
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	filePath := filepath.Join(t.TempDir(), "tools.ini")
	require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))

	return filePath
}

func TestLoadConfigWithoutFileGivesDefaults(t *testing.T) {
	configData, err := LoadConfig("", silentReporter())
	require.NoError(t, err)

	assert.Equal(t, DefaultRowsField, configData.GetValue("patches", "rows_field").StringWithDefault(DefaultRowsField))
	assert.Equal(t, 1, configData.GetValue("patches", "workers").IntWithDefault(1))
	assert.False(t, configData.GetValue("patches", "verify").Bool())
	assert.True(t, configData.GetValue("patches", "verify").BoolWithDefault(true))
	assert.Equal(t, "", configData.GetValue("", "anything").String())
	assert.Equal(t, 0, configData.GetValue("", "anything").Int())
}

func TestLoadConfigReadsValues(t *testing.T) {
	filePath := writeConfig(t, `
[reporting]
level    = 2
progress = never-heard-of

[patches]
rows_field = rows
workers    = 4
verify     = true
lcs        = yes

[compression]
encoding = base64
`)

	configData, err := LoadConfig(filePath, silentReporter())
	require.NoError(t, err)

	assert.Equal(t, 2, configData.GetValue("reporting", "level").IntWithDefault(ProgressLevelBasic))
	_, err = configData.GetValue("reporting", "progress").OneOf(ProgressAuto, ProgressAuto, ProgressAlways, ProgressNever)
	assert.True(t, errors.Is(err, ErrUsage))
	assert.Contains(t, err.Error(), `progress in [reporting] is "never-heard-of"`)
	assert.Equal(t, "rows", configData.GetValue("patches", "rows_field").StringWithDefault(DefaultRowsField))
	assert.Equal(t, 4, configData.GetValue("patches", "workers").IntWithDefault(DefaultWorkers))
	assert.True(t, configData.GetValue("patches", "verify").Bool())

	encoding, err := configData.GetValue("compression", "encoding").OneOf("raw", "raw", "base64")
	require.NoError(t, err)
	assert.Equal(t, "base64", encoding)

	encoding, err = configData.GetValue("compression", "missing").OneOf("raw", "raw", "base64")
	require.NoError(t, err)
	assert.Equal(t, "raw", encoding)

	options := DiffOptionsFromConfig(configData)
	assert.Equal(t, TDiffOptions{LCS: true}, options)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.ini"), silentReporter())
	require.True(t, errors.Is(err, ErrIO))
}
