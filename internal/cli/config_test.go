// SPDX-License-Identifier: GPL-3.0-or-later

package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bassosimone/sfsconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadSettingsDefaults(t *testing.T) {
	st, err := loadSettings("")
	require.NoError(t, err)
	assert.Equal(t, sfsconn.DefaultMaxResponseSize, st.conn.MaxResponseSize)
	assert.Equal(t, time.Duration(0), st.conn.Timeout)
	assert.Equal(t, "info", st.logLevel)
	assert.Equal(t, "text", st.logFormat)
}

func TestLoadSettingsFormats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "toml",
			file: "sfsctl.toml",
			content: `timeout = "5s"
max_response_size = 2048
log_level = "DEBUG"
log_format = "json"
`,
		},
		{
			name: "yaml",
			file: "sfsctl.yaml",
			content: `timeout: 5s
max_response_size: 2048
log_level: DEBUG
log_format: json
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := loadSettings(writeFile(t, tt.file, tt.content))
			require.NoError(t, err)
			assert.Equal(t, 5*time.Second, st.conn.Timeout)
			assert.Equal(t, 2048, st.conn.MaxResponseSize)
			assert.Equal(t, "debug", st.logLevel)
			assert.Equal(t, "json", st.logFormat)
		})
	}
}

// Keys missing from the file keep their default values.
func TestLoadSettingsPartialOverlay(t *testing.T) {
	st, err := loadSettings(writeFile(t, "sfsctl.yml", "log_format: json\n"))
	require.NoError(t, err)
	assert.Equal(t, sfsconn.DefaultMaxResponseSize, st.conn.MaxResponseSize)
	assert.Equal(t, "json", st.logFormat)
	assert.Equal(t, "info", st.logLevel)
}

func TestLoadSettingsErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    string
	}{
		{"unsupported extension", "sfsctl.ini", "x=1", "unsupported extension"},
		{"unknown toml key", "sfsctl.toml", "retries = 3\n", "unknown key"},
		{"unknown yaml key", "sfsctl.yaml", "retries: 3\n", "field retries not found"},
		{"invalid toml", "sfsctl.toml", "timeout = \n", "load config"},
		{"invalid yaml", "sfsctl.yaml", "timeout: [\n", "load config"},
		{"invalid timeout", "sfsctl.toml", "timeout = \"soon\"\n", "invalid timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadSettings(writeFile(t, tt.file, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

// An empty YAML file keeps every default.
func TestLoadSettingsEmptyYAML(t *testing.T) {
	st, err := loadSettings(writeFile(t, "sfsctl.yaml", ""))
	require.NoError(t, err)
	assert.Equal(t, sfsconn.DefaultMaxResponseSize, st.conn.MaxResponseSize)
	assert.Equal(t, "text", st.logFormat)
}

func TestLoadSettingsMissingFile(t *testing.T) {
	_, err := loadSettings(filepath.Join(t.TempDir(), "missing.toml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestApplyFlags(t *testing.T) {
	st := defaultSettings()
	flags := &globalFlags{timeout: 3 * time.Second, logFormat: "JSON", verbose: true}
	changed := map[string]bool{"timeout": true, "log-format": true}
	st.applyFlags(flags, func(name string) bool { return changed[name] })

	assert.Equal(t, 3*time.Second, st.conn.Timeout)
	assert.Equal(t, "json", st.logFormat)
	assert.Equal(t, "debug", st.logLevel)
}

// Flags the user did not set do not override the file.
func TestApplyFlagsUnchanged(t *testing.T) {
	st := defaultSettings()
	st.conn.Timeout = time.Minute
	st.applyFlags(&globalFlags{}, func(string) bool { return false })
	assert.Equal(t, time.Minute, st.conn.Timeout)
	assert.Equal(t, "info", st.logLevel)
}
