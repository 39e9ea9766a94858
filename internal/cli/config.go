// SPDX-License-Identifier: GPL-3.0-or-later

package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/bassosimone/sfsconn"
	"gopkg.in/yaml.v3"
)

// fileConfig maps the configuration file keys.
type fileConfig struct {
	Timeout         string `toml:"timeout" yaml:"timeout"`
	MaxResponseSize int    `toml:"max_response_size" yaml:"max_response_size"`
	LogLevel        string `toml:"log_level" yaml:"log_level"`
	LogFormat       string `toml:"log_format" yaml:"log_format"`
}

// settings is the merged result of defaults, file and flags.
type settings struct {
	conn      *sfsconn.Config
	logLevel  string
	logFormat string
}

func defaultSettings() *settings {
	return &settings{
		conn:      sfsconn.NewConfig(),
		logLevel:  "info",
		logFormat: "text",
	}
}

// loadSettings overlays the file at path, when not empty, onto the defaults.
//
// The format follows the extension: .toml, or .yaml and .yml.
func loadSettings(path string) (*settings, error) {
	st := defaultSettings()
	if path == "" {
		return st, nil
	}

	var (
		raw       fileConfig
		isDefined func(key string) bool
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		meta, err := toml.DecodeFile(path, &raw)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("load config: unknown key %q", undecoded[0].String())
		}
		isDefined = func(key string) bool { return meta.IsDefined(key) }

	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		var keys map[string]any
		if err := yaml.Unmarshal(data, &keys); err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("load config: %w", err)
		}
		isDefined = func(key string) bool {
			_, found := keys[key]
			return found
		}

	default:
		return nil, fmt.Errorf("load config: unsupported extension %q", ext)
	}

	if err := st.overlay(&raw, isDefined); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return st, nil
}

func (st *settings) overlay(raw *fileConfig, isDefined func(string) bool) error {
	if isDefined("timeout") {
		timeout, err := time.ParseDuration(strings.TrimSpace(raw.Timeout))
		if err != nil {
			return fmt.Errorf("invalid timeout: %w", err)
		}
		st.conn.Timeout = timeout
	}
	if isDefined("max_response_size") {
		st.conn.MaxResponseSize = raw.MaxResponseSize
	}
	if isDefined("log_level") {
		st.logLevel = strings.ToLower(strings.TrimSpace(raw.LogLevel))
	}
	if isDefined("log_format") {
		st.logFormat = strings.ToLower(strings.TrimSpace(raw.LogFormat))
	}
	return nil
}

// applyFlags overrides the settings with the flags the user explicitly set.
func (st *settings) applyFlags(flags *globalFlags, changed func(name string) bool) {
	if changed("timeout") {
		st.conn.Timeout = flags.timeout
	}
	if changed("log-format") {
		st.logFormat = strings.ToLower(flags.logFormat)
	}
	if flags.verbose {
		st.logLevel = "debug"
	}
}
