/*
 *
 * Module:    BIG Modelling Tools
 * Package:   Generics
 * Component: Config reader
 *
 * Settings of the tools come from an optional ini file, read with "gopkg.in/ini.v1".
 * Without a file, every lookup falls back to the default the caller provides, so the tools behave the
 * same with an empty configuration as without one.
 * Values restricted to a fixed set of choices are checked (see OneOf), so a typing error in the ini
 * file is reported rather than silently replaced by the default.
 *
 * Author: Henderik A. Proper (e.proper@acm.org), TU Wien, Austria
 *
 * Version of: 18.10.2026
 *
 */

package generics

import (
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/ini.v1"
)

type (
	TConfigData struct {
		configFile *ini.File
	}

	// A single setting, remembering where it came from for error messages
	TConfigValue struct {
		section   string
		configKey *ini.Key
	}
)

// Load the configuration file. Without a file path, the configuration is empty.
func LoadConfig(filePath string, reporter *TReporter) (*TConfigData, error) {
	configData := TConfigData{}

	if filePath == "" {
		configData.configFile = ini.Empty()
		return &configData, nil
	}

	reporter.Progress(ProgressLevelDetailed, "Reading config file: %s", filePath)
	configFile, err := ini.Load(filePath)
	if err != nil {
		return nil, errors.Wrapf(ErrIO, "failed to read config file %s (%s)", filePath, err)
	}

	configData.configFile = configFile

	return &configData, nil
}

// The setting for key in section. Settings missing from the file read as empty.
func (c *TConfigData) GetValue(section, key string) *TConfigValue {
	configValue := TConfigValue{}

	configValue.section = section
	configValue.configKey = c.configFile.Section(section).Key(key)

	return &configValue
}

func (v *TConfigValue) StringWithDefault(defaultString string) string {
	if s := v.configKey.String(); s != "" {
		return s
	}

	return defaultString
}

func (v *TConfigValue) String() string {
	return v.StringWithDefault("")
}

// The setting, which must be one of the candidates. An empty setting gives the default.
func (v *TConfigValue) OneOf(defaultString string, candidates ...string) (string, error) {
	s := v.configKey.String()
	if s == "" {
		return defaultString, nil
	}

	for _, candidate := range candidates {
		if s == candidate {
			return s, nil
		}
	}

	return "", errors.Wrapf(ErrUsage, "%s in [%s] is %q, but should be one of: %s",
		v.configKey.Name(), v.section, s, strings.Join(candidates, ", "))
}

// The setting as a bool; empty or unreadable settings give the default
func (v *TConfigValue) BoolWithDefault(defaultBool bool) bool {
	if keyBool, err := v.configKey.Bool(); err == nil {
		return keyBool
	}

	return defaultBool
}

func (v *TConfigValue) Bool() bool {
	return v.BoolWithDefault(false)
}

// The setting as an int; empty or unreadable settings give the default
func (v *TConfigValue) IntWithDefault(defaultInt int) int {
	if keyInt, err := v.configKey.Int(); err == nil {
		return keyInt
	}

	return defaultInt
}

func (v *TConfigValue) Int() int {
	return v.IntWithDefault(0)
}
