// Copyright (C) 2025 Dyne.org foundation
// designed, written and maintained by Denis Roio <jaromil@dyne.org>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package config

import (
	"encoding/json"
	"os"

	apperrors "github.com/bitop-dev/fileinfo/internal/errors"
	"github.com/bitop-dev/fileinfo/internal/inspect"
)

// Config represents the application configuration. None of it changes wire
// behavior; it only tunes logging, interactive history and inspection
// limits.
type Config struct {
	LogFile            string        `json:"log_file,omitempty"`
	CommandHistoryFile string        `json:"command_history_file,omitempty"`
	InspectLimits      InspectLimits `json:"inspect_limits,omitempty"`
}

// InspectLimits bounds how much content inspection reads.
type InspectLimits struct {
	MaxFileSizeBytes int64 `json:"max_file_size_bytes,omitempty"`
}

// DefaultConfig returns a config with default values.
func DefaultConfig() *Config {
	return &Config{
		CommandHistoryFile: ".fileinfo_history",
		InspectLimits: InspectLimits{
			MaxFileSizeBytes: inspect.DefaultLimits().MaxFileSizeBytes,
		},
	}
}

// LoadConfig loads configuration from a JSON file and applies env
// overrides. A missing file is not an error; defaults apply.
func LoadConfig(filepath string) (*Config, error) {
	config := DefaultConfig()

	if _, err := os.Stat(filepath); err == nil {
		data, err := os.ReadFile(filepath)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.CodeConfig, "failed to read config", err)
		}
		if err := json.Unmarshal(data, config); err != nil {
			return nil, apperrors.Wrap(apperrors.CodeConfig, "failed to parse config", err)
		}
	}

	// Env overrides (apply regardless of whether a config file exists)
	if val := os.Getenv("FILEINFO_LOG_FILE"); val != "" {
		config.LogFile = val
	}
	if val := os.Getenv("FILEINFO_HISTORY_FILE"); val != "" {
		config.CommandHistoryFile = val
	}

	return config, nil
}

// InspectLimitsConfig returns inspection limits for runtime enforcement.
func (c *Config) InspectLimitsConfig() inspect.Limits {
	return inspect.Limits{MaxFileSizeBytes: c.InspectLimits.MaxFileSizeBytes}
}

// ValidationWarning represents a non-fatal configuration issue
type ValidationWarning struct {
	Field   string
	Message string
}

// Validate checks the configuration for common issues and returns warnings
func (c *Config) Validate() []ValidationWarning {
	var warnings []ValidationWarning

	if c.InspectLimits.MaxFileSizeBytes < 0 {
		warnings = append(warnings, ValidationWarning{
			Field:   "inspect_limits.max_file_size_bytes",
			Message: "must be positive, using default",
		})
	}

	return warnings
}
