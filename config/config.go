/*
   Copyright The Rgzip Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package config holds the rgzip CLI configuration, loaded from an
// optional TOML file and overridable by command-line flags.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// DefaultConfigPath is the filesystem path probed for configuration when
// no --config flag is given. A missing file at this path is not an error.
const DefaultConfigPath = "/etc/rgzip/config.toml"

// DefaultMaxDecompressedSize bounds the decoded output unless overridden.
// Gzip can legally expand input by a factor of ~1000, so an explicit
// ceiling keeps a small hostile file from exhausting memory. 0 disables
// the guard.
const DefaultMaxDecompressedSize int64 = 4 << 30 // 4 GiB

type Config struct {
	// MaxDecompressedSize caps the size of decoded output in bytes.
	MaxDecompressedSize int64 `toml:"max_decompressed_size"`

	// LogLevel is the logging verbosity (trace, debug, info, warn, error).
	LogLevel string `toml:"log_level"`
}

// NewConfig returns a Config with default values set.
func NewConfig() *Config {
	return &Config{
		MaxDecompressedSize: DefaultMaxDecompressedSize,
		LogLevel:            "info",
	}
}

// NewConfigFromToml loads configuration from cfgPath on top of the
// defaults. The default path is allowed to be absent; an explicitly
// requested path is not.
func NewConfigFromToml(cfgPath string) (*Config, error) {
	f, err := os.Open(cfgPath)
	if err != nil {
		if os.IsNotExist(err) && cfgPath == DefaultConfigPath {
			return NewConfig(), nil
		}
		return nil, fmt.Errorf("failed to open config file %q: %w", cfgPath, err)
	}
	defer f.Close()

	cfg := NewConfig()
	if err = toml.NewDecoder(f).Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to load config file %q: %w", cfgPath, err)
	}
	return cfg, nil
}
