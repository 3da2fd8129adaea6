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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()
	assert.Equal(t, DefaultMaxDecompressedSize, cfg.MaxDecompressedSize)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestNewConfigFromTomlMissingDefaultPath(t *testing.T) {
	// The default path is tolerated when absent; loading falls back to
	// pure defaults. Relies on the test environment not shipping
	// /etc/rgzip/config.toml.
	if _, err := os.Stat(DefaultConfigPath); err == nil {
		t.Skipf("%s exists on this host", DefaultConfigPath)
	}
	cfg, err := NewConfigFromToml(DefaultConfigPath)
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxDecompressedSize, cfg.MaxDecompressedSize)
}

func TestNewConfigFromTomlMissingExplicitPath(t *testing.T) {
	_, err := NewConfigFromToml(filepath.Join(t.TempDir(), "no-such.toml"))
	assert.Error(t, err)
}

func TestNewConfigFromToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
max_decompressed_size = 1048576
log_level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := NewConfigFromToml(path)
	require.NoError(t, err)
	assert.Equal(t, int64(1048576), cfg.MaxDecompressedSize)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestNewConfigFromTomlPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("log_level = \"warn\"\n"), 0600))

	cfg, err := NewConfigFromToml(path)
	require.NoError(t, err)
	// Unset keys keep their defaults.
	assert.Equal(t, DefaultMaxDecompressedSize, cfg.MaxDecompressedSize)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestNewConfigFromTomlMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("max_decompressed_size = [1,\n"), 0600))

	_, err := NewConfigFromToml(path)
	assert.Error(t, err)
}
