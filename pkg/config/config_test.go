/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/printradar/pkg/logger"
	"github.com/carverauto/printradar/pkg/models"
)

type testRemote struct {
	URL     string          `json:"url" yaml:"url"`
	Delay   models.Duration `json:"delay" yaml:"delay"`
	Buffer  *bool           `json:"buffer" yaml:"buffer"`
	Retries int             `json:"retries" yaml:"retries"`
}

type testConfig struct {
	Mode      string          `json:"mode" yaml:"mode"`
	Port      uint16          `json:"port" yaml:"port"`
	Interval  models.Duration `json:"interval" yaml:"interval"`
	Timeout   time.Duration   `json:"timeout" yaml:"timeout"`
	Addresses []string        `json:"addresses" yaml:"addresses"`
	Remote    testRemote      `json:"remote" yaml:"remote"`

	validated bool
}

func (c *testConfig) Validate() error {
	c.validated = true

	if c.Mode == "" {
		c.Mode = "local"
	}

	return nil
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestFileConfigLoaderJSON(t *testing.T) {
	path := writeFile(t, "printradar.json", `{
		"mode": "remote",
		"port": 1161,
		"interval": "1h",
		"remote": {"url": "https://sink.example.com", "delay": "5s", "buffer": false}
	}`)

	var cfg testConfig
	require.NoError(t, (&FileConfigLoader{}).Load(context.Background(), path, &cfg))

	assert.Equal(t, "remote", cfg.Mode)
	assert.Equal(t, uint16(1161), cfg.Port)
	assert.Equal(t, time.Hour, cfg.Interval.Std())
	assert.Equal(t, 5*time.Second, cfg.Remote.Delay.Std())
	require.NotNil(t, cfg.Remote.Buffer)
	assert.False(t, *cfg.Remote.Buffer)
}

func TestFileConfigLoaderYAML(t *testing.T) {
	path := writeFile(t, "printradar.yaml", `
mode: local
interval: 30m
addresses:
  - 10.0.0.5
  - 10.0.0.6
remote:
  retries: 4
`)

	var cfg testConfig
	require.NoError(t, (&FileConfigLoader{}).Load(context.Background(), path, &cfg))

	assert.Equal(t, "local", cfg.Mode)
	assert.Equal(t, 30*time.Minute, cfg.Interval.Std())
	assert.Equal(t, []string{"10.0.0.5", "10.0.0.6"}, cfg.Addresses)
	assert.Equal(t, 4, cfg.Remote.Retries)
}

func TestFileConfigLoaderErrors(t *testing.T) {
	var cfg testConfig

	err := (&FileConfigLoader{}).Load(context.Background(), filepath.Join(t.TempDir(), "missing.json"), &cfg)
	require.Error(t, err)

	path := writeFile(t, "broken.json", `{"mode": `)
	require.Error(t, (&FileConfigLoader{}).Load(context.Background(), path, &cfg))
}

func TestEnvConfigLoader(t *testing.T) {
	t.Setenv("TEST_MODE", "postgres")
	t.Setenv("TEST_PORT", "162")
	t.Setenv("TEST_INTERVAL", "15m")
	t.Setenv("TEST_TIMEOUT", "3s")
	t.Setenv("TEST_ADDRESSES", "10.0.0.1, 10.0.0.2")
	t.Setenv("TEST_REMOTE_URL", "https://sink.example.com")
	t.Setenv("TEST_REMOTE_DELAY", "250ms")
	t.Setenv("TEST_REMOTE_BUFFER", "true")

	var cfg testConfig
	require.NoError(t, NewEnvConfigLoader(logger.NewTestLogger(), "TEST_").Load(context.Background(), "", &cfg))

	assert.Equal(t, "postgres", cfg.Mode)
	assert.Equal(t, uint16(162), cfg.Port)
	assert.Equal(t, 15*time.Minute, cfg.Interval.Std())
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.Addresses)
	assert.Equal(t, "https://sink.example.com", cfg.Remote.URL)
	assert.Equal(t, 250*time.Millisecond, cfg.Remote.Delay.Std())
	require.NotNil(t, cfg.Remote.Buffer)
	assert.True(t, *cfg.Remote.Buffer)
}

func TestEnvConfigLoaderConfigJSON(t *testing.T) {
	t.Setenv("TEST_CONFIG_JSON", `{"mode":"remote","remote":{"url":"https://sink"}}`)

	var cfg testConfig
	require.NoError(t, NewEnvConfigLoader(nil, "TEST_").Load(context.Background(), "", &cfg))

	assert.Equal(t, "remote", cfg.Mode)
	assert.Equal(t, "https://sink", cfg.Remote.URL)
}

func TestEnvConfigLoaderRejectsNonPointer(t *testing.T) {
	err := NewEnvConfigLoader(nil, "TEST_").Load(context.Background(), "", testConfig{})
	require.ErrorIs(t, err, ErrDstMustBeNonNilPointer)
}

func TestLoadAndValidateFileWithEnvOverride(t *testing.T) {
	t.Setenv("PRINTRADAR_REMOTE_URL", "https://override.example.com")

	path := writeFile(t, "printradar.json", `{"remote": {"url": "https://file.example.com", "retries": 2}}`)

	var cfg testConfig
	require.NoError(t, NewConfig(logger.NewTestLogger()).LoadAndValidate(context.Background(), path, &cfg))

	assert.True(t, cfg.validated)
	assert.Equal(t, "local", cfg.Mode)
	assert.Equal(t, "https://override.example.com", cfg.Remote.URL)
	assert.Equal(t, 2, cfg.Remote.Retries)
}

func TestLoadAndValidateEnvSource(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "env")
	t.Setenv("PRINTRADAR_MODE", "remote")

	var cfg testConfig
	require.NoError(t, NewConfig(nil).LoadAndValidate(context.Background(), "/does/not/exist.json", &cfg))

	assert.Equal(t, "remote", cfg.Mode)
}

func TestLoadAndValidateRejectsUnknownSource(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "kv")

	var cfg testConfig
	require.ErrorIs(t, NewConfig(nil).LoadAndValidate(context.Background(), "", &cfg), errInvalidConfigSource)
}
