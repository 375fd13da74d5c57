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

package logger

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	otellog "go.opentelemetry.io/otel/log"
)

func TestInit(t *testing.T) {
	config := &Config{
		Level:  "debug",
		Debug:  true,
		Output: "stdout",
	}

	require.NoError(t, Init(config))

	logger := GetLogger()
	assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())
}

func TestInitRejectsUnknownLevel(t *testing.T) {
	err := Init(&Config{Level: "chatty"})
	require.Error(t, err)
}

func TestSetDebug(t *testing.T) {
	SetDebug(true)
	assert.Equal(t, zerolog.DebugLevel, GetLogger().GetLevel())

	SetDebug(false)
	assert.Equal(t, zerolog.InfoLevel, GetLogger().GetLevel())
}

func TestNewDoesNotReplaceGlobal(t *testing.T) {
	require.NoError(t, Init(&Config{Level: "info"}))

	l, err := New(&Config{Level: "warn", Output: "stderr"})
	require.NoError(t, err)
	require.NotNil(t, l)

	assert.Equal(t, zerolog.InfoLevel, GetLogger().GetLevel())
}

func TestDefaultConfigReadsEnvironment(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("DEBUG", "yes")

	cfg := DefaultConfig()
	assert.Equal(t, "error", cfg.Level)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "stdout", cfg.Output)
}

func TestNewTestLoggerDiscards(t *testing.T) {
	l := NewTestLogger()
	l.Info().Str("address", "10.0.0.5").Msg("discarded")

	c := l.WithComponent("collector")
	require.NotNil(t, c)
}

func TestDefaultConfigPrefersPrefixedNames(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("PRINTRADAR_LOG_LEVEL", "debug")
	t.Setenv("DEBUG", "off")

	cfg := DefaultConfig()
	assert.Equal(t, "debug", cfg.Level)
	assert.False(t, cfg.Debug)
}

func TestNewOTelWriterRequiresEndpoint(t *testing.T) {
	_, err := NewOTelWriter(context.Background(), OTelConfig{})
	require.ErrorIs(t, err, ErrOTelLoggingDisabled)

	_, err = NewOTelWriter(context.Background(), OTelConfig{Enabled: true})
	require.ErrorIs(t, err, ErrOTelEndpointRequired)

	err = Init(&Config{Level: "info", OTel: OTelConfig{Enabled: true}})
	require.ErrorIs(t, err, ErrOTelEndpointRequired)
}

func TestBuildRecordMapsZerologFields(t *testing.T) {
	entry := map[string]interface{}{
		"time":    "2025-06-01T10:00:00Z",
		"level":   "warn",
		"message": "Remote write failed",
		"address": "10.0.0.5",
		"attempt": float64(2),
		"tags":    []interface{}{"a", "b"},
	}

	record := buildRecord(entry)

	assert.Equal(t, otellog.SeverityWarn, record.Severity())
	assert.Equal(t, "warn", record.SeverityText())
	assert.Equal(t, "Remote write failed", record.Body().AsString())
	assert.Equal(t, time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC), record.Timestamp().UTC())

	attrs := map[string]string{}

	record.WalkAttributes(func(kv otellog.KeyValue) bool {
		attrs[kv.Key] = kv.Value.AsString()
		return true
	})

	assert.Equal(t, map[string]string{"address": "10.0.0.5", "attempt": "2", "tags": `["a","b"]`}, attrs)
}

func TestAttributeValueTruncates(t *testing.T) {
	long := strings.Repeat("x", maxAttributeValueLength+10)
	assert.Len(t, attributeValue(long), maxAttributeValueLength+3)
	assert.Empty(t, attributeValue(nil))
	assert.Equal(t, "true", attributeValue(true))
}

func TestShutdownOTelWithoutProvider(t *testing.T) {
	require.NoError(t, ShutdownOTel(context.Background()))
}
