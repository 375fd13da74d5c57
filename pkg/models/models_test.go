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

package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestMetricSampleIsEmpty(t *testing.T) {
	var nilSample *MetricSample
	assert.True(t, nilSample.IsEmpty())

	s := &MetricSample{Timestamp: time.Now()}
	assert.True(t, s.IsEmpty(), "timestamp alone is not a metric")

	status := "Unknown"
	s.DrumStatus = &status
	assert.False(t, s.IsEmpty())

	pages := int64(0)
	assert.False(t, (&MetricSample{TotalPages: &pages}).IsEmpty(), "zero is a value")
}

func TestDurationUnmarshalJSON(t *testing.T) {
	var cfg struct {
		Interval Duration `json:"interval"`
		Timeout  Duration `json:"timeout"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"interval":"1h","timeout":2000000000}`), &cfg))
	assert.Equal(t, time.Hour, cfg.Interval.Std())
	assert.Equal(t, 2*time.Second, cfg.Timeout.Std())

	require.Error(t, json.Unmarshal([]byte(`{"interval":"soon"}`), &cfg))
	require.Error(t, json.Unmarshal([]byte(`{"interval":true}`), &cfg))
}

func TestDurationUnmarshalYAML(t *testing.T) {
	var cfg struct {
		Interval Duration `yaml:"interval"`
		Delay    Duration `yaml:"delay"`
	}

	require.NoError(t, yaml.Unmarshal([]byte("interval: 90s\ndelay: 5000000000\n"), &cfg))
	assert.Equal(t, 90*time.Second, cfg.Interval.Std())
	assert.Equal(t, 5*time.Second, cfg.Delay.Std())

	require.Error(t, yaml.Unmarshal([]byte("interval: [1, 2]\n"), &cfg))
}

func TestDurationMarshalJSON(t *testing.T) {
	b, err := json.Marshal(Duration(3 * time.Second))
	require.NoError(t, err)
	assert.JSONEq(t, `"3s"`, string(b))
}
