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

import "time"

// MetricSample is one poll result for one device. Absent readings are nil.
type MetricSample struct {
	Timestamp     time.Time `json:"timestamp"`
	TotalPages    *int64    `json:"total_pages"`
	DeviceStatus  *int      `json:"device_status"`
	Model         *string   `json:"model"`
	TonerLevelPct *int      `json:"toner_level_pct"`
	TonerStatus   *string   `json:"toner_status"`
	DrumLevelPct  *int      `json:"drum_level_pct"`
	DrumStatus    *string   `json:"drum_status"`
}

// IsEmpty reports whether no metric field carries a value. The timestamp is not a metric.
func (s *MetricSample) IsEmpty() bool {
	if s == nil {
		return true
	}

	return s.TotalPages == nil &&
		s.DeviceStatus == nil &&
		s.Model == nil &&
		s.TonerLevelPct == nil &&
		s.TonerStatus == nil &&
		s.DrumLevelPct == nil &&
		s.DrumStatus == nil
}

// SupplyReading is the decoded level of one consumable.
// Exactly one of Percentage and Status is set.
type SupplyReading struct {
	CurrentRaw string `json:"current_raw"`
	MaxRaw     string `json:"max_raw"`
	Percentage *int   `json:"percentage,omitempty"`
	Status     string `json:"status,omitempty"`
}

// StoredSample is a persisted sample together with its storage identity.
type StoredSample struct {
	ID      int64        `json:"id"`
	Address string       `json:"address"`
	Sample  MetricSample `json:"sample"`
}
