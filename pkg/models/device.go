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

// ConnectionStatus is the last known reachability of a device.
type ConnectionStatus string

const (
	StatusConnected   ConnectionStatus = "connected"
	StatusUnknown     ConnectionStatus = "unknown"
	StatusUnreachable ConnectionStatus = "unreachable"
)

// Device is the identity record of a monitored printer. Address is the stable key.
type Device struct {
	Address          string           `json:"address"`
	Name             string           `json:"name"`
	Location         string           `json:"location,omitempty"`
	Model            string           `json:"model,omitempty"`
	Manufacturer     string           `json:"manufacturer,omitempty"`
	FirstSeen        time.Time        `json:"first_seen"`
	ConnectionStatus ConnectionStatus `json:"connection_status"`
	LastSeen         *time.Time       `json:"last_seen,omitempty"`
}

// Registration carries the fields accepted by RegisterOrGet.
type Registration struct {
	Address  string `json:"address" yaml:"address"`
	Name     string `json:"name" yaml:"name"`
	Location string `json:"location,omitempty" yaml:"location"`
	Model    string `json:"model,omitempty" yaml:"model"`
}
