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

// Package snmp queries single SNMP variables from network devices.
package snmp

//go:generate mockgen -destination=mock_snmp.go -package=snmp github.com/carverauto/printradar/pkg/snmp Transport

import (
	"context"
	"time"
)

// Transport fetches one variable from a target and renders it as text.
type Transport interface {
	Get(ctx context.Context, target, oid string, timeout time.Duration) (string, error)
}

// Querier is the soft-failing query capability consumed by the collector.
type Querier interface {
	Query(ctx context.Context, address, oid string) string
	// Lookup also reports whether the device responded, even without a value.
	Lookup(ctx context.Context, address, oid string) (string, bool)
}
