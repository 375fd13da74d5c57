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

// Package storage defines the persistence port shared by the local, postgres and remote stores.
package storage

//go:generate mockgen -destination=mock_storage.go -package=storage github.com/carverauto/printradar/pkg/storage Store,StatusMarker,Flusher

import (
	"context"

	"github.com/carverauto/printradar/pkg/models"
)

// Store persists device identities and metric samples. A nil error means success;
// implementations never panic.
type Store interface {
	// SaveSample records one sample for the device at address. Unknown addresses fail
	// with ErrDeviceNotFound; empty samples with ErrEmptySample.
	SaveSample(ctx context.Context, address string, sample *models.MetricSample) error
	// RegisterOrGet creates the device if absent and returns its address.
	RegisterOrGet(ctx context.Context, reg models.Registration) (string, error)
	ListDevices(ctx context.Context) ([]models.Device, error)
	GetByAddress(ctx context.Context, address string) (*models.Device, error)
	HealthCheck(ctx context.Context) bool
	Close() error
}

// StatusMarker is implemented by stores that track reachability.
type StatusMarker interface {
	MarkUnreachable(ctx context.Context, address string) error
}

// Flusher is implemented by stores that buffer samples locally and can forward them later.
type Flusher interface {
	FlushBuffer(ctx context.Context) (int, error)
}
