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

// Package factory builds the configured storage.Store.
package factory

import (
	"context"
	"fmt"

	"github.com/carverauto/printradar/pkg/logger"
	"github.com/carverauto/printradar/pkg/storage"
	"github.com/carverauto/printradar/pkg/storage/postgres"
	"github.com/carverauto/printradar/pkg/storage/remote"
	"github.com/carverauto/printradar/pkg/storage/sqlite"
)

// New validates cfg and opens the store selected by cfg.Mode.
func New(ctx context.Context, cfg *storage.Config, log logger.Logger) (storage.Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Mode {
	case storage.ModeLocal:
		store, err := sqlite.Open(ctx, cfg.DatabaseFile, log.WithComponent("sqlite"))
		if err != nil {
			return nil, err
		}

		return store, nil
	case storage.ModePostgres:
		store, err := postgres.Open(ctx, cfg.PostgresDSN, log.WithComponent("postgres"))
		if err != nil {
			return nil, err
		}

		return store, nil
	case storage.ModeRemote:
		return newRemote(ctx, &cfg.Remote, log)
	default:
		return nil, fmt.Errorf("%w: %q", storage.ErrUnknownMode, cfg.Mode)
	}
}

func newRemote(ctx context.Context, cfg *storage.RemoteConfig, log logger.Logger) (storage.Store, error) {
	var buffer remote.Buffer

	if cfg.BufferEnabled() {
		buf, err := sqlite.Open(ctx, cfg.BufferFile, log.WithComponent("buffer"))
		if err != nil {
			return nil, fmt.Errorf("open buffer: %w", err)
		}

		buffer = buf
	}

	store, err := remote.New(cfg, buffer, log.WithComponent("remote"),
		remote.WithFlushBatch(cfg.FlushBatch),
		remote.WithBufferRetention(cfg.BufferRetention.Std()),
	)
	if err != nil {
		if buffer != nil {
			_ = buffer.Close()
		}

		return nil, err
	}

	return store, nil
}
