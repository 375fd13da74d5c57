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

package factory

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/printradar/pkg/logger"
	"github.com/carverauto/printradar/pkg/storage"
	"github.com/carverauto/printradar/pkg/storage/remote"
	"github.com/carverauto/printradar/pkg/storage/sqlite"
)

func TestNewLocal(t *testing.T) {
	cfg := &storage.Config{
		Mode:         storage.ModeLocal,
		DatabaseFile: filepath.Join(t.TempDir(), "local.db"),
	}

	s, err := New(context.Background(), cfg, logger.NewTestLogger())
	require.NoError(t, err)

	defer func() { _ = s.Close() }()

	assert.IsType(t, &sqlite.Store{}, s)
	assert.True(t, s.HealthCheck(context.Background()))
}

func TestNewRemoteWithBuffer(t *testing.T) {
	cfg := &storage.Config{
		Mode: storage.ModeRemote,
		Remote: storage.RemoteConfig{
			URL:        "http://127.0.0.1:1",
			APIKey:     "key",
			BufferFile: filepath.Join(t.TempDir(), "buffer.db"),
		},
	}

	s, err := New(context.Background(), cfg, logger.NewTestLogger())
	require.NoError(t, err)

	defer func() { _ = s.Close() }()

	assert.IsType(t, &remote.Store{}, s)
	_, ok := s.(storage.Flusher)
	assert.True(t, ok)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	_, err := New(context.Background(), &storage.Config{Mode: storage.ModeRemote}, logger.NewTestLogger())
	require.ErrorIs(t, err, storage.ErrRemoteURLNeeded)

	_, err = New(context.Background(), &storage.Config{Mode: "tape"}, logger.NewTestLogger())
	require.ErrorIs(t, err, storage.ErrUnknownMode)
}
