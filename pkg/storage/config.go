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

package storage

import (
	"fmt"
	"time"

	"github.com/carverauto/printradar/pkg/models"
)

// Mode selects the Store implementation.
type Mode string

const (
	ModeLocal    Mode = "local"
	ModePostgres Mode = "postgres"
	ModeRemote   Mode = "remote"
)

const (
	defaultDatabaseFile   = "printradar.db"
	defaultBufferFile     = "printradar-buffer.db"
	defaultRetryAttempts  = 3
	defaultRetryDelay     = 5 * time.Second
	defaultRequestTimeout = 10 * time.Second
	defaultFlushBatch     = 500
	defaultRetention      = 30 * 24 * time.Hour
)

// Config selects and configures the storage backend.
type Config struct {
	Mode         Mode         `json:"mode" yaml:"mode"`
	DatabaseFile string       `json:"database_file" yaml:"database_file"`
	PostgresDSN  string       `json:"postgres_dsn" yaml:"postgres_dsn"`
	Remote       RemoteConfig `json:"remote" yaml:"remote"`
}

// RemoteConfig configures the remote sink and its local buffer.
type RemoteConfig struct {
	URL             string          `json:"url" yaml:"url"`
	APIKey          string          `json:"api_key" yaml:"api_key"`
	RetryAttempts   int             `json:"retry_attempts" yaml:"retry_attempts"`
	RetryDelay      models.Duration `json:"retry_delay" yaml:"retry_delay"`
	RequestTimeout  models.Duration `json:"request_timeout" yaml:"request_timeout"`
	EnableBuffer    *bool           `json:"enable_buffer" yaml:"enable_buffer"`
	BufferFile      string          `json:"buffer_file" yaml:"buffer_file"`
	FlushBatch      int             `json:"flush_batch" yaml:"flush_batch"`           // buffered samples forwarded per pass
	BufferRetention models.Duration `json:"buffer_retention" yaml:"buffer_retention"` // how long forwarded samples are kept
}

// BufferEnabled reports whether failed remote writes fall back to the local buffer.
// Buffering is on unless explicitly disabled.
func (c *RemoteConfig) BufferEnabled() bool {
	return c.EnableBuffer == nil || *c.EnableBuffer
}

// Validate applies defaults and checks mode specific settings.
func (c *Config) Validate() error {
	if c.Mode == "" {
		c.Mode = ModeLocal
	}

	switch c.Mode {
	case ModeLocal:
		if c.DatabaseFile == "" {
			c.DatabaseFile = defaultDatabaseFile
		}
	case ModePostgres:
		if c.PostgresDSN == "" {
			return ErrPostgresDSNNeeded
		}
	case ModeRemote:
		return c.Remote.validate()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMode, c.Mode)
	}

	return nil
}

func (c *RemoteConfig) validate() error {
	if c.URL == "" {
		return ErrRemoteURLNeeded
	}

	if c.APIKey == "" {
		return ErrRemoteAPIKeyNeeded
	}

	if c.RetryAttempts <= 0 {
		c.RetryAttempts = defaultRetryAttempts
	}

	if c.RetryDelay <= 0 {
		c.RetryDelay = models.Duration(defaultRetryDelay)
	}

	if c.RequestTimeout <= 0 {
		c.RequestTimeout = models.Duration(defaultRequestTimeout)
	}

	if c.BufferEnabled() && c.BufferFile == "" {
		c.BufferFile = defaultBufferFile
	}

	if c.FlushBatch <= 0 {
		c.FlushBatch = defaultFlushBatch
	}

	if c.BufferRetention <= 0 {
		c.BufferRetention = models.Duration(defaultRetention)
	}

	return nil
}
