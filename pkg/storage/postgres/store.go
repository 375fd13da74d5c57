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

// Package postgres implements storage.Store on PostgreSQL using a pgx pool.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carverauto/printradar/pkg/logger"
	"github.com/carverauto/printradar/pkg/models"
	"github.com/carverauto/printradar/pkg/storage"
)

const schema = `
CREATE TABLE IF NOT EXISTS printradar_devices (
    id                BIGSERIAL PRIMARY KEY,
    address           TEXT NOT NULL UNIQUE,
    name              TEXT NOT NULL DEFAULT '',
    location          TEXT NOT NULL DEFAULT '',
    model             TEXT NOT NULL DEFAULT '',
    manufacturer      TEXT NOT NULL DEFAULT '',
    first_seen        TIMESTAMPTZ NOT NULL DEFAULT now(),
    connection_status TEXT NOT NULL DEFAULT 'unknown',
    last_seen         TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS printradar_samples (
    id              BIGSERIAL PRIMARY KEY,
    device_id       BIGINT NOT NULL REFERENCES printradar_devices(id),
    timestamp       TIMESTAMPTZ NOT NULL,
    total_pages     BIGINT,
    toner_level_pct INTEGER,
    toner_status    TEXT,
    drum_level_pct  INTEGER,
    drum_status     TEXT,
    device_status   INTEGER,
    model           TEXT,
    forwarded       BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE INDEX IF NOT EXISTS idx_printradar_samples_timestamp ON printradar_samples(timestamp);
CREATE INDEX IF NOT EXISTS idx_printradar_samples_device_id ON printradar_samples(device_id);
`

var (
	_ storage.Store        = (*Store)(nil)
	_ storage.StatusMarker = (*Store)(nil)
)

// Store is a PostgreSQL backed storage.Store.
type Store struct {
	pool   *pgxpool.Pool
	logger logger.Logger
}

// Open connects to dsn and creates the schema when missing.
func Open(ctx context.Context, dsn string, log logger.Logger) (*Store, error) {
	if dsn == "" {
		return nil, storage.ErrPostgresDSNNeeded
	}

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to parse connection string: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: postgres: failed to initialize pool: %w", storage.ErrStorageUnavailable, err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()

		return nil, fmt.Errorf("%w: postgres: init schema: %w", storage.ErrStorageUnavailable, err)
	}

	log.Info().
		Str("host", poolConfig.ConnConfig.Host).
		Int32("max_conns", poolConfig.MaxConns).
		Msg("Connected to PostgreSQL")

	return &Store{pool: pool, logger: log}, nil
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", storage.ErrStorageUnavailable, op, err)
}

// SaveSample implements storage.Store.
func (s *Store) SaveSample(ctx context.Context, address string, sample *models.MetricSample) error {
	if address == "" {
		return storage.ErrAddressRequired
	}

	if sample.IsEmpty() {
		return storage.ErrEmptySample
	}

	ts := sample.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		var deviceID int64

		err := tx.QueryRow(ctx, `SELECT id FROM printradar_devices WHERE address = $1`, address).Scan(&deviceID)
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: %s", storage.ErrDeviceNotFound, address)
		}

		if err != nil {
			return unavailable("lookup device", err)
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO printradar_samples (
				device_id, timestamp, total_pages, toner_level_pct, toner_status,
				drum_level_pct, drum_status, device_status, model
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			deviceID, ts.UTC(), sample.TotalPages, sample.TonerLevelPct, sample.TonerStatus,
			sample.DrumLevelPct, sample.DrumStatus, sample.DeviceStatus, sample.Model,
		); err != nil {
			return unavailable("insert sample", err)
		}

		if _, err := tx.Exec(ctx, `
			UPDATE printradar_devices SET
				last_seen = $1,
				connection_status = $2,
				model = CASE WHEN model = '' AND $3::text IS NOT NULL THEN $3::text ELSE model END
			WHERE id = $4`,
			ts.UTC(), string(models.StatusConnected), sample.Model, deviceID,
		); err != nil {
			return unavailable("update device", err)
		}

		return nil
	})
}

// RegisterOrGet implements storage.Store.
func (s *Store) RegisterOrGet(ctx context.Context, reg models.Registration) (string, error) {
	address := strings.TrimSpace(reg.Address)
	if address == "" {
		return "", storage.ErrAddressRequired
	}

	name := reg.Name
	if name == "" {
		name = address
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO printradar_devices (address, name, location, model, first_seen, connection_status)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (address) DO NOTHING`,
		address, name, reg.Location, reg.Model, time.Now().UTC(), string(models.StatusUnknown),
	)
	if err != nil {
		return "", unavailable("register device", err)
	}

	return address, nil
}

const deviceColumns = `address, name, location, model, manufacturer, first_seen, connection_status, last_seen`

// ListDevices implements storage.Store.
func (s *Store) ListDevices(ctx context.Context) ([]models.Device, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+deviceColumns+` FROM printradar_devices ORDER BY location, name`)
	if err != nil {
		return nil, unavailable("list devices", err)
	}
	defer rows.Close()

	var devices []models.Device

	for rows.Next() {
		d, err := scanDevice(rows)
		if err != nil {
			return nil, unavailable("scan device", err)
		}

		devices = append(devices, *d)
	}

	if err := rows.Err(); err != nil {
		return nil, unavailable("list devices", err)
	}

	return devices, nil
}

// GetByAddress implements storage.Store.
func (s *Store) GetByAddress(ctx context.Context, address string) (*models.Device, error) {
	d, err := scanDevice(s.pool.QueryRow(ctx,
		`SELECT `+deviceColumns+` FROM printradar_devices WHERE address = $1`, address))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", storage.ErrDeviceNotFound, address)
	}

	if err != nil {
		return nil, unavailable("get device", err)
	}

	return d, nil
}

// MarkUnreachable implements storage.StatusMarker.
func (s *Store) MarkUnreachable(ctx context.Context, address string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE printradar_devices SET connection_status = $1 WHERE address = $2`,
		string(models.StatusUnreachable), address)
	if err != nil {
		return unavailable("mark unreachable", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", storage.ErrDeviceNotFound, address)
	}

	return nil
}

// HealthCheck implements storage.Store.
func (s *Store) HealthCheck(ctx context.Context) bool {
	if err := s.pool.Ping(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("PostgreSQL health check failed")

		return false
	}

	return true
}

// Close implements storage.Store.
func (s *Store) Close() error {
	s.pool.Close()

	return nil
}

func scanDevice(row pgx.Row) (*models.Device, error) {
	var (
		d      models.Device
		status string
	)

	if err := row.Scan(&d.Address, &d.Name, &d.Location, &d.Model, &d.Manufacturer,
		&d.FirstSeen, &status, &d.LastSeen); err != nil {
		return nil, err
	}

	d.ConnectionStatus = models.ConnectionStatus(status)

	return &d, nil
}
