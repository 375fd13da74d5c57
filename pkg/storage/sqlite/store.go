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

// Package sqlite implements storage.Store on an embedded SQLite database.
// It is used both as the standalone local store and as the remote store's buffer.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/carverauto/printradar/pkg/logger"
	"github.com/carverauto/printradar/pkg/models"
	"github.com/carverauto/printradar/pkg/storage"
)

// timeLayout keeps stored timestamps fixed width so they sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

const busyTimeoutMs = 5000

var (
	_ storage.Store        = (*Store)(nil)
	_ storage.StatusMarker = (*Store)(nil)
)

// Store is a SQLite backed storage.Store.
type Store struct {
	db     *sql.DB
	path   string
	logger logger.Logger
}

// Open opens or creates the database at path and ensures the schema exists.
func Open(ctx context.Context, path string, log logger.Logger) (*Store, error) {
	if path == "" {
		return nil, storage.ErrDatabaseFileNeeded
	}

	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", storage.ErrStorageUnavailable, path, err)
	}

	// One connection serializes writers; WAL keeps readers from blocking on it.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("%w: init schema: %w", storage.ErrStorageUnavailable, err)
	}

	log.Debug().Str("path", path).Msg("SQLite store opened")

	return &Store{
		db:     db,
		path:   path,
		logger: log,
	}, nil
}

func dsn(path string) string {
	params := url.Values{}
	params.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", busyTimeoutMs))
	params.Add("_pragma", "journal_mode(WAL)")
	params.Add("_pragma", "foreign_keys(1)")
	params.Add("_pragma", "synchronous(NORMAL)")

	return "file:" + path + "?" + params.Encode()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(v string) (time.Time, error) {
	return time.Parse(timeLayout, v)
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

	_, err := s.insertSample(ctx, address, sample, false)

	return err
}

// SaveForwarded records a sample that already reached the remote sink.
func (s *Store) SaveForwarded(ctx context.Context, address string, sample *models.MetricSample) error {
	if address == "" {
		return storage.ErrAddressRequired
	}

	if sample.IsEmpty() {
		return storage.ErrEmptySample
	}

	_, err := s.insertSample(ctx, address, sample, true)

	return err
}

func (s *Store) insertSample(ctx context.Context, address string, sample *models.MetricSample, forwarded bool) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, unavailable("begin", err)
	}

	defer func() {
		_ = tx.Rollback()
	}()

	var deviceID int64

	err = tx.QueryRowContext(ctx, `SELECT id FROM devices WHERE address = ?`, address).Scan(&deviceID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: %s", storage.ErrDeviceNotFound, address)
	}

	if err != nil {
		return 0, unavailable("lookup device", err)
	}

	ts := sample.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO samples (
			device_id, timestamp, total_pages, toner_level_pct, toner_status,
			drum_level_pct, drum_status, device_status, model, forwarded
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		deviceID,
		formatTime(ts),
		nullInt64(sample.TotalPages),
		nullInt(sample.TonerLevelPct),
		nullString(sample.TonerStatus),
		nullInt(sample.DrumLevelPct),
		nullString(sample.DrumStatus),
		nullInt(sample.DeviceStatus),
		nullString(sample.Model),
		forwarded,
	)
	if err != nil {
		return 0, unavailable("insert sample", err)
	}

	sampleID, err := res.LastInsertId()
	if err != nil {
		return 0, unavailable("insert sample", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE devices SET
			last_seen = ?,
			connection_status = ?,
			model = CASE WHEN model = '' AND ? IS NOT NULL THEN ? ELSE model END
		WHERE id = ?`,
		formatTime(ts),
		string(models.StatusConnected),
		nullString(sample.Model),
		nullString(sample.Model),
		deviceID,
	)
	if err != nil {
		return 0, unavailable("update device", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, unavailable("commit", err)
	}

	return sampleID, nil
}

// RegisterOrGet implements storage.Store. An existing record is left untouched.
func (s *Store) RegisterOrGet(ctx context.Context, reg models.Registration) (string, error) {
	address := strings.TrimSpace(reg.Address)
	if address == "" {
		return "", storage.ErrAddressRequired
	}

	name := reg.Name
	if name == "" {
		name = address
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO devices (address, name, location, model, first_seen, connection_status)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(address) DO NOTHING`,
		address, name, reg.Location, reg.Model, formatTime(time.Now()), string(models.StatusUnknown),
	)
	if err != nil {
		return "", unavailable("register device", err)
	}

	return address, nil
}

const deviceColumns = `address, name, location, model, manufacturer, first_seen, connection_status, last_seen`

// ListDevices implements storage.Store, ordered by location then name.
func (s *Store) ListDevices(ctx context.Context) ([]models.Device, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+deviceColumns+` FROM devices ORDER BY location, name`)
	if err != nil {
		return nil, unavailable("list devices", err)
	}
	defer func() { _ = rows.Close() }()

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
	row := s.db.QueryRowContext(ctx, `SELECT `+deviceColumns+` FROM devices WHERE address = ?`, address)

	d, err := scanDevice(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", storage.ErrDeviceNotFound, address)
	}

	if err != nil {
		return nil, unavailable("get device", err)
	}

	return d, nil
}

// MarkUnreachable implements storage.StatusMarker.
func (s *Store) MarkUnreachable(ctx context.Context, address string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE devices SET connection_status = ? WHERE address = ?`,
		string(models.StatusUnreachable), address)
	if err != nil {
		return unavailable("mark unreachable", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return unavailable("mark unreachable", err)
	}

	if n == 0 {
		return fmt.Errorf("%w: %s", storage.ErrDeviceNotFound, address)
	}

	return nil
}

// HealthCheck implements storage.Store.
func (s *Store) HealthCheck(ctx context.Context) bool {
	var one int
	if err := s.db.QueryRowContext(ctx, `SELECT 1`).Scan(&one); err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("SQLite health check failed")

		return false
	}

	return one == 1
}

// Close implements storage.Store.
func (s *Store) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDevice(row rowScanner) (*models.Device, error) {
	var (
		d         models.Device
		status    string
		firstSeen string
		lastSeen  sql.NullString
	)

	if err := row.Scan(&d.Address, &d.Name, &d.Location, &d.Model, &d.Manufacturer,
		&firstSeen, &status, &lastSeen); err != nil {
		return nil, err
	}

	t, err := parseTime(firstSeen)
	if err != nil {
		return nil, fmt.Errorf("first_seen: %w", err)
	}

	d.FirstSeen = t
	d.ConnectionStatus = models.ConnectionStatus(status)

	if lastSeen.Valid {
		ls, err := parseTime(lastSeen.String)
		if err != nil {
			return nil, fmt.Errorf("last_seen: %w", err)
		}

		d.LastSeen = &ls
	}

	return &d, nil
}
