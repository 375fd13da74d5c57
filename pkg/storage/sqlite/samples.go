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

package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/carverauto/printradar/pkg/models"
)

const sampleColumns = `s.id, d.address, s.timestamp, s.total_pages, s.toner_level_pct, s.toner_status,
	s.drum_level_pct, s.drum_status, s.device_status, s.model`

// Samples returns samples recorded for address with from <= timestamp < to, oldest first.
func (s *Store) Samples(ctx context.Context, address string, from, to time.Time) ([]models.StoredSample, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+sampleColumns+`
		FROM samples s JOIN devices d ON d.id = s.device_id
		WHERE d.address = ? AND s.timestamp >= ? AND s.timestamp < ?
		ORDER BY s.timestamp, s.id`,
		address, formatTime(from), formatTime(to))
	if err != nil {
		return nil, unavailable("query samples", err)
	}

	return collectSamples(rows)
}

// PendingSamples returns up to limit samples not yet forwarded to the remote sink, oldest first.
func (s *Store) PendingSamples(ctx context.Context, limit int) ([]models.StoredSample, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+sampleColumns+`
		FROM samples s JOIN devices d ON d.id = s.device_id
		WHERE s.forwarded = 0
		ORDER BY s.id
		LIMIT ?`, limit)
	if err != nil {
		return nil, unavailable("query pending samples", err)
	}

	return collectSamples(rows)
}

// MarkForwarded flags the given samples as delivered.
func (s *Store) MarkForwarded(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	_, err := s.db.ExecContext(ctx, `UPDATE samples SET forwarded = 1 WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return unavailable("mark forwarded", err)
	}

	return nil
}

// PruneForwarded deletes forwarded samples recorded before cutoff and returns how many
// were removed. Samples still pending are never pruned.
func (s *Store) PruneForwarded(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM samples WHERE forwarded = 1 AND timestamp < ?`, formatTime(cutoff))
	if err != nil {
		return 0, unavailable("prune forwarded", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, unavailable("prune forwarded", err)
	}

	return n, nil
}

func collectSamples(rows *sql.Rows) ([]models.StoredSample, error) {
	defer func() { _ = rows.Close() }()

	var out []models.StoredSample

	for rows.Next() {
		var (
			stored       models.StoredSample
			ts           string
			totalPages   sql.NullInt64
			tonerPct     sql.NullInt64
			tonerStatus  sql.NullString
			drumPct      sql.NullInt64
			drumStatus   sql.NullString
			deviceStatus sql.NullInt64
			model        sql.NullString
		)

		if err := rows.Scan(&stored.ID, &stored.Address, &ts, &totalPages, &tonerPct, &tonerStatus,
			&drumPct, &drumStatus, &deviceStatus, &model); err != nil {
			return nil, unavailable("scan sample", err)
		}

		t, err := parseTime(ts)
		if err != nil {
			return nil, fmt.Errorf("sample %d timestamp: %w", stored.ID, err)
		}

		stored.Sample = models.MetricSample{
			Timestamp:     t,
			TotalPages:    int64Ptr(totalPages),
			TonerLevelPct: intPtr(tonerPct),
			TonerStatus:   stringPtr(tonerStatus),
			DrumLevelPct:  intPtr(drumPct),
			DrumStatus:    stringPtr(drumStatus),
			DeviceStatus:  intPtr(deviceStatus),
			Model:         stringPtr(model),
		}

		out = append(out, stored)
	}

	if err := rows.Err(); err != nil {
		return nil, unavailable("read samples", err)
	}

	return out, nil
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}

	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}

	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}

	return sql.NullString{String: *v, Valid: true}
}

func int64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}

	return &v.Int64
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}

	i := int(v.Int64)

	return &i
}

func stringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}

	return &v.String
}
