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
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/printradar/pkg/logger"
	"github.com/carverauto/printradar/pkg/models"
	"github.com/carverauto/printradar/pkg/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "printradar.db"), logger.NewTestLogger())
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = s.Close()
	})

	return s
}

func intRef(v int) *int       { return &v }
func int64Ref(v int64) *int64 { return &v }
func strRef(v string) *string { return &v }

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(context.Background(), "", logger.NewTestLogger())
	require.ErrorIs(t, err, storage.ErrDatabaseFileNeeded)
}

func TestRegisterOrGetIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	addr, err := s.RegisterOrGet(ctx, models.Registration{Address: "10.0.0.5", Name: "Front Desk", Location: "Lobby"})
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.5", addr)

	addr, err = s.RegisterOrGet(ctx, models.Registration{Address: "10.0.0.5", Name: "Renamed", Location: "Basement"})
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.5", addr)

	devices, err := s.ListDevices(ctx)
	require.NoError(t, err)
	require.Len(t, devices, 1)
	assert.Equal(t, "Front Desk", devices[0].Name)
	assert.Equal(t, "Lobby", devices[0].Location)
	assert.Equal(t, models.StatusUnknown, devices[0].ConnectionStatus)
	assert.Nil(t, devices[0].LastSeen)
}

func TestRegisterOrGetRequiresAddress(t *testing.T) {
	_, err := newTestStore(t).RegisterOrGet(context.Background(), models.Registration{Name: "nameless"})
	require.ErrorIs(t, err, storage.ErrAddressRequired)
}

func TestSaveSampleUnknownDevice(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	err := s.SaveSample(ctx, "10.9.9.9", &models.MetricSample{Timestamp: time.Now(), TotalPages: int64Ref(1)})
	require.ErrorIs(t, err, storage.ErrDeviceNotFound)

	_, err = s.GetByAddress(ctx, "10.9.9.9")
	require.ErrorIs(t, err, storage.ErrDeviceNotFound)

	devices, err := s.ListDevices(ctx)
	require.NoError(t, err)
	assert.Empty(t, devices)
}

func TestSaveSampleRejectsEmpty(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.RegisterOrGet(ctx, models.Registration{Address: "10.0.0.5"})
	require.NoError(t, err)

	err = s.SaveSample(ctx, "10.0.0.5", &models.MetricSample{Timestamp: time.Now()})
	require.ErrorIs(t, err, storage.ErrEmptySample)
}

func TestSaveSampleUpdatesDevice(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.RegisterOrGet(ctx, models.Registration{Address: "10.0.0.5", Name: "Front Desk"})
	require.NoError(t, err)

	ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	sample := &models.MetricSample{
		Timestamp:     ts,
		TotalPages:    int64Ref(15342),
		DeviceStatus:  intRef(2),
		Model:         strRef("HP LaserJet 400"),
		TonerLevelPct: intRef(50),
		DrumStatus:    strRef("Unknown"),
	}

	require.NoError(t, s.SaveSample(ctx, "10.0.0.5", sample))

	d, err := s.GetByAddress(ctx, "10.0.0.5")
	require.NoError(t, err)
	assert.Equal(t, models.StatusConnected, d.ConnectionStatus)
	assert.Equal(t, "HP LaserJet 400", d.Model)
	require.NotNil(t, d.LastSeen)
	assert.True(t, ts.Equal(*d.LastSeen))

	// A known model is not overwritten.
	sample.Model = strRef("Other")
	sample.Timestamp = ts.Add(time.Hour)
	require.NoError(t, s.SaveSample(ctx, "10.0.0.5", sample))

	d, err = s.GetByAddress(ctx, "10.0.0.5")
	require.NoError(t, err)
	assert.Equal(t, "HP LaserJet 400", d.Model)

	stored, err := s.Samples(ctx, "10.0.0.5", ts, ts.Add(2*time.Hour))
	require.NoError(t, err)
	require.Len(t, stored, 2)

	first := stored[0].Sample
	assert.True(t, ts.Equal(first.Timestamp))
	assert.Equal(t, int64(15342), *first.TotalPages)
	assert.Equal(t, 2, *first.DeviceStatus)
	assert.Equal(t, 50, *first.TonerLevelPct)
	assert.Nil(t, first.TonerStatus)
	assert.Nil(t, first.DrumLevelPct)
	assert.Equal(t, "Unknown", *first.DrumStatus)
}

func TestListDevicesOrdering(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	regs := []models.Registration{
		{Address: "10.0.0.3", Name: "Zeta", Location: "B"},
		{Address: "10.0.0.1", Name: "Alpha", Location: "B"},
		{Address: "10.0.0.2", Name: "Mid", Location: "A"},
	}

	for _, r := range regs {
		_, err := s.RegisterOrGet(ctx, r)
		require.NoError(t, err)
	}

	devices, err := s.ListDevices(ctx)
	require.NoError(t, err)
	require.Len(t, devices, 3)

	assert.Equal(t, "10.0.0.2", devices[0].Address)
	assert.Equal(t, "10.0.0.1", devices[1].Address)
	assert.Equal(t, "10.0.0.3", devices[2].Address)
}

func TestSamplesRange(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.RegisterOrGet(ctx, models.Registration{Address: "10.0.0.5"})
	require.NoError(t, err)

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, s.SaveSample(ctx, "10.0.0.5", &models.MetricSample{
			Timestamp:  base.Add(time.Duration(i) * time.Hour),
			TotalPages: int64Ref(int64(100 + i)),
		}))
	}

	got, err := s.Samples(ctx, "10.0.0.5", base.Add(time.Hour), base.Add(3*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(101), *got[0].Sample.TotalPages)
	assert.Equal(t, int64(102), *got[1].Sample.TotalPages)
}

func TestPendingAndMarkForwarded(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.RegisterOrGet(ctx, models.Registration{Address: "10.0.0.5"})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, s.SaveSample(ctx, "10.0.0.5", &models.MetricSample{
			Timestamp:  time.Now(),
			TotalPages: int64Ref(int64(i)),
		}))
	}

	require.NoError(t, s.SaveForwarded(ctx, "10.0.0.5", &models.MetricSample{
		Timestamp:  time.Now(),
		TotalPages: int64Ref(99),
	}))

	pending, err := s.PendingSamples(ctx, 0)
	require.NoError(t, err)
	require.Len(t, pending, 3)
	assert.Equal(t, "10.0.0.5", pending[0].Address)

	limited, err := s.PendingSamples(ctx, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)

	require.NoError(t, s.MarkForwarded(ctx, []int64{limited[0].ID, limited[1].ID}))
	require.NoError(t, s.MarkForwarded(ctx, nil))

	pending, err = s.PendingSamples(ctx, 0)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, int64(2), *pending[0].Sample.TotalPages)
}

func TestPruneForwarded(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.RegisterOrGet(ctx, models.Registration{Address: "10.0.0.5"})
	require.NoError(t, err)

	now := time.Now()
	old := now.Add(-48 * time.Hour)

	require.NoError(t, s.SaveForwarded(ctx, "10.0.0.5", &models.MetricSample{Timestamp: old, TotalPages: int64Ref(1)}))
	require.NoError(t, s.SaveForwarded(ctx, "10.0.0.5", &models.MetricSample{Timestamp: now, TotalPages: int64Ref(2)}))
	require.NoError(t, s.SaveSample(ctx, "10.0.0.5", &models.MetricSample{Timestamp: old, TotalPages: int64Ref(3)}))

	n, err := s.PruneForwarded(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	remaining, err := s.Samples(ctx, "10.0.0.5", old.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, remaining, 2)
	assert.Equal(t, int64(3), *remaining[0].Sample.TotalPages, "pending samples are kept regardless of age")
	assert.Equal(t, int64(2), *remaining[1].Sample.TotalPages)
}

func TestMarkUnreachable(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.RegisterOrGet(ctx, models.Registration{Address: "10.0.0.5"})
	require.NoError(t, err)

	require.NoError(t, s.MarkUnreachable(ctx, "10.0.0.5"))

	d, err := s.GetByAddress(ctx, "10.0.0.5")
	require.NoError(t, err)
	assert.Equal(t, models.StatusUnreachable, d.ConnectionStatus)

	require.ErrorIs(t, s.MarkUnreachable(ctx, "10.0.0.6"), storage.ErrDeviceNotFound)
}

func TestConcurrentSaves(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.RegisterOrGet(ctx, models.Registration{Address: "10.0.0.5"})
	require.NoError(t, err)

	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			assert.NoError(t, s.SaveSample(ctx, "10.0.0.5", &models.MetricSample{
				Timestamp:  time.Now(),
				TotalPages: int64Ref(int64(i)),
			}))
		}(i)
	}

	wg.Wait()

	pending, err := s.PendingSamples(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, pending, 20)
}

func TestHealthCheck(t *testing.T) {
	s := newTestStore(t)
	assert.True(t, s.HealthCheck(context.Background()))
	assert.NotEmpty(t, s.Path())
}
