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

// Package remote implements storage.Store against the HTTP remote sink, falling back
// to an owned local buffer when the sink stays unreachable.
package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/carverauto/printradar/pkg/logger"
	"github.com/carverauto/printradar/pkg/models"
	"github.com/carverauto/printradar/pkg/storage"
)

const (
	endpointMetrics = "/metrics"
	endpointDevices = "/devices"
	endpointHealth  = "/health"

	defaultFlushBatch = 500
)

// Buffer is the local store that absorbs writes while the sink is unreachable.
type Buffer interface {
	storage.Store
	storage.StatusMarker
	SaveForwarded(ctx context.Context, address string, sample *models.MetricSample) error
	PendingSamples(ctx context.Context, limit int) ([]models.StoredSample, error)
	MarkForwarded(ctx context.Context, ids []int64) error
	PruneForwarded(ctx context.Context, cutoff time.Time) (int64, error)
}

var (
	_ storage.Store        = (*Store)(nil)
	_ storage.StatusMarker = (*Store)(nil)
	_ storage.Flusher      = (*Store)(nil)
)

// Store forwards samples and registrations to the remote sink.
type Store struct {
	client     *client
	buffer     Buffer
	flushBatch int
	retention  time.Duration
	now        func() time.Time
	logger     logger.Logger
}

// Option customizes a Store.
type Option func(*Store)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(s *Store) {
		s.client.httpClient = hc
	}
}

// WithFlushBatch bounds how many buffered samples one FlushBuffer call forwards.
func WithFlushBatch(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.flushBatch = n
		}
	}
}

// WithBufferRetention keeps forwarded samples in the buffer for d. Zero keeps them forever.
func WithBufferRetention(d time.Duration) Option {
	return func(s *Store) {
		if d >= 0 {
			s.retention = d
		}
	}
}

// New returns a Store for cfg. buffer may be nil, in which case failed writes are reported
// to the caller. The Store owns buffer and closes it on Close.
func New(cfg *storage.RemoteConfig, buffer Buffer, log logger.Logger, opts ...Option) (*Store, error) {
	if cfg.URL == "" {
		return nil, storage.ErrRemoteURLNeeded
	}

	if cfg.APIKey == "" {
		return nil, storage.ErrRemoteAPIKeyNeeded
	}

	attempts := cfg.RetryAttempts
	if attempts <= 0 {
		attempts = 1
	}

	timeout := cfg.RequestTimeout.Std()
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	s := &Store{
		client: &client{
			baseURL:        strings.TrimRight(cfg.URL, "/"),
			apiKey:         cfg.APIKey,
			httpClient:     &http.Client{},
			retryAttempts:  attempts,
			retryDelay:     cfg.RetryDelay.Std(),
			requestTimeout: timeout,
			logger:         log,
		},
		buffer:     buffer,
		flushBatch: defaultFlushBatch,
		now:        time.Now,
		logger:     log,
	}

	for _, opt := range opts {
		opt(s)
	}

	log.Info().
		Str("url", s.client.baseURL).
		Int("retry_attempts", attempts).
		Dur("retry_delay", s.client.retryDelay).
		Bool("buffer", buffer != nil).
		Msg("Remote store initialized")

	return s, nil
}

type metricsPayload struct {
	TotalPages    *int64  `json:"total_pages"`
	TonerLevelPct *int    `json:"toner_level_pct"`
	TonerStatus   *string `json:"toner_status"`
	DrumLevelPct  *int    `json:"drum_level_pct"`
	DrumStatus    *string `json:"drum_status"`
	DeviceStatus  *int    `json:"device_status"`
	Model         *string `json:"model"`
}

type sampleRequest struct {
	DeviceID  string         `json:"device_id"`
	Timestamp time.Time      `json:"timestamp"`
	Metrics   metricsPayload `json:"metrics"`
}

type devicesResponse struct {
	Devices []models.Device `json:"devices"`
}

func newSampleRequest(address string, sample *models.MetricSample) sampleRequest {
	ts := sample.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	return sampleRequest{
		DeviceID:  address,
		Timestamp: ts.UTC(),
		Metrics: metricsPayload{
			TotalPages:    sample.TotalPages,
			TonerLevelPct: sample.TonerLevelPct,
			TonerStatus:   sample.TonerStatus,
			DrumLevelPct:  sample.DrumLevelPct,
			DrumStatus:    sample.DrumStatus,
			DeviceStatus:  sample.DeviceStatus,
			Model:         sample.Model,
		},
	}
}

// SaveSample implements storage.Store.
func (s *Store) SaveSample(ctx context.Context, address string, sample *models.MetricSample) error {
	if address == "" {
		return storage.ErrAddressRequired
	}

	if sample.IsEmpty() {
		return storage.ErrEmptySample
	}

	err := s.client.request(ctx, http.MethodPost, endpointMetrics, newSampleRequest(address, sample), nil)
	if err == nil {
		s.mirrorSample(ctx, address, sample)

		return nil
	}

	if s.buffer == nil {
		return err
	}

	s.logger.Warn().
		Err(err).
		Str("address", address).
		Msg("Remote sink unavailable, saving sample to local buffer")

	if bufErr := s.buffer.SaveSample(ctx, address, sample); bufErr != nil {
		return fmt.Errorf("buffer fallback: %w", bufErr)
	}

	return nil
}

// mirrorSample keeps the buffer's device state and history current. Failures are not
// reported since the sink already holds the sample.
func (s *Store) mirrorSample(ctx context.Context, address string, sample *models.MetricSample) {
	if s.buffer == nil {
		return
	}

	if err := s.buffer.SaveForwarded(ctx, address, sample); err != nil {
		s.logger.Debug().Err(err).Str("address", address).Msg("Could not mirror forwarded sample")
	}
}

// RegisterOrGet implements storage.Store.
func (s *Store) RegisterOrGet(ctx context.Context, reg models.Registration) (string, error) {
	reg.Address = strings.TrimSpace(reg.Address)
	if reg.Address == "" {
		return "", storage.ErrAddressRequired
	}

	err := s.client.request(ctx, http.MethodPost, endpointDevices, reg, nil)
	if err == nil {
		if s.buffer != nil {
			if _, bufErr := s.buffer.RegisterOrGet(ctx, reg); bufErr != nil {
				s.logger.Warn().Err(bufErr).Str("address", reg.Address).Msg("Could not mirror registration to buffer")
			}
		}

		return reg.Address, nil
	}

	if s.buffer == nil {
		return "", err
	}

	s.logger.Warn().
		Err(err).
		Str("address", reg.Address).
		Msg("Remote sink unavailable, registering device in local buffer")

	return s.buffer.RegisterOrGet(ctx, reg)
}

// ListDevices implements storage.Store. The buffer mirrors every registration so it is
// authoritative when present; otherwise the sink is asked.
func (s *Store) ListDevices(ctx context.Context) ([]models.Device, error) {
	if s.buffer != nil {
		return s.buffer.ListDevices(ctx)
	}

	var resp devicesResponse
	if err := s.client.request(ctx, http.MethodGet, endpointDevices, nil, &resp); err != nil {
		return nil, err
	}

	return resp.Devices, nil
}

// GetByAddress implements storage.Store using the same source as ListDevices.
func (s *Store) GetByAddress(ctx context.Context, address string) (*models.Device, error) {
	if s.buffer != nil {
		return s.buffer.GetByAddress(ctx, address)
	}

	devices, err := s.ListDevices(ctx)
	if err != nil {
		return nil, err
	}

	for i := range devices {
		if devices[i].Address == address {
			return &devices[i], nil
		}
	}

	return nil, fmt.Errorf("%w: %s", storage.ErrDeviceNotFound, address)
}

// MarkUnreachable implements storage.StatusMarker. Only the buffer tracks reachability.
func (s *Store) MarkUnreachable(ctx context.Context, address string) error {
	if s.buffer == nil {
		return nil
	}

	return s.buffer.MarkUnreachable(ctx, address)
}

// HealthCheck checks the sink once. The buffer is not consulted.
func (s *Store) HealthCheck(ctx context.Context) bool {
	if err := s.client.do(ctx, http.MethodGet, endpointHealth, nil, nil); err != nil {
		s.logger.Warn().Err(err).Msg("Remote sink health check failed")

		return false
	}

	return true
}

// FlushBuffer forwards buffered samples oldest first, one attempt each, and stops at the
// first failure. It returns how many samples were delivered.
func (s *Store) FlushBuffer(ctx context.Context) (int, error) {
	if s.buffer == nil {
		return 0, nil
	}

	s.prune(ctx)

	pending, err := s.buffer.PendingSamples(ctx, s.flushBatch)
	if err != nil {
		return 0, err
	}

	if len(pending) == 0 {
		return 0, nil
	}

	delivered := make([]int64, 0, len(pending))

	var sendErr error

	for i := range pending {
		p := &pending[i]

		if err := s.client.do(ctx, http.MethodPost, endpointMetrics, newSampleRequest(p.Address, &p.Sample), nil); err != nil {
			sendErr = fmt.Errorf("forward buffered sample %d: %w", p.ID, err)

			break
		}

		delivered = append(delivered, p.ID)
	}

	if err := s.buffer.MarkForwarded(ctx, delivered); err != nil {
		return 0, errors.Join(sendErr, err)
	}

	s.logger.Info().
		Int("forwarded", len(delivered)).
		Int("pending", len(pending)).
		Msg("Flushed local buffer")

	return len(delivered), sendErr
}

// prune drops forwarded history older than the retention window.
func (s *Store) prune(ctx context.Context) {
	if s.retention <= 0 {
		return
	}

	n, err := s.buffer.PruneForwarded(ctx, s.now().Add(-s.retention))
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to prune forwarded samples")

		return
	}

	if n > 0 {
		s.logger.Debug().Int64("pruned", n).Dur("retention", s.retention).Msg("Pruned forwarded samples")
	}
}

// Close releases the owned buffer.
func (s *Store) Close() error {
	s.client.httpClient.CloseIdleConnections()

	if s.buffer == nil {
		return nil
	}

	return s.buffer.Close()
}
