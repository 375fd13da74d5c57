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

// Package poller runs collection passes over every known printer on a fixed interval.
package poller

import (
	"context"
	"sync"
	"time"

	"github.com/carverauto/printradar/pkg/collector"
	"github.com/carverauto/printradar/pkg/logger"
	"github.com/carverauto/printradar/pkg/models"
	"github.com/carverauto/printradar/pkg/snmp"
	"github.com/carverauto/printradar/pkg/storage"
)

// PassSummary describes one completed collection pass.
type PassSummary struct {
	Devices   int
	Succeeded int
	Failed    int
	Flushed   int
	Started   time.Time
	Duration  time.Duration
	Results   map[string]bool
}

// Poller drives the collector against the devices known to the store.
type Poller struct {
	config    Config
	store     storage.Store
	collector *collector.Collector
	clock     Clock
	logger    logger.Logger

	passMu     sync.Mutex
	registered map[string]bool
	done       chan struct{}
	closeOnce  sync.Once
	wg         sync.WaitGroup
}

// New creates a poller. config must already be validated.
func New(config *Config, store storage.Store, querier snmp.Querier, clock Clock, log logger.Logger) (*Poller, error) {
	if store == nil {
		return nil, errNoStore
	}

	if querier == nil {
		return nil, errNoQuerier
	}

	if clock == nil {
		clock = realClock{}
	}

	return &Poller{
		config:     *config,
		store:      store,
		collector:  collector.New(querier, store, config.CollectorConfig(), log.WithComponent("collector")),
		clock:      clock,
		logger:     log,
		registered: make(map[string]bool, len(config.Devices)),
		done:       make(chan struct{}),
	}, nil
}

// seed registers configured devices that have not been registered yet. Failed
// registrations are retried on the next pass. Callers hold passMu.
func (p *Poller) seed(ctx context.Context) {
	for _, reg := range p.config.Devices {
		if p.registered[reg.Address] {
			continue
		}

		if _, err := p.store.RegisterOrGet(ctx, reg); err != nil {
			p.logger.Error().Err(err).Str("address", reg.Address).Msg("Failed to register device, will retry next pass")

			continue
		}

		p.registered[reg.Address] = true

		p.logger.Debug().Str("address", reg.Address).Str("name", reg.Name).Msg("Device registered")
	}
}

// RunOnce performs a single collection pass bounded by the pass timeout.
func (p *Poller) RunOnce(ctx context.Context) (*PassSummary, error) {
	p.passMu.Lock()
	defer p.passMu.Unlock()

	p.seed(ctx)

	summary := &PassSummary{Started: p.clock.Now()}

	devices, err := p.store.ListDevices(ctx)
	if err != nil {
		return nil, err
	}

	summary.Devices = len(devices)

	if len(devices) == 0 {
		p.logger.Warn().Msg("No devices to poll")
	} else {
		passCtx, cancel := context.WithTimeout(ctx, p.config.PassTimeout.Std())
		summary.Results = p.collector.PollAll(passCtx, addresses(devices))
		cancel()

		for _, ok := range summary.Results {
			if ok {
				summary.Succeeded++
			} else {
				summary.Failed++
			}
		}
	}

	summary.Flushed = p.flush(ctx)
	summary.Duration = p.clock.Now().Sub(summary.Started)

	p.logger.Info().
		Int("devices", summary.Devices).
		Int("succeeded", summary.Succeeded).
		Int("failed", summary.Failed).
		Int("flushed", summary.Flushed).
		Dur("duration", summary.Duration).
		Msg("Collection pass complete")

	return summary, nil
}

// flush forwards buffered samples when the store buffers and its sink is reachable.
func (p *Poller) flush(ctx context.Context) int {
	flusher, ok := p.store.(storage.Flusher)
	if !ok {
		return 0
	}

	if !p.store.HealthCheck(ctx) {
		p.logger.Debug().Msg("Remote sink unhealthy, keeping buffered samples")

		return 0
	}

	n, err := flusher.FlushBuffer(ctx)
	if err != nil {
		p.logger.Warn().Err(err).Int("forwarded", n).Msg("Buffer flush incomplete")
	}

	return n
}

func addresses(devices []models.Device) []string {
	out := make([]string, 0, len(devices))
	for i := range devices {
		out = append(out, devices[i].Address)
	}

	return out
}

// Start runs a pass immediately and then on every tick until ctx is done or Stop is called.
// Ticks that arrive while a pass is running are dropped.
func (p *Poller) Start(ctx context.Context) error {
	interval := p.config.PollInterval.Std()
	ticker := p.clock.Ticker(interval)

	defer ticker.Stop()

	p.wg.Add(1)
	defer p.wg.Done()

	p.logger.Info().Dur("interval", interval).Msg("Starting poller")

	if _, err := p.RunOnce(ctx); err != nil {
		p.logger.Error().Err(err).Msg("Error during initial poll")
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-p.done:
			return nil
		case <-ticker.Chan():
			if _, err := p.RunOnce(ctx); err != nil {
				p.logger.Error().Err(err).Msg("Error during poll")
			}
		}
	}
}

// Stop signals Start to return and waits for the running pass to finish.
func (p *Poller) Stop(ctx context.Context) error {
	p.closeOnce.Do(func() {
		close(p.done)
	})

	waited := make(chan struct{})

	go func() {
		p.wg.Wait()
		close(waited)
	}()

	select {
	case <-waited:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
