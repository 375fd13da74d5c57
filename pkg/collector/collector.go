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

// Package collector polls printers concurrently and submits one sample per device.
package collector

import (
	"context"
	"fmt"
	"runtime/debug"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/carverauto/printradar/pkg/logger"
	"github.com/carverauto/printradar/pkg/models"
	"github.com/carverauto/printradar/pkg/printer"
	"github.com/carverauto/printradar/pkg/snmp"
	"github.com/carverauto/printradar/pkg/storage"
)

const defaultMaxConcurrency = 32

// Config bounds a polling pass.
type Config struct {
	MaxConcurrency int `json:"max_concurrency" yaml:"max_concurrency"`
	MaxSupplySlots int `json:"max_supply_slots" yaml:"max_supply_slots"`
}

// Collector turns device queries into stored samples.
type Collector struct {
	querier        snmp.Querier
	store          storage.Store
	maxConcurrency int
	maxSupplySlots int
	now            func() time.Time
	logger         logger.Logger
}

// New returns a Collector reading through querier and writing to store.
func New(querier snmp.Querier, store storage.Store, cfg Config, log logger.Logger) *Collector {
	c := &Collector{
		querier:        querier,
		store:          store,
		maxConcurrency: cfg.MaxConcurrency,
		maxSupplySlots: cfg.MaxSupplySlots,
		now:            time.Now,
		logger:         log,
	}

	if c.maxConcurrency <= 0 {
		c.maxConcurrency = defaultMaxConcurrency
	}

	if c.maxSupplySlots <= 0 {
		c.maxSupplySlots = printer.DefaultSupplySlots
	}

	return c
}

// Sample queries address and decodes its readings. The returned sample may be empty.
// The supply table is always scanned unless the device answered none of the identity
// queries, so a hung device costs one query timeout.
func (c *Collector) Sample(ctx context.Context, address string) *models.MetricSample {
	sample := &models.MetricSample{}

	var (
		model, status, pages       string
		modelOK, statusOK, pagesOK bool
	)

	var g errgroup.Group

	g.Go(func() error {
		model, modelOK = c.querier.Lookup(ctx, address, printer.OIDModel)
		return nil
	})
	g.Go(func() error {
		status, statusOK = c.querier.Lookup(ctx, address, printer.OIDDeviceStatus)
		return nil
	})
	g.Go(func() error {
		pages, pagesOK = c.querier.Lookup(ctx, address, printer.OIDTotalPages)
		return nil
	})

	_ = g.Wait()

	if !modelOK && !statusOK && !pagesOK {
		c.logger.Debug().Str("address", address).Msg("Device did not respond, skipping supply scan")

		sample.Timestamp = c.now()

		return sample
	}

	if m := strings.TrimSpace(model); m != "" {
		sample.Model = &m
	}

	if v, err := strconv.Atoi(strings.TrimSpace(status)); err == nil {
		sample.DeviceStatus = &v
	}

	if v, err := strconv.ParseInt(strings.TrimSpace(pages), 10, 64); err == nil {
		sample.TotalPages = &v
	}

	c.scanSupplies(ctx, address, sample)

	sample.Timestamp = c.now()

	return sample
}

// scanSupplies walks the supply table until both toner and drum are found.
// The first slot matching a channel wins.
func (c *Collector) scanSupplies(ctx context.Context, address string, sample *models.MetricSample) {
	var tonerFound, drumFound bool

	for slot := 1; slot <= c.maxSupplySlots; slot++ {
		if tonerFound && drumFound {
			return
		}

		if ctx.Err() != nil {
			return
		}

		description := c.querier.Query(ctx, address, printer.SupplyDescriptionOID(slot))
		if description == "" {
			continue
		}

		channel := printer.ClassifySupply(description)
		if channel == printer.ChannelNone ||
			(channel == printer.ChannelToner && tonerFound) ||
			(channel == printer.ChannelDrum && drumFound) {
			continue
		}

		current := c.querier.Query(ctx, address, printer.SupplyLevelOID(slot))
		maxCapacity := c.querier.Query(ctx, address, printer.SupplyMaxCapacityOID(slot))

		if current == "" || maxCapacity == "" {
			continue
		}

		reading := printer.DecodeSupplyLevel(current, maxCapacity)

		c.logger.Trace().
			Str("address", address).
			Int("slot", slot).
			Str("channel", channel.String()).
			Str("description", description).
			Msg("Decoded supply level")

		switch channel {
		case printer.ChannelToner:
			sample.TonerLevelPct, sample.TonerStatus = splitReading(reading)
			tonerFound = true
		case printer.ChannelDrum:
			sample.DrumLevelPct, sample.DrumStatus = splitReading(reading)
			drumFound = true
		case printer.ChannelNone:
		}
	}
}

func splitReading(r models.SupplyReading) (*int, *string) {
	if r.Percentage != nil {
		return r.Percentage, nil
	}

	status := r.Status

	return nil, &status
}

// PollDevice samples address and submits the result. It reports whether a sample
// was stored.
func (c *Collector) PollDevice(ctx context.Context, address string) bool {
	start := time.Now()
	sample := c.Sample(ctx, address)

	if sample.IsEmpty() {
		c.logger.Warn().
			Str("address", address).
			Dur("elapsed", time.Since(start)).
			Msg("No data from device")

		c.markUnreachable(ctx, address)

		return false
	}

	if err := c.store.SaveSample(ctx, address, sample); err != nil {
		c.logger.Error().
			Err(err).
			Str("address", address).
			Msg("Failed to save sample")

		return false
	}

	c.logger.Debug().
		Str("address", address).
		Dur("elapsed", time.Since(start)).
		Msg("Sample saved")

	return true
}

func (c *Collector) markUnreachable(ctx context.Context, address string) {
	marker, ok := c.store.(storage.StatusMarker)
	if !ok {
		return
	}

	if err := marker.MarkUnreachable(ctx, address); err != nil {
		c.logger.Debug().Err(err).Str("address", address).Msg("Could not mark device unreachable")
	}
}

// PollAll polls every address with at most MaxConcurrency devices in flight.
// A failure or panic in one device never affects the others.
func (c *Collector) PollAll(ctx context.Context, addresses []string) map[string]bool {
	results := make(map[string]bool, len(addresses))
	unique := make([]string, 0, len(addresses))

	for _, address := range addresses {
		if _, seen := results[address]; seen {
			continue
		}

		results[address] = false
		unique = append(unique, address)
	}

	var mu sync.Mutex

	var g errgroup.Group

	g.SetLimit(c.maxConcurrency)

	for _, address := range unique {
		g.Go(func() error {
			ok := c.pollSafely(ctx, address)

			mu.Lock()
			results[address] = ok
			mu.Unlock()

			return nil
		})
	}

	_ = g.Wait()

	return results
}

func (c *Collector) pollSafely(ctx context.Context, address string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error().
				Str("address", address).
				Str("panic", fmt.Sprint(r)).
				Bytes("stack", debug.Stack()).
				Msg("Recovered from panic while polling device")

			ok = false
		}
	}()

	if ctx.Err() != nil {
		return false
	}

	return c.PollDevice(ctx, address)
}
