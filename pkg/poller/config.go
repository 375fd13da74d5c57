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

package poller

import (
	"fmt"
	"time"

	"github.com/carverauto/printradar/pkg/collector"
	"github.com/carverauto/printradar/pkg/logger"
	"github.com/carverauto/printradar/pkg/models"
	"github.com/carverauto/printradar/pkg/snmp"
	"github.com/carverauto/printradar/pkg/storage"
)

const (
	defaultPollInterval   = time.Hour
	defaultPassTimeout    = 10 * time.Minute
	defaultMaxConcurrency = 32
)

// SNMPConfig configures how printers are queried.
type SNMPConfig struct {
	Community string          `json:"community" yaml:"community"`
	Port      uint16          `json:"port" yaml:"port"`
	Version   snmp.Version    `json:"version" yaml:"version"`
	Timeout   models.Duration `json:"timeout" yaml:"timeout"`
}

// Transport returns the transport settings.
func (c *SNMPConfig) Transport() snmp.TransportConfig {
	return snmp.TransportConfig{
		Community: c.Community,
		Port:      c.Port,
		Version:   c.Version,
	}
}

// Config is the complete service configuration.
type Config struct {
	Storage        storage.Config        `json:"storage" yaml:"storage"`
	SNMP           SNMPConfig            `json:"snmp" yaml:"snmp"`
	MaxConcurrency int                   `json:"max_concurrency" yaml:"max_concurrency"`
	MaxSupplySlots int                   `json:"max_supply_slots" yaml:"max_supply_slots"`
	PollInterval   models.Duration       `json:"poll_interval" yaml:"poll_interval"`
	PassTimeout    models.Duration       `json:"pass_timeout" yaml:"pass_timeout"`
	Devices        []models.Registration `json:"devices" yaml:"devices"`
	Logging        logger.Config         `json:"logging" yaml:"logging"`
}

// Validate applies defaults and checks the configuration.
func (c *Config) Validate() error {
	if err := c.Storage.Validate(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	if c.SNMP.Community == "" {
		c.SNMP.Community = "public"
	}

	if c.SNMP.Port == 0 {
		c.SNMP.Port = 161
	}

	if c.SNMP.Version == "" {
		c.SNMP.Version = snmp.Version1
	}

	if c.SNMP.Timeout <= 0 {
		c.SNMP.Timeout = models.Duration(snmp.DefaultTimeout)
	}

	if c.MaxConcurrency <= 0 {
		c.MaxConcurrency = defaultMaxConcurrency
	}

	if c.MaxSupplySlots <= 0 {
		c.MaxSupplySlots = 9
	}

	if c.PollInterval == 0 {
		c.PollInterval = models.Duration(defaultPollInterval)
	}

	if c.PollInterval < 0 {
		return errInvalidPollInterval
	}

	if c.PassTimeout == 0 {
		c.PassTimeout = models.Duration(defaultPassTimeout)
	}

	if c.PassTimeout < 0 {
		return errInvalidPassTimeout
	}

	for i := range c.Devices {
		if c.Devices[i].Address == "" {
			return fmt.Errorf("devices[%d]: %w", i, errInvalidDevice)
		}
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}

// CollectorConfig returns the collector bounds.
func (c *Config) CollectorConfig() collector.Config {
	return collector.Config{
		MaxConcurrency: c.MaxConcurrency,
		MaxSupplySlots: c.MaxSupplySlots,
	}
}
