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

package snmp

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/carverauto/printradar/pkg/logger"
)

// DefaultTimeout bounds a single query when none is configured.
const DefaultTimeout = 2 * time.Second

// Client wraps a Transport with a per-query timeout and never reports errors to callers.
type Client struct {
	transport Transport
	timeout   time.Duration
	logger    logger.Logger
}

func NewClient(transport Transport, timeout time.Duration, log logger.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		transport: transport,
		timeout:   timeout,
		logger:    log,
	}
}

// Timeout returns the per-query deadline.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Query returns the textual value of oid on address, or "" when the device did not
// answer, answered with an error, or reported no such object. There are no retries.
func (c *Client) Query(ctx context.Context, address, oid string) string {
	value, _ := c.Lookup(ctx, address, oid)

	return value
}

// Lookup is Query that also reports whether the device responded at all. A device that
// answers "no such object" responded; a timeout or transport failure did not.
func (c *Client) Lookup(ctx context.Context, address, oid string) (string, bool) {
	queryCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	value, err := c.transport.Get(queryCtx, address, oid, c.timeout)
	if err != nil {
		c.logger.Trace().
			Err(err).
			Str("address", address).
			Str("oid", oid).
			Msg("SNMP query returned no value")

		return "", answered(err)
	}

	if strings.Contains(value, "No Such") || strings.TrimSpace(value) == "" {
		return "", true
	}

	return value, true
}

// answered reports whether err came from a device response rather than the network.
func answered(err error) bool {
	return errors.Is(err, ErrNoSuchObject) ||
		errors.Is(err, ErrNoVariables) ||
		errors.Is(err, errUnexpectedValue)
}
