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

package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"

	"github.com/carverauto/printradar/pkg/logger"
	"github.com/carverauto/printradar/pkg/storage"
	"github.com/carverauto/printradar/pkg/version"
)

const maxErrorBody = 512

var errUnexpectedStatus = errors.New("unexpected status code")

// client speaks JSON over HTTP to the remote sink.
type client struct {
	baseURL        string
	apiKey         string
	httpClient     *http.Client
	retryAttempts  int
	retryDelay     time.Duration
	requestTimeout time.Duration
	logger         logger.Logger
}

// request performs method on endpoint with up to retryAttempts attempts separated by a
// constant retryDelay. Any transport error or non-2xx response is retried.
func (c *client) request(ctx context.Context, method, endpoint string, body, out any) error {
	attempt := 0

	operation := func() (struct{}, error) {
		attempt++

		err := c.do(ctx, method, endpoint, body, out)
		if err != nil {
			c.logger.Warn().
				Err(err).
				Str("method", method).
				Str("endpoint", endpoint).
				Int("attempt", attempt).
				Int("max_attempts", c.retryAttempts).
				Msg("Remote request failed")

			return struct{}{}, err
		}

		return struct{}{}, nil
	}

	_, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewConstantBackOff(c.retryDelay)),
		backoff.WithMaxTries(uint(c.retryAttempts)),
		backoff.WithMaxElapsedTime(0),
	)
	if err != nil {
		return fmt.Errorf("%w: %s %s after %d attempts: %w", storage.ErrRemoteExhausted, method, endpoint, attempt, err)
	}

	return nil
}

// do performs a single attempt bounded by requestTimeout.
func (c *client) do(ctx context.Context, method, endpoint string, body, out any) error {
	reqCtx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("marshal request: %w", err))
		}

		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(reqCtx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

		return fmt.Errorf("%w: %d: %s", errUnexpectedStatus, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)

		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
