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

import "errors"

var (
	errInvalidPollInterval = errors.New("poll_interval must be positive")
	errInvalidPassTimeout  = errors.New("pass_timeout must be positive")
	errInvalidDevice       = errors.New("device address is required")
	errNoStore             = errors.New("store is required")
	errNoQuerier           = errors.New("querier is required")
)
