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

package storage

import "errors"

var (
	ErrDeviceNotFound     = errors.New("device not found")
	ErrEmptySample        = errors.New("sample has no metrics")
	ErrAddressRequired    = errors.New("device address is required")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrRemoteExhausted    = errors.New("remote sink retries exhausted")

	ErrUnknownMode        = errors.New("unknown storage mode")
	ErrDatabaseFileNeeded = errors.New("database_file is required for local mode")
	ErrPostgresDSNNeeded  = errors.New("postgres_dsn is required for postgres mode")
	ErrRemoteURLNeeded    = errors.New("remote.url is required for remote mode")
	ErrRemoteAPIKeyNeeded = errors.New("remote.api_key is required for remote mode")
)
