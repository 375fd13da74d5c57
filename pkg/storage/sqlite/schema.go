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

const schema = `
CREATE TABLE IF NOT EXISTS devices (
    id                INTEGER PRIMARY KEY AUTOINCREMENT,
    address           TEXT NOT NULL UNIQUE,
    name              TEXT NOT NULL DEFAULT '',
    location          TEXT NOT NULL DEFAULT '',
    model             TEXT NOT NULL DEFAULT '',
    manufacturer      TEXT NOT NULL DEFAULT '',
    first_seen        TEXT NOT NULL,
    connection_status TEXT NOT NULL DEFAULT 'unknown',
    last_seen         TEXT
);

CREATE TABLE IF NOT EXISTS samples (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    device_id       INTEGER NOT NULL REFERENCES devices(id),
    timestamp       TEXT NOT NULL,
    total_pages     INTEGER,
    toner_level_pct INTEGER,
    toner_status    TEXT,
    drum_level_pct  INTEGER,
    drum_status     TEXT,
    device_status   INTEGER,
    model           TEXT,
    forwarded       INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_samples_timestamp ON samples(timestamp);
CREATE INDEX IF NOT EXISTS idx_samples_device_id ON samples(device_id);
CREATE INDEX IF NOT EXISTS idx_samples_forwarded ON samples(forwarded);
`
