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

package logger

import (
	"os"
	"strconv"
	"strings"
)

// envPrefix names take precedence over the bare names.
const envPrefix = "PRINTRADAR_"

// DefaultConfig builds a Config from LOG_LEVEL, DEBUG, LOG_OUTPUT and LOG_TIME_FORMAT,
// each of which may also be given with the PRINTRADAR_ prefix.
func DefaultConfig() *Config {
	return &Config{
		Level:      lookupEnv("LOG_LEVEL", "info"),
		Debug:      lookupEnvBool("DEBUG", false),
		Output:     lookupEnv("LOG_OUTPUT", "stdout"),
		TimeFormat: lookupEnv("LOG_TIME_FORMAT", ""),
		OTel: OTelConfig{
			Enabled:     lookupEnvBool("OTEL_LOGS_ENABLED", false),
			Endpoint:    lookupEnv("OTEL_EXPORTER_OTLP_LOGS_ENDPOINT", ""),
			ServiceName: lookupEnv("OTEL_SERVICE_NAME", defaultServiceName),
			Insecure:    lookupEnvBool("OTEL_EXPORTER_OTLP_LOGS_INSECURE", false),
		},
	}
}

func lookupEnv(key, fallback string) string {
	for _, name := range []string{envPrefix + key, key} {
		if value := strings.TrimSpace(os.Getenv(name)); value != "" {
			return value
		}
	}

	return fallback
}

func lookupEnvBool(key string, fallback bool) bool {
	value := strings.ToLower(lookupEnv(key, ""))

	switch value {
	case "":
		return fallback
	case "yes", "on":
		return true
	case "no", "off":
		return false
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}

	return b
}
