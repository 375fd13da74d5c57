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

// Package logger provides JSON structured logging using zerolog
package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var globalLogger zerolog.Logger

type Config struct {
	Level      string     `json:"level" yaml:"level"`
	Debug      bool       `json:"debug" yaml:"debug"`
	Output     string     `json:"output" yaml:"output"`
	TimeFormat string     `json:"time_format" yaml:"time_format"`
	OTel       OTelConfig `json:"otel" yaml:"otel"`
}

func init() {
	globalLogger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	zerolog.TimeFieldFormat = time.RFC3339
}

// Init configures the process-wide logger used by the package-level helpers.
func Init(config *Config) error {
	return InitWithContext(context.Background(), config)
}

// InitWithContext is Init with a context for the OTLP exporter. When config.OTel is
// enabled every line is written to the configured output and exported.
func InitWithContext(ctx context.Context, config *Config) error {
	l, err := build(config)
	if err != nil {
		return err
	}

	if config != nil && config.OTel.Enabled {
		w, err := NewOTelWriter(ctx, config.OTel)
		if err != nil {
			return fmt.Errorf("failed to initialize OTel logging: %w", err)
		}

		l = l.Output(io.MultiWriter(outputFor(config), w))
	}

	globalLogger = l
	log.Logger = globalLogger

	return nil
}

// New returns a Logger built from config without touching the global logger.
// It never exports to OTLP.
func New(config *Config) (Logger, error) {
	l, err := build(config)
	if err != nil {
		return nil, err
	}

	return &zerologLogger{logger: l}, nil
}

func build(config *Config) (zerolog.Logger, error) {
	if config == nil {
		config = DefaultConfig()
	}

	level := zerolog.InfoLevel

	if config.Debug {
		level = zerolog.DebugLevel
	} else if config.Level != "" {
		var err error

		level, err = zerolog.ParseLevel(config.Level)
		if err != nil {
			return zerolog.Logger{}, err
		}
	}

	if config.TimeFormat != "" {
		zerolog.TimeFieldFormat = config.TimeFormat
	}

	return zerolog.New(outputFor(config)).
		Level(level).
		With().
		Timestamp().
		Logger(), nil
}

func outputFor(config *Config) io.Writer {
	if config.Output == "stderr" {
		return os.Stderr
	}

	return os.Stdout
}

func SetLevel(level zerolog.Level) {
	globalLogger = globalLogger.Level(level)
	log.Logger = globalLogger
}

func SetDebug(debug bool) {
	if debug {
		SetLevel(zerolog.DebugLevel)
	} else {
		SetLevel(zerolog.InfoLevel)
	}
}

func GetLogger() zerolog.Logger {
	return globalLogger
}
