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

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/carverauto/printradar/pkg/config"
	"github.com/carverauto/printradar/pkg/logger"
	"github.com/carverauto/printradar/pkg/poller"
	"github.com/carverauto/printradar/pkg/snmp"
	"github.com/carverauto/printradar/pkg/storage/factory"
	"github.com/carverauto/printradar/pkg/version"
)

const shutdownTimeout = 30 * time.Second

var (
	errFailedToLoadConfig = errors.New("failed to load config")
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}

		log.Fatalf("Fatal error: %v", err)
	}
}

func run(args []string) error {
	flagSet := pflag.NewFlagSet("printradar", pflag.ContinueOnError)

	configPath := flagSet.String("config", "/etc/printradar/printradar.yaml", "Path to config file")
	once := flagSet.Bool("once", false, "Run a single collection pass and exit")
	debug := flagSet.Bool("debug", false, "Enable debug logging")
	showVersion := flagSet.Bool("version", false, "Print version and exit")

	if err := flagSet.Parse(args); err != nil {
		return err
	}

	if *showVersion {
		fmt.Println(version.GetFullVersion())

		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg poller.Config

	if err := config.NewConfig(nil).LoadAndValidate(ctx, *configPath, &cfg); err != nil {
		return fmt.Errorf("%w: %w", errFailedToLoadConfig, err)
	}

	if *debug {
		cfg.Logging.Debug = true
	}

	if err := logger.InitWithContext(ctx, &cfg.Logging); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = logger.ShutdownOTel(flushCtx)
	}()

	mainLogger := logger.Wrap(logger.GetLogger())

	mainLogger.Info().
		Str("version", version.GetFullVersion()).
		Str("storage_mode", string(cfg.Storage.Mode)).
		Int("devices", len(cfg.Devices)).
		Msg("Starting printradar")

	store, err := factory.New(ctx, &cfg.Storage, mainLogger.WithComponent("storage"))
	if err != nil {
		return err
	}

	defer func() {
		if err := store.Close(); err != nil {
			mainLogger.Warn().Err(err).Msg("Failed to close storage")
		}
	}()

	transport, err := snmp.NewGoSNMPTransport(cfg.SNMP.Transport())
	if err != nil {
		return err
	}

	querier := snmp.NewClient(transport, cfg.SNMP.Timeout.Std(), mainLogger.WithComponent("snmp"))

	p, err := poller.New(&cfg, store, querier, poller.SystemClock(), mainLogger.WithComponent("poller"))
	if err != nil {
		return err
	}

	if *once {
		summary, err := p.RunOnce(ctx)
		if err != nil {
			return err
		}

		if summary.Failed > 0 {
			mainLogger.Warn().Int("failed", summary.Failed).Msg("Some devices could not be polled")
		}

		return nil
	}

	errCh := make(chan error, 1)

	go func() {
		errCh <- p.Start(ctx)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	case <-ctx.Done():
		mainLogger.Info().Msg("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return p.Stop(shutdownCtx)
}
