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
	"time"

	"github.com/nats-io/nats.go"
	"github.com/shirou/gopsutil/v3/process"
	"github.com/spf13/pflag"

	"github.com/jacklcz/spacex-sdatamanager/pkg/chain"
	"github.com/jacklcz/spacex-sdatamanager/pkg/config"
	"github.com/jacklcz/spacex-sdatamanager/pkg/db"
	"github.com/jacklcz/spacex-sdatamanager/pkg/lifecycle"
	"github.com/jacklcz/spacex-sdatamanager/pkg/logger"
	"github.com/jacklcz/spacex-sdatamanager/pkg/models"
	"github.com/jacklcz/spacex-sdatamanager/pkg/natsutil"
	"github.com/jacklcz/spacex-sdatamanager/pkg/scheduler"
	"github.com/jacklcz/spacex-sdatamanager/pkg/storager"
	"github.com/jacklcz/spacex-sdatamanager/pkg/telemetry"
	"github.com/jacklcz/spacex-sdatamanager/pkg/version"
)

const defaultConfigPath = "/etc/sdatamanager/sdatamanager.json"

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	configPath := pflag.StringP("config", "c", defaultConfigPath, "Path to sdatamanager config file")
	once := pflag.Bool("once", false, "Run a single telemetry report and exit")
	showVersion := pflag.BoolP("version", "v", false, "Print version and exit")
	pflag.Parse()

	if *showVersion {
		fmt.Println(version.GetFullVersion())
		return nil
	}

	ctx, stop := lifecycle.SignalContext(context.Background())
	defer stop()

	startTime := processStartTime(ctx)

	bootLog, err := lifecycle.CreateComponentLogger(ctx, "sdatamanager", nil)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	cfg, err := config.LoadConfig(ctx, *configPath, bootLog)
	if err != nil {
		return err
	}

	appLog, err := lifecycle.CreateComponentLogger(ctx, "sdatamanager", cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	defer func() {
		if err := lifecycle.ShutdownLogger(); err != nil {
			appLog.Warn().Err(err).Msg("Failed to flush telemetry pipelines")
		}
	}()

	initMetrics(ctx, cfg, appLog)

	pool, err := db.NewPool(ctx, &cfg.Database, appLog)
	if err != nil {
		return err
	}
	defer pool.Close()

	workload, err := storager.NewFromConfig(cfg.Sworker, appLog)
	if err != nil {
		return err
	}

	identity, err := chain.NewIdentityFromConfig(cfg.Chain)
	if err != nil {
		return err
	}

	assembler, err := newAssembler(cfg, identity, telemetry.NewCollector(db.NewStore(pool), workload, appLog), startTime)
	if err != nil {
		return err
	}

	var opts []telemetry.TaskOption

	nc, mirror, err := connectMirror(ctx, cfg.Telemetry.NATS, appLog)
	if err != nil {
		return err
	}

	if nc != nil {
		defer func() {
			if err := nc.Drain(); err != nil {
				appLog.Warn().Err(err).Msg("Failed to drain NATS connection")
			}
		}()

		opts = append(opts, telemetry.WithMirror(mirror))
	}

	task, err := telemetry.NewReportTask(cfg, assembler, newSink(cfg.Telemetry), appLog, opts...)
	if err != nil {
		return err
	}

	runner := scheduler.NewRunner(appLog)
	if err := runner.Register(task.SchedulerTask()); err != nil {
		return err
	}

	if sc := cfg.Node.SealCoordinator; sc != nil {
		appLog.Info().
			Str("account", sc.Account).
			Str("endpoint", sc.EndPoint).
			Msg("seal coordinator configured")
	}

	appLog.Info().
		Str("version", version.GetFullVersion()).
		Str("role", string(cfg.Node.Role)).
		Bool("grouped", cfg.Node.Grouped()).
		Bool("seal_coordinator", cfg.Node.SealCoordinator != nil).
		Bool("once", *once).
		Msg("sdatamanager telemetry starting")

	if *once {
		return runner.RunOnce(ctx, telemetry.TaskName)
	}

	if err := runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	appLog.Info().Msg("sdatamanager telemetry stopped")

	return nil
}

// newAssembler feeds the node's group and seal-coordinator settings into
// every report.
func newAssembler(cfg *models.NormalizedConfig, identity chain.IdentityAccessor, collector *telemetry.Collector, startTime time.Time) (*telemetry.Assembler, error) {
	return telemetry.NewAssembler(telemetry.AppContext{
		Config:    cfg,
		Identity:  identity,
		Collector: collector,
		Version:   version.GetVersion,
		StartTime: startTime,
	}, telemetry.NodeOptions(cfg.Node)...)
}

// newSink returns nil without an endpoint so ticks skip with a warning.
func newSink(cfg models.TelemetryConfig) telemetry.Sink {
	sink, err := telemetry.NewHTTPSink(cfg.EndPoint)
	if err != nil {
		return nil
	}

	return sink
}

func connectMirror(ctx context.Context, cfg *models.NATSConfig, log logger.Logger) (*nats.Conn, telemetry.Sink, error) {
	if cfg == nil || cfg.URL == "" {
		return nil, nil, nil
	}

	nc, err := natsutil.Connect(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}

	publisher, err := natsutil.CreateEventPublisher(ctx, nc, cfg, log)
	if err != nil {
		nc.Close()
		return nil, nil, err
	}

	return nc, telemetry.NewNATSSink(publisher), nil
}

func initMetrics(ctx context.Context, cfg *models.NormalizedConfig, log logger.Logger) {
	if cfg.Metrics == nil || !cfg.Metrics.Enabled {
		return
	}

	_, err := logger.InitializeMetrics(ctx, metricsConfig(cfg))
	if err != nil {
		log.Warn().Err(err).Msg("OTel metrics exporter not started")
	}
}

func metricsConfig(cfg *models.NormalizedConfig) logger.MetricsConfig {
	attrs := map[string]string{
		"sdatamanager.chain_account": cfg.Chain.Account,
		"sdatamanager.node_role":     string(cfg.Node.Role),
	}

	if cfg.Node.Grouped() {
		attrs["sdatamanager.group_account"] = cfg.Node.Group.GroupAccount
	}

	return logger.MetricsConfig{
		ServiceName:    "sdatamanager",
		ServiceVersion: version.GetVersion(),
		Endpoint:       cfg.Metrics.Endpoint,
		Insecure:       cfg.Metrics.Insecure,
		Headers:        cfg.Metrics.Headers,
		ExportInterval: cfg.Metrics.ExportInterval.Std(),
		Attributes:     attrs,
	}
}

// processStartTime falls back to now when the process table is unreadable.
func processStartTime(ctx context.Context) time.Time {
	proc, err := process.NewProcessWithContext(ctx, int32(os.Getpid())) //nolint:gosec // pid fits in int32
	if err != nil {
		return time.Now()
	}

	created, err := proc.CreateTimeWithContext(ctx)
	if err != nil || created <= 0 {
		return time.Now()
	}

	return time.UnixMilli(created)
}
