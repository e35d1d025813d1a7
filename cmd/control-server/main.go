package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/signalsfoundry/eventkernel/core"
	"github.com/signalsfoundry/eventkernel/internal/control"
	"github.com/signalsfoundry/eventkernel/internal/logging"
	"github.com/signalsfoundry/eventkernel/models"
	"github.com/signalsfoundry/eventkernel/telemetry"
)

func main() {
	listenAddr := flag.String("listen-address", envOrDefault("EVENTKERNEL_LISTEN_ADDRESS", "0.0.0.0:50061"), "TCP address the control gRPC server listens on")
	metricsAddr := flag.String("metrics-address", envOrDefault("EVENTKERNEL_METRICS_ADDRESS", ":9091"), "HTTP address for Prometheus /metrics (empty to disable)")
	logLevel := flag.String("log-level", envOrDefault("LOG_LEVEL", "info"), "log level: debug, info, warn, error")
	logFormat := flag.String("log-format", envOrDefault("LOG_FORMAT", "text"), "log format: text or json")
	flag.Parse()

	log := logging.New(logging.Config{Level: *logLevel, Format: *logFormat, AddSource: true})
	instanceID := uuid.New().String()
	log = log.With(logging.String("instance_id", instanceID))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *listenAddr, *metricsAddr, log); err != nil {
		log.Error(context.Background(), "control-server exited with error", logging.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, listenAddr, metricsAddr string, log logging.Logger) error {
	traceShutdown := func(context.Context) error { return nil }
	if shutdown, err := telemetry.InitTracing(ctx, telemetry.TracingConfigFromEnv(), log); err != nil {
		log.Warn(ctx, "failed to initialise tracing", logging.String("error", err.Error()))
	} else {
		traceShutdown = shutdown
	}
	defer telemetry.ShutdownWithTimeout(context.Background(), traceShutdown, log)

	collector, err := telemetry.NewCollector(nil)
	if err != nil {
		return fmt.Errorf("init metrics collector: %w", err)
	}

	var metricsSrv *http.Server
	if metricsAddr != "" {
		metricsSrv = serveMetrics(metricsAddr, collector, log)
	}

	sim, err := buildSimulation()
	if err != nil {
		return fmt.Errorf("build simulation: %w", err)
	}

	srv := control.NewServer(sim, log)

	lis, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", listenAddr, err)
	}

	log.Info(ctx, "starting control gRPC server", logging.String("addr", lis.Addr().String()))
	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.GRPCServer().Serve(lis) }()

	tickCtx, tickCancel := context.WithCancel(ctx)
	defer tickCancel()
	go driveSimulation(tickCtx, sim, collector, log)

	select {
	case err := <-serveErr:
		if err != nil {
			log.Error(ctx, "gRPC server stopped with error", logging.String("error", err.Error()))
		}
	case <-ctx.Done():
		log.Info(ctx, "shutdown requested", logging.String("reason", ctx.Err().Error()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv.Shutdown(shutdownCtx)

	if metricsSrv != nil {
		_ = metricsSrv.Shutdown(shutdownCtx)
	}

	return nil
}

// buildSimulation wires the same ping-pong sample used by cmd/simulate,
// giving the health-checkable server a running kernel instance to track.
func buildSimulation() (*core.Simulation, error) {
	p1 := models.NewPlayer(core.SecondsDelta(0.5))
	p2 := models.NewPlayer(core.SecondsDelta(0.5))

	sys := core.NewSystemModel()
	sys.PushModel("p1", p1)
	sys.PushModel("p2", p2)
	sys.PushRoute(core.ConnectorPath{Model: "p1", Connector: "send"}, core.ConnectorPath{Model: "p2", Connector: "receive"})
	sys.PushRoute(core.ConnectorPath{Model: "p2", Connector: "send"}, core.ConnectorPath{Model: "p1", Connector: "receive"})

	start := core.Seconds(0)
	sim, err := core.New(sys, start, nil)
	if err != nil {
		return nil, err
	}
	if err := core.ScheduleExternalEvent(sim, start, models.Signal{}, core.ConnectorPath{Model: "p1", Connector: "receive"}); err != nil {
		return nil, err
	}
	sim.SetDispatchObserver(telemetry.NewDispatchTracer())
	return sim, nil
}

func driveSimulation(ctx context.Context, sim *core.Simulation, collector *telemetry.Collector, log logging.Logger) {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := telemetry.InstrumentedStep(sim, collector); err != nil {
				log.Warn(ctx, "simulation step failed", logging.String("error", err.Error()))
				return
			}
		}
	}
}

func serveMetrics(addr string, c *telemetry.Collector, log logging.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn(context.Background(), "metrics server stopped", logging.String("error", err.Error()))
		}
	}()
	return srv
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
