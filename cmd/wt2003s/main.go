// Command wt2003s controls a WT2003S MP3 module over a serial port.
//
// Usage:
//
//	wt2003s [-config file] [-port dev] [-baud n] <command> [args]
//
// Run "wt2003s help" for the list of commands.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/moffa90/go-wt2003s/internal/config"
	"github.com/moffa90/go-wt2003s/internal/logging"
	"github.com/moffa90/go-wt2003s/internal/metrics"
	"github.com/moffa90/go-wt2003s/player"
)

var (
	configFile = flag.String("config", "", "Config file (default: ./wt2003s.yaml if present)")
	port       = flag.String("port", "", "Serial port, overrides serial.port")
	baud       = flag.Int("baud", 0, "Baud rate, overrides serial.baudRate")
	debug      = flag.Bool("debug", false, "Enable debug logging")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <command> [args]\n\nflags:\n", os.Args[0])
		flag.PrintDefaults()
		printUsage(flag.CommandLine.Output())
	}
	flag.Parse()

	if err := run(flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "wt2003s: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 || args[0] == "help" {
		flag.Usage()
		return nil
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		return err
	}
	if *port != "" {
		cfg.Serial.Port = *port
	}
	if *baud != 0 {
		cfg.Serial.BaudRate = *baud
	}
	if *debug {
		cfg.Logging.Level = "debug"
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	reg := metrics.NewRegistry()
	p := player.New(nil, playerOptions(cfg, logger, metrics.NewPlayerMetrics(reg))...)
	defer func() {
		if err := p.Close(); err != nil {
			logger.Warn("close transport", zap.Error(err))
		}
	}()

	tc := cfg.Transport()
	a := &app{
		player:  p,
		cfg:     cfg,
		out:     os.Stdout,
		connect: func() error { return p.InitTransport(tc) },
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if args[0] != "shell" {
		return a.execute(ctx, args)
	}

	if len(args) != 1 {
		return errors.New("usage: shell")
	}
	if cfg.Metrics.Enable {
		srv := serveMetrics(cfg.Metrics, reg, logger)
		defer shutdown(srv, logger)
	}
	return a.shell(ctx, os.Stdin)
}

// playerOptions maps the player section of cfg onto player options.
func playerOptions(cfg *config.Config, logger *zap.Logger, rec player.Recorder) []player.Option {
	return []player.Option{
		player.WithLogger(logging.NewAdapter(logger)),
		player.WithRecorder(rec),
		player.WithSettleDelay(cfg.Player.SettleDelay),
		player.WithStrictParams(cfg.Player.StrictParams),
	}
}

// serveMetrics starts the Prometheus endpoint in the background.
func serveMetrics(cfg config.MetricsConfig, reg *prometheus.Registry, logger *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(cfg.Path, metrics.Handler(reg))

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("metrics listening", zap.String("addr", cfg.Addr), zap.String("path", cfg.Path))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", zap.Error(err))
		}
	}()
	return srv
}

func shutdown(srv *http.Server, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("metrics server shutdown", zap.Error(err))
	}
}
