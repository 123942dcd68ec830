// nvpd serves the network-virtualization control plane: it maps tenant
// logical networks onto logical switches on an NVP controller and
// exposes network/port operations over a JSON HTTP API.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/strataplane/nvpd/pkg/api"
	"github.com/strataplane/nvpd/pkg/config"
	"github.com/strataplane/nvpd/pkg/driver"
	"github.com/strataplane/nvpd/pkg/metrics"
	"github.com/strataplane/nvpd/pkg/nvp"
)

var version = "dev"

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "nvpd",
		Short:        "NVP network-virtualization control-plane daemon",
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), configPath)
		},
	}

	bindFlags(root.PersistentFlags(), &configPath)
	return root
}

func bindFlags(fs *pflag.FlagSet, configPath *string) {
	defaultPath := "/etc/nvpd/config.yaml"
	if v := os.Getenv("NVPD_CONFIG"); v != "" {
		defaultPath = v
	}
	fs.StringVarP(configPath, "config", "c", defaultPath, "path to the nvpd config file")
}

func run(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Sugar()

	log.Infow("starting nvpd",
		"version", version,
		"controller", cfg.Controller.URL,
		"max_ports_per_switch", cfg.Network.MaxPortsPerSwitch,
	)

	client, err := nvp.NewClient(nvp.Config{
		URL:                cfg.Controller.URL,
		Username:           cfg.Controller.Username,
		Password:           cfg.Controller.Password,
		InsecureSkipVerify: cfg.Controller.InsecureSkipVerify,
		Timeout:            time.Duration(cfg.Controller.Timeout),
	})
	if err != nil {
		return err
	}

	metrics.Register(prometheus.DefaultRegisterer)

	drv := driver.New(driver.Options{
		Controller:        client,
		MaxPortsPerSwitch: cfg.Network.MaxPortsPerSwitch,
		TenantID:          cfg.Network.TenantID,
		Logger:            log,
	})

	router := api.NewServer(drv, log).Router()
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	server := &http.Server{
		Addr:    cfg.Server.ListenAddr,
		Handler: router,
	}

	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		log.Infow("api listening", "addr", cfg.Server.ListenAddr)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	return server.Shutdown(shutdownCtx)
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}
