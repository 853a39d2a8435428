package server

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
	"github.com/vaultswap/ledger/errors"
)

const (
	// FlagBind is the address the ABCI server listens on.
	FlagBind = "bind"
	// FlagDebug enables call stacks in returned errors.
	FlagDebug = "debug"
	// FlagMetrics is the address prometheus metrics are exposed on. Empty
	// disables the metrics endpoint.
	FlagMetrics = "metrics"
)

// AppGenerator lets us lazily initialize app, using home dir
// and logger potentially initialized with other flags.
type AppGenerator func(home string, logger log.Logger, debug bool, reg prometheus.Registerer) (abci.Application, error)

// StartCmd returns a command that initializes the application and serves it
// over an ABCI socket until the process is interrupted.
func StartCmd(gen AppGenerator, ctx *Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Run the ABCI application server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return start(gen, ctx.Logger,
				viper.GetString(FlagHome),
				viper.GetString(FlagBind),
				viper.GetString(FlagMetrics),
				viper.GetBool(FlagDebug))
		},
	}
	cmd.Flags().String(FlagBind, "tcp://localhost:26658", "address server listens on")
	cmd.Flags().String(FlagMetrics, "", "address prometheus metrics are served on, for example :9090")
	cmd.Flags().Bool(FlagDebug, false, "call stack returned on error")
	for _, name := range []string{FlagBind, FlagMetrics, FlagDebug} {
		if err := viper.BindPFlag(name, cmd.Flags().Lookup(name)); err != nil {
			panic(err)
		}
	}
	return cmd
}

func start(gen AppGenerator, logger log.Logger, home, addr, metricsAddr string, debug bool) error {
	var reg prometheus.Registerer
	var metrics *http.Server
	if metricsAddr != "" {
		registry := prometheus.NewRegistry()
		reg = registry
		metrics = &http.Server{
			Addr:    metricsAddr,
			Handler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		}
	}

	// Generate the app in the proper dir
	app, err := gen(home, logger, debug, reg)
	if err != nil {
		return err
	}

	logger.Info("Starting ABCI app", "bind", addr, "home", home)
	svr, err := server.NewServer(addr, "socket", app)
	if err != nil {
		return errors.Wrapf(errors.ErrNetwork, "create listener: %s", err)
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return errors.Wrapf(errors.ErrNetwork, "start server: %s", err)
	}

	if metrics != nil {
		logger.Info("Serving metrics", "addr", metricsAddr)
		go func() {
			if err := metrics.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("Metrics server failed", "err", err)
			}
		}()
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	s := <-sig
	logger.Info("Shutting down", "signal", s.String())

	if metrics != nil {
		_ = metrics.Close()
	}
	if err := svr.Stop(); err != nil {
		return errors.Wrapf(errors.ErrNetwork, "stop server: %s", err)
	}
	return nil
}
