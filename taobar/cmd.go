package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/taobar/taobar/config"
	"github.com/taobar/taobar/hook"
	"github.com/taobar/taobar/widget"
)

var (
	configPath  string
	verbose     bool
	metricsAddr string
)

var rootCmd = &cobra.Command{
	Use:   "taobar",
	Short: "A tiling window manager for X11 with a hook-driven status bar",
	Long: `taobar manages X11 windows in groups and tiling layouts, and draws a
status bar on every screen. Run it from your ~/.xsession.

Settings come from built-in defaults, overridden by the YAML file given with
--config (default ~/.config/taobar/config.yaml).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zc := zap.NewProductionConfig()
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l

		explicit := cmd.Flags().Changed("config")
		c, err := config.Load(configPath, explicit)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = c
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: runWM,
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the configuration and build the bar widgets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := cfg.Widgets(logger)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "groups: %d, bar height: %d\n", len(cfg.Groups), cfg.Bar.Height)
		for _, w := range ws {
			fmt.Fprintf(out, "widget: %s\n", w.Name())
		}
		fmt.Fprintln(out, "config is valid")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "YAML file overriding the built-in settings")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")
	rootCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address, e.g. localhost:9100")
	rootCmd.AddCommand(checkCmd, previewCmd)

	checkCmd.Long = "Loads the configuration, reports errors, and lists the widgets it would build.\nKnown widget types: " + fmt.Sprint(widget.Kinds())
}

func runWM(cmd *cobra.Command, _ []string) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	bus = hook.NewBus(hook.WithRegisterer(reg))

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return run(gctx)
	})
	if metricsAddr != "" {
		g.Go(func() error {
			return serveMetrics(gctx, metricsAddr, reg)
		})
	}
	return g.Wait()
}

func serveMetrics(ctx context.Context, addr string, reg *prometheus.Registry) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()
	logger.Info("serving metrics", zap.String("addr", addr))
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
