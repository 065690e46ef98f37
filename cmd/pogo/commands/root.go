package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"pogo/internal/app"
	"pogo/internal/config"
	"pogo/internal/domain"
	"pogo/internal/observability"
)

var (
	configPath string
	home       string
	passphrase string
	logLevel   string
	insecure   bool
	latitude   float64
	longitude  float64

	wire   *app.Wire
	logger zerolog.Logger
)

func Execute() error {
	root := &cobra.Command{
		Use:          "pogo",
		Short:        "Session client for the pogo RPC service",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger = observability.InitLogger("pogo", rt.LogLevel)

			wire, err = app.NewWire(app.Config{Runtime: rt, Logger: logger})
			if err != nil {
				return err
			}
			if rt.MetricsAddr != "" {
				serveMetrics(rt.MetricsAddr)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default <home>/pogo.toml)")
	root.PersistentFlags().StringVar(&home, "home", "", "state dir (default ~/.pogo)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase protecting the stored login")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&insecure, "insecure", false, "skip TLS certificate verification")
	root.PersistentFlags().Float64Var(&latitude, "lat", 0, "latitude to report (overrides config)")
	root.PersistentFlags().Float64Var(&longitude, "lng", 0, "longitude to report (overrides config)")

	root.AddCommand(loginCmd(), profileCmd(), inventoryCmd(), statusCmd())
	return root.Execute()
}

// loadConfig resolves the file config and applies flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path := configPath
	optional := path == ""
	if optional {
		dir := home
		if dir == "" {
			dir = config.Default().Home
		}
		path = filepath.Join(dir, "pogo.toml")
	}
	rt, err := config.Load(path, optional)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if home != "" {
		rt.Home = home
	}
	if logLevel != "" {
		rt.LogLevel = logLevel
	}
	if flags.Changed("insecure") {
		rt.InsecureSkipVerify = insecure
	}
	if flags.Changed("lat") || flags.Changed("lng") {
		c := domain.Coordinates{Latitude: latitude, Longitude: longitude}
		if rt.Location != nil {
			c.Altitude = rt.Location.Altitude
		}
		rt.Location = &c
	}
	return rt, config.Validate(rt)
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", observability.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Str("addr", addr).Msg("metrics listener stopped")
		}
	}()
	logger.Info().Str("addr", addr).Msg("serving metrics")
}

// commandContext is cancelled on interrupt.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt)
}

func requirePassphrase() error {
	if passphrase == "" {
		return fmt.Errorf("passphrase required (-p)")
	}
	return nil
}
