package main

import (
	"crypto/tls"
	"encoding/hex"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"pogo/internal/observability"
	"pogo/internal/rpcstub"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		addr      string
		apiHost   string
		warmup    int
		signerKey string
		mode      string
		logLevel  string
	)
	cmd := &cobra.Command{
		Use:          "rpcstub",
		Short:        "Serve a stub of the RPC service for local testing",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := observability.InitLogger("rpcstub", logLevel)

			cfg := rpcstub.DefaultConfig()
			cfg.APIHost = apiHost
			cfg.WarmupRedirects = warmup
			if signerKey != "" {
				key, err := hex.DecodeString(signerKey)
				if err != nil {
					return fmt.Errorf("signer key: %w", err)
				}
				cfg.SignerKey = key
			}
			m, err := parseMode(mode)
			if err != nil {
				return err
			}

			host, _, err := net.SplitHostPort(addr)
			if err != nil {
				return fmt.Errorf("addr: %w", err)
			}
			if host == "" {
				host = "localhost"
			}
			cert, err := rpcstub.SelfSignedCertificate(host, "localhost", "127.0.0.1")
			if err != nil {
				return err
			}

			stub := rpcstub.New(cfg, logger)
			stub.SetMode(m)
			srv := &http.Server{
				Addr:              addr,
				Handler:           stub.Handler(),
				TLSConfig:         &tls.Config{Certificates: []tls.Certificate{cert}, MinVersion: tls.VersionTLS12},
				ReadHeaderTimeout: 5 * time.Second,
			}
			logger.Info().Str("addr", addr).Str("mode", mode).Int("warmup", warmup).Msg("rpcstub listening")
			if err := srv.ListenAndServeTLS("", ""); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8443", "listen address")
	cmd.Flags().StringVar(&apiHost, "api-host", "", "api_url returned on redirect (default: request Host)")
	cmd.Flags().IntVar(&warmup, "warmup", 0, "redirects each new ticket gets before real answers")
	cmd.Flags().StringVar(&signerKey, "signer-key", "", "hex signer key; enables signature checks")
	cmd.Flags().StringVar(&mode, "mode", "normal", "forced answer: normal, ban or rate-limit")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level")
	return cmd
}

func parseMode(raw string) (rpcstub.Mode, error) {
	switch raw {
	case "", "normal":
		return rpcstub.ModeNormal, nil
	case "ban":
		return rpcstub.ModeBan, nil
	case "rate-limit", "ratelimit":
		return rpcstub.ModeRateLimit, nil
	default:
		return rpcstub.ModeNormal, fmt.Errorf("unknown mode %q", raw)
	}
}
