package app

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"pogo/internal/config"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Runtime config.Config // resolved file config; Runtime.Home is the state dir
	HTTP    *http.Client  // optional; replaces the client built from Runtime
	Logger  zerolog.Logger
	// Registerer receives the dispatcher metrics. Nil means the default registry.
	Registerer prometheus.Registerer
}
