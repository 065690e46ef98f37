// Package config loads the pogo TOML configuration.
//
// Keys that are absent from the file keep their defaults. Durations are Go
// duration strings ("250ms", "30s"). An absent [location] table means the
// session runs without a position and requests go out unsigned.
//
//	bootstrap_url        = "https://pgorelease.nianticlabs.com/plfe/rpc"
//	timeout              = "30s"
//	max_retries          = 3
//	insecure_skip_verify = false
//	user_agent           = "Niantic App"
//	home                 = "~/.pogo"
//	log_level            = "info"
//	metrics_addr         = ""
//
//	[backoff]
//	initial    = "250ms"
//	multiplier = 2.0
//	max        = "5s"
//	jitter     = true
//
//	[location]
//	latitude  = 40.7589
//	longitude = -73.9851
//	altitude  = 10.0
package config
