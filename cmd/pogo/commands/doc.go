// Package commands defines the pogo CLI and wires dependencies for subcommands.
//
// Commands
//
//   - login      Store a provider access token (and optionally a signer key)
//   - profile    Open a session and print the player profile
//   - inventory  Open a session and list the inventory
//   - status     Show the stored login and the last session summary
//
// # Implementation
//
// The root command loads the TOML config, initialises the logger and builds
// the dependency graph (stores, identity service, transport, metrics) before
// any subcommand runs. Session commands bootstrap a fresh session per run.
package commands
