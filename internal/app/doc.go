// Package app wires application dependencies for the CLI.
//
// It builds the credential and snapshot stores, the identity service, the
// HTTPS transport and the metrics from Config, exposing them via the Wire
// struct. Wire also acts as the session factory so commands never assemble
// session options themselves.
package app
