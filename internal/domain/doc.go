// Package domain defines core data models, contracts and classified errors shared
// across the session engine. It contains plain types (wire/state) and interfaces
// only; behaviour lives in the protocol, transport and services packages.
package domain
