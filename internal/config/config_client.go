package config

import "time"

// ClientAdapter holds network settings used by the CLI client transport
// layer.
type ClientAdapter struct {
	// HTTPAddress is the lockbox server endpoint the client talks to.
	HTTPAddress string

	// RequestTimeout bounds every request the client makes.
	RequestTimeout time.Duration
}
