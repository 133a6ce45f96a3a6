package model

import "time"

// DefaultTickInterval is the refresh cadence of a local countdown.
const DefaultTickInterval = time.Second

// CountdownConfig contains runtime settings for the countdown TimeKeeper.
type CountdownConfig struct {
	// RemoteEnabled toggles the lookup attempt before local computation.
	RemoteEnabled bool
	// Endpoint is the remote base address, e.g. https://digidates.de/api/v1/countdown.
	Endpoint string
	// ChimeOnExpiry plays a short tone when a countdown reaches zero.
	ChimeOnExpiry bool
}
