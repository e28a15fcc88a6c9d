// Package network reports the device's current connectivity class, used to
// gate background prefetching to WiFi.
package network

import "context"

// Transport is a coarse connectivity class.
type Transport string

const (
	TransportNone     Transport = "none"
	TransportCellular Transport = "cellular"
	TransportWiFi     Transport = "wifi"
)

// Status describes current connectivity.
type Status struct {
	Online    bool
	Transport Transport
}

// Probe reports the current connectivity status.
type Probe interface {
	Status(ctx context.Context) (Status, error)
}

// StaticProbe always reports a fixed status. Used in tests and to force a
// transport class from configuration.
type StaticProbe struct {
	Fixed Status
}

func (p StaticProbe) Status(ctx context.Context) (Status, error) {
	return p.Fixed, nil
}

var _ Probe = StaticProbe{}
