package network

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultProbeTimeout = 3 * time.Second

// HTTPProbe checks reachability of a known URL to decide whether the device
// is online. The transport class cannot be detected portably from userspace,
// so it is supplied by the host (configuration or environment); when empty,
// an online device is assumed to be on WiFi.
type HTTPProbe struct {
	client    *resty.Client
	probeURL  string
	transport Transport
}

// NewHTTPProbe creates a probe against probeURL. transport overrides the
// reported class when non-empty.
func NewHTTPProbe(probeURL string, transport Transport) *HTTPProbe {
	return &HTTPProbe{
		client:    resty.New().SetTimeout(defaultProbeTimeout),
		probeURL:  probeURL,
		transport: transport,
	}
}

func (p *HTTPProbe) Status(ctx context.Context) (Status, error) {
	if p.transport == TransportNone {
		return Status{Online: false, Transport: TransportNone}, nil
	}

	res, err := p.client.R().SetContext(ctx).Head(p.probeURL)
	if err != nil || res.StatusCode() >= 500 {
		slog.Default().Debug("network probe failed, reporting offline",
			slog.String("probeURL", p.probeURL),
			slog.Any("error", err),
		)
		return Status{Online: false, Transport: TransportNone}, nil
	}

	transport := p.transport
	if transport == "" {
		transport = TransportWiFi
	}
	return Status{Online: true, Transport: transport}, nil
}

var _ Probe = (*HTTPProbe)(nil)
