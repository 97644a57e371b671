// Package aggregator provides the product aggregation bounded context module.
// This file defines the module that wires the provider adapters to the aggregator.
package aggregator

import (
	"net/http"

	"halal_scanner_backend/internal/aggregator/client"
	"halal_scanner_backend/internal/aggregator/service"
	"halal_scanner_backend/platform/logger"
)

// Module is the aggregation bounded context module. It has no routes of its
// own; the lookup module drives it.
type Module struct {
	aggregator *service.Aggregator
}

// NewModule creates the provider client and the aggregator. A nil transport
// uses http.DefaultTransport.
func NewModule(log *logger.Logger, rt http.RoundTripper) *Module {
	var opts []client.Option
	if rt != nil {
		opts = append(opts, client.WithTransport(rt))
	}

	providers := client.New(log, opts...)
	log.Info("aggregator module initialized", "call_timeout", client.CallTimeout.String())

	return &Module{aggregator: service.New(providers, log)}
}

// Aggregator returns the aggregator for use by other modules.
func (m *Module) Aggregator() *service.Aggregator {
	return m.aggregator
}
