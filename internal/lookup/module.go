// Package lookup provides the lookup bounded context module: product
// resolution, verdict and evidence behind GET /api/v1/lookup/*key.
package lookup

import (
	"fmt"

	apphttp "halal_scanner_backend/internal/http"
	"halal_scanner_backend/internal/lookup/handler"
	"halal_scanner_backend/internal/lookup/service"
	"halal_scanner_backend/platform/config"
	"halal_scanner_backend/platform/logger"
	"halal_scanner_backend/platform/validator"
)

// Module is the lookup bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	cache   service.Cache
}

// NewModule creates and initializes the lookup module.
func NewModule(agg service.Aggregator, val *validator.Validator, cfg config.LookupConfig, log *logger.Logger) (*Module, error) {
	cache, err := service.NewCache(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("lookup cache: %w", err)
	}

	svc := service.New(agg, cache, log)
	h := handler.New(svc, val, cfg.GetLookupTimeout())

	log.Info("lookup module initialized", "cache_backend", cfg.GetCacheBackend(), "lookup_timeout", cfg.GetLookupTimeout().String())

	return &Module{
		handler: h,
		service: svc,
		cache:   cache,
	}, nil
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "lookup"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Close releases the cache backend, if it holds connections.
func (m *Module) Close() error {
	if closer, ok := m.cache.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

// RegisterRoutes mounts lookup routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/lookup/*key", m.handler.Lookup)
	ctx.V1.POST("/classify", m.handler.Classify)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
