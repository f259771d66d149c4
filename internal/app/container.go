package app

import (
	"context"
	"time"

	"github.com/dlwhyte/agentfoundry/internal/application/crew"
	"github.com/dlwhyte/agentfoundry/internal/application/doctor"
	"github.com/dlwhyte/agentfoundry/internal/application/impact"
	"github.com/dlwhyte/agentfoundry/internal/application/pricing"
	"github.com/dlwhyte/agentfoundry/internal/application/security"
	"github.com/dlwhyte/agentfoundry/internal/domain"
	"github.com/dlwhyte/agentfoundry/internal/infrastructure/ai"
	"github.com/dlwhyte/agentfoundry/internal/infrastructure/cache"
	"github.com/dlwhyte/agentfoundry/internal/infrastructure/config"
	"github.com/dlwhyte/agentfoundry/internal/infrastructure/guardrail"
	"github.com/dlwhyte/agentfoundry/internal/infrastructure/history"
	"github.com/dlwhyte/agentfoundry/internal/infrastructure/mcp"
	"github.com/dlwhyte/agentfoundry/internal/infrastructure/scenario"
	"github.com/dlwhyte/agentfoundry/internal/pkg/logger"
	"github.com/dlwhyte/agentfoundry/internal/ports"
)

// Container wires up application services with infrastructure adapters.
type Container struct {
	SecurityService *security.Service
	CrewService     *crew.Service
	PricingService  *pricing.Service
	ImpactService   *impact.Service
	DoctorService   *doctor.Service
	MCPCatalog      ports.MCPCatalog
	ConfigProvider  ports.ConfigProvider
	ConfigLoader    *config.FileLoader
	SessionStore    ports.SessionRepository
	CacheStore      ports.CacheRepository
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.NewStd(verbose)

	classifier, err := guardrail.NewClassifier(cfg.Security.RulesFile)
	if err != nil {
		// A broken rules file falls back to the embedded defaults.
		log.Warn("rules file rejected, using embedded defaults", map[string]interface{}{"error": err.Error()})
		classifier, err = guardrail.NewClassifierFromDefaults()
		if err != nil {
			return nil, err
		}
	}

	sessionStore := history.NewSQLiteStore()
	if err := sessionStore.PruneOlderThan(cfg.GetHistoryRetentionDays()); err != nil {
		log.Warn("history prune failed", map[string]interface{}{"error": err.Error()})
	}

	ttl, err := time.ParseDuration(cfg.Cache.TTL)
	if err != nil {
		ttl = domain.DefaultCacheTTL
	}
	cacheStore := cache.NewFileCache(ttl, cfg.GetCacheMaxEntries())

	factory := ai.NewFactoryWithTimeout(cfg.GetTimeoutSeconds())
	pricingService := pricing.NewService(cfg.Pricing)

	securityService := &security.Service{
		ConfigProvider:  cfgLoader,
		Guardrails:      classifier,
		ProviderFactory: factory,
		Simulator:       ai.NewVulnerableSimulator(),
		Catalog:         scenario.NewCatalog(),
		Sessions:        sessionStore,
		Cache:           cacheStore,
		Logger:          log,
	}

	crewService := &crew.Service{
		ConfigProvider:  cfgLoader,
		ProviderFactory: factory,
		Pricing:         pricingService,
		Logger:          log,
	}

	doctorService := &doctor.Service{
		ConfigProvider: cfgLoader,
		Guardrails:     classifier,
		Sessions:       sessionStore,
		Cache:          cacheStore,
	}

	return &Container{
		SecurityService: securityService,
		CrewService:     crewService,
		PricingService:  pricingService,
		ImpactService:   impact.NewService(),
		DoctorService:   doctorService,
		MCPCatalog:      mcp.NewCatalog(),
		ConfigProvider:  cfgLoader,
		ConfigLoader:    cfgLoader,
		SessionStore:    sessionStore,
		CacheStore:      cacheStore,
	}, nil
}
