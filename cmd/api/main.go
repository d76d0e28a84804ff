package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/zinklake/shuttle/internal/adapters/cache"
	"github.com/zinklake/shuttle/internal/adapters/catalog"
	"github.com/zinklake/shuttle/internal/adapters/events"
	"github.com/zinklake/shuttle/internal/adapters/memory"
	"github.com/zinklake/shuttle/internal/api/handlers"
	"github.com/zinklake/shuttle/internal/api/middleware"
	"github.com/zinklake/shuttle/internal/api/routes"
	"github.com/zinklake/shuttle/internal/application/services"
	"github.com/zinklake/shuttle/internal/domain/entities"
	"github.com/zinklake/shuttle/internal/domain/providers"
	"github.com/zinklake/shuttle/internal/domain/ride"
	"github.com/zinklake/shuttle/internal/infrastructure/clients/redis"
	"github.com/zinklake/shuttle/internal/infrastructure/observability"
	"github.com/zinklake/shuttle/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Log.Env, cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	faqs, err := catalog.LoadFaqs(cfg.Catalog.FaqPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load faq catalog")
	}
	seedRides, err := catalog.LoadRides(cfg.Catalog.RidesPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load ride feed")
	}
	log.Info().Int("faqs", len(faqs)).Int("rides", len(seedRides)).Msg("catalog loaded")

	policy, err := ride.ParseCancelledPolicy(cfg.Tracker.CancelledPolicy)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid tracker configuration")
	}

	// Redis backs the response cache, contact limits and ride events. Without
	// it everything falls back to process memory.
	var (
		cacheProvider providers.CacheProvider
		eventBus      providers.EventBus
		healthChecks  = map[string]routes.HealthCheck{}
	)
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(ctx, &cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize Redis client")
		}
		defer redisClient.Close()

		cacheProvider = cache.NewRedisAdapter(redisClient)
		bus := events.NewRedisEventBus(redisClient)
		defer bus.Close()
		eventBus = bus
		healthChecks["redis"] = redisClient.Ping
		log.Info().Str("addr", cfg.Redis.RedisAddr()).Msg("Redis connected")
	} else {
		cacheProvider = cache.NewMemoryAdapter()
		log.Warn().Msg("Redis disabled; using in-process cache without ride events")
	}

	faqRepo := catalog.NewFaqAdapter(faqs)
	rideRepo := memory.NewRideAdapter(seedRides)
	contactRepo := memory.NewContactAdapter(0)

	// Writers clear cached ride responses themselves; the event subscription
	// covers status changes made by other API instances.
	invalidation := services.NewCacheInvalidationService(cacheProvider, eventBus)
	if eventBus != nil {
		if err := invalidation.Start(); err != nil {
			log.Warn().Err(err).Msg("cross-instance cache invalidation disabled")
		} else {
			defer invalidation.Stop()
		}
	}

	faqService := services.NewFaqService(faqRepo, metrics)
	rideService := services.NewRideService(rideRepo, eventBus, services.RideServiceOptions{
		CancelledPolicy: policy,
		FeedLatency:     cfg.Tracker.FeedLatency,
		Invalidator:     invalidation,
		Metrics:         metrics,
	})
	bookingService := services.NewBookingService(rideRepo, time.Local).
		WithEventBus(eventBus).
		WithCacheInvalidator(invalidation)
	contactService := services.NewContactService(contactRepo, entities.ContactInfo{
		Phone:   cfg.Contact.Phone,
		Email:   cfg.Contact.Email,
		Website: cfg.Contact.Website,
	}, cfg.Contact.SendDelay)

	trustedProxies, err := handlers.ParseTrustedProxies(cfg.Server.TrustedProxies)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid server configuration")
	}

	routerOpts := routes.Options{
		AllowedOrigins: middleware.ParseAllowedOrigins(cfg.Server.AllowedOrigins),
		HealthChecks:   healthChecks,
		Metrics:        metrics,
	}
	if cfg.Cache.Enabled {
		routerOpts.CacheMiddleware = middleware.NewCacheMiddleware(
			cacheProvider,
			middleware.DefaultRouteConfigs(cfg.Cache.FaqTTL, cfg.Cache.RideTTL),
			metrics,
		)
	}

	router := routes.NewRouter(
		handlers.NewFaqHandler(faqService),
		handlers.NewRideHandler(rideService),
		handlers.NewBookingHandler(bookingService),
		handlers.NewContactHandler(contactService, cacheProvider, handlers.ContactLimits{
			RateLimit:      cfg.Contact.RateLimit,
			RateWindow:     cfg.Contact.RateWindow,
			DedupWindow:    cfg.Contact.DedupWindow,
			TrustedProxies: trustedProxies,
		}),
		routerOpts,
	)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.SetupRoutes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("API server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("API server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("API server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	log.Info().Msg("API server stopped")
}
