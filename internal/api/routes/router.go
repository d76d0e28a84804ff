package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/zinklake/shuttle/internal/api/handlers"
	"github.com/zinklake/shuttle/internal/api/middleware"
	"github.com/zinklake/shuttle/internal/infrastructure/observability"
)

// HealthCheck reports whether a backing service is reachable.
type HealthCheck func(ctx context.Context) error

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	faqHandler     *handlers.FaqHandler
	rideHandler    *handlers.RideHandler
	bookingHandler *handlers.BookingHandler
	contactHandler *handlers.ContactHandler
	sseHandler     *handlers.SSEHandler

	cacheMiddleware *middleware.CacheMiddleware
	allowedOrigins  []string
	healthChecks    map[string]HealthCheck
	metrics         *observability.Metrics
}

// Options carries the optional parts of the router. Nil handlers leave
// their routes unregistered.
type Options struct {
	SSEHandler      *handlers.SSEHandler
	CacheMiddleware *middleware.CacheMiddleware
	AllowedOrigins  []string
	HealthChecks    map[string]HealthCheck
	Metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	faqHandler *handlers.FaqHandler,
	rideHandler *handlers.RideHandler,
	bookingHandler *handlers.BookingHandler,
	contactHandler *handlers.ContactHandler,
	opts Options,
) *Router {
	return &Router{
		mux:             http.NewServeMux(),
		faqHandler:      faqHandler,
		rideHandler:     rideHandler,
		bookingHandler:  bookingHandler,
		contactHandler:  contactHandler,
		sseHandler:      opts.SSEHandler,
		cacheMiddleware: opts.CacheMiddleware,
		allowedOrigins:  opts.AllowedOrigins,
		healthChecks:    opts.HealthChecks,
		metrics:         opts.Metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	r.mux.HandleFunc("GET /health", r.health)

	// FAQ endpoints
	r.mux.HandleFunc("GET /api/faqs", r.faqHandler.SearchFaqs)
	r.mux.HandleFunc("GET /api/faqs/categories", r.faqHandler.ListCategories)
	r.mux.HandleFunc("GET /api/faqs/{id}", r.faqHandler.GetFaq)

	// Ride tracker endpoints
	r.mux.HandleFunc("GET /api/rides/track", r.rideHandler.TrackRides)
	r.mux.HandleFunc("GET /api/rides/{id}/progress", r.rideHandler.GetProgress)
	r.mux.HandleFunc("PUT /api/rides/{id}/status", r.rideHandler.UpdateStatus)

	// Booking endpoints
	r.mux.HandleFunc("POST /api/bookings", r.bookingHandler.CreateBooking)

	// Contact endpoints
	r.mux.HandleFunc("POST /api/contact", r.contactHandler.SubmitContact)
	r.mux.HandleFunc("GET /api/contact/info", r.contactHandler.GetContactInfo)

	if r.sseHandler != nil {
		r.mux.HandleFunc("GET /api/stream/rides", r.sseHandler.StreamAllRides)
		r.mux.HandleFunc("GET /api/stream/rides/{id}", r.sseHandler.StreamRideUpdates)
	}

	// Last applied wraps outermost.
	var handler http.Handler = r.mux
	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.ResponseOptimization(handler)

	// CORS wraps everything so headers are set even on cache HITs
	handler = middleware.CORS(r.allowedOrigins)(handler)

	return handler
}

func (r *Router) health(w http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	body := map[string]string{"status": "ok"}
	for name, check := range r.healthChecks {
		if err := check(ctx); err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("dependency", name).Msg("health check failed")
			body[name] = "unavailable"
			body["status"] = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		body[name] = "ok"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
