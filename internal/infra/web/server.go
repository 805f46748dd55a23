package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/Shadolnow/gatescan-pass-6f6688ad/internal/config"
	red "github.com/Shadolnow/gatescan-pass-6f6688ad/internal/infra/redis"
	"github.com/Shadolnow/gatescan-pass-6f6688ad/internal/usecase"
)

type Server struct {
	validationUC *usecase.ValidationUseCase
	bookingUC    *usecase.BookingUseCase
	eventUC      *usecase.EventUseCase
	statsUC      *usecase.StatsUseCase
	auth         *AuthManager
	limiter      *red.RateLimiter
	scanCfg      config.ScanConfig
	log          *zerolog.Logger
}

func NewServer(
	validationUC *usecase.ValidationUseCase,
	bookingUC *usecase.BookingUseCase,
	eventUC *usecase.EventUseCase,
	statsUC *usecase.StatsUseCase,
	auth *AuthManager,
	limiter *red.RateLimiter,
	scanCfg config.ScanConfig,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		validationUC: validationUC,
		bookingUC:    bookingUC,
		eventUC:      eventUC,
		statsUC:      statsUC,
		auth:         auth,
		limiter:      limiter,
		scanCfg:      scanCfg,
		log:          logger,
	}
}

// Router builds the chi router. The scan routes sit behind gate auth and the
// per-gate rate limiter; everything else is plain platform plumbing.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(TraceID())
	r.Use(Recover(s.log))
	r.Use(RequestLog(s.log))

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/scan", func(r chi.Router) {
			r.Use(RequireGate(s.auth))
			r.Use(RateLimit(s.limiter, s.scanCfg.RateLimit, s.scanCfg.RateWindow, s.log))
			r.Post("/", s.handleValidate)
			r.Get("/history", s.handleScanHistory)
		})

		r.Route("/events", func(r chi.Router) {
			r.Post("/", s.handleCreateEvent)
			r.Get("/", s.handleListEvents)
			r.Get("/{id}", s.handleGetEvent)
			r.Patch("/{id}/status", s.handleUpdateEventStatus)
			r.Post("/{id}/tiers", s.handleCreateTier)
			r.Get("/{id}/tiers", s.handleListTiers)
			r.Get("/{id}/tickets", s.handleListEventTickets)
		})

		r.Post("/tickets", s.handleBookTicket)
		r.Get("/tickets", s.handleListMyTickets)

		r.Get("/stats", s.handleDashboard)
		r.Get("/stats/events", s.handleEventStats)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
