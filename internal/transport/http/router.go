// Package httptransport wires the service layer onto the public REST surface.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"smartfinance/internal/application"
	"smartfinance/internal/offer"
	"smartfinance/internal/otp"
	"smartfinance/internal/platform/metrics"
	"smartfinance/internal/platform/middleware"
	"smartfinance/internal/verify"
)

// requestTimeout bounds every handler, including outbound SMTP dispatch.
const requestTimeout = 30 * time.Second

// Deps collects everything the router mounts.
type Deps struct {
	Logger       *slog.Logger
	Metrics      *metrics.Metrics
	OTP          *otp.Service
	Verify       *verify.Service
	Offers       *offer.Service
	Applications *application.Service
}

// NewRouter assembles the middleware chain and mounts all handler groups
// under /api, mirroring the public surface the front end talks to.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Timeout(requestTimeout))
	if deps.Metrics != nil {
		r.Use(middleware.Latency(deps.Metrics))
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		NewOTPHandler(deps.OTP, deps.Logger).Register(api)
		NewVerifyHandler(deps.Verify, deps.Logger).Register(api)
		NewOfferHandler(deps.Offers, deps.Logger).Register(api)
		NewApplicationHandler(deps.Applications, deps.Logger).Register(api)
	})

	return r
}
