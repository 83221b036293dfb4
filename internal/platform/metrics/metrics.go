package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	OTPSent               *prometheus.CounterVec
	OTPVerified           *prometheus.CounterVec
	Verifications         *prometheus.CounterVec
	OffersCreated         prometheus.Counter
	ApplicationsSubmitted prometheus.Counter
	RequestLatency        *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		OTPSent: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "smartfinance_otp_sent_total",
			Help: "OTP send attempts by channel and result",
		}, []string{"channel", "result"}),
		OTPVerified: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "smartfinance_otp_verified_total",
			Help: "OTP verification attempts by result",
		}, []string{"result"}),
		Verifications: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "smartfinance_verifications_total",
			Help: "Identity verification checks by check type and result",
		}, []string{"check", "result"}),
		OffersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "smartfinance_offers_created_total",
			Help: "Loan offers persisted after an approved decision",
		}),
		ApplicationsSubmitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "smartfinance_applications_submitted_total",
			Help: "Loan applications accepted for processing",
		}),
		RequestLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "smartfinance_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"route", "status"}),
	}
}

// ObserveRequest records one HTTP request observation.
func (m *Metrics) ObserveRequest(route, status string, d time.Duration) {
	m.RequestLatency.WithLabelValues(route, status).Observe(d.Seconds())
}
