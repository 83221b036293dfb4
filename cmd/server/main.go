// Command server runs the loan application pipeline: OTP contact
// verification, identity checks against bank records, the underwriting
// decision front door, offer redemption, and application submission.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"smartfinance/internal/application"
	"smartfinance/internal/audit"
	"smartfinance/internal/customer"
	"smartfinance/internal/mail"
	"smartfinance/internal/offer"
	"smartfinance/internal/otp"
	"smartfinance/internal/platform/config"
	"smartfinance/internal/platform/httpserver"
	"smartfinance/internal/platform/logger"
	"smartfinance/internal/platform/metrics"
	"smartfinance/internal/platform/postgres"
	redisplatform "smartfinance/internal/platform/redis"
	httptransport "smartfinance/internal/transport/http"
	"smartfinance/internal/verify"
	"smartfinance/pkg/privacy"
)

const auditInboxSize = 1024

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server exited", "error", err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	m := metrics.New()

	redisClient, err := redisplatform.New(ctx, cfg.RedisURL)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	db, err := postgres.Open(ctx, cfg.PostgresDSN)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	// Audit trail: publisher hashes identifiers, worker drains to the sink.
	hasher := privacy.NewHasher(cfg.PIISalt)
	inbox := make(chan audit.Event, auditInboxSize)
	auditPub := audit.NewPublisher(hasher, inbox, log)

	var sink audit.Sink
	if len(cfg.KafkaBrokers) > 0 {
		kafkaSink, err := audit.NewKafkaSink(cfg.KafkaBrokers, cfg.AuditTopic)
		if err != nil {
			return err
		}
		defer kafkaSink.Close()
		sink = kafkaSink
		log.Info("audit sink: kafka", "topic", cfg.AuditTopic)
	} else {
		sink = audit.NewInMemorySink()
		log.Info("audit sink: in-memory")
	}
	worker := audit.NewWorker(sink, inbox, log)

	var mailer mail.Mailer
	if cfg.SMTP.Host != "" {
		mailer = mail.NewSMTPMailer(cfg.SMTP)
	} else {
		mailer = mail.NewLogMailer(log)
		log.Warn("SMTP not configured, logging outbound mail instead")
	}

	var otpStore otp.Store
	var offerStore offer.Store
	if redisClient != nil {
		otpStore = otp.NewRedisStore(redisClient.Client)
		offerStore = offer.NewRedisStore(redisClient.Client)
		log.Info("otp and offer stores: redis")
	} else {
		otpStore = otp.NewInMemoryStore()
		offerStore = offer.NewInMemoryStore()
		log.Warn("redis not configured, otp and offer state is process-local")
	}

	var customerStore customer.Store
	var applicationStore application.Store
	if db != nil {
		customerStore = customer.NewPostgresStore(db)
		applicationStore = application.NewPostgresStore(db)
		log.Info("customer and application stores: postgres")
	} else {
		customerStore = customer.SeededStore()
		applicationStore = application.NewInMemoryStore()
		log.Warn("postgres not configured, using seeded in-memory records")
	}

	otpSvc := otp.NewService(otpStore, mailer, log, m, auditPub,
		otp.WithSandboxCode(cfg.SandboxOTPCode),
		otp.WithDispatchTimeout(cfg.DispatchTimeout),
		otp.WithTTLs(cfg.EmailOTPTTL, cfg.PhoneOTPTTL),
	)
	verifySvc := verify.NewService(customerStore, log, m, auditPub)
	offerSvc := offer.NewService(offerStore, log, m, auditPub)
	appSvc := application.NewService(offerSvc, applicationStore, log, m, auditPub)

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:       log,
		Metrics:      m,
		OTP:          otpSvc,
		Verify:       verifySvc,
		Offers:       offerSvc,
		Applications: appSvc,
	})
	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := worker.Run(gctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		log.Info("server listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
