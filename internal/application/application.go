package application

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/helpdesk-portal/helpdesk-service/internal/config"
	"github.com/helpdesk-portal/helpdesk-service/internal/database"
	"github.com/helpdesk-portal/helpdesk-service/internal/handler"
	"github.com/helpdesk-portal/helpdesk-service/internal/kafka"
	"github.com/helpdesk-portal/helpdesk-service/internal/router"
	"github.com/helpdesk-portal/helpdesk-service/internal/service"
	"github.com/helpdesk-portal/helpdesk-service/internal/stripe"
	"github.com/rs/zerolog/log"
)

// API is the api-mode application: HTTP server plus the event producer.
type API struct {
	cfg      *config.Config
	httpSrv  *http.Server
	producer *kafka.Producer
}

// NewAPI wires config → migrations → database → services → router.
func NewAPI(cfg *config.Config) (*API, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := database.MigrateUp(cfg.DatabaseURL()); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopicEvents)
	checkout := stripe.NewClient(cfg.StripeAPIURL, cfg.StripeSecretKey)

	profileSvc := service.NewProfileService(db)
	ticketSvc := service.NewTicketService(db)
	messageSvc := service.NewMessageService(db)
	availabilitySvc := service.NewAvailabilityService(db)
	paymentSvc := service.NewPaymentService(db, checkout, cfg.SupportFeeCents, cfg.Currency)
	knowledgeSvc := service.NewKnowledgeService(db)
	auditSvc := service.NewAuditService(db)

	mux := router.New(router.Deps{
		Profiles:     profileSvc,
		Profile:      handler.NewProfileHandler(profileSvc),
		Ticket:       handler.NewTicketHandler(ticketSvc, producer),
		Message:      handler.NewMessageHandler(messageSvc, producer),
		Availability: handler.NewAvailabilityHandler(availabilitySvc),
		Payment:      handler.NewPaymentHandler(paymentSvc, producer),
		Knowledge:    handler.NewKnowledgeHandler(knowledgeSvc),
		Audit:        handler.NewAuditHandler(auditSvc),
	})

	httpSrv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return &API{
		cfg:      cfg,
		httpSrv:  httpSrv,
		producer: producer,
	}, nil
}

// Run starts the HTTP server and blocks until ctx is cancelled.
func (a *API) Run(ctx context.Context) error {
	host := a.cfg.AppHost
	if host == "0.0.0.0" {
		host = "localhost"
	}
	base := "http://" + host + ":" + a.cfg.HTTPPort
	log.Info().Str("addr", a.httpSrv.Addr).Msg("HTTP server listening")
	log.Info().Msgf("  Swagger UI:   %s/swagger", base)
	log.Info().Msgf("  Swagger spec: %s/swagger/openapi.json", base)
	log.Info().Msgf("  Health:       %s/health", base)
	log.Info().Msgf("  API v1:       %s/api/v1/", base)

	go func() {
		if err := a.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("http server")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	if err := a.producer.Close(); err != nil {
		log.Error().Err(err).Msg("kafka producer close")
	}
	return nil
}
