package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/reseller-orders/internal/domain"
	healthcheck "github.com/vladislavdragonenkov/reseller-orders/internal/health"
	"github.com/vladislavdragonenkov/reseller-orders/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/reseller-orders/internal/metrics"
	"github.com/vladislavdragonenkov/reseller-orders/internal/service"
	"github.com/vladislavdragonenkov/reseller-orders/internal/storage/memory"
	"github.com/vladislavdragonenkov/reseller-orders/internal/storage/postgres"
	httpapi "github.com/vladislavdragonenkov/reseller-orders/internal/transport/http"
	"github.com/vladislavdragonenkov/reseller-orders/internal/version"
)

const shutdownTimeout = 5 * time.Second

// Run собирает зависимости и запускает API и ops серверы.
// Завершается по отмене ctx либо при падении API-сервера.
func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")

	healthHandler := healthcheck.NewHandler(version.String())

	var (
		repo  domain.OrderRepository
		store *postgres.Store
	)
	if cfg.PostgresDSN != "" {
		var err error
		store, err = postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return err
		}
		defer func() {
			if err := store.Close(); err != nil {
				logger.WithError(err).Warn("failed to close postgres store")
			}
		}()
		repo = postgres.NewOrderRepository(store)
		healthHandler.RegisterChecker("postgres", healthcheck.NewSimpleChecker("postgres", func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return store.Ping(pingCtx)
		}))
		logger.Info("postgres storage initialized")
	} else {
		memRepo := memory.NewOrderRepository()
		for _, name := range []string{
			domain.StatusCreated, "InProgress", domain.StatusCompleted, "Failed",
		} {
			memRepo.SeedStatus(name)
		}
		repo = memRepo
		logger.Info("in-memory storage initialized")
	}

	// Kafka producer опционален: без брокеров события просто не публикуются.
	var (
		kafkaProducer *kafka.Producer
		publisher     domain.EventPublisher
	)
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := kafka.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			logger.WithError(err).Warn("failed to create kafka producer, continuing without kafka")
		} else {
			kafkaProducer = producer
			publisher = kafka.NewOrderEventPublisher(producer, cfg.KafkaTopic)
			logger.WithField("brokers", cfg.KafkaBrokers).Info("kafka producer initialized")
		}
	}

	orderMetrics := metrics.NewOrderMetrics()
	orderService := service.NewOrderService(repo, publisher, orderMetrics, logger.WithField("layer", "service"))
	handler := httpapi.NewOrderHandler(orderService, orderMetrics, logger.WithField("layer", "http"))

	opsSrv := startOpsServer(ctx, cfg.MetricsAddr, logger, healthHandler)

	apiSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: httpapi.NewRouter(handler)}
	errCh := make(chan error, 1)
	go func() {
		logger.Infof("order API слушает %s", cfg.HTTPAddr)
		errCh <- apiSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("получен сигнал остановки, останавливаем API сервер")
		shutdownHTTP(apiSrv, logger)
		shutdownHTTP(opsSrv, logger)
		closeProducer(kafkaProducer, logger)
		return ctx.Err()
	case err := <-errCh:
		shutdownHTTP(opsSrv, logger)
		closeProducer(kafkaProducer, logger)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// startOpsServer запускает служебный HTTP-сервер: /metrics, /healthz, /livez.
func startOpsServer(ctx context.Context, addr string, logger *log.Entry, healthHandler http.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/livez", healthcheck.LivenessHandler)

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logger.Infof("метрики доступны по адресу %s/metrics", addr)
		logger.Infof("health checks: %s/healthz, %s/livez", addr, addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("ops server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownHTTP(srv, logger)
	}()

	return srv
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("http shutdown with error")
	}
}

func closeProducer(producer *kafka.Producer, logger *log.Entry) {
	if producer == nil {
		return
	}
	if err := producer.Close(); err != nil {
		logger.WithError(err).Warn("failed to close kafka producer")
		return
	}
	logger.Info("kafka producer closed")
}
