package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-escrow/internal/config"
	"github.com/tdex-network/tdex-escrow/internal/core/application"
	"github.com/tdex-network/tdex-escrow/internal/core/domain"
	pubsubinfra "github.com/tdex-network/tdex-escrow/internal/infrastructure/pubsub"
	httpinterface "github.com/tdex-network/tdex-escrow/internal/interfaces/http"
	"github.com/tdex-network/tdex-escrow/pkg/stats"
)

func main() {
	if err := config.InitConfig(); err != nil {
		log.WithError(err).Fatal("invalid config")
	}
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	datadir := config.GetDatadir()
	dbDir := filepath.Join(datadir, config.DbLocation)
	statsInterval := config.GetSeconds(config.StatsIntervalKey)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	pubsubSvc, err := pubsubinfra.NewService(
		dbDir, config.GetSeconds(config.WebhookTimeoutKey),
		application.NewDBLogger("pubsub"),
	)
	if err != nil {
		log.WithError(err).Fatal("error while setting up webhooks")
	}

	appConfig := &application.Config{
		DBType:        config.GetString(config.DBTypeKey),
		DBConfig:      dbDir,
		EscrowAccount: config.GetAddress(config.EscrowAddressKey),
		PubSub:        pubsubSvc,
		Registerer:    registry,
	}
	if err := appConfig.Validate(); err != nil {
		log.WithError(err).Fatal("invalid app config")
	}

	ctx, cancel := context.WithCancel(context.Background())

	if config.IsSet(config.OwnerAddressKey) {
		owner := config.GetAddress(config.OwnerAddressKey)
		err := appConfig.OperatorService().Initialize(ctx, owner)
		if err != nil && !errors.Is(err, domain.ErrAlreadyInitialized) {
			log.WithError(err).Fatal("error while initializing registry")
		}
	}

	svc, err := httpinterface.NewService(httpinterface.ServiceOpts{
		Port:        config.GetInt(config.ListeningPortKey),
		LedgerSvc:   appConfig.LedgerService(),
		OperatorSvc: appConfig.OperatorService(),
		PubSubSvc:   appConfig.PubSubService(),
		Gatherer:    registry,
	})
	if err != nil {
		log.WithError(err).Fatal("error while setting up http interface")
	}

	if statsInterval > 0 {
		stats.EnableMemoryStatistics(
			ctx, statsInterval, registry,
			filepath.Join(datadir, config.ProfilerLocation),
		)
	}

	if err := svc.Start(); err != nil {
		log.WithError(err).Fatal("error while starting daemon")
	}

	log.Info("escrow daemon started")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	<-sigChan

	log.Info("shutting down daemon")
	cancel()
	svc.Stop()
	appConfig.Close()

	log.Info("shutdown")
}
