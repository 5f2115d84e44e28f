package httpinterface

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-escrow/internal/core/application"
	interfaces "github.com/tdex-network/tdex-escrow/internal/interfaces"
)

type ServiceOpts struct {
	Port int

	LedgerSvc   application.LedgerService
	OperatorSvc application.OperatorService
	// PubSubSvc is optional, webhook routes reply 503 without it.
	PubSubSvc application.PubSubService
	// Gatherer is optional, /metrics is not served without it.
	Gatherer prometheus.Gatherer
}

func (o ServiceOpts) validate() error {
	if o.Port <= 0 {
		return fmt.Errorf("invalid listening port %d", o.Port)
	}
	if o.LedgerSvc == nil {
		return fmt.Errorf("ledger app service must not be null")
	}
	if o.OperatorSvc == nil {
		return fmt.Errorf("operator app service must not be null")
	}
	return nil
}

type service struct {
	opts   ServiceOpts
	server *http.Server
}

func NewService(opts ServiceOpts) (interfaces.Service, error) {
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("invalid opts: %s", err)
	}

	return &service{
		opts: opts,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewHandler(opts),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

func (s *service) Start() error {
	go func() {
		if err := s.server.ListenAndServe(); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("http server stopped unexpectedly")
		}
	}()

	log.Infof("http interface listening on %s", s.server.Addr)
	return nil
}

func (s *service) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		log.WithError(err).Warn("failed to gracefully stop http server")
	}
	log.Info("stopped http interface")
}

// NewHandler returns the router serving the escrow API.
func NewHandler(opts ServiceOpts) http.Handler {
	h := &handler{opts.LedgerSvc, opts.OperatorSvc, opts.PubSubSvc}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/registry/init", h.initRegistry)
	mux.HandleFunc("GET /v1/registry", h.getRegistry)
	mux.HandleFunc("GET /v1/fee", h.getFeeConfig)
	mux.HandleFunc("GET /v1/tokens/{token}", h.isTokenSupported)

	mux.HandleFunc("POST /v1/admin/tokens", h.setSupportedToken)
	mux.HandleFunc("POST /v1/admin/fee", h.updateProtocolFee)
	mux.HandleFunc("POST /v1/admin/roles", h.updateRoleAddress)
	mux.HandleFunc("POST /v1/admin/pause", h.pause)
	mux.HandleFunc("POST /v1/admin/unpause", h.unpause)

	mux.HandleFunc("POST /v1/orders", h.createOrder)
	mux.HandleFunc("GET /v1/orders", h.listOrders)
	mux.HandleFunc("GET /v1/orders/{id}", h.getOrder)
	mux.HandleFunc("POST /v1/orders/{id}/settle", h.settle)
	mux.HandleFunc("POST /v1/orders/{id}/refund", h.refund)

	mux.HandleFunc("POST /v1/balances/deposit", h.deposit)
	mux.HandleFunc("GET /v1/balances/{account}/{asset}", h.getBalance)

	mux.HandleFunc("POST /v1/webhooks", h.addWebhook)
	mux.HandleFunc("GET /v1/webhooks", h.listWebhooks)
	mux.HandleFunc("DELETE /v1/webhooks/{id}", h.removeWebhook)
	mux.HandleFunc("GET /v1/events", h.streamEvents)

	if opts.Gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(
			opts.Gatherer, promhttp.HandlerOpts{},
		))
	}

	return logger(mux)
}

func logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Debugf("%s %s", r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}
