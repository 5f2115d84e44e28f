package httpinterface

import (
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-escrow/internal/core/application/ledger"
	"github.com/tdex-network/tdex-escrow/internal/core/application/pubsub"
	"github.com/tdex-network/tdex-escrow/internal/core/domain"
	pubsubinfra "github.com/tdex-network/tdex-escrow/internal/infrastructure/pubsub"
)

var errWebhooksDisabled = errors.New("webhooks are not enabled")

var statusByKind = map[string]int{
	"ZeroAddress":           http.StatusBadRequest,
	"TokenNotSupported":     http.StatusBadRequest,
	"AmountZero":            http.StatusBadRequest,
	"InvalidMessageHash":    http.StatusBadRequest,
	"InvalidSettlePercent":  http.StatusBadRequest,
	"FeeExceedsProtocol":    http.StatusBadRequest,
	"ArithmeticOverflow":    http.StatusBadRequest,
	"InvalidRoleKind":       http.StatusBadRequest,
	"InsufficientBalance":   http.StatusBadRequest,
	"Unauthorized":          http.StatusForbidden,
	"OrderNotFound":         http.StatusNotFound,
	"NotInitialized":        http.StatusNotFound,
	"InvalidStatus":         http.StatusConflict,
	"Paused":                http.StatusConflict,
	"NotPaused":             http.StatusConflict,
	"OrderAlreadyFulfilled": http.StatusConflict,
	"OrderAlreadyRefunded":  http.StatusConflict,
	"AlreadyInitialized":    http.StatusConflict,
	"DuplicateOrderId":      http.StatusConflict,
}

func writeError(w http.ResponseWriter, err error) {
	kind := domain.ErrorKind(err)
	status, ok := statusByKind[kind]
	if !ok {
		switch {
		case errors.Is(err, errInvalidRequest),
			errors.Is(err, pubsub.ErrInvalidTopic),
			errors.Is(err, pubsubinfra.ErrInvalidEndpoint),
			errors.Is(err, pubsubinfra.ErrMissingEvent):
			kind, status = "InvalidRequest", http.StatusBadRequest
		case errors.Is(err, pubsubinfra.ErrSubscriptionNotFound):
			kind, status = "NotFound", http.StatusNotFound
		case errors.Is(err, errWebhooksDisabled),
			errors.Is(err, ledger.ErrBalancesNotSupported):
			kind, status = "Unavailable", http.StatusServiceUnavailable
		default:
			status = http.StatusInternalServerError
			log.WithError(err).Error("internal error")
		}
	}

	writeJSON(w, status, errorResponse{Error: err.Error(), Kind: kind})
}
