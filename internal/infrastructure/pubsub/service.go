package pubsub

import (
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/golang-jwt/jwt"
	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"github.com/tdex-network/tdex-escrow/internal/core/ports"
	"github.com/tdex-network/tdex-escrow/pkg/circuitbreaker"
	"go.uber.org/ratelimit"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultRequestTimeout = 15 * time.Second
	// maxRequestsPerSecond caps the webhook requests sent by the service.
	maxRequestsPerSecond = 100
)

type service struct {
	store      *subscriptionStore
	httpClient *webhookClient
	cb         *gobreaker.CircuitBreaker
	limiter    ratelimit.Limiter
}

// NewService returns a webhook PubSub whose subscriptions are kept in a
// badger store in the given directory, or in memory if empty.
func NewService(
	datadir string, requestTimeout time.Duration, logger badger.Logger,
) (ports.PubSub, error) {
	if requestTimeout <= 0 {
		requestTimeout = DefaultRequestTimeout
	}

	store, err := newSubscriptionStore(datadir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening pubsub db: %w", err)
	}

	return &service{
		store:      store,
		httpClient: newWebhookClient(requestTimeout),
		cb:         circuitbreaker.NewCircuitBreaker("webhook"),
		limiter:    ratelimit.New(maxRequestsPerSecond),
	}, nil
}

func (ws *service) Subscribe(topic, endpoint, secret string) (string, error) {
	sub, err := NewSubscription(topic, endpoint, secret)
	if err != nil {
		return "", err
	}
	if err := ws.store.add(sub); err != nil {
		return "", err
	}
	return sub.ID, nil
}

func (ws *service) Unsubscribe(_, id string) error {
	return ws.store.remove(id)
}

func (ws *service) ListSubscriptionsForTopic(topic string) []ports.Subscription {
	subs, err := ws.listSubscriptionsForTopic(topic)
	if err != nil {
		log.WithError(err).Warn("failed to list webhooks")
		return nil
	}
	return subs.toPortable()
}

func (ws *service) Publish(topic string, message string) error {
	subs, err := ws.listSubscriptionsForTopic(topic)
	if err != nil {
		return err
	}

	eg := &errgroup.Group{}
	for i := range subs {
		sub := subs[i]
		eg.Go(func() error { return ws.doRequest(sub, message) })
	}
	return eg.Wait()
}

func (ws *service) Close() error {
	return ws.store.close()
}

func (ws *service) listSubscriptionsForTopic(topic string) (subscriptions, error) {
	subs, err := ws.store.listForEvent(topic)
	if err != nil {
		return nil, err
	}
	if topic != ports.AnyTopic && topic != ports.UnspecifiedTopic {
		subsForAnyTopic, err := ws.store.listForEvent(ports.AnyTopic)
		if err != nil {
			return nil, err
		}
		subs = append(subs, subsForAnyTopic...)
	}
	return subs, nil
}

func (ws *service) doRequest(sub Subscription, payload string) error {
	ws.limiter.Take()

	var bearer string
	if sub.IsSecured() {
		token, err := signToken(sub)
		if err != nil {
			return fmt.Errorf("webhook %s: %w", sub.ID, err)
		}
		bearer = token
	}

	_, err := ws.cb.Execute(func() (interface{}, error) {
		return nil, ws.httpClient.notify(sub.Endpoint, payload, bearer)
	})
	if err != nil {
		return fmt.Errorf("webhook %s: %w", sub.ID, err)
	}
	return nil
}

// signToken returns a HS256 JWT identifying the subscription, signed with
// its secret.
func signToken(sub Subscription) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		Id:       sub.ID,
		IssuedAt: time.Now().Unix(),
	})
	return token.SignedString([]byte(sub.Secret))
}
