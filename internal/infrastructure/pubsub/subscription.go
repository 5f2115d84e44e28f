package pubsub

import (
	"errors"
	"net/url"

	"github.com/google/uuid"
	"github.com/tdex-network/tdex-escrow/internal/core/ports"
)

var (
	ErrMissingEvent    = errors.New("missing webhook event")
	ErrInvalidEndpoint = errors.New("webhook endpoint must be an http(s) url")
)

// Subscription is a webhook endpoint notified of the messages of an event.
// Messages are signed with Secret, if any.
type Subscription struct {
	ID       string
	Event    string `badgerholdIndex:"Event"`
	Endpoint string
	Secret   string
}

func NewSubscription(event, endpoint, secret string) (*Subscription, error) {
	if len(event) <= 0 {
		return nil, ErrMissingEvent
	}
	u, err := url.Parse(endpoint)
	if err != nil || len(u.Host) <= 0 ||
		(u.Scheme != "http" && u.Scheme != "https") {
		return nil, ErrInvalidEndpoint
	}

	return &Subscription{
		ID:       uuid.NewString(),
		Event:    event,
		Endpoint: u.String(),
		Secret:   secret,
	}, nil
}

func (s *Subscription) Id() string       { return s.ID }
func (s *Subscription) Topic() string    { return s.Event }
func (s *Subscription) NotifyAt() string { return s.Endpoint }
func (s *Subscription) IsSecured() bool  { return len(s.Secret) > 0 }

type subscriptions []Subscription

func (s subscriptions) toPortable() []ports.Subscription {
	list := make([]ports.Subscription, 0, len(s))
	for i := range s {
		list = append(list, &s[i])
	}
	return list
}
