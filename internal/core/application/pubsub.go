package application

import (
	"context"

	"github.com/tdex-network/tdex-escrow/internal/core/application/pubsub"
	"github.com/tdex-network/tdex-escrow/internal/core/domain"
	"github.com/tdex-network/tdex-escrow/internal/core/ports"
)

type WebhookInfo = pubsub.WebhookInfo

type PubSubService interface {
	AddWebhook(ctx context.Context, event, endpoint, secret string) (string, error)
	RemoveWebhook(ctx context.Context, id string) error
	ListWebhooks(ctx context.Context, event string) ([]WebhookInfo, error)
	Listen(ctx context.Context, event string) (<-chan string, error)
	PublishEvents(events []domain.Event)
	Close() error
}

func NewPubSubService(pubsubSvc ports.PubSub) (PubSubService, error) {
	return pubsub.NewService(pubsubSvc)
}
