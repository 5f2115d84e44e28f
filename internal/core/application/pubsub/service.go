package pubsub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-escrow/internal/core/domain"
	"github.com/tdex-network/tdex-escrow/internal/core/ports"
)

const (
	queueSize = 1024
	// listenerBufferSize is the number of messages a listener can lag behind
	// before starting to miss them.
	listenerBufferSize = 64
)

var (
	ErrInvalidTopic  = errors.New("unknown webhook event")
	ErrServiceClosed = errors.New("pubsub service is closed")
)

// WebhookInfo describes a subscription without exposing its secret.
type WebhookInfo struct {
	Id        string `json:"id"`
	Event     string `json:"event"`
	Endpoint  string `json:"endpoint"`
	IsSecured bool   `json:"is_secured"`
}

// Service turns the events of committed units of work into webhook
// notifications. Events are delivered one batch at a time in the order they
// were committed.
type Service struct {
	pubsub ports.PubSub
	queue  chan []domain.Event
	wg     *sync.WaitGroup
	once   *sync.Once
	now    func() time.Time

	done           chan struct{}
	lock           *sync.Mutex
	listeners      map[int]*listener
	nextListenerId int
	closed         bool
}

type listener struct {
	topic string
	ch    chan string
}

func (l *listener) wants(topic string) bool {
	return l.topic == ports.AnyTopic || l.topic == topic
}

func NewService(pubsub ports.PubSub) (*Service, error) {
	if pubsub == nil {
		return nil, fmt.Errorf("missing pubsub")
	}

	svc := &Service{
		pubsub: pubsub,
		queue:  make(chan []domain.Event, queueSize),
		wg:     &sync.WaitGroup{},
		once:   &sync.Once{},
		now:    time.Now,

		done:      make(chan struct{}),
		lock:      &sync.Mutex{},
		listeners: make(map[int]*listener),
	}
	svc.wg.Add(1)
	go svc.listen()
	return svc, nil
}

func (s *Service) AddWebhook(
	_ context.Context, event, endpoint, secret string,
) (string, error) {
	if !isValidTopic(event) {
		return "", ErrInvalidTopic
	}
	return s.pubsub.Subscribe(event, endpoint, secret)
}

func (s *Service) RemoveWebhook(_ context.Context, id string) error {
	return s.pubsub.Unsubscribe(ports.UnspecifiedTopic, id)
}

// ListWebhooks returns the webhooks notified for the given event. An empty
// event returns all of them.
func (s *Service) ListWebhooks(
	_ context.Context, event string,
) ([]WebhookInfo, error) {
	if event != ports.UnspecifiedTopic && !isValidTopic(event) {
		return nil, ErrInvalidTopic
	}

	subs := s.pubsub.ListSubscriptionsForTopic(event)
	webhooks := make([]WebhookInfo, 0, len(subs))
	for _, sub := range subs {
		webhooks = append(webhooks, WebhookInfo{
			Id:        sub.Id(),
			Event:     sub.Topic(),
			Endpoint:  sub.NotifyAt(),
			IsSecured: sub.IsSecured(),
		})
	}
	return webhooks, nil
}

// Listen returns a channel receiving the notifications for the given event,
// or for any event if empty. The channel is closed once ctx is done or the
// service is closed. Notifications are dropped for listeners that can't keep
// up with them.
func (s *Service) Listen(ctx context.Context, event string) (<-chan string, error) {
	if event == ports.UnspecifiedTopic {
		event = ports.AnyTopic
	}
	if !isValidTopic(event) {
		return nil, ErrInvalidTopic
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if s.closed {
		return nil, ErrServiceClosed
	}

	id := s.nextListenerId
	s.nextListenerId++
	l := &listener{event, make(chan string, listenerBufferSize)}
	s.listeners[id] = l

	go func() {
		select {
		case <-ctx.Done():
			s.removeListener(id)
		case <-s.done:
		}
	}()

	return l.ch, nil
}

// PublishEvents enqueues the given events for delivery.
func (s *Service) PublishEvents(events []domain.Event) {
	if len(events) <= 0 {
		return
	}
	s.queue <- events
}

// Close waits for the enqueued events to be delivered and closes the
// underlying pubsub.
func (s *Service) Close() error {
	var err error
	s.once.Do(func() {
		close(s.queue)
		s.wg.Wait()

		close(s.done)

		s.lock.Lock()
		s.closed = true
		for id, l := range s.listeners {
			close(l.ch)
			delete(s.listeners, id)
		}
		s.lock.Unlock()

		err = s.pubsub.Close()
	})
	return err
}

func (s *Service) listen() {
	defer s.wg.Done()

	for events := range s.queue {
		for _, event := range events {
			if err := s.publish(event); err != nil {
				log.WithError(err).Warnf(
					"failed to publish event %s", event.Topic(),
				)
			}
		}
	}
}

func (s *Service) publish(event domain.Event) error {
	payload := map[string]interface{}{
		"id":        uuid.New().String(),
		"event":     event.Topic(),
		"timestamp": s.now().Unix(),
		"data":      getEventPayload(event),
	}
	message, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	s.notifyListeners(event.Topic(), string(message))
	return s.pubsub.Publish(event.Topic(), string(message))
}

func (s *Service) notifyListeners(topic, message string) {
	s.lock.Lock()
	defer s.lock.Unlock()

	for id, l := range s.listeners {
		if !l.wants(topic) {
			continue
		}
		select {
		case l.ch <- message:
		default:
			log.Warnf("listener %d is lagging behind, dropped %s message", id, topic)
		}
	}
}

func (s *Service) removeListener(id int) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if l, ok := s.listeners[id]; ok {
		close(l.ch)
		delete(s.listeners, id)
	}
}

func isValidTopic(topic string) bool {
	if topic == ports.AnyTopic {
		return true
	}
	for _, t := range domain.Topics {
		if t == topic {
			return true
		}
	}
	return false
}
