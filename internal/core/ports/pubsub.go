package ports

const (
	// AnyTopic subscribes to the messages of every topic.
	AnyTopic = "*"
	// UnspecifiedTopic matches any subscription when listing or removing.
	UnspecifiedTopic = ""
)

// Subscription is the read-only view of a registered endpoint.
type Subscription interface {
	Id() string
	Topic() string
	NotifyAt() string
	IsSecured() bool
}

// PubSub delivers the messages of a topic to the endpoints subscribed to it.
type PubSub interface {
	// Subscribe registers the endpoint for the topic and returns the
	// subscription id. Messages are signed if secret is not empty.
	Subscribe(topic, endpoint, secret string) (string, error)
	// Unsubscribe removes the subscription with the given id.
	Unsubscribe(topic, id string) error
	// ListSubscriptionsForTopic returns the subscriptions receiving the
	// messages of the topic, AnyTopic ones included. UnspecifiedTopic lists
	// all of them.
	ListSubscriptionsForTopic(topic string) []Subscription
	// Publish sends the message to every subscriber of the topic.
	Publish(topic string, message string) error
	Close() error
}
