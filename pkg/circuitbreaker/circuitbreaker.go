package circuitbreaker

import (
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

var (
	// MinRequests is the number of requests observed before the breaker can
	// trip.
	MinRequests uint32 = 10
	// MaxFailureRatio is the share of failed requests that trips the breaker.
	MaxFailureRatio = 0.6
	// OpenTimeout is how long the breaker stays open before letting a probe
	// request through.
	OpenTimeout = 30 * time.Second
)

// NewCircuitBreaker returns a breaker tripping when, after more than
// MinRequests requests, at least MaxFailureRatio of them failed.
func NewCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		Timeout:     OpenTimeout,
		ReadyToTrip: shouldTrip,
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.WithField("breaker", name).Warnf("state changed %s -> %s", from, to)
		},
	})
}

func shouldTrip(counts gobreaker.Counts) bool {
	if counts.Requests <= MinRequests {
		return false
	}
	failures := float64(counts.TotalFailures) / float64(counts.Requests)
	return failures >= MaxFailureRatio
}
