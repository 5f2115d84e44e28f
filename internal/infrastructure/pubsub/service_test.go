package pubsub_test

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-escrow/internal/core/ports"
	"github.com/tdex-network/tdex-escrow/internal/infrastructure/pubsub"
)

const (
	testTopic   = "ORDER_SETTLED"
	otherTopic  = "PAUSED"
	testSecret  = "webhooksecret"
	testMessage = `{"event":"ORDER_SETTLED","data":{"order_id":"0x01","settle_percent":100000}}`
)

func TestPubSubService(t *testing.T) {
	t.Parallel()

	receiver := newTestReceiver(t)

	pubsubSvc, err := pubsub.NewService("", time.Second, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		//nolint
		pubsubSvc.Close()
	})

	settledEndpoint := fmt.Sprintf("%s/settled", receiver.URL)
	anyEndpoint := fmt.Sprintf("%s/any", receiver.URL)

	_, err = pubsubSvc.Subscribe(testTopic, settledEndpoint, testSecret)
	require.NoError(t, err)
	_, err = pubsubSvc.Subscribe(testTopic, settledEndpoint, "")
	require.NoError(t, err)
	_, err = pubsubSvc.Subscribe(ports.AnyTopic, anyEndpoint, "")
	require.NoError(t, err)

	subs := pubsubSvc.ListSubscriptionsForTopic(testTopic)
	require.Len(t, subs, 3)
	require.Len(t, pubsubSvc.ListSubscriptionsForTopic(otherTopic), 1)
	require.Len(t, pubsubSvc.ListSubscriptionsForTopic(ports.AnyTopic), 1)
	require.Len(t, pubsubSvc.ListSubscriptionsForTopic(ports.UnspecifiedTopic), 3)

	secured := 0
	for _, sub := range subs {
		require.NotEmpty(t, sub.Id())
		if sub.IsSecured() {
			secured++
		}
	}
	require.Equal(t, 1, secured)

	err = pubsubSvc.Publish(testTopic, testMessage)
	require.NoError(t, err)

	requests := receiver.list()
	require.Len(t, requests, 3)
	authorized := 0
	for _, r := range requests {
		require.Equal(t, testMessage, r.body)
		if len(r.token) > 0 {
			authorized++
		}
	}
	require.Equal(t, 1, authorized)

	for i, sub := range subs {
		require.NoError(t, pubsubSvc.Unsubscribe(sub.Topic(), sub.Id()))
		require.Len(t, pubsubSvc.ListSubscriptionsForTopic(testTopic), len(subs)-1-i)
	}

	err = pubsubSvc.Unsubscribe("", subs[0].Id())
	require.ErrorIs(t, err, pubsub.ErrSubscriptionNotFound)

	// Nothing to invoke.
	err = pubsubSvc.Publish(otherTopic, testMessage)
	require.NoError(t, err)
}

func TestFailingPublish(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
		},
	))
	t.Cleanup(server.Close)

	pubsubSvc, err := pubsub.NewService("", time.Second, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		//nolint
		pubsubSvc.Close()
	})

	_, err = pubsubSvc.Subscribe(testTopic, server.URL, "")
	require.NoError(t, err)

	err = pubsubSvc.Publish(testTopic, testMessage)
	require.Error(t, err)
	require.Contains(t, err.Error(), "503")
}

func TestFailingSubscribe(t *testing.T) {
	t.Parallel()

	pubsubSvc, err := pubsub.NewService("", 0, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		//nolint
		pubsubSvc.Close()
	})

	_, err = pubsubSvc.Subscribe("", "http://localhost:8080", "")
	require.Error(t, err)

	_, err = pubsubSvc.Subscribe(testTopic, "not an url", "")
	require.Error(t, err)
}

type receivedRequest struct {
	path  string
	body  string
	token string
}

type testReceiver struct {
	*httptest.Server

	lock     *sync.Mutex
	requests []receivedRequest
}

func newTestReceiver(t *testing.T) *testReceiver {
	receiver := &testReceiver{lock: &sync.Mutex{}}
	receiver.Server = httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				http.Error(w, "Bad method", http.StatusMethodNotAllowed)
				return
			}
			if r.Header.Get("Content-Type") != "application/json" {
				http.Error(w, "Bad content type", http.StatusUnsupportedMediaType)
				return
			}

			var tokenString string
			if auth := r.Header.Get("Authorization"); len(auth) > 0 {
				tokenString = strings.TrimPrefix(auth, "Bearer ")
				token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
					if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
						return nil, fmt.Errorf("unexpected signing method")
					}
					return []byte(testSecret), nil
				})
				if err != nil || !token.Valid {
					http.Error(w, "Unauthorized", http.StatusUnauthorized)
					return
				}
			}

			defer r.Body.Close()
			body, _ := io.ReadAll(r.Body)

			receiver.lock.Lock()
			receiver.requests = append(receiver.requests, receivedRequest{
				r.URL.Path, string(body), tokenString,
			})
			receiver.lock.Unlock()

			fmt.Fprintf(w, "Done")
		},
	))
	t.Cleanup(receiver.Close)
	return receiver
}

func (r *testReceiver) list() []receivedRequest {
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]receivedRequest{}, r.requests...)
}
