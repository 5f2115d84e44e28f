package pubsub

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// maxReplySize bounds the part of an endpoint reply kept for error messages.
const maxReplySize = 512

type webhookClient struct {
	http *http.Client
}

func newWebhookClient(timeout time.Duration) *webhookClient {
	return &webhookClient{&http.Client{Timeout: timeout}}
}

// notify posts the JSON message to the endpoint and expects a 200 reply.
func (c *webhookClient) notify(endpoint, message, bearer string) error {
	req, err := http.NewRequest(
		http.MethodPost, endpoint, strings.NewReader(message),
	)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if len(bearer) > 0 {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		return nil
	}
	reply, _ := io.ReadAll(io.LimitReader(resp.Body, maxReplySize))
	return fmt.Errorf(
		"endpoint replied with status %d: %s",
		resp.StatusCode, strings.TrimSpace(string(reply)),
	)
}
