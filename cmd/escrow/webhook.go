package main

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/urfave/cli/v2"
)

var webhooks = cli.Command{
	Name:  "webhooks",
	Usage: "manage the endpoints notified of ledger events",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "event",
			Usage: "list only the webhooks for the given event",
		},
	},
	Action: listWebhooksAction,
	Subcommands: []*cli.Command{
		{
			Name:  "add",
			Usage: "register a webhook for an event, * for all events",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "event",
					Usage:    "the event to notify, eg. ORDER_SETTLED",
					Required: true,
				},
				&cli.StringFlag{
					Name:     "endpoint",
					Usage:    "the url receiving the notifications",
					Required: true,
				},
				&cli.StringFlag{
					Name:  "secret",
					Usage: "the secret used to sign the requests as JWT",
				},
			},
			Action: addWebhookAction,
		},
		{
			Name:      "remove",
			Usage:     "remove the webhook with the given id",
			ArgsUsage: "<id>",
			Action:    removeWebhookAction,
		},
	},
}

func listWebhooksAction(ctx *cli.Context) error {
	path := "/v1/webhooks"
	if event := ctx.String("event"); len(event) > 0 {
		path = fmt.Sprintf("%s?event=%s", path, url.QueryEscape(event))
	}
	return doRequest(http.MethodGet, path, nil)
}

func addWebhookAction(ctx *cli.Context) error {
	return doRequest(http.MethodPost, "/v1/webhooks", map[string]interface{}{
		"event":    ctx.String("event"),
		"endpoint": ctx.String("endpoint"),
		"secret":   ctx.String("secret"),
	})
}

func removeWebhookAction(ctx *cli.Context) error {
	id := ctx.Args().First()
	if len(id) <= 0 {
		return errors.New("missing webhook id")
	}
	if err := doRequest(http.MethodDelete, "/v1/webhooks/"+id, nil); err != nil {
		return err
	}
	fmt.Printf("webhook %s removed\n", id)
	return nil
}
