package main

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/urfave/cli/v2"
)

var orderIdFlag = cli.StringFlag{
	Name:     "id",
	Usage:    "the hex encoded order id",
	Required: true,
}

var orders = cli.Command{
	Name:  "orders",
	Usage: "create, settle and refund escrowed orders",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "sender",
			Usage: "list only the orders of the given sender",
		},
	},
	Action: listOrdersAction,
	Subcommands: []*cli.Command{
		{
			Name:  "create",
			Usage: "lock the funds of the sender into a new order",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "sender",
					Usage:    "the address funding the order",
					Required: true,
				},
				&cli.StringFlag{
					Name:     "token",
					Usage:    "the address of the escrowed token",
					Required: true,
				},
				&cli.StringFlag{
					Name:     "amount",
					Usage:    "the gross amount of the order, in base units",
					Required: true,
				},
				&cli.StringFlag{
					Name:  "rate",
					Usage: "the quoted exchange rate",
				},
				&cli.StringFlag{
					Name:  "fee_recipient",
					Usage: "the recipient of the sender fee",
				},
				&cli.StringFlag{
					Name:  "sender_fee",
					Usage: "the fee paid to the sender fee recipient, in base units",
				},
				&cli.StringFlag{
					Name:     "refund_address",
					Usage:    "the address receiving the funds in case of refund",
					Required: true,
				},
				&cli.StringFlag{
					Name:     "message_hash",
					Usage:    "the reference to the off-chain order details",
					Required: true,
				},
			},
			Action: createOrderAction,
		},
		{
			Name:      "get",
			Usage:     "show the order with the given id",
			ArgsUsage: "<id>",
			Action:    getOrderAction,
		},
		{
			Name:  "settle",
			Usage: "pay out a share of the order to a liquidity provider",
			Flags: []cli.Flag{
				&callerFlag,
				&orderIdFlag,
				&cli.StringFlag{
					Name:  "split_id",
					Usage: "the hex encoded id of the split order, informational",
				},
				&cli.StringFlag{
					Name:     "provider",
					Usage:    "the address of the liquidity provider",
					Required: true,
				},
				&cli.Uint64Flag{
					Name:     "bps",
					Usage:    "the share of the remaining amount to settle",
					Required: true,
				},
			},
			Action: settleAction,
		},
		{
			Name:  "refund",
			Usage: "return the remaining funds of the order to its refund address",
			Flags: []cli.Flag{
				&callerFlag,
				&orderIdFlag,
				&cli.StringFlag{
					Name:  "fee",
					Usage: "the fee withheld by the treasury, in base units",
					Value: "0",
				},
			},
			Action: refundAction,
		},
	},
}

func listOrdersAction(ctx *cli.Context) error {
	path := "/v1/orders"
	if sender := ctx.String("sender"); len(sender) > 0 {
		path = fmt.Sprintf("%s?sender=%s", path, url.QueryEscape(sender))
	}
	return doRequest(http.MethodGet, path, nil)
}

func createOrderAction(ctx *cli.Context) error {
	return doRequest(http.MethodPost, "/v1/orders", map[string]interface{}{
		"sender":               ctx.String("sender"),
		"token":                ctx.String("token"),
		"amount":               ctx.String("amount"),
		"rate":                 ctx.String("rate"),
		"sender_fee_recipient": ctx.String("fee_recipient"),
		"sender_fee":           ctx.String("sender_fee"),
		"refund_address":       ctx.String("refund_address"),
		"message_hash":         ctx.String("message_hash"),
	})
}

func getOrderAction(ctx *cli.Context) error {
	id := ctx.Args().First()
	if len(id) <= 0 {
		return errors.New("missing order id")
	}
	return doRequest(http.MethodGet, "/v1/orders/"+id, nil)
}

func settleAction(ctx *cli.Context) error {
	caller, err := getCaller(ctx)
	if err != nil {
		return err
	}
	path := fmt.Sprintf("/v1/orders/%s/settle", ctx.String("id"))
	return doRequest(http.MethodPost, path, map[string]interface{}{
		"caller":             caller,
		"split_order_id":     ctx.String("split_id"),
		"liquidity_provider": ctx.String("provider"),
		"settle_bps":         ctx.Uint64("bps"),
	})
}

func refundAction(ctx *cli.Context) error {
	caller, err := getCaller(ctx)
	if err != nil {
		return err
	}
	path := fmt.Sprintf("/v1/orders/%s/refund", ctx.String("id"))
	return doRequest(http.MethodPost, path, map[string]interface{}{
		"caller": caller,
		"fee":    ctx.String("fee"),
	})
}
