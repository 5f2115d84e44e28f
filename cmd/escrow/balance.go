package main

import (
	"fmt"
	"net/http"

	"github.com/urfave/cli/v2"
)

var (
	accountFlag = cli.StringFlag{
		Name:     "account",
		Usage:    "the address of the account",
		Required: true,
	}
	assetFlag = cli.StringFlag{
		Name:     "asset",
		Usage:    "the address of the token",
		Required: true,
	}
)

var fund = cli.Command{
	Name:  "fund",
	Usage: "credit an account of the custody ledger",
	Flags: []cli.Flag{
		&accountFlag,
		&assetFlag,
		&cli.StringFlag{
			Name:     "amount",
			Usage:    "the amount to credit, in base units",
			Required: true,
		},
	},
	Action: fundAction,
}

var balance = cli.Command{
	Name:   "balance",
	Usage:  "show the balance of an account of the custody ledger",
	Flags:  []cli.Flag{&accountFlag, &assetFlag},
	Action: balanceAction,
}

func fundAction(ctx *cli.Context) error {
	return doRequest(http.MethodPost, "/v1/balances/deposit", map[string]interface{}{
		"account": ctx.String("account"),
		"asset":   ctx.String("asset"),
		"amount":  ctx.String("amount"),
	})
}

func balanceAction(ctx *cli.Context) error {
	path := fmt.Sprintf(
		"/v1/balances/%s/%s", ctx.String("account"), ctx.String("asset"),
	)
	return doRequest(http.MethodGet, path, nil)
}
