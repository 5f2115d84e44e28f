package main

import (
	"errors"
	"net/http"

	"github.com/urfave/cli/v2"
)

var registry = cli.Command{
	Name:   "registry",
	Usage:  "show and manage the settings registry",
	Action: getRegistryAction,
	Subcommands: []*cli.Command{
		{
			Name:  "init",
			Usage: "initialize the registry with the given owner",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "owner",
					Usage:    "the address of the registry owner",
					Required: true,
				},
			},
			Action: initRegistryAction,
		},
		{
			Name:   "fee",
			Usage:  "show the protocol fee configuration",
			Action: getFeeConfigAction,
		},
		{
			Name:  "setfee",
			Usage: "update the protocol fee, in basis points of MAX_BPS",
			Flags: []cli.Flag{
				&callerFlag,
				&cli.Uint64Flag{
					Name:     "fee",
					Usage:    "the new protocol fee percent",
					Required: true,
				},
			},
			Action: updateProtocolFeeAction,
		},
		{
			Name:      "token",
			Usage:     "enable or disable a token, or show its status",
			ArgsUsage: "<token>",
			Flags: []cli.Flag{
				&callerFlag,
				&cli.BoolFlag{
					Name:  "enable",
					Usage: "add the token to the supported ones",
				},
				&cli.BoolFlag{
					Name:  "disable",
					Usage: "remove the token from the supported ones",
				},
			},
			Action: tokenAction,
		},
		{
			Name:  "role",
			Usage: "update the treasury or the aggregator address",
			Flags: []cli.Flag{
				&callerFlag,
				&cli.StringFlag{
					Name:     "role",
					Usage:    "either treasury or aggregator",
					Required: true,
				},
				&cli.StringFlag{
					Name:     "address",
					Usage:    "the new address for the role",
					Required: true,
				},
			},
			Action: updateRoleAddressAction,
		},
		{
			Name:   "pause",
			Usage:  "stop accepting new orders",
			Flags:  []cli.Flag{&callerFlag},
			Action: pauseAction,
		},
		{
			Name:   "unpause",
			Usage:  "resume accepting new orders",
			Flags:  []cli.Flag{&callerFlag},
			Action: unpauseAction,
		},
	},
}

func getRegistryAction(ctx *cli.Context) error {
	return doRequest(http.MethodGet, "/v1/registry", nil)
}

func initRegistryAction(ctx *cli.Context) error {
	return doRequest(http.MethodPost, "/v1/registry/init", map[string]interface{}{
		"owner": ctx.String("owner"),
	})
}

func getFeeConfigAction(ctx *cli.Context) error {
	return doRequest(http.MethodGet, "/v1/fee", nil)
}

func updateProtocolFeeAction(ctx *cli.Context) error {
	caller, err := getCaller(ctx)
	if err != nil {
		return err
	}
	return doRequest(http.MethodPost, "/v1/admin/fee", map[string]interface{}{
		"caller":       caller,
		"protocol_fee": ctx.Uint64("fee"),
	})
}

func tokenAction(ctx *cli.Context) error {
	token := ctx.Args().First()
	if len(token) <= 0 {
		return errors.New("missing token address")
	}

	enable, disable := ctx.Bool("enable"), ctx.Bool("disable")
	if enable && disable {
		return errors.New("--enable and --disable are mutually exclusive")
	}
	if !enable && !disable {
		return doRequest(http.MethodGet, "/v1/tokens/"+token, nil)
	}

	caller, err := getCaller(ctx)
	if err != nil {
		return err
	}
	return doRequest(http.MethodPost, "/v1/admin/tokens", map[string]interface{}{
		"caller":  caller,
		"token":   token,
		"enabled": enable,
	})
}

func updateRoleAddressAction(ctx *cli.Context) error {
	caller, err := getCaller(ctx)
	if err != nil {
		return err
	}
	return doRequest(http.MethodPost, "/v1/admin/roles", map[string]interface{}{
		"caller":  caller,
		"role":    ctx.String("role"),
		"address": ctx.String("address"),
	})
}

func pauseAction(ctx *cli.Context) error {
	return callerRequest(ctx, "/v1/admin/pause")
}

func unpauseAction(ctx *cli.Context) error {
	return callerRequest(ctx, "/v1/admin/unpause")
}

func callerRequest(ctx *cli.Context, path string) error {
	caller, err := getCaller(ctx)
	if err != nil {
		return err
	}
	return doRequest(http.MethodPost, path, map[string]interface{}{
		"caller": caller,
	})
}
