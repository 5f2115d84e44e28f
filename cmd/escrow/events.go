package main

import (
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gorilla/websocket"
	"github.com/urfave/cli/v2"
)

var events = cli.Command{
	Name:  "events",
	Usage: "stream the ledger events as they are committed",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "event",
			Usage: "stream only the given event",
		},
	},
	Action: streamEventsAction,
}

func streamEventsAction(ctx *cli.Context) error {
	addr, err := getRPCServer()
	if err != nil {
		return err
	}
	wsAddr := "ws" + strings.TrimPrefix(addr, "http") + "/v1/events"
	if event := ctx.String("event"); len(event) > 0 {
		wsAddr = fmt.Sprintf("%s?event=%s", wsAddr, url.QueryEscape(event))
	}

	conn, _, err := websocket.DefaultDialer.Dial(wsAddr, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to event stream: %w", err)
	}
	defer conn.Close()

	interrupted := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		<-sigChan
		close(interrupted)
		conn.Close()
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			select {
			case <-interrupted:
				return nil
			default:
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return nil
			}
			return err
		}
		printRespJSON(message)
	}
}
