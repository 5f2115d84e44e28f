package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/urfave/cli/v2"
)

var (
	escrowDataDir = btcutil.AppDataDir("escrow-cli", false)
	statePath     = filepath.Join(escrowDataDir, "state.json")

	httpClient = &http.Client{Timeout: 30 * time.Second}
)

func main() {
	app := cli.NewApp()

	app.Version = "0.1.0"
	app.Name = "escrow CLI"
	app.Usage = "Command line interface for escrowd daemon operators"
	app.Commands = append(
		app.Commands,
		&config,
		&registry,
		&orders,
		&fund,
		&balance,
		&webhooks,
		&events,
	)

	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}

func getState() (map[string]string, error) {
	data := map[string]string{}

	file, err := os.ReadFile(statePath)
	if err != nil {
		return nil, errors.New("get config state error: try 'config init'")
	}
	if err := json.Unmarshal(file, &data); err != nil {
		return nil, fmt.Errorf("invalid config state: %w", err)
	}

	return data, nil
}

func setState(data map[string]string) error {
	if _, err := os.Stat(escrowDataDir); os.IsNotExist(err) {
		if err := os.MkdirAll(escrowDataDir, os.ModeDir|0755); err != nil {
			return err
		}
	}

	currentData, err := getState()
	if err != nil {
		currentData = map[string]string{}
	}

	mergedData := merge(currentData, data)

	jsonString, err := json.Marshal(mergedData)
	if err != nil {
		return err
	}
	if err := os.WriteFile(statePath, jsonString, 0644); err != nil {
		return fmt.Errorf("writing to file: %w", err)
	}

	return nil
}

func merge(maps ...map[string]string) map[string]string {
	merge := make(map[string]string)
	for _, m := range maps {
		for k, v := range m {
			merge[k] = v
		}
	}
	return merge
}

// getCaller returns the caller address of the flag, or the one in the local
// state if not given.
func getCaller(ctx *cli.Context) (string, error) {
	if caller := ctx.String("caller"); len(caller) > 0 {
		return caller, nil
	}
	state, err := getState()
	if err != nil {
		return "", err
	}
	caller, ok := state["caller"]
	if !ok || len(caller) <= 0 {
		return "", errors.New("set caller with --caller or `config set caller`")
	}
	return caller, nil
}

func getRPCServer() (string, error) {
	state, err := getState()
	if err != nil {
		return "", err
	}
	addr, ok := state["rpcserver"]
	if !ok || len(addr) <= 0 {
		return "", errors.New("set daemon address with `config set rpcserver`")
	}
	if !strings.HasPrefix(addr, "http://") && !strings.HasPrefix(addr, "https://") {
		addr = "http://" + addr
	}
	return strings.TrimSuffix(addr, "/"), nil
}

// doRequest sends the request to the daemon and prints the JSON response.
func doRequest(method, path string, body interface{}) error {
	addr, err := getRPCServer()
	if err != nil {
		return err
	}

	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequest(method, addr+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 300 {
		errResp := struct {
			Error string `json:"error"`
			Kind  string `json:"kind"`
		}{}
		if err := json.Unmarshal(respBody, &errResp); err != nil || len(errResp.Error) <= 0 {
			return fmt.Errorf("daemon replied with status %d", resp.StatusCode)
		}
		return fmt.Errorf("%s (%s)", errResp.Error, errResp.Kind)
	}

	if len(respBody) > 0 {
		printRespJSON(respBody)
	}
	return nil
}

func printRespJSON(resp []byte) {
	var out bytes.Buffer
	if err := json.Indent(&out, resp, "", "\t"); err != nil {
		fmt.Println("unable to decode response: ", err)
		return
	}
	fmt.Println(out.String())
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[escrow] %v\n", err)
	os.Exit(1)
}
