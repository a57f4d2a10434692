package main

import (
	"fmt"
	"os"

	"fjacquet/receipt-csv/cmd/batch"
	"fjacquet/receipt-csv/cmd/ledger"
	"fjacquet/receipt-csv/cmd/parse"
	"fjacquet/receipt-csv/cmd/root"
	"fjacquet/receipt-csv/internal/config"
)

func init() {
	// Load .env before the root logger is built so LOG_LEVEL applies from the start.
	config.LoadEnv()
	root.Log = config.ConfigureLogging()

	root.Init()

	root.Cmd.AddCommand(parse.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
	root.Cmd.AddCommand(ledger.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
