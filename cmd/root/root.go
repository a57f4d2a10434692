// Package root contains the root command for the application
package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"fjacquet/receipt-csv/internal/config"
	"fjacquet/receipt-csv/internal/container"
	"fjacquet/receipt-csv/internal/logging"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input  string
	Output string
	Strict bool
}

var (
	// Log is the shared logger instance for commands
	Log logging.Logger = logging.GetLogger()

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "receipt-csv",
		Short: "A CLI tool to parse Mercadona and Consum receipts into structured invoices.",
		Long: `receipt-csv reads supermarket receipts (PDF or photographed PNG), detects the
vendor, extracts every purchased line and checks the item sum against the printed total.
Invoices can be printed as text, JSON or YAML, exported to CSV or mapped to ledger transactions.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to receipt-csv!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv()
			cfg, err := config.InitializeConfig()
			if err != nil {
				return err
			}
			if SharedFlags.Strict {
				cfg.Reconcile.Strict = true
			}

			c, err := container.NewContainer(cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			SetContainer(c)
			return nil
		},
		SilenceUsage: true,
	}

	// SharedFlags holds the flags accessible to all commands
	SharedFlags = CommonFlags{}

	appContainer *container.Container
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input receipt file (PDF or PNG)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
	Cmd.PersistentFlags().BoolVar(&SharedFlags.Strict, "strict", false, "Fail when the printed total does not match the sum of items")
}

// SetContainer installs the container used by the subcommands and adopts its logger.
func SetContainer(c *container.Container) {
	appContainer = c
	if c != nil {
		Log = c.GetLogger()
	}
}

// GetContainer returns the container built by the persistent pre-run hook.
func GetContainer() *container.Container {
	return appContainer
}

// MustContainer returns the container or an error when the pre-run hook did not run.
func MustContainer() (*container.Container, error) {
	if appContainer == nil {
		return nil, fmt.Errorf("container not initialized")
	}
	return appContainer, nil
}
