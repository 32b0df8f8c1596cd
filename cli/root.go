// Package cli holds the marketsphere commands.
package cli

import (
	"fmt"
	"os"

	"github.com/Govind-619/MarketSphere/utils"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "marketsphere",
		Short: utils.AppName + " checkout payment service",
		Long: `MarketSphere serves the payment step of the storefront checkout.

It loads the order, resolves or creates its payment records against the
marketplace API and reconciles them into the single payment view the buyer
sees. Configuration comes from the environment and an optional .env file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newResolveCmd())
	rootCmd.AddCommand(newExportAttemptsCmd())
	return rootCmd
}

// Execute runs the root command
func Execute() error {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
