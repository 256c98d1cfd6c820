package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// options are the persistent flags shared by every command.
type options struct {
	baseURL string
	timeout time.Duration
	user    string
	token   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "walletsavior-cli",
		Short:         "Wallet Savior CLI tool",
		Long:          `A command line interface for interacting with the Wallet Savior API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.baseURL, "url", "http://localhost:8080", "Base URL of the Wallet Savior API")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&opts.user, "user", os.Getenv("WALLETSAVIOR_USER"), "Caller user ID (X-User-ID)")
	rootCmd.PersistentFlags().StringVar(&opts.token, "token", os.Getenv("WALLETSAVIOR_TOKEN"), "Bearer token")

	rootCmd.AddCommand(
		accountsCmd(opts),
		transactionsCmd(opts),
		savingsCmd(opts),
		migrateCmd(),
	)

	return rootCmd
}
