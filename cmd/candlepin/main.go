package main

import (
	"os"

	"github.com/spf13/cobra"

	"candlepin/internal/interfaces/cli/migrate"
	"candlepin/internal/interfaces/cli/seed"
	"candlepin/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "candlepin",
		Short: "Candlepin - entitlement and compliance service",
		Long:  `Candlepin tracks subscription pools, consumer entitlements and compliance, and reconciles hypervisor guest reports.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		seed.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
