package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "villagectl",
		Short: "Village economy calculators and maintenance commands",
		Long: `Offline helpers for the village tick server: resource accrual,
troop travel times, catalog tables and database migrations.`,
		SilenceUsage: true,
	}
	root.AddCommand(newAccrueCmd(), newDistanceCmd(), newCatalogCmd(), newMigrateCmd())
	return root
}
