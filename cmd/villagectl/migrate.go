package main

import (
	"fmt"
	"io"
	"os"

	gormrepo "villagetick/internal/adapter/repo/gorm"
	"villagetick/migrations"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	var dsn string
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending SQL migrations to postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dsn == "" {
				return fmt.Errorf("--dsn or VILLAGETICK_DB_DSN is required")
			}
			db, err := gormrepo.OpenPostgres(dsn)
			if err != nil {
				return err
			}
			applied, err := gormrepo.ApplyMigrations(cmd.Context(), db, migrations.FS)
			reportMigrations(cmd.OutOrStdout(), applied)
			return err
		},
	}
	cmd.Flags().StringVar(&dsn, "dsn", os.Getenv("VILLAGETICK_DB_DSN"), "postgres DSN")
	return cmd
}

func reportMigrations(w io.Writer, applied []string) {
	if len(applied) == 0 {
		color.New(color.FgYellow).Fprintln(w, "Schema is up to date.")
		return
	}
	ok := color.New(color.FgGreen, color.Bold)
	for _, version := range applied {
		ok.Fprintf(w, "✓ applied %s\n", version)
	}
}

