package main

import (
	"awesome_web/internal/app"
	"awesome_web/internal/connectors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newSchemaCmd(configFile *string) *cobra.Command {
	var apply bool

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print create table statements for the blog models",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, l, err := setup(*configFile)
			if err != nil {
				return err
			}
			defer l.Close()

			dialect, err := connectors.DialectFor(cfg.Database.Driver)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, s := range app.Schemas() {
				for _, ddl := range dialect.CreateTableSQL(s.Describe()) {
					fmt.Fprintln(out, strings.TrimSpace(ddl)+";")
				}
			}
			if !apply {
				return nil
			}

			pool, err := connectors.CreatePool(cmd.Context(), cfg.Database, l)
			if err != nil {
				l.Fatalf("Failed to connect to %s: %v", cfg.Database.Driver, err)
			}
			defer pool.Close()

			for _, s := range app.Schemas() {
				l.Infof("Creating table %s", s.Table())
				if err := pool.CreateTable(cmd.Context(), s.Describe()); err != nil {
					return fmt.Errorf("create table %s: %w", s.Table(), err)
				}
			}
			l.Info("Tables created successfully")
			return nil
		},
	}
	cmd.Flags().BoolVar(&apply, "apply", false, "execute statements against the configured database")
	return cmd
}
