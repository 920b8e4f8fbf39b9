// cmd/missionctl/cmd_db.go
package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/missiondb/mission-dashboard/internal/storage"
)

var errNotConfirmed = errors.New("reset-db drops every table; re-run with --yes to confirm")

// newCheckDBCmd lists the tables of the mission database with their row counts.
func newCheckDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-db",
		Short: "Show the tables of the mission database and their row counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := storage.ConnectMissionDB(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			counts, err := storage.InspectDatabase(cmd.Context(), db)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Database: %s\n", cfg.DatabasePath())
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TABLE\tROWS")
			for _, c := range counts {
				fmt.Fprintf(w, "%s\t%d\n", c.Table, c.Rows)
			}
			return w.Flush()
		},
	}
}

// newResetDBCmd drops every table and replays the schema script with its seed data.
func newResetDBCmd() *cobra.Command {
	var (
		schemaFile string
		confirmed  bool
	)

	cmd := &cobra.Command{
		Use:   "reset-db",
		Short: "Drop all tables and recreate the schema with seed data",
		Long: `Drops every table of the mission database and replays the schema script.
All user-created rows are lost. Uses the embedded schema unless --schema
or SCHEMA_FILE names another script.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmed {
				return errNotConfirmed
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if schemaFile != "" {
				cfg.SchemaFile = schemaFile
			}

			script, err := storage.SchemaScript(cfg.SchemaFile)
			if err != nil {
				return err
			}

			// The script is replayed below; provisioning it on open would run it twice.
			db, err := storage.OpenMissionDB(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := storage.ResetSchema(cmd.Context(), db, script)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reset %s: %d statements executed\n", cfg.DatabasePath(), n)
			return nil
		},
	}

	cmd.Flags().StringVar(&schemaFile, "schema", "", "SQL script to replay instead of the configured schema")
	cmd.Flags().BoolVar(&confirmed, "yes", false, "Confirm dropping all data")
	return cmd
}
