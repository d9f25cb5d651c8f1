package main

import (
	"fmt"

	"github.com/shouta256/todo-next-spring/internal/app"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	// Opening the database applies pending migrations.
	a, err := openApp(cmd, app.Options{Lock: true})
	if err != nil {
		return err
	}
	defer a.Close()

	fmt.Fprintf(cmd.OutOrStdout(), "Database migrated (%s)\n", a.DB.Driver())
	return nil
}
