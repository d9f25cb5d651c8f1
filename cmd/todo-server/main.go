// Package main implements the todo-server command.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/shouta256/todo-next-spring/internal/app"
	"github.com/shouta256/todo-next-spring/internal/config"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

var (
	configPath string
	dbOverride string
)

var rootCmd = &cobra.Command{
	Use:           "todo-server",
	Short:         "Personal todo backend with folder grouping and duration estimates",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "todo-server v%s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath(), "Path to the TOML config file")
	rootCmd.PersistentFlags().StringVar(&dbOverride, "db", "", "Database DSN, overriding [database] dsn")
	rootCmd.AddCommand(versionCmd)
}

func main() {
	os.Exit(run())
}

func run() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "todo-server", "config.toml")
}

// loadConfig reads --config and applies --db.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if dbOverride != "" {
		cfg.Database.DSN = dbOverride
	}
	return cfg, nil
}

// openApp loads configuration and opens the database.
func openApp(cmd *cobra.Command, opts app.Options) (*app.App, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger, err := app.NewLogger(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	return app.New(cfg, logger, opts)
}
