// Package cli implements the thin command-line driver around the scoped
// query service. It resolves the acting user id from a flag or config and
// passes it explicitly into every operation; the core never reads identity
// from ambient state.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nhle/crm/internal/model"
	"github.com/nhle/crm/internal/service"
	"github.com/nhle/crm/internal/store"
)

var (
	cfgPath    string
	dbPath     string
	actingUser string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "crm",
	Short: "Track clients, projects, and tasks per user",
	Long: `A small CRM over a local SQLite database. Every record belongs to a
single user; all commands operate only on records owned by the acting
user (--user, or default_user from the config file).`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "",
		"Path to config file (default ~/.config/crm/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "",
		"Path to SQLite database file (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&actingUser, "user", "u", "",
		"Acting user id (overrides default_user from config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(clientCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(taskCmd)
}

// openService loads the config, opens the store, and builds the service.
// Callers must invoke the returned close function.
func openService() (*service.Service, func(), error) {
	path := cfgPath
	if path == "" {
		path = model.DefaultConfigPath()
	}
	cfg, err := model.LoadConfig(path)
	if err != nil {
		return nil, nil, err
	}
	if dbPath != "" {
		cfg.DatabasePath = dbPath
	}
	if actingUser == "" {
		actingUser = cfg.DefaultUser
	}

	st, err := store.NewSQLiteStore(cfg.DatabasePath)
	if err != nil {
		return nil, nil, err
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	return service.New(st, logger), func() { st.Close() }, nil
}

// requireUser returns the acting user id or an error if none was resolved.
func requireUser() (string, error) {
	if actingUser == "" {
		return "", fmt.Errorf(
			"acting user required: pass --user or set default_user in the config")
	}
	return actingUser, nil
}
