package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"birthday-tracker-api/internal/config"
	"birthday-tracker-api/internal/database"
	"birthday-tracker-api/internal/logging"
	"birthday-tracker-api/internal/secrets"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfg     *config.Config
	logger  *logrus.Logger
	verbose bool
)

// rootCmd applies the embedded schema migrations to the configured database
var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the birthdays schema",
	Long: `Applies, rolls back and inspects the birthdays schema with golang-migrate.
Connection settings and credentials come from the same environment as the service.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		level := cfg.LogLevel
		if verbose {
			level = "debug"
		}
		logger = logging.New(logging.Options{Level: level, Format: cfg.LogFormat})
		return nil
	},
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrations(cmd.Context(), func(m *database.MigrationManager) error {
			return m.RunMigrations()
		})
	},
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the last migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrations(cmd.Context(), func(m *database.MigrationManager) error {
			return m.RollbackMigration()
		})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the applied schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrations(cmd.Context(), func(m *database.MigrationManager) error {
			status, err := m.GetMigrationStatus()
			if err != nil {
				return err
			}
			if !status.Applied {
				fmt.Fprintln(cmd.OutOrStdout(), "no migrations applied")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", status.Version, status.Dirty)
			return nil
		})
	},
}

var forceCmd = &cobra.Command{
	Use:   "force VERSION",
	Short: "Mark a version as applied without running it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		version, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid version %q: %w", args[0], err)
		}
		return withMigrations(cmd.Context(), func(m *database.MigrationManager) error {
			return m.ForceVersion(version)
		})
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.AddCommand(upCmd, downCmd, versionCmd, forceCmd)
}

// withMigrations opens the database with resolved credentials and runs fn
// against a migration manager that owns the handle
func withMigrations(ctx context.Context, fn func(*database.MigrationManager) error) error {
	creds, err := resolveCredentials(ctx)
	if err != nil {
		return err
	}

	connConfig := cfg.Database.ToConnectionConfig(logger)
	db, err := database.NewConnectionFactory(logger).Open(ctx, connConfig, creds)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	dialect, err := cfg.Database.Dialect()
	if err != nil {
		db.Close()
		return err
	}

	manager := database.NewMigrationManager(db, dialect, logger)
	defer func() {
		if err := manager.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close migration manager")
		}
	}()

	return fn(manager)
}

func resolveCredentials(ctx context.Context) (*secrets.Credentials, error) {
	var resolver secrets.Resolver
	switch cfg.Secrets.Provider {
	case config.SecretsProviderEnv:
		resolver = secrets.NewStaticResolver(*cfg.Secrets.Credentials())
	default:
		resolver = secrets.NewSecretsManagerResolver(logger)
	}
	return resolver.Resolve(ctx, cfg.Secrets.SecretName, cfg.Secrets.Region)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
