package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jwhulst/userbase/internal/config"
	"github.com/jwhulst/userbase/internal/database"
	"github.com/jwhulst/userbase/internal/logging"
	"github.com/jwhulst/userbase/internal/maintenance"
	"github.com/jwhulst/userbase/internal/web"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// CLI flags
var (
	port        int
	bind        string
	allowSubnet string
	dbPath      string
	verbosity   int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "userbase",
		Short: "Userbase - User registry server",
		Long:  `Userbase is a small HTTP service for registering and looking up user accounts backed by SQLite.`,
		RunE:  run,
	}

	// Flags
	rootCmd.Flags().IntVarP(&port, "port", "p", 0, "HTTP server port (required, or set PORT env var)")
	rootCmd.Flags().StringVarP(&bind, "bind", "b", "", "IP address to bind to (e.g., 127.0.0.1, 0.0.0.0)")
	rootCmd.Flags().StringVarP(&allowSubnet, "allow-subnet", "a", "", "CIDR subnet allowed to connect (e.g., 192.168.1.0/24)")
	rootCmd.Flags().StringVarP(&dbPath, "db", "d", "./userbase.db", "SQLite database path (or set DB_PATH env var)")
	rootCmd.Flags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v debug, -vv trace)")

	// Version command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("userbase %s (commit: %s, built: %s)\n", version, commit, date)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	// Check for PORT env var if flag not set
	if port == 0 {
		if envPort := os.Getenv("PORT"); envPort != "" {
			if _, err := fmt.Sscanf(envPort, "%d", &port); err != nil {
				return fmt.Errorf("invalid PORT environment variable %q: %w", envPort, err)
			}
		}
	}

	// Check for DB_PATH env var if using default
	if dbPath == "./userbase.db" {
		if envDB := os.Getenv("DB_PATH"); envDB != "" {
			dbPath = envDB
		}
	}

	// Validate port
	if port == 0 {
		return fmt.Errorf("--port flag or PORT environment variable is required")
	}

	// Validate bind address if provided
	if bind != "" {
		if ip := net.ParseIP(bind); ip == nil {
			return fmt.Errorf("invalid bind address: %s", bind)
		}
	}

	// Validate and parse allow-subnet if provided
	var allowedNet *net.IPNet
	if allowSubnet != "" {
		_, parsedNet, err := net.ParseCIDR(allowSubnet)
		if err != nil {
			return fmt.Errorf("invalid allow-subnet CIDR: %s", allowSubnet)
		}
		allowedNet = parsedNet
	}

	// Setup console logging early; file output is added once settings are loaded
	setupLogging(verbosity)

	// Warn if binding to all interfaces without an allow list
	if (bind == "" || bind == "0.0.0.0" || bind == "::") && allowSubnet == "" {
		log.Warn().Msg("Server is accessible from all interfaces without subnet restrictions. Consider using --bind or --allow-subnet for security.")
	}

	log.Info().
		Str("version", version).
		Int("port", port).
		Str("bind", bind).
		Str("allow_subnet", allowSubnet).
		Str("database", dbPath).
		Msg("Starting Userbase")

	// Initialize database
	db, err := database.New(dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	// Run migrations
	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Seed default settings
	if err := db.InitializeDefaults(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize default settings")
	}

	// Switch to the configured log level and rotating file output
	loader := config.NewLoader(db)
	rotation := logging.RotationSettings{
		MaxSizeMB:  loader.Int("log.max_size_mb", logging.DefaultMaxSizeMB),
		MaxBackups: loader.Int("log.max_backups", logging.DefaultMaxBackups),
		MaxAgeDays: loader.Int("log.max_age_days", logging.DefaultMaxAgeDays),
		Compress:   loader.Bool("log.compress", logging.DefaultCompress),
	}
	logging.Apply(levelName(verbosity), rotation, logging.FilePathForDB(dbPath))

	// Create web server
	server := web.NewServer(db, port, bind, allowedNet)

	// Provision the admin API key when auth is enabled. The plaintext key is
	// only available at generation time, so it is logged exactly once.
	if enabled, err := server.APIKeyService().Enabled(); err != nil {
		log.Error().Err(err).Msg("Failed to check api key auth setting")
	} else if enabled {
		key, err := server.APIKeyService().EnsureKey()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to provision api key")
		}
		if key != "" {
			log.Info().Str("api_key", key).Msg("Generated admin API key; store it now, it will not be shown again")
		}
	}

	// Start scheduled database maintenance
	maintMgr := maintenance.NewManager(db)
	if err := maintMgr.Start(); err != nil {
		log.Warn().Err(err).Msg("Failed to start maintenance manager")
	}
	defer func() {
		if err := maintMgr.Stop(); err != nil {
			log.Error().Err(err).Msg("Failed to stop maintenance manager")
		}
	}()

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	// Start server
	if err := server.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}

	log.Info().Msg("Userbase stopped")
	return nil
}

func setupLogging(verbosity int) {
	// Pretty console output
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "2006-01-02 15:04:05"}

	switch verbosity {
	case 0:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case 1:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	default: // 2+
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	}

	log.Logger = zerolog.New(output).With().Timestamp().Logger()
}

func levelName(verbosity int) string {
	switch verbosity {
	case 0:
		return "info"
	case 1:
		return "debug"
	default:
		return "trace"
	}
}
