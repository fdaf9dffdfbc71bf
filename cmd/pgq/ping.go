package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/pgq-go/pgq/internal/cli"
)

var pingTimeout time.Duration

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Verify database connectivity",
	Long: `Verify database connectivity using the configured DSN.

The DSN comes from database.url in pgq.yaml, the PGQ_DATABASE_* environment
variables, or the discrete database.* fields.`,
	Example: `  # Ping using pgq.yaml configuration
  pgq ping

  # Ping a specific database
  PGQ_DATABASE_URL=postgres://localhost/mydb pgq ping`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dsn, err := cfg.DSN()
		if err != nil {
			return cli.ConfigError("resolving database DSN", err)
		}

		db, err := sql.Open("postgres", dsn)
		if err != nil {
			return cli.DBConnectError("opening database handle", err)
		}
		defer func() { _ = db.Close() }()

		ctx, cancel := context.WithTimeout(cmd.Context(), pingTimeout)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			return cli.DBConnectError("pinging database", err)
		}

		var version string
		if err := db.QueryRowContext(ctx, "SELECT version()").Scan(&version); err != nil {
			return cli.DBConnectError("querying server version", err)
		}

		if !quiet {
			fmt.Println("Connection OK")
			fmt.Println(version)
		}
		return nil
	},
}

func init() {
	pingCmd.Flags().DurationVar(&pingTimeout, "timeout", 5*time.Second, "connection timeout")
}
