package root

import (
	"fmt"
	"log/slog"

	"github.com/dinerozz/parts-analytics-backend/cmd/migrate"
	"github.com/dinerozz/parts-analytics-backend/cmd/purge"
	"github.com/dinerozz/parts-analytics-backend/config"
	"github.com/dinerozz/parts-analytics-backend/server"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "parts-analytics-backend",
	Short: "Storefront analytics for the parts catalog",
}

func GetRootCmd(config *config.Config, logger *slog.Logger) *cobra.Command {
	dbURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		config.DB.User,
		config.DB.Password,
		config.DB.Host,
		config.DB.Port,
		config.DB.DBName,
		config.DB.SSLMode)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Run: func(cmd *cobra.Command, args []string) {
			server.RunServer(config, logger)
		},
	})

	rootCmd.AddCommand(migrate.GetMigrateCmd(dbURL))
	rootCmd.AddCommand(purge.GetPurgeCmd(config, logger))

	return rootCmd
}
