package purge

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"time"

	"github.com/dinerozz/parts-analytics-backend/config"
	"github.com/dinerozz/parts-analytics-backend/server"
	"github.com/spf13/cobra"
)

func GetPurgeCmd(cfg *config.Config, logger *slog.Logger) *cobra.Command {
	var days int

	purgeCmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete analytics events older than the retention window",
		Run: func(cmd *cobra.Command, args []string) {
			if days > 0 {
				cfg.Analytics.RetentionDays = days
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
			defer cancel()

			app, err := server.NewApp(ctx, cfg, logger)
			if err != nil {
				log.Fatal("❌ Failed to initialize application:", err)
			}
			defer app.Close()

			res, err := app.Retention.Purge(ctx)
			if err != nil {
				log.Fatal("❌ Failed to purge events:", err)
			}

			fmt.Printf("✅ Deleted %d events created before %s\n", res.Deleted, res.Cutoff.Format(time.RFC3339))
		},
	}

	purgeCmd.Flags().IntVar(&days, "days", 0, "Override RETENTION_DAYS for this run")

	return purgeCmd
}
