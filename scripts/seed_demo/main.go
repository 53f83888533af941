// Command seed_demo fills an empty portfolio database with demo galleries,
// videos, a blog post and social links.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jaysperspective/JoshuaIsaiahart/internal/config"
	"github.com/jaysperspective/JoshuaIsaiahart/internal/db"
	"github.com/jaysperspective/JoshuaIsaiahart/internal/logger"
	"github.com/jaysperspective/JoshuaIsaiahart/internal/storage"
	"github.com/spf13/cobra"
)

func main() {
	cmd := &cobra.Command{
		Use:   "seed_demo",
		Short: "Seed an empty database with demo content",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger.Init(cfg.LogLevel, "text")

			if err := db.Init(cfg.DatabasePath); err != nil {
				return fmt.Errorf("init database: %w", err)
			}
			files, err := storage.NewImageStore(cfg.UploadDir, cfg.UploadURLPath, cfg.MaxUploadBytes())
			if err != nil {
				return err
			}

			summary, err := seed(cmd.Context(), db.DB, files, logger.Log)
			if err != nil {
				return err
			}
			if !summary.Skipped {
				fmt.Fprintf(cmd.OutOrStdout(), "seeded %d galleries (%d images), %d videos, %d posts\n",
					summary.Galleries, summary.Images, summary.Videos, summary.Blogs)
			}
			return nil
		},
	}

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
