package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/Domenick1991/travelagency/config"
	"github.com/Domenick1991/travelagency/internal/database"
	"github.com/Domenick1991/travelagency/internal/logger"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations and exit",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		log := logger.New(cfg.LogLevel, cfg.Environment)

		db, err := database.Open(cmd.Context(), cfg.Database, log)
		if err != nil {
			return err
		}
		defer db.Close()

		applied, err := database.NewMigrator(db, log).Up(cmd.Context())
		if err != nil {
			return err
		}
		log.Info("migrations complete",
			slog.Int("applied", len(applied)),
			slog.String("names", strings.Join(applied, ",")),
		)
		return nil
	},
}
