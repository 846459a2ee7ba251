package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-ReservationService/internal/config"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/migrations"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
)

func newMigrateCommand() *cobra.Command {
	var printOnly bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Применить схему БД",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if printOnly {
				cmd.Print(migrations.Schema())
				return nil
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			db, err := openDB(cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := migrations.Migrate(context.Background(), dbmetrics.Wrap(db, nil)); err != nil {
				return err
			}
			cmd.Printf("Schema applied to %s\n", cfg.Database.DBName)
			return nil
		},
	}
	cmd.Flags().BoolVar(&printOnly, "print", false, "только вывести SQL схемы")

	return cmd
}
