package main

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-ReservationService/internal/config"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:           "reservation-service",
		Short:         "Сервис бронирования столов ресторана",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "config.toml", "путь к TOML конфигурации")

	root.AddCommand(newServeCommand(), newMigrateCommand(), newCheckCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newCheckCommand проверяет конфигурацию без запуска сервиса
func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Проверить конфигурацию",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			cmd.Printf("Config %s is valid (port=%d, db=%s@%s:%d/%s, sink=%s)\n",
				configPath, cfg.Server.HTTPPort, cfg.Database.User, cfg.Database.Host,
				cfg.Database.Port, cfg.Database.DBName, cfg.Notifications.Sink)
			return nil
		},
	}
}

// openDB открывает пул соединений и проверяет доступность базы
func openDB(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}
