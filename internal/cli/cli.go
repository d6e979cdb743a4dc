package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"pilgrimage/internal/app"
	"pilgrimage/internal/config"
	"pilgrimage/internal/export"
	"pilgrimage/internal/migrate"
	"pilgrimage/internal/model"
	"pilgrimage/internal/repository"
	"pilgrimage/internal/service"
)

// RootCmd собирает команды pilgrimctl.
func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pilgrimctl",
		Short:         "Maintenance tool for the pilgrimage booking backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("config", "configs/config.yaml", "path to config.yaml")

	root.AddCommand(
		MigrateCmd(),
		ExportBookingsCmd(),
		QuoteCmd(),
		GrantRoleCmd(),
	)
	return root
}

func loadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Verify(); err != nil {
		return nil, nil, err
	}
	return cfg, cfg.Logging.NewLogger(cmd.ErrOrStderr()), nil
}

// openDB подключается без автоматических миграций: их применяет только команда migrate.
func openDB(cmd *cobra.Command) (*sqlx.DB, *config.Config, *slog.Logger, error) {
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	dbCfg := cfg.Database
	dbCfg.AutoMigrate = false
	db, err := app.OpenDB(cmd.Context(), dbCfg, log)
	if err != nil {
		return nil, nil, nil, err
	}
	return db, cfg, log, nil
}

// MigrateCmd применяет новые SQL-миграции.
func MigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending SQL migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, cfg, log, err := openDB(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			applied, err := migrate.Apply(cmd.Context(), db, cfg.Database.MigrationsDir, log)
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Database is up to date")
				return nil
			}
			for _, name := range applied {
				fmt.Fprintf(cmd.OutOrStdout(), "Applied %s\n", name)
			}
			return nil
		},
	}
}

// ExportBookingsCmd выгружает бронирования в xlsx.
func ExportBookingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export-bookings",
		Short: "Export bookings to an xlsx file",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, cfg, log, err := openDB(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			query, _ := cmd.Flags().GetString("query")
			dir, _ := cmd.Flags().GetString("out")
			if dir == "" {
				dir = cfg.Exports.Path
			}
			services := app.NewServices(db, log)
			bookings, err := services.Bookings.ListAll(cmd.Context(), query)
			if err != nil {
				return err
			}
			path, err := export.SaveBookings(dir, bookings, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d bookings to %s\n", len(bookings), path)
			return nil
		},
	}
	cmd.Flags().StringP("query", "q", "", "only bookings whose package or contact name contains this text")
	cmd.Flags().String("out", "", "output directory (default: exports.path from config)")
	return cmd
}

// QuoteCmd считает итоговую цену пакета по составляющим.
func QuoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Print the per-person package total for the given cost components",
		RunE: func(cmd *cobra.Command, args []string) error {
			var c model.CostBreakdown
			c.TravelCost, _ = cmd.Flags().GetFloat64("travel")
			c.AccommodationCost, _ = cmd.Flags().GetFloat64("accommodation")
			c.FoodCost, _ = cmd.Flags().GetFloat64("food")
			c.TaxAmount, _ = cmd.Flags().GetFloat64("tax")

			total, err := service.NewPackageService(nil).Quote(c)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Total price: %.2f\n", total)
			return nil
		},
	}
	cmd.Flags().Float64("travel", 0, "travel cost")
	cmd.Flags().Float64("accommodation", 0, "accommodation cost")
	cmd.Flags().Float64("food", 0, "food cost")
	cmd.Flags().Float64("tax", 0, "tax amount")
	return cmd
}

// GrantRoleCmd выдает роль пользователю; так назначается первый администратор.
func GrantRoleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grant-role <user-id> <admin|pilgrim|cleaner>",
		Short: "Grant a role to a user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, role := args[0], model.Role(args[1])
			if _, err := uuid.Parse(userID); err != nil {
				return fmt.Errorf("invalid user id %q: %w", userID, err)
			}
			if !role.Valid() {
				return fmt.Errorf("unknown role %q", role)
			}

			db, _, _, err := openDB(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			if err := repository.NewProfileRepository(db).GrantRole(ctx, userID, role); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Granted %s to %s\n", role, userID)
			return nil
		},
	}
}
