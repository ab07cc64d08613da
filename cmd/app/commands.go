package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"travelplanner/internal/infra"
	"travelplanner/internal/services"
)

const commandTimeout = 5 * time.Minute

// runOnce starts an fx app, runs fn with the populated targets and stops the
// app again.
func runOnce(cmd *cobra.Command, options fx.Option, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	app := fx.New(options)
	if err := app.Start(ctx); err != nil {
		return err
	}
	runErr := fn(ctx)
	if err := app.Stop(context.Background()); err != nil && runErr == nil {
		return err
	}
	return runErr
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				db     *gorm.DB
				logger *zap.Logger
			)
			return runOnce(cmd, fx.Options(infraModules, fx.Populate(&db, &logger)), func(ctx context.Context) error {
				if err := infra.AutoMigrate(db.WithContext(ctx)); err != nil {
					return err
				}
				logger.Info("schema migrated")
				return nil
			})
		},
	}
}

func newImportCatalogCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "import-catalog",
		Short: "Load destinations and attractions from an xlsx workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			var importer services.CatalogImportServiceInterface
			options := fx.Options(infraModules, domainModules, fx.Populate(&importer))

			return runOnce(cmd, options, func(ctx context.Context) error {
				f, err := os.Open(path)
				if err != nil {
					return err
				}
				defer f.Close()

				summary, err := importer.ImportWorkbook(ctx, f)
				if err != nil {
					return fmt.Errorf("import %s: %w", path, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(),
					"destinations: %d created, %d updated\nattractions: %d created, %d updated\n",
					summary.DestinationsCreated, summary.DestinationsUpdated,
					summary.AttractionsCreated, summary.AttractionsUpdated)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&path, "file", "", "path to the catalog workbook")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
