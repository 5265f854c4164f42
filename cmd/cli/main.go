package main

import (
	"encoding/json"
	"fmt"
	"os"

	"nextgen/adapters/excel"
	"nextgen/adapters/sqlstore"
	"nextgen/app"
	"nextgen/internal"
	"nextgen/internal/config"
	"nextgen/internal/generator"
	"nextgen/models"
	"nextgen/ports"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "nextgen-cli",
		Short:         "NextGen CLI for generating, filtering and exporting engagement data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newGenerateCmd(),
		newReportCmd(),
		newExportCmd(),
		newPresetsCmd(),
	)
	return rootCmd
}

func newGenerateCmd() *cobra.Command {
	cfg := generator.DefaultConfig()
	var out string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a synthetic engagement dataset",
		Long: `Generate a synthetic engagement dataset. Rows from the "Medium" domain are
included; the loader drops them.

Example: nextgen-cli generate --out user_data.csv --rows 500 --seed 42`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := generator.New(cfg)
			if err != nil {
				return err
			}
			if err := gen.WriteCSV(out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d rows to %s\n", cfg.Rows, out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "user_data.csv", "Output file (.csv or .xlsx)")
	cmd.Flags().IntVar(&cfg.Rows, "rows", cfg.Rows, "Number of rows")
	cmd.Flags().IntVar(&cfg.Users, "users", cfg.Users, "Number of distinct user ids")
	cmd.Flags().Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed")

	return cmd
}

func newReportCmd() *cobra.Command {
	var data string
	var asJSON bool
	flags := &criteriaFlags{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print KPIs and summary tables for a filtered view",
		Long: `Print KPIs and summary tables for a filtered view as Markdown, or the full
snapshot as JSON.

Example: nextgen-cli report --data user_data.csv --domain Coursera --start 2025-08-10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := loadService(data)
			if err != nil {
				return err
			}
			crit, err := flags.resolve(cmd, service.DefaultCriteria())
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(service.Snapshot(crit))
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), service.Report(crit))
			return err
		},
	}

	cmd.Flags().StringVar(&data, "data", "user_data.csv", "Dataset file (.csv or .xlsx)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the snapshot as JSON")
	flags.bind(cmd)

	return cmd
}

func newExportCmd() *cobra.Command {
	var data, out string
	flags := &criteriaFlags{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the filtered view to CSV or XLSX",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := loadService(data)
			if err != nil {
				return err
			}
			crit, err := flags.resolve(cmd, service.DefaultCriteria())
			if err != nil {
				return err
			}

			records := service.View(crit).Records()
			if err := excel.Save(out, records); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d records to %s\n", len(records), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&data, "data", "user_data.csv", "Dataset file (.csv or .xlsx)")
	cmd.Flags().StringVar(&out, "out", excel.FilteredExportName+".csv", "Output file (.csv or .xlsx)")
	flags.bind(cmd)

	return cmd
}

func newPresetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "Manage saved filter presets",
	}

	cmd.AddCommand(newPresetsListCmd(), newPresetsSaveCmd(), newPresetsDeleteCmd())
	return cmd
}

func newPresetsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved presets, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPresets(cmd, func(repo ports.PresetRepository) error {
				presets, err := repo.List(cmd.Context())
				if err != nil {
					return err
				}
				for _, p := range presets {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", p.ID, p.CreatedAt.Format("2006-01-02 15:04:05"), p.Name)
				}
				return nil
			})
		},
	}
}

func newPresetsSaveCmd() *cobra.Command {
	var data, name string
	flags := &criteriaFlags{}

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save the given criteria under a name",
		Long: `Save the given criteria under a name. Criteria not passed on the command line
default to the full range of the dataset.

Example: nextgen-cli presets save --name students --user-type Student`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := loadService(data)
			if err != nil {
				return err
			}
			crit, err := flags.resolve(cmd, service.DefaultCriteria())
			if err != nil {
				return err
			}

			return withPresets(cmd, func(repo ports.PresetRepository) error {
				preset := models.NewPreset(name, crit)
				if err := repo.Save(cmd.Context(), preset); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), preset.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&data, "data", "user_data.csv", "Dataset file used for default criteria")
	cmd.Flags().StringVar(&name, "name", "", "Preset name")
	_ = cmd.MarkFlagRequired("name")
	flags.bind(cmd)

	return cmd
}

func newPresetsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a preset by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid preset id %q: %w", args[0], err)
			}
			return withPresets(cmd, func(repo ports.PresetRepository) error {
				return repo.Delete(cmd.Context(), id)
			})
		},
	}
}

func loadService(path string) (*app.DashboardService, error) {
	logger := internal.NewDefaultLogger()
	dataset, err := excel.Load(excel.DefaultSourceConfig(path), logger)
	if err != nil {
		return nil, err
	}
	return app.NewDashboardService(dataset, logger), nil
}

// withPresets opens the configured preset store for the duration of fn
func withPresets(cmd *cobra.Command, fn func(ports.PresetRepository) error) error {
	appConfig, err := config.Load()
	if err != nil {
		return err
	}

	db, err := sqlstore.Open(cmd.Context(), appConfig.Presets.Driver, appConfig.Presets.DSN)
	if err != nil {
		return err
	}
	defer db.Close()

	return fn(sqlstore.NewPresetRepository(db))
}
