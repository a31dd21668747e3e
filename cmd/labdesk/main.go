package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/blutspende/labdesk"
	"github.com/blutspende/labdesk/config"
	"github.com/blutspende/labdesk/db"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	// a missing .env is fine, the environment wins anyway
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "labdesk",
		Short: "Laboratory result entry and report service",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(catalogCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Migrate the database and start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			configuration, err := readConfiguration()
			if err != nil {
				return err
			}

			ctx := context.Background()
			postgres, err := connectPostgres(ctx, &configuration)
			if err != nil {
				return err
			}
			defer postgres.Close()

			sqlConn, err := postgres.GetDbConnection()
			if err != nil {
				return err
			}

			service, err := labdesk.New(ctx, &configuration, sqlConn)
			if err != nil {
				log.Error().Err(err).Msg("Failed to set up labdesk")
				return err
			}
			return service.Start()
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			configuration, err := readConfiguration()
			if err != nil {
				return err
			}

			ctx := context.Background()
			postgres, err := connectPostgres(ctx, &configuration)
			if err != nil {
				return err
			}
			defer postgres.Close()

			sqlConn, err := postgres.GetDbConnection()
			if err != nil {
				return err
			}
			if err = labdesk.Migrate(ctx, sqlConn, configuration.DBSchema); err != nil {
				log.Error().Err(err).Msg("Migration failed")
				return err
			}
			log.Info().Str("schema", configuration.DBSchema).Msg("Migrations applied")
			return nil
		},
	}
}

func catalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog [testType]",
		Short: "List the test types or the parameters of one test type",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				for _, testType := range labdesk.TestTypes() {
					fmt.Fprintln(out, testType)
				}
				return nil
			}

			testType := labdesk.TestType(args[0])
			if !testType.IsKnown() {
				return fmt.Errorf("unknown test type %q", args[0])
			}

			writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "PARAMETER\tUNIT\tNORMAL RANGE")
			for _, parameter := range labdesk.LookupParameters(testType) {
				fmt.Fprintf(writer, "%s\t%s\t%s\n", parameter.Name, parameter.Unit, parameter.NormalRange())
			}
			return writer.Flush()
		},
	}
}

func readConfiguration() (config.Configuration, error) {
	configuration, err := config.ReadConfiguration()
	if err != nil {
		return configuration, err
	}
	zerolog.SetGlobalLevel(configuration.LogLevel)
	if configuration.Development {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return configuration, nil
}

func connectPostgres(ctx context.Context, configuration *config.Configuration) (db.Postgres, error) {
	postgres := db.NewPostgres(ctx, configuration)
	if err := postgres.Connect(); err != nil {
		log.Error().Err(err).Msg("Failed to connect to postgres")
		return nil, err
	}
	return postgres, nil
}
