package command

import (
	"errors"

	"github.com/spf13/cobra"

	"simrig-shop/internal/repository/sqlite"
)

func dbCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database commands",
	}
	cmd.AddCommand(dbInitCommand())
	return cmd
}

func dbInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the users schema",
		Long:  "Applies the schema migrations to the configured database. Existing data is kept.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (runErr error) {
			cfg, logger, err := loadEnv(cmd.Context())
			if err != nil {
				return err
			}
			db, err := sqlite.Open(cfg.Database.Path)
			if err != nil {
				return err
			}
			defer func() {
				if err := db.Close(); err != nil {
					runErr = errors.Join(runErr, err)
				}
			}()

			if err := sqlite.NewUserRepository(db, logger).Init(cmd.Context()); err != nil {
				return err
			}
			logger.WithField("path", cfg.Database.Path).Info("database initialized")
			return nil
		},
	}
}
