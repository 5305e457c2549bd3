package command

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"simrig-shop/internal/catalog"
	"simrig-shop/internal/storage"
)

func catalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Product list commands",
	}
	cmd.AddCommand(catalogPushCommand())
	return cmd
}

func catalogPushCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "push FILE",
		Short: "Publish a product list",
		Long: "Validates FILE as a JSON array of products and uploads it to the configured\n" +
			"catalog key, in S3 when catalog.bucket is set and below catalog.root otherwise.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadEnv(cmd.Context())
			if err != nil {
				return err
			}

			path := args[0]
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			products, skipped, err := catalog.Decode(f)
			_ = f.Close()
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			if len(skipped) > 0 {
				return fmt.Errorf("%s: %w", path, errors.Join(skipped...))
			}

			store, err := buildStorage(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}

			location, err := store.Upload(cmd.Context(), cfg.Catalog.Key, path, storage.UploadOptions{
				ContentType: "application/json",
				ProgressCallback: func(done, total int64) {
					logger.WithFields(logrus.Fields{"done": done, "total": total}).Debug("upload progress")
				},
			})
			if err != nil {
				return err
			}

			logger.WithFields(logrus.Fields{
				"location": location,
				"products": len(products),
			}).Info("product list published")
			_, err = fmt.Fprintln(cmd.OutOrStdout(), location)
			return err
		},
	}
}
