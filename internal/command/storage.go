package command

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"

	"simrig-shop/internal/config"
	"simrig-shop/internal/storage"
)

// buildStorage returns the object store holding the product list: S3 when a
// bucket is configured, the local catalog root otherwise.
func buildStorage(ctx context.Context, cfg config.Config, logger logrus.FieldLogger) (storage.Service, error) {
	if cfg.Catalog.Bucket == "" {
		logger.WithField("root", cfg.Catalog.Root).Info("using local catalog storage")
		return storage.NewLocalService(cfg.Catalog.Root), nil
	}

	loadOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.Storage.Region),
	}
	if cfg.AWS.Profile != "" {
		loadOpts = append(loadOpts, awscfg.WithSharedConfigProfile(cfg.AWS.Profile))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
			o.UsePathStyle = true
		}
	})
	logger.WithFields(logrus.Fields{
		"bucket": cfg.Catalog.Bucket,
		"region": cfg.Storage.Region,
	}).Info("using s3 catalog storage")
	return storage.NewS3Service(client, cfg.Catalog.Bucket), nil
}
