package command

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"simrig-shop/internal/catalog"
	apphttp "simrig-shop/internal/http"
	"simrig-shop/internal/repository/sqlite"
	"simrig-shop/internal/service"
	"simrig-shop/internal/session"
)

// Server timeouts.
const (
	readHeaderTimeout = 1 * time.Second
	readTimeout       = 5 * time.Second
	writeTimeout      = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the storefront",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (runErr error) {
			cfg, logger, err := loadEnv(cmd.Context())
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			// the schema is only created for a database file this process creates
			existed, err := sqlite.Exists(cfg.Database.Path)
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

			users := sqlite.NewUserRepository(db, logger)
			if !existed {
				logger.WithField("path", cfg.Database.Path).Info("initializing new database")
				if err := users.Init(cmd.Context()); err != nil {
					return err
				}
			}

			store, err := buildStorage(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}

			codec, err := session.NewCodec(cfg.Session.Secret)
			if err != nil {
				return err
			}
			sessions := session.NewManager(codec, session.Options{
				CookieName: cfg.Session.CookieName,
				TTL:        cfg.SessionTTL(),
				Secure:     cfg.Session.Secure,
			}, logger)

			handler, err := apphttp.NewHandler(
				service.NewUserService(users),
				catalog.New(store, cfg.Catalog.Key, logger),
				sessions,
				db,
				apphttp.Options{Locale: cfg.Site.Locale, StaticDir: cfg.Server.StaticDir},
				logger,
			)
			if err != nil {
				return err
			}

			if cfg.Server.Debug {
				gin.SetMode(gin.DebugMode)
			} else {
				gin.SetMode(gin.ReleaseMode)
			}
			router := gin.New()
			router.Use(gin.Recovery())
			if err := handler.RegisterRoutes(router); err != nil {
				return err
			}

			grp, ctx := errgroup.WithContext(cmd.Context())
			var lc net.ListenConfig
			listener, err := lc.Listen(ctx, "tcp", cfg.Server.Addr)
			if err != nil {
				return err
			}

			logger.WithField("address", listener.Addr().String()).Info("starting web server")
			serve(ctx, grp, &http.Server{Handler: router}, listener) //nolint:gosec // serve sets timeouts

			err = grp.Wait()
			logger.Info("web server stopped")
			return err
		},
	}
}

// serve runs srv on listener and shuts it down gracefully once ctx is done.
func serve(ctx context.Context, grp *errgroup.Group, srv *http.Server, listener net.Listener) {
	srv.ReadHeaderTimeout = readHeaderTimeout
	srv.ReadTimeout = readTimeout
	srv.WriteTimeout = writeTimeout

	grp.Go(func() error {
		err := srv.Serve(listener)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})

	grp.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
}
