package http

import (
	"database/sql"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"simrig-shop/internal/catalog"
	"simrig-shop/internal/domain"
	"simrig-shop/internal/service"
	"simrig-shop/internal/session"
)

// session keys
const (
	keyMessage  = "message"
	keyUserID   = "user_id"
	keyUsername = "username"
)

// Options configure the site surface.
type Options struct {
	// Locale selects the message table, "en" when empty.
	Locale string
	// StaticDir is served under /static when it exists.
	StaticDir string
}

// Handler wires HTTP routes to domain services.
type Handler struct {
	users    service.UserService
	catalog  *catalog.Catalog
	sessions *session.Manager
	db       *sql.DB
	msg      *Messages
	opts     Options
	logger   logrus.FieldLogger
}

func NewHandler(
	users service.UserService,
	products *catalog.Catalog,
	sessions *session.Manager,
	db *sql.DB,
	opts Options,
	logger logrus.FieldLogger,
) (*Handler, error) {
	if opts.Locale == "" {
		opts.Locale = "en"
	}
	msg, ok := Locales[opts.Locale]
	if !ok {
		return nil, fmt.Errorf("unsupported locale %q", opts.Locale)
	}
	return &Handler{
		users:    users,
		catalog:  products,
		sessions: sessions,
		db:       db,
		msg:      msg,
		opts:     opts,
		logger:   logger,
	}, nil
}

func (h *Handler) RegisterRoutes(router *gin.Engine) error {
	pages, err := newPageRenderer()
	if err != nil {
		return err
	}
	router.HTMLRender = pages

	if h.opts.StaticDir != "" {
		if fi, err := os.Stat(h.opts.StaticDir); err == nil && fi.IsDir() {
			router.Static("/static", h.opts.StaticDir)
		} else {
			h.logger.WithField("dir", h.opts.StaticDir).Warn("static directory not found, /static disabled")
		}
	}

	site := router.Group("/")
	site.Use(requestLogger(h.logger), connectionScope(h.db, h.logger), h.sessions.Middleware())
	{
		site.GET("/", h.index)

		site.GET("/reg", h.registerForm)
		site.POST("/reg", h.register)
		site.GET("/login", h.loginForm)
		site.POST("/login", h.login)
		site.GET("/logout", h.logout)

		site.GET("/bundles", h.catalogPage(domain.CategoryBundles))
		site.GET("/wheelbase", h.catalogPage(domain.CategoryWheelbases))
		site.GET("/wheels", h.catalogPage(domain.CategoryWheels))
		site.GET("/pedals", h.catalogPage(domain.CategoryPedals))
		site.GET("/addons", h.catalogPage(domain.CategoryAddons))

		for _, name := range []string{"cockpits", "equip", "about", "rent", "cart"} {
			site.GET("/"+name, h.staticPage(name))
		}
	}
	return nil
}

// view starts the page model with the locale and the logged in user.
func (h *Handler) view(c *gin.Context) pageData {
	username, _ := session.Default(c).String(keyUsername)
	return pageData{Msg: h.msg, Username: username}
}

func (h *Handler) index(c *gin.Context) {
	c.HTML(http.StatusOK, pageIndex, h.view(c))
}

func (h *Handler) catalogPage(label string) gin.HandlerFunc {
	return func(c *gin.Context) {
		data := h.view(c)
		data.Title = h.msg.Categories[label]
		data.Category = label
		data.Products = h.catalog.ForCategory(c.Request.Context(), label)
		c.HTML(http.StatusOK, pageCatalog, data)
	}
}

func (h *Handler) staticPage(name string) gin.HandlerFunc {
	page := h.msg.StaticPages[name]
	return func(c *gin.Context) {
		data := h.view(c)
		data.Title = page.Title
		data.Body = page.Body
		c.HTML(http.StatusOK, pageStatic, data)
	}
}
