package webserver

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/irvandi/gotoko/internal/app"
)

const (
	// ContextKeyDB is the echo context key the gorm handle is injected under.
	ContextKeyDB = "gotoko_db"
	// ContextKeyUploads is the echo context key the upload store is injected under.
	ContextKeyUploads = "gotoko_uploads"
	// SessionName is the cookie session used by the web console.
	SessionName = "gotoko_session"
	// SessionKeyUsername marks a logged-in operator inside the session.
	SessionKeyUsername = "username"
)

var server *WebServer

type WebServer struct {
	root   *echo.Echo
	appCtx app.AppContext
}

// Init builds the global web server instance.
func Init(appCtx app.AppContext) {
	server = NewWebServer(appCtx)
}

func NewWebServer(appCtx app.AppContext) *WebServer {
	s := &WebServer{root: echo.New(), appCtx: appCtx}
	s.root.Pre(middleware.RemoveTrailingSlash())
	s.root.HideBanner = true
	s.root.HidePort = true
	s.root.Debug = appCtx.Config().System.Debug
	s.root.JSONSerializer = NewJsoniterSerializer()
	s.root.Renderer = NewTemplateRenderer()

	s.root.Use(middleware.Recover())
	s.root.Use(session.Middleware(sessions.NewCookieStore([]byte(appCtx.Config().Web.Secret))))
	s.root.Use(injectDeps(appCtx))
	s.root.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			zap.L().Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
			)
			return nil
		},
	}))

	s.root.StaticFS("/public", echo.MustSubFS(publicFS, "public"))
	s.root.Static("/uploads", appCtx.Uploads().Dir())

	return s
}

// injectDeps exposes the storage gateway and upload store to handlers via
// the request context, tests substitute their own instances the same way.
func injectDeps(appCtx app.AppContext) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(ContextKeyDB, appCtx.DB())
			c.Set(ContextKeyUploads, appCtx.Uploads())
			return next(c)
		}
	}
}

// RequireSession gates page routes, anonymous requests go to the login form.
func RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := session.Get(SessionName, c)
		if err != nil || sess.Values[SessionKeyUsername] == nil {
			return c.Redirect(http.StatusFound, "/login")
		}
		return next(c)
	}
}

// Listen starts the web server and blocks.
func Listen() error {
	cfg := server.appCtx.Config()
	addr := fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port)
	zap.S().Infof("starting web server on %s", addr)
	return server.root.Start(addr)
}

// Shutdown stops the web server gracefully.
func Shutdown(ctx context.Context) error {
	return server.root.Shutdown(ctx)
}

// API routes are intentionally not session-gated, matching the observed
// deployment where the JSON API is consumed by external clients while only
// the rendered pages require a login.

func ApiGET(path string, h echo.HandlerFunc) {
	server.root.GET(path, h)
}

func ApiPOST(path string, h echo.HandlerFunc) {
	server.root.POST(path, h)
}

func ApiPUT(path string, h echo.HandlerFunc) {
	server.root.PUT(path, h)
}

func ApiDELETE(path string, h echo.HandlerFunc) {
	server.root.DELETE(path, h)
}

// PageGET registers a session-gated page route.
func PageGET(path string, h echo.HandlerFunc) {
	server.root.GET(path, h, RequireSession)
}

// PubGET registers an ungated page route (login form and friends).
func PubGET(path string, h echo.HandlerFunc) {
	server.root.GET(path, h)
}

func PubPOST(path string, h echo.HandlerFunc) {
	server.root.POST(path, h)
}
