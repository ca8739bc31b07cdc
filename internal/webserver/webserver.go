package webserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/talkincode/toughmall/config"
	"github.com/talkincode/toughmall/internal/auth"
)

const (
	ctxKeyDB       = "toughmall_db"
	ctxKeyIdentity = "toughmall_identity"
)

// WebServer owns the echo engine and the route groups the API packages
// register themselves on. The database handle and identity are injected
// into every request context; handlers never touch globals.
type WebServer struct {
	cfg  *config.AppConfig
	db   *gorm.DB
	root *echo.Echo

	api         *echo.Group
	adminPublic *echo.Group
	admin       *echo.Group
}

// New builds the web server with the standard middleware stack: recover,
// request logging through zap, db/identity injection, and an echo-jwt
// guard over the back-office group.
func New(cfg *config.AppConfig, db *gorm.DB) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = NewJSONSerializer()
	e.HTTPErrorHandler = errorHandler

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			zap.L().Error("panic recovered",
				zap.String("path", c.Path()),
				zap.Error(err),
				zap.ByteString("stack", stack))
			return err
		},
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			zap.L().Debug("http request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency))
			return nil
		},
	}))
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(ctxKeyDB, db)
			return next(c)
		}
	})

	ws := &WebServer{cfg: cfg, db: db, root: e}

	// storefront group: identity resolved once per request, failures fold
	// to anonymous so public routes keep working
	ws.api = e.Group("/api", ws.resolveIdentity)

	// back-office: the login route is open, everything else is guarded by
	// echo-jwt over the admin cookie and never fails open
	ws.adminPublic = e.Group("/admin/api")
	ws.admin = e.Group("/admin/api", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.Web.Secret),
		TokenLookup: "cookie:" + auth.AdminCookie,
		ErrorHandler: func(c echo.Context, err error) error {
			return Fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "admin session required")
		},
	}), ws.resolveIdentity, ws.requireAdmin)

	return ws
}

// API is the public storefront route group.
func (ws *WebServer) API() *echo.Group {
	return ws.api
}

// AdminAPI is the guarded back-office route group.
func (ws *WebServer) AdminAPI() *echo.Group {
	return ws.admin
}

// AdminPublic is the unguarded back-office group (login only).
func (ws *WebServer) AdminPublic() *echo.Group {
	return ws.adminPublic
}

// Echo exposes the underlying engine for tests.
func (ws *WebServer) Echo() *echo.Echo {
	return ws.root
}

// Start blocks serving HTTP until the listener fails or Shutdown is called.
func (ws *WebServer) Start() error {
	addr := fmt.Sprintf("%s:%d", ws.cfg.Web.Host, ws.cfg.Web.Port)
	zap.L().Info("webserver starting", zap.String("addr", addr))
	err := ws.root.Start(addr)
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (ws *WebServer) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return ws.root.Shutdown(ctx)
}

// resolveIdentity verifies the session cookies once and stashes the result.
// Verification failures of any kind yield the anonymous identity.
func (ws *WebServer) resolveIdentity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity := auth.Anonymous
		if cookie, err := c.Cookie(auth.AdminCookie); err == nil {
			identity = auth.VerifyToken(ws.cfg.Web.Secret, cookie.Value)
		}
		if identity.IsAnonymous() {
			if cookie, err := c.Cookie(auth.UserCookie); err == nil {
				identity = auth.VerifyToken(ws.cfg.Web.Secret, cookie.Value)
			}
		}
		c.Set(ctxKeyIdentity, identity)
		return next(c)
	}
}

// requireAdmin rejects sessions that verified but do not carry the admin
// typ (for instance a user token planted in the admin cookie).
func (ws *WebServer) requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !GetIdentity(c).IsAdmin() {
			return Fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "admin session required")
		}
		return next(c)
	}
}

// GetDB returns the request-scoped database handle.
func GetDB(c echo.Context) *gorm.DB {
	db, _ := c.Get(ctxKeyDB).(*gorm.DB)
	return db
}

// GetIdentity returns the verified identity resolved for this request.
func GetIdentity(c echo.Context) auth.Identity {
	id, ok := c.Get(ctxKeyIdentity).(auth.Identity)
	if !ok {
		return auth.Anonymous
	}
	return id
}

// SetSessionCookie writes an http-only, same-site session cookie.
func SetSessionCookie(c echo.Context, name, token string, ttl time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the named cookie.
func ClearSessionCookie(c echo.Context, name string) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// errorHandler turns stray echo errors into the standard envelope without
// leaking internals.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	if he, ok := err.(*echo.HTTPError); ok {
		msg := fmt.Sprintf("%v", he.Message)
		_ = Fail(c, he.Code, codeForStatus(he.Code), msg)
		return
	}
	zap.L().Error("unhandled request error", zap.String("path", c.Path()), zap.Error(err))
	_ = Fail(c, http.StatusInternalServerError, "INTERNAL", "internal server error")
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "INVALID_REQUEST"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusConflict:
		return "CONFLICT"
	}
	return "INTERNAL"
}
