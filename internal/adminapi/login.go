package adminapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/talkincode/toughmall/internal/auth"
	"github.com/talkincode/toughmall/internal/domain"
	"github.com/talkincode/toughmall/internal/webserver"
	"github.com/talkincode/toughmall/pkg/common"
)

type adminLoginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// dummyHash keeps the bcrypt cost of a failed lookup in line with a real
// comparison so unknown usernames are not distinguishable by timing.
var dummyHash, _ = auth.HashPassword("toughmall-dummy")

func verifyCredentials(storedHash string, found bool, password string) error {
	if !found {
		auth.CheckPassword(dummyHash, password)
		return auth.ErrInvalidCredentials
	}
	if !auth.CheckPassword(storedHash, password) {
		return auth.ErrInvalidCredentials
	}
	return nil
}

func (s *AdminAPI) login(c echo.Context) error {
	var payload adminLoginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse request")
	}
	payload.Username = strings.TrimSpace(payload.Username)
	if payload.Username == "" || payload.Password == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Username and password are required")
	}

	db := webserver.GetDB(c)
	var admin domain.SysAdmin
	found := true
	err := db.Where("username = ?", payload.Username).First(&admin).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		found = false
	case err != nil:
		return webserver.FailInternal(c, err)
	}
	if admin.Status == common.DISABLED {
		found = false
	}
	if err := verifyCredentials(admin.Password, found, payload.Password); err != nil {
		zap.L().Warn("admin login rejected",
			zap.String("username", payload.Username),
			zap.String("ip", c.RealIP()))
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", err.Error())
	}

	token, err := auth.IssueAdminToken(s.cfg.Web.Secret, admin.ID, admin.Level)
	if err != nil {
		return webserver.FailInternal(c, err)
	}
	db.Model(&domain.SysAdmin{}).Where("id = ?", admin.ID).Update("last_login", time.Now())
	webserver.SetSessionCookie(c, auth.AdminCookie, token, auth.AdminTokenTTL)
	writeAdminLog(c, admin.Username, "login", "admin signed in")
	return ok(c, admin)
}

func (s *AdminAPI) logout(c echo.Context) error {
	if admin, err := s.currentAdmin(c); err == nil {
		writeAdminLog(c, admin.Username, "logout", "admin signed out")
	}
	webserver.ClearSessionCookie(c, auth.AdminCookie)
	return ok(c, map[string]interface{}{"logout": true})
}

func (s *AdminAPI) me(c echo.Context) error {
	admin, err := s.currentAdmin(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "admin session required")
	}
	return ok(c, admin)
}

// currentAdmin loads the operator account behind the verified admin session.
func (s *AdminAPI) currentAdmin(c echo.Context) (*domain.SysAdmin, error) {
	identity := webserver.GetIdentity(c)
	if !identity.IsAdmin() {
		return nil, auth.ErrInvalidCredentials
	}
	var admin domain.SysAdmin
	if err := webserver.GetDB(c).Where("id = ?", identity.ID).First(&admin).Error; err != nil {
		return nil, errors.Wrap(err, "load admin account")
	}
	return &admin, nil
}

// operatorName is the audit-trail name for the current session, falling
// back to the raw identity id when the account row is gone.
func (s *AdminAPI) operatorName(c echo.Context) string {
	if admin, err := s.currentAdmin(c); err == nil {
		return admin.Username
	}
	return fmt.Sprintf("admin:%d", webserver.GetIdentity(c).ID)
}
