package shopapi

import (
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

type registerPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// dummyHash keeps the bcrypt cost of a failed lookup in line with a real
// comparison so unknown emails are not distinguishable by timing.
var dummyHash, _ = auth.HashPassword("toughmall-dummy")

// verifyCredentials folds every failure mode into the one generic
// credentials error.
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

func (s *ShopAPI) register(c echo.Context) error {
	var payload registerPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse request")
	}
	payload.Name = strings.TrimSpace(payload.Name)
	payload.Email = strings.ToLower(strings.TrimSpace(payload.Email))
	if payload.Name == "" || payload.Email == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Name and email are required")
	}
	if !strings.Contains(payload.Email, "@") {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Email is malformed")
	}
	if len(payload.Password) < 8 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Password must be at least 8 characters")
	}

	db := webserver.GetDB(c)
	var count int64
	if err := db.Model(&domain.User{}).Where("email = ?", payload.Email).Count(&count).Error; err != nil {
		return webserver.FailInternal(c, err)
	}
	if count > 0 {
		return fail(c, http.StatusConflict, "EMAIL_TAKEN", "Email is already registered")
	}

	hash, err := auth.HashPassword(payload.Password)
	if err != nil {
		return webserver.FailInternal(c, err)
	}
	user := domain.User{
		ID:        common.UUIDint64(),
		Name:      payload.Name,
		Email:     payload.Email,
		Password:  hash,
		Status:    common.ENABLED,
		LastLogin: time.Now(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := db.Create(&user).Error; err != nil {
		return webserver.FailInternal(c, err)
	}

	token, err := auth.IssueUserToken(s.cfg.Web.Secret, user.ID)
	if err != nil {
		return webserver.FailInternal(c, err)
	}
	webserver.SetSessionCookie(c, auth.UserCookie, token, auth.UserTokenTTL)
	zap.L().Info("user registered", zap.String("email", user.Email))
	return ok(c, user)
}

func (s *ShopAPI) login(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse request")
	}
	payload.Email = strings.ToLower(strings.TrimSpace(payload.Email))
	if payload.Email == "" || payload.Password == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Email and password are required")
	}

	db := webserver.GetDB(c)
	var user domain.User
	found := true
	err := db.Where("email = ?", payload.Email).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		found = false
	case err != nil:
		return webserver.FailInternal(c, err)
	}

	if user.Status == common.DISABLED {
		found = false
	}
	if err := verifyCredentials(user.Password, found, payload.Password); err != nil {
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", err.Error())
	}

	token, err := auth.IssueUserToken(s.cfg.Web.Secret, user.ID)
	if err != nil {
		return webserver.FailInternal(c, err)
	}
	db.Model(&domain.User{}).Where("id = ?", user.ID).Update("last_login", time.Now())
	webserver.SetSessionCookie(c, auth.UserCookie, token, auth.UserTokenTTL)
	return ok(c, user)
}

type profilePayload struct {
	Name      string                   `json:"name"`
	Addresses []domain.ShippingAddress `json:"addresses"`
}

// updateProfile replaces the display name and the saved address book.
// Email and password changes are deliberately not part of this endpoint.
func (s *ShopAPI) updateProfile(c echo.Context) error {
	identity := webserver.GetIdentity(c)
	if !identity.IsUser() {
		return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Login required")
	}
	var payload profilePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse profile")
	}
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Name is required")
	}

	db := webserver.GetDB(c)
	var user domain.User
	if err := db.Where("id = ?", identity.ID).First(&user).Error; err != nil {
		return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Login required")
	}
	user.Name = payload.Name
	user.Addresses = payload.Addresses
	user.UpdatedAt = time.Now()
	if err := db.Save(&user).Error; err != nil {
		return webserver.FailInternal(c, err)
	}
	return ok(c, user)
}

func (s *ShopAPI) logout(c echo.Context) error {
	webserver.ClearSessionCookie(c, auth.UserCookie)
	return ok(c, map[string]interface{}{"logout": true})
}

func (s *ShopAPI) me(c echo.Context) error {
	identity := webserver.GetIdentity(c)
	if !identity.IsUser() {
		return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Login required")
	}
	var user domain.User
	if err := webserver.GetDB(c).Where("id = ?", identity.ID).First(&user).Error; err != nil {
		return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Login required")
	}
	return ok(c, user)
}
