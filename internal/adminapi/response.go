package adminapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/talkincode/toughmall/internal/checkout"
	"github.com/talkincode/toughmall/internal/domain"
	"github.com/talkincode/toughmall/internal/webserver"
	"github.com/talkincode/toughmall/pkg/common"
)

func ok(c echo.Context, data interface{}) error {
	return webserver.OK(c, data)
}

func paged(c echo.Context, items interface{}, total int64, page, perPage int) error {
	return webserver.Paged(c, items, total, page, perPage)
}

func fail(c echo.Context, status int, code, message string, detail ...interface{}) error {
	return webserver.Fail(c, status, code, message, detail...)
}

// failCheckout maps the checkout error taxonomy onto the HTTP contract the
// same way the storefront does.
func failCheckout(c echo.Context, err error) error {
	var ve *checkout.ValidationError
	if errors.As(err, &ve) {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", ve.Error())
	}
	var nf *checkout.ProductNotFoundError
	if errors.As(err, &nf) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", nf.Error())
	}
	if errors.Is(err, checkout.ErrOrderNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Order not found")
	}
	var is *checkout.InvalidSizeError
	if errors.As(err, &is) {
		return fail(c, http.StatusBadRequest, "INVALID_SIZE", is.Error())
	}
	var ins *checkout.InsufficientStockError
	if errors.As(err, &ins) {
		return fail(c, http.StatusConflict, "INSUFFICIENT_STOCK", ins.Error())
	}
	var it *checkout.InvalidTransitionError
	if errors.As(err, &it) {
		return fail(c, http.StatusConflict, "INVALID_TRANSITION", it.Error())
	}
	return webserver.FailInternal(c, err)
}

// writeAdminLog records an operator action in the audit trail. Failures are
// logged and swallowed so auditing never blocks the operation itself.
func writeAdminLog(c echo.Context, oprName, action, desc string) {
	entry := domain.SysAdminLog{
		ID:        common.UUIDint64(),
		OprName:   oprName,
		OprIp:     c.RealIP(),
		OptAction: action,
		OptDesc:   desc,
		OptTime:   time.Now(),
	}
	if err := webserver.GetDB(c).Create(&entry).Error; err != nil {
		zap.L().Warn("admin log write failed", zap.String("action", action), zap.Error(err))
	}
}
