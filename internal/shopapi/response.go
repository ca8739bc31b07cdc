package shopapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/talkincode/toughmall/internal/checkout"
	"github.com/talkincode/toughmall/internal/webserver"
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

// failCheckout maps the checkout error taxonomy onto the HTTP contract:
// validation 400, missing entities 404, business-rule conflicts 409 and
// anything else a generic 500.
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
