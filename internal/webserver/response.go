package webserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ErrorBody is the structured error envelope returned for every failure.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Detail  interface{} `json:"detail,omitempty"`
}

// PageResult is the paged list envelope.
type PageResult struct {
	Items   interface{} `json:"items"`
	Total   int64       `json:"total"`
	Page    int         `json:"page"`
	PerPage int         `json:"per_page"`
}

// OK writes a 200 response with data as the body.
func OK(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

// Paged writes a 200 paged list envelope.
func Paged(c echo.Context, items interface{}, total int64, page, perPage int) error {
	return c.JSON(http.StatusOK, PageResult{Items: items, Total: total, Page: page, PerPage: perPage})
}

// Fail writes a structured error response. detail is optional and must
// never carry internal error text.
func Fail(c echo.Context, status int, code, message string, detail ...interface{}) error {
	body := ErrorBody{Code: code, Message: message}
	if len(detail) > 0 {
		body.Detail = detail[0]
	}
	return c.JSON(status, body)
}

// FailInternal logs the real error server-side and returns a generic 500
// body. Raw error text never reaches the client.
func FailInternal(c echo.Context, err error) error {
	zap.L().Error("internal error",
		zap.String("method", c.Request().Method),
		zap.String("path", c.Path()),
		zap.Error(err))
	return Fail(c, http.StatusInternalServerError, "INTERNAL", "internal server error")
}
