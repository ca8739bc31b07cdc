package shopapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talkincode/toughmall/internal/checkout"
	"github.com/talkincode/toughmall/internal/domain"
	"github.com/talkincode/toughmall/internal/webserver"
)

func doFailCheckout(t *testing.T, err error) (int, webserver.ErrorBody) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/orders", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, failCheckout(c, err))

	var body webserver.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestFailCheckoutMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", &checkout.ValidationError{Field: "items", Reason: "required"}, http.StatusBadRequest, "INVALID_REQUEST"},
		{"product not found", &checkout.ProductNotFoundError{ProductId: 1}, http.StatusNotFound, "NOT_FOUND"},
		{"order not found", checkout.ErrOrderNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"invalid size", &checkout.InvalidSizeError{ProductId: 1, Size: "13"}, http.StatusBadRequest, "INVALID_SIZE"},
		{"insufficient stock", &checkout.InsufficientStockError{ProductId: 1, Size: "9", Requested: 2, Available: 0}, http.StatusConflict, "INSUFFICIENT_STOCK"},
		{"invalid transition", &checkout.InvalidTransitionError{From: domain.OrderDelivered, To: domain.OrderShipped}, http.StatusConflict, "INVALID_TRANSITION"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := doFailCheckout(t, tc.err)
			assert.Equal(t, tc.wantStatus, status)
			assert.Equal(t, tc.wantCode, body.Code)
		})
	}
}

func TestFailCheckoutUnknownErrorIsGeneric500(t *testing.T) {
	status, body := doFailCheckout(t, errors.New("pq: connection reset"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL", body.Code)
	// raw driver text must never leak to the client
	assert.Equal(t, "internal server error", body.Message)
	assert.NotContains(t, body.Message, "pq:")
}

func TestFailCheckoutWrappedErrorsStillMap(t *testing.T) {
	wrapped := errors.Wrap(&checkout.InsufficientStockError{ProductId: 7, Size: "9", Requested: 1, Available: 0}, "place order")
	status, body := doFailCheckout(t, wrapped)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)
}
