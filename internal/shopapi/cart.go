package shopapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/talkincode/toughmall/internal/domain"
	"github.com/talkincode/toughmall/internal/webserver"
	"github.com/talkincode/toughmall/pkg/common"
)

// The cart and wishlist are per-user aggregates replaced wholesale on PUT.
// Last-write-wins is fine: each aggregate has a single owner.

func requireUser(c echo.Context) (int64, error) {
	identity := webserver.GetIdentity(c)
	if !identity.IsUser() {
		return 0, fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Login required")
	}
	return identity.ID, nil
}

func (s *ShopAPI) getCart(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	var cart domain.Cart
	err = webserver.GetDB(c).Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ok(c, domain.Cart{UserId: userID, Items: []domain.CartItem{}})
	}
	if err != nil {
		return webserver.FailInternal(c, err)
	}
	return ok(c, cart)
}

type cartPayload struct {
	Items []domain.CartItem `json:"items"`
}

func (s *ShopAPI) putCart(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	var payload cartPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse cart")
	}
	for _, item := range payload.Items {
		if item.ProductId == 0 || item.Quantity <= 0 {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Cart items need a product and a positive quantity")
		}
	}

	cart := domain.Cart{
		ID:        common.UUIDint64(),
		UserId:    userID,
		Items:     payload.Items,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	err = webserver.GetDB(c).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"items", "updated_at"}),
	}).Create(&cart).Error
	if err != nil {
		return webserver.FailInternal(c, err)
	}
	return ok(c, cart)
}

func (s *ShopAPI) clearCart(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	if err := webserver.GetDB(c).Where("user_id = ?", userID).Delete(&domain.Cart{}).Error; err != nil {
		return webserver.FailInternal(c, err)
	}
	return ok(c, map[string]interface{}{"cleared": true})
}

func (s *ShopAPI) getWishlist(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	var wl domain.Wishlist
	err = webserver.GetDB(c).Where("user_id = ?", userID).First(&wl).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ok(c, domain.Wishlist{UserId: userID, ProductIds: []int64{}})
	}
	if err != nil {
		return webserver.FailInternal(c, err)
	}
	return ok(c, wl)
}

type wishlistPayload struct {
	ProductIds []int64 `json:"product_ids"`
}

func (s *ShopAPI) putWishlist(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	var payload wishlistPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse wishlist")
	}

	wl := domain.Wishlist{
		ID:         common.UUIDint64(),
		UserId:     userID,
		ProductIds: payload.ProductIds,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	err = webserver.GetDB(c).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"product_ids", "updated_at"}),
	}).Create(&wl).Error
	if err != nil {
		return webserver.FailInternal(c, err)
	}
	return ok(c, wl)
}
