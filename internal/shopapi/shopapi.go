package shopapi

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/talkincode/toughmall/config"
	"github.com/talkincode/toughmall/internal/checkout"
	"github.com/talkincode/toughmall/internal/suggest"
	"github.com/talkincode/toughmall/internal/webserver"
)

// ShopAPI carries the storefront handler dependencies: configuration for
// cookie signing, the checkout service for order operations and the
// suggestion collaborator for narrowed search.
type ShopAPI struct {
	cfg      *config.AppConfig
	checkout *checkout.Service
	suggest  *suggest.Client
}

func New(cfg *config.AppConfig, checkoutSvc *checkout.Service, suggestClient *suggest.Client) *ShopAPI {
	return &ShopAPI{cfg: cfg, checkout: checkoutSvc, suggest: suggestClient}
}

// Register mounts all storefront routes on the /api group.
func (s *ShopAPI) Register(ws *webserver.WebServer) {
	g := ws.API()

	g.GET("/products", s.listProducts)
	g.GET("/products/featured", s.listFeaturedProducts)
	g.GET("/products/suggested", s.listSuggestedProducts)
	g.GET("/products/:id", s.getProduct)
	g.GET("/categories", s.listCategories)
	g.GET("/features", s.listFeatures)
	g.GET("/banners", s.listBanners)
	g.GET("/announcements", s.listAnnouncements)

	g.POST("/auth/register", s.register)
	g.POST("/auth/login", s.login)
	g.POST("/auth/logout", s.logout)
	g.GET("/auth/me", s.me)
	g.PUT("/auth/profile", s.updateProfile)

	g.GET("/cart", s.getCart)
	g.PUT("/cart", s.putCart)
	g.DELETE("/cart", s.clearCart)
	g.GET("/wishlist", s.getWishlist)
	g.PUT("/wishlist", s.putWishlist)

	g.POST("/orders", s.placeOrder)
	g.GET("/orders", s.listOrders)
	g.GET("/orders/:id", s.getOrder)
	g.POST("/orders/:id/cancel", s.cancelOrder)
}

// parsePagination reads page/perPage query params with sane bounds.
func parsePagination(c echo.Context) (page, perPage int) {
	page = 1
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		page = p
	}
	perPage = 20
	if ps, err := strconv.Atoi(c.QueryParam("perPage")); err == nil && ps > 0 && ps <= 100 {
		perPage = ps
	}
	return page, perPage
}
