package adminapi

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/talkincode/toughmall/config"
	"github.com/talkincode/toughmall/internal/app"
	"github.com/talkincode/toughmall/internal/checkout"
	"github.com/talkincode/toughmall/internal/imagehost"
	"github.com/talkincode/toughmall/internal/webserver"
)

// AdminAPI carries the back-office handler dependencies: configuration for
// cookie signing, the settings manager, the checkout service for order
// mutations and the image hosting collaborator for product media.
type AdminAPI struct {
	cfg      *config.AppConfig
	settings *app.SettingsManager
	checkout *checkout.Service
	images   *imagehost.Client
}

func New(cfg *config.AppConfig, settings *app.SettingsManager,
	checkoutSvc *checkout.Service, images *imagehost.Client) *AdminAPI {
	return &AdminAPI{cfg: cfg, settings: settings, checkout: checkoutSvc, images: images}
}

// Register mounts the back-office routes. Only login lives on the public
// group; everything else sits behind the admin session guard.
func (s *AdminAPI) Register(ws *webserver.WebServer) {
	pub := ws.AdminPublic()
	pub.POST("/auth/login", s.login)

	g := ws.AdminAPI()
	g.POST("/auth/logout", s.logout)
	g.GET("/auth/me", s.me)

	g.GET("/products", s.listProducts)
	g.GET("/products/:id", s.getProduct)
	g.POST("/products", s.createProduct)
	g.PUT("/products/:id", s.updateProduct)
	g.DELETE("/products/:id", s.deleteProduct)
	g.POST("/products/upload", s.uploadProductImage)

	g.GET("/orders", s.listOrders)
	g.GET("/orders/:id", s.getOrder)
	g.PUT("/orders/:id/status", s.updateOrderStatus)
	g.POST("/orders/:id/cancel", s.cancelOrder)

	g.GET("/users", s.listUsers)
	g.GET("/users/:id", s.getUser)
	g.PUT("/users/:id/status", s.updateUserStatus)

	g.GET("/categories", s.listCategories)
	g.POST("/categories", s.createCategory)
	g.PUT("/categories/:id", s.updateCategory)
	g.DELETE("/categories/:id", s.deleteCategory)
	g.GET("/features", s.listFeatures)
	g.POST("/features", s.createFeature)
	g.PUT("/features/:id", s.updateFeature)
	g.DELETE("/features/:id", s.deleteFeature)

	g.GET("/banners", s.listBanners)
	g.POST("/banners", s.createBanner)
	g.PUT("/banners/:id", s.updateBanner)
	g.DELETE("/banners/:id", s.deleteBanner)
	g.GET("/announcements", s.listAnnouncements)
	g.POST("/announcements", s.createAnnouncement)
	g.PUT("/announcements/:id", s.updateAnnouncement)
	g.DELETE("/announcements/:id", s.deleteAnnouncement)

	g.GET("/notifications", s.listNotifications)
	g.POST("/notifications/:id/read", s.markNotificationRead)
	g.POST("/notifications/read-all", s.markAllNotificationsRead)
	g.DELETE("/notifications", s.clearReadNotifications)

	g.GET("/dashboard", s.dashboard)
	g.GET("/dashboard/metrics", s.dashboardMetrics)
	g.GET("/dashboard/system", s.dashboardSystem)

	g.GET("/settings", s.getSettings)
	g.PUT("/settings", s.saveSetting)

	g.GET("/export/orders", s.exportOrdersCSV)
	g.GET("/export/products", s.exportProductsXLSX)
}

// parsePagination reads page/perPage query params with sane bounds. The
// back-office allows wider pages than the storefront.
func parsePagination(c echo.Context) (page, perPage int) {
	page = 1
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		page = p
	}
	perPage = 20
	if ps, err := strconv.Atoi(c.QueryParam("perPage")); err == nil && ps > 0 && ps <= 500 {
		perPage = ps
	}
	return page, perPage
}

func paramID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	return id, err == nil
}
