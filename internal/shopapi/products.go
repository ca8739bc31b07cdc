package shopapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/talkincode/toughmall/internal/domain"
	"github.com/talkincode/toughmall/internal/webserver"
)

// whitelist allowed sort columns to avoid SQL injection
var productSortColumns = map[string]string{
	"id":         "id",
	"name":       "name",
	"price":      "price",
	"created_at": "created_at",
}

func applyProductFilters(db *gorm.DB, c echo.Context) *gorm.DB {
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		db = db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}
	if cat := strings.TrimSpace(c.QueryParam("category")); cat != "" {
		if id, err := strconv.ParseInt(cat, 10, 64); err == nil {
			db = db.Where("category_id = ?", id)
		}
	}
	if status := strings.TrimSpace(c.QueryParam("status")); status != "" {
		db = db.Where("status = ?", status)
	}
	if min := c.QueryParam("minPrice"); min != "" {
		if v, err := strconv.ParseFloat(min, 64); err == nil {
			db = db.Where("price >= ?", v)
		}
	}
	if max := c.QueryParam("maxPrice"); max != "" {
		if v, err := strconv.ParseFloat(max, 64); err == nil {
			db = db.Where("price <= ?", v)
		}
	}
	return db
}

func (s *ShopAPI) listProducts(c echo.Context) error {
	page, perPage := parsePagination(c)

	sortField := strings.TrimSpace(c.QueryParam("sort"))
	order := strings.ToUpper(strings.TrimSpace(c.QueryParam("order")))
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}
	sortCol, ok := productSortColumns[sortField]
	if !ok || sortCol == "" {
		sortCol = "created_at"
	}

	db := applyProductFilters(webserver.GetDB(c).Model(&domain.Product{}), c)

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return webserver.FailInternal(c, err)
	}
	var rows []domain.Product
	if err := db.Order(sortCol + " " + order).
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&rows).Error; err != nil {
		return webserver.FailInternal(c, err)
	}
	return paged(c, rows, total, page, perPage)
}

func (s *ShopAPI) getProduct(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID")
	}
	var p domain.Product
	if err := webserver.GetDB(c).Where("id = ?", id).First(&p).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found")
	}
	return ok(c, p)
}

func (s *ShopAPI) listFeaturedProducts(c echo.Context) error {
	var rows []domain.Product
	if err := webserver.GetDB(c).
		Where("featured = ?", true).
		Order("created_at DESC").
		Limit(12).
		Find(&rows).Error; err != nil {
		return webserver.FailInternal(c, err)
	}
	return ok(c, rows)
}

// listSuggestedProducts narrows the catalog with keyword tags from the
// recommendation collaborator, fed with the caller's recent order lines.
// Anonymous callers and collaborator failures degrade to the featured list.
func (s *ShopAPI) listSuggestedProducts(c echo.Context) error {
	identity := webserver.GetIdentity(c)
	if !identity.IsUser() || s.suggest == nil || !s.suggest.Enabled() {
		return s.listFeaturedProducts(c)
	}

	db := webserver.GetDB(c)
	var recent []domain.Order
	if err := db.Where("user_id = ?", identity.ID).
		Order("created_at DESC").
		Limit(5).
		Find(&recent).Error; err != nil {
		return webserver.FailInternal(c, err)
	}

	var summary []string
	for _, o := range recent {
		for _, item := range o.Items {
			summary = append(summary, item.Name)
		}
	}
	if len(summary) == 0 {
		return s.listFeaturedProducts(c)
	}

	keywords, err := s.suggest.Keywords(c.Request().Context(), summary)
	if err != nil || len(keywords) == 0 {
		if err != nil {
			zap.L().Warn("suggestion lookup failed, falling back to featured", zap.Error(err))
		}
		return s.listFeaturedProducts(c)
	}
	if len(keywords) > 5 {
		keywords = keywords[:5]
	}

	query := db.Model(&domain.Product{})
	cond := db.Session(&gorm.Session{NewDB: true})
	for _, kw := range keywords {
		like := "%" + strings.ToLower(kw) + "%"
		cond = cond.Or("LOWER(keywords) LIKE ? OR LOWER(name) LIKE ?", like, like)
	}
	var rows []domain.Product
	if err := query.Where(cond).Order("created_at DESC").Limit(24).Find(&rows).Error; err != nil {
		return webserver.FailInternal(c, err)
	}
	return ok(c, rows)
}

func (s *ShopAPI) listCategories(c echo.Context) error {
	var rows []domain.Category
	if err := webserver.GetDB(c).Order("sort ASC").Find(&rows).Error; err != nil {
		return webserver.FailInternal(c, err)
	}
	return ok(c, rows)
}

func (s *ShopAPI) listFeatures(c echo.Context) error {
	var rows []domain.Feature
	if err := webserver.GetDB(c).Order("sort ASC").Find(&rows).Error; err != nil {
		return webserver.FailInternal(c, err)
	}
	return ok(c, rows)
}
