package adminapi

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/talkincode/toughmall/internal/app"
	"github.com/talkincode/toughmall/internal/domain"
	"github.com/talkincode/toughmall/internal/webserver"
	"github.com/talkincode/toughmall/pkg/common"
)

type productPayload struct {
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Brand       string                `json:"brand"`
	CategoryId  int64                 `json:"category_id,string"`
	Price       float64               `json:"price"`
	Images      []string              `json:"images"`
	Sizes       []domain.SizeQuantity `json:"sizes"`
	Status      string                `json:"status"`
	Featured    bool                  `json:"featured"`
	Keywords    string                `json:"keywords"`
}

func (p *productPayload) validate() string {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return "Name is required"
	}
	if p.Price < 0 {
		return "Price must not be negative"
	}
	switch p.Status {
	case "", domain.ProductInStock, domain.ProductOutOfStock, domain.ProductComingSoon:
	default:
		return "Unknown product status"
	}
	seen := make(map[string]bool, len(p.Sizes))
	for _, sq := range p.Sizes {
		if strings.TrimSpace(sq.Size) == "" {
			return "Size labels must not be empty"
		}
		if sq.Quantity < 0 {
			return "Size quantities must not be negative"
		}
		if seen[sq.Size] {
			return "Duplicate size " + sq.Size
		}
		seen[sq.Size] = true
	}
	return ""
}

// apply copies the payload onto the product and recomputes the derived
// stock fields. TotalQuantity is never taken from the client.
func (p *productPayload) apply(prod *domain.Product) {
	prod.Name = p.Name
	prod.Description = p.Description
	prod.Brand = p.Brand
	prod.CategoryId = p.CategoryId
	prod.Price = p.Price
	prod.Images = p.Images
	prod.Sizes = p.Sizes
	prod.Featured = p.Featured
	prod.Keywords = p.Keywords
	if p.Status == domain.ProductComingSoon {
		prod.Status = domain.ProductComingSoon
	} else {
		prod.Status = domain.ProductInStock
	}
	prod.RecomputeTotal()
	prod.UpdatedAt = time.Now()
}

func (s *AdminAPI) listProducts(c echo.Context) error {
	page, perPage := parsePagination(c)

	db := webserver.GetDB(c).Model(&domain.Product{})
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		db = db.Where("LOWER(name) LIKE ? OR LOWER(brand) LIKE ?", like, like)
	}
	if status := strings.TrimSpace(c.QueryParam("status")); status != "" {
		db = db.Where("status = ?", status)
	}
	if c.QueryParam("lowStock") == "true" {
		level := s.settings.GetInt64(app.SettingsShop, app.ShopLowStockLevel)
		if level <= 0 {
			level = 5
		}
		db = db.Where("total_quantity <= ?", level)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return webserver.FailInternal(c, err)
	}
	var rows []domain.Product
	if err := db.Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&rows).Error; err != nil {
		return webserver.FailInternal(c, err)
	}
	return paged(c, rows, total, page, perPage)
}

func (s *AdminAPI) getProduct(c echo.Context) error {
	id, valid := paramID(c)
	if !valid {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID")
	}
	var p domain.Product
	if err := webserver.GetDB(c).Where("id = ?", id).First(&p).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found")
	}
	return ok(c, p)
}

func (s *AdminAPI) createProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product")
	}
	if msg := payload.validate(); msg != "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", msg)
	}

	p := domain.Product{
		ID:        common.UUIDint64(),
		CreatedAt: time.Now(),
	}
	payload.apply(&p)
	if err := webserver.GetDB(c).Create(&p).Error; err != nil {
		return webserver.FailInternal(c, err)
	}
	writeAdminLog(c, s.operatorName(c), "product.create", fmt.Sprintf("created product %d %s", p.ID, p.Name))
	return ok(c, p)
}

func (s *AdminAPI) updateProduct(c echo.Context) error {
	id, valid := paramID(c)
	if !valid {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID")
	}
	var p domain.Product
	if err := webserver.GetDB(c).Where("id = ?", id).First(&p).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found")
	}

	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product")
	}
	if msg := payload.validate(); msg != "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", msg)
	}

	payload.apply(&p)
	if err := webserver.GetDB(c).Save(&p).Error; err != nil {
		return webserver.FailInternal(c, err)
	}
	writeAdminLog(c, s.operatorName(c), "product.update", fmt.Sprintf("updated product %d %s", p.ID, p.Name))
	return ok(c, p)
}

func (s *AdminAPI) deleteProduct(c echo.Context) error {
	id, valid := paramID(c)
	if !valid {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID")
	}
	if err := webserver.GetDB(c).Where("id = ?", id).Delete(&domain.Product{}).Error; err != nil {
		return webserver.FailInternal(c, err)
	}
	writeAdminLog(c, s.operatorName(c), "product.delete", fmt.Sprintf("deleted product %d", id))
	return ok(c, map[string]interface{}{"id": id})
}

// uploadProductImage forwards a multipart file to the image hosting
// collaborator and returns the durable URL for the product form.
func (s *AdminAPI) uploadProductImage(c echo.Context) error {
	if s.images == nil || !s.images.Enabled() {
		return fail(c, http.StatusBadRequest, "NOT_CONFIGURED", "Image hosting is not configured")
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "A file field is required")
	}
	const maxImageBytes = 8 << 20
	if fh.Size > maxImageBytes {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Image exceeds the 8MB limit")
	}
	src, err := fh.Open()
	if err != nil {
		return webserver.FailInternal(c, err)
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return webserver.FailInternal(c, err)
	}

	url, err := s.images.Upload(c.Request().Context(), fh.Filename, data)
	if err != nil {
		return webserver.FailInternal(c, err)
	}
	return ok(c, map[string]interface{}{"url": url})
}
