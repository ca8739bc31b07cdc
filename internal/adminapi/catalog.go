package adminapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/talkincode/toughmall/internal/domain"
	"github.com/talkincode/toughmall/internal/webserver"
	"github.com/talkincode/toughmall/pkg/common"
)

type categoryPayload struct {
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Image string `json:"image"`
	Sort  int    `json:"sort"`
}

func (s *AdminAPI) listCategories(c echo.Context) error {
	var rows []domain.Category
	if err := webserver.GetDB(c).Order("sort ASC").Find(&rows).Error; err != nil {
		return webserver.FailInternal(c, err)
	}
	return ok(c, rows)
}

func (s *AdminAPI) createCategory(c echo.Context) error {
	var payload categoryPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse category")
	}
	payload.Name = strings.TrimSpace(payload.Name)
	payload.Slug = strings.ToLower(strings.TrimSpace(payload.Slug))
	if payload.Name == "" || payload.Slug == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Name and slug are required")
	}

	cat := domain.Category{
		ID:        common.UUIDint64(),
		Name:      payload.Name,
		Slug:      payload.Slug,
		Image:     payload.Image,
		Sort:      payload.Sort,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := webserver.GetDB(c).Create(&cat).Error; err != nil {
		return webserver.FailInternal(c, err)
	}
	writeAdminLog(c, s.operatorName(c), "category.create", fmt.Sprintf("created category %s", cat.Slug))
	return ok(c, cat)
}

func (s *AdminAPI) updateCategory(c echo.Context) error {
	id, valid := paramID(c)
	if !valid {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid category ID")
	}
	var cat domain.Category
	if err := webserver.GetDB(c).Where("id = ?", id).First(&cat).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Category not found")
	}
	var payload categoryPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse category")
	}
	payload.Name = strings.TrimSpace(payload.Name)
	payload.Slug = strings.ToLower(strings.TrimSpace(payload.Slug))
	if payload.Name == "" || payload.Slug == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Name and slug are required")
	}

	cat.Name = payload.Name
	cat.Slug = payload.Slug
	cat.Image = payload.Image
	cat.Sort = payload.Sort
	cat.UpdatedAt = time.Now()
	if err := webserver.GetDB(c).Save(&cat).Error; err != nil {
		return webserver.FailInternal(c, err)
	}
	return ok(c, cat)
}

func (s *AdminAPI) deleteCategory(c echo.Context) error {
	id, valid := paramID(c)
	if !valid {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid category ID")
	}
	db := webserver.GetDB(c)
	// products keep their category_id; the storefront treats a dangling
	// category as uncategorized
	if err := db.Where("id = ?", id).Delete(&domain.Category{}).Error; err != nil {
		return webserver.FailInternal(c, err)
	}
	writeAdminLog(c, s.operatorName(c), "category.delete", fmt.Sprintf("deleted category %d", id))
	return ok(c, map[string]interface{}{"id": id})
}

type featurePayload struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	Icon  string `json:"icon"`
	Sort  int    `json:"sort"`
}

func (s *AdminAPI) listFeatures(c echo.Context) error {
	var rows []domain.Feature
	if err := webserver.GetDB(c).Order("sort ASC").Find(&rows).Error; err != nil {
		return webserver.FailInternal(c, err)
	}
	return ok(c, rows)
}

func (s *AdminAPI) createFeature(c echo.Context) error {
	var payload featurePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse feature")
	}
	payload.Title = strings.TrimSpace(payload.Title)
	if payload.Title == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Title is required")
	}

	feat := domain.Feature{
		ID:        common.UUIDint64(),
		Title:     payload.Title,
		Text:      payload.Text,
		Icon:      payload.Icon,
		Sort:      payload.Sort,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := webserver.GetDB(c).Create(&feat).Error; err != nil {
		return webserver.FailInternal(c, err)
	}
	return ok(c, feat)
}

func (s *AdminAPI) updateFeature(c echo.Context) error {
	id, valid := paramID(c)
	if !valid {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid feature ID")
	}
	var feat domain.Feature
	if err := webserver.GetDB(c).Where("id = ?", id).First(&feat).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Feature not found")
	}
	var payload featurePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse feature")
	}
	payload.Title = strings.TrimSpace(payload.Title)
	if payload.Title == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Title is required")
	}

	feat.Title = payload.Title
	feat.Text = payload.Text
	feat.Icon = payload.Icon
	feat.Sort = payload.Sort
	feat.UpdatedAt = time.Now()
	if err := webserver.GetDB(c).Save(&feat).Error; err != nil {
		return webserver.FailInternal(c, err)
	}
	return ok(c, feat)
}

func (s *AdminAPI) deleteFeature(c echo.Context) error {
	id, valid := paramID(c)
	if !valid {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid feature ID")
	}
	if err := webserver.GetDB(c).Where("id = ?", id).Delete(&domain.Feature{}).Error; err != nil {
		return webserver.FailInternal(c, err)
	}
	return ok(c, map[string]interface{}{"id": id})
}
