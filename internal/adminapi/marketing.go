package adminapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/labstack/echo/v4"

	"github.com/talkincode/toughmall/internal/domain"
	"github.com/talkincode/toughmall/internal/webserver"
	"github.com/talkincode/toughmall/pkg/common"
)

type bannerPayload struct {
	Title    string `json:"title"`
	Image    string `json:"image"`
	Link     string `json:"link"`
	Position int    `json:"position"`
	Status   string `json:"status"`
	StartAt  string `json:"start_at"`
	EndAt    string `json:"end_at"`
}

func (p *bannerPayload) decode() (start, end time.Time, msg string) {
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" || p.Image == "" {
		return start, end, "Title and image are required"
	}
	if p.Status != common.ENABLED && p.Status != common.DISABLED {
		return start, end, "Status must be enabled or disabled"
	}
	var err error
	if start, err = dateparse.ParseLocal(p.StartAt); err != nil {
		return start, end, "Unable to parse start_at"
	}
	if end, err = dateparse.ParseLocal(p.EndAt); err != nil {
		return start, end, "Unable to parse end_at"
	}
	if !end.After(start) {
		return start, end, "end_at must be after start_at"
	}
	return start, end, ""
}

func (s *AdminAPI) listBanners(c echo.Context) error {
	var rows []domain.Banner
	if err := webserver.GetDB(c).Order("position ASC").Find(&rows).Error; err != nil {
		return webserver.FailInternal(c, err)
	}
	return ok(c, rows)
}

func (s *AdminAPI) createBanner(c echo.Context) error {
	var payload bannerPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse banner")
	}
	start, end, msg := payload.decode()
	if msg != "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", msg)
	}

	b := domain.Banner{
		ID:        common.UUIDint64(),
		Title:     payload.Title,
		Image:     payload.Image,
		Link:      payload.Link,
		Position:  payload.Position,
		Status:    payload.Status,
		StartAt:   start,
		EndAt:     end,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := webserver.GetDB(c).Create(&b).Error; err != nil {
		return webserver.FailInternal(c, err)
	}
	writeAdminLog(c, s.operatorName(c), "banner.create", fmt.Sprintf("created banner %s", b.Title))
	return ok(c, b)
}

func (s *AdminAPI) updateBanner(c echo.Context) error {
	id, valid := paramID(c)
	if !valid {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid banner ID")
	}
	var b domain.Banner
	if err := webserver.GetDB(c).Where("id = ?", id).First(&b).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Banner not found")
	}
	var payload bannerPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse banner")
	}
	start, end, msg := payload.decode()
	if msg != "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", msg)
	}

	b.Title = payload.Title
	b.Image = payload.Image
	b.Link = payload.Link
	b.Position = payload.Position
	b.Status = payload.Status
	b.StartAt = start
	b.EndAt = end
	b.UpdatedAt = time.Now()
	if err := webserver.GetDB(c).Save(&b).Error; err != nil {
		return webserver.FailInternal(c, err)
	}
	return ok(c, b)
}

func (s *AdminAPI) deleteBanner(c echo.Context) error {
	id, valid := paramID(c)
	if !valid {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid banner ID")
	}
	if err := webserver.GetDB(c).Where("id = ?", id).Delete(&domain.Banner{}).Error; err != nil {
		return webserver.FailInternal(c, err)
	}
	writeAdminLog(c, s.operatorName(c), "banner.delete", fmt.Sprintf("deleted banner %d", id))
	return ok(c, map[string]interface{}{"id": id})
}

type announcementPayload struct {
	Text     string `json:"text"`
	Status   string `json:"status"`
	ExpireAt string `json:"expire_at"`
}

func (s *AdminAPI) listAnnouncements(c echo.Context) error {
	var rows []domain.Announcement
	if err := webserver.GetDB(c).Order("created_at DESC").Find(&rows).Error; err != nil {
		return webserver.FailInternal(c, err)
	}
	return ok(c, rows)
}

func (s *AdminAPI) createAnnouncement(c echo.Context) error {
	var payload announcementPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse announcement")
	}
	payload.Text = strings.TrimSpace(payload.Text)
	if payload.Text == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Text is required")
	}
	if payload.Status != common.ENABLED && payload.Status != common.DISABLED {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Status must be enabled or disabled")
	}
	expire, err := dateparse.ParseLocal(payload.ExpireAt)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse expire_at")
	}

	a := domain.Announcement{
		ID:        common.UUIDint64(),
		Text:      payload.Text,
		Status:    payload.Status,
		ExpireAt:  expire,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := webserver.GetDB(c).Create(&a).Error; err != nil {
		return webserver.FailInternal(c, err)
	}
	return ok(c, a)
}

func (s *AdminAPI) updateAnnouncement(c echo.Context) error {
	id, valid := paramID(c)
	if !valid {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid announcement ID")
	}
	var a domain.Announcement
	if err := webserver.GetDB(c).Where("id = ?", id).First(&a).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Announcement not found")
	}
	var payload announcementPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse announcement")
	}
	payload.Text = strings.TrimSpace(payload.Text)
	if payload.Text == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Text is required")
	}
	if payload.Status != common.ENABLED && payload.Status != common.DISABLED {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Status must be enabled or disabled")
	}
	expire, err := dateparse.ParseLocal(payload.ExpireAt)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse expire_at")
	}

	a.Text = payload.Text
	a.Status = payload.Status
	a.ExpireAt = expire
	a.UpdatedAt = time.Now()
	if err := webserver.GetDB(c).Save(&a).Error; err != nil {
		return webserver.FailInternal(c, err)
	}
	return ok(c, a)
}

func (s *AdminAPI) deleteAnnouncement(c echo.Context) error {
	id, valid := paramID(c)
	if !valid {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid announcement ID")
	}
	if err := webserver.GetDB(c).Where("id = ?", id).Delete(&domain.Announcement{}).Error; err != nil {
		return webserver.FailInternal(c, err)
	}
	return ok(c, map[string]interface{}{"id": id})
}
