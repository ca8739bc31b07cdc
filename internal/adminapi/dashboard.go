package adminapi

import (
	"net/http"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/montanaflynn/stats"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/host"
	"github.com/shirou/gopsutil/mem"

	"github.com/talkincode/toughmall/internal/domain"
	"github.com/talkincode/toughmall/internal/webserver"
	"github.com/talkincode/toughmall/pkg/metrics"
)

type dashboardCounts struct {
	Products      int64 `json:"products"`
	Orders        int64 `json:"orders"`
	PendingOrders int64 `json:"pending_orders"`
	Users         int64 `json:"users"`
	Unread        int64 `json:"unread_notifications"`
}

type orderAmountStats struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	P90    float64 `json:"p90"`
}

type dashboardData struct {
	Counts      dashboardCounts  `json:"counts"`
	Revenue     float64          `json:"revenue"`
	AmountStats orderAmountStats `json:"amount_stats"`
	WindowDays  int              `json:"window_days"`
	GeneratedAt time.Time        `json:"generated_at"`
}

// dashboard aggregates the landing-page numbers: entity counts, completed
// revenue and order amount statistics over a 90 day window.
func (s *AdminAPI) dashboard(c echo.Context) error {
	db := webserver.GetDB(c)
	var data dashboardData
	data.WindowDays = 90
	data.GeneratedAt = time.Now()

	if err := db.Model(&domain.Product{}).Count(&data.Counts.Products).Error; err != nil {
		return webserver.FailInternal(c, err)
	}
	if err := db.Model(&domain.Order{}).Count(&data.Counts.Orders).Error; err != nil {
		return webserver.FailInternal(c, err)
	}
	if err := db.Model(&domain.Order{}).
		Where("status = ?", domain.OrderPending).
		Count(&data.Counts.PendingOrders).Error; err != nil {
		return webserver.FailInternal(c, err)
	}
	if err := db.Model(&domain.User{}).Count(&data.Counts.Users).Error; err != nil {
		return webserver.FailInternal(c, err)
	}
	if err := db.Model(&domain.Notification{}).
		Where("read = ?", false).
		Count(&data.Counts.Unread).Error; err != nil {
		return webserver.FailInternal(c, err)
	}

	// revenue counts only captured payments on non-cancelled orders
	row := db.Model(&domain.Order{}).
		Where("payment_status = ? AND status <> ?", domain.PaymentCompleted, domain.OrderCancelled).
		Select("COALESCE(SUM(total_amount), 0)").
		Row()
	if err := row.Scan(&data.Revenue); err != nil {
		return webserver.FailInternal(c, err)
	}

	since := time.Now().AddDate(0, 0, -data.WindowDays)
	var amounts []float64
	if err := db.Model(&domain.Order{}).
		Where("created_at >= ? AND status <> ?", since, domain.OrderCancelled).
		Pluck("total_amount", &amounts).Error; err != nil {
		return webserver.FailInternal(c, err)
	}
	if len(amounts) > 0 {
		data.AmountStats.Mean, _ = stats.Mean(amounts)
		data.AmountStats.Median, _ = stats.Median(amounts)
		data.AmountStats.P90, _ = stats.Percentile(amounts, 90)
	}

	return ok(c, data)
}

type metricPoint struct {
	Timestamp int64   `json:"timestamp"`
	Value     float64 `json:"value"`
}

// allowed dashboard series; anything else is rejected
var metricNames = map[string]bool{
	"orders_created":   true,
	"system_cpuuse":    true,
	"system_memuse":    true,
	"toughmall_cpuuse": true,
	"toughmall_memuse": true,
}

func (s *AdminAPI) dashboardMetrics(c echo.Context) error {
	name := strings.TrimSpace(c.QueryParam("name"))
	if !metricNames[name] {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unknown metric "+name)
	}
	hours := 24
	if h, err := strconv.Atoi(c.QueryParam("hours")); err == nil && h > 0 && h <= 24*90 {
		hours = h
	}

	end := time.Now().Unix()
	start := end - int64(hours)*3600
	points, err := metrics.Query(name, start, end)
	if err != nil {
		return webserver.FailInternal(c, err)
	}

	out := make([]metricPoint, 0, len(points))
	for _, p := range points {
		out = append(out, metricPoint{Timestamp: p.Timestamp, Value: p.Value})
	}
	return ok(c, out)
}

// dashboardSystem reports host facts for the operations panel.
func (s *AdminAPI) dashboardSystem(c echo.Context) error {
	info := map[string]interface{}{
		"go_version": runtime.Version(),
		"goroutines": runtime.NumGoroutine(),
		"cpus":       runtime.NumCPU(),
	}
	if hi, err := host.Info(); err == nil {
		info["hostname"] = hi.Hostname
		info["os"] = hi.OS
		info["platform"] = hi.Platform
		info["uptime_sec"] = hi.Uptime
	}
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		info["cpu_percent"] = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		info["mem_total_mb"] = vm.Total / 1024 / 1024
		info["mem_used_mb"] = vm.Used / 1024 / 1024
		info["mem_percent"] = vm.UsedPercent
	}
	return ok(c, info)
}
