package adminapi

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/gocarina/gocsv"
	"github.com/labstack/echo/v4"

	"github.com/talkincode/toughmall/internal/domain"
	"github.com/talkincode/toughmall/internal/webserver"
)

// orderCSVRow flattens an order for spreadsheet consumption; line items are
// summarized into a count because CSV has no nesting.
type orderCSVRow struct {
	OrderNo       string  `csv:"order_no"`
	UserId        int64   `csv:"user_id"`
	ItemCount     int     `csv:"item_count"`
	TotalAmount   float64 `csv:"total_amount"`
	Status        string  `csv:"status"`
	PaymentMethod string  `csv:"payment_method"`
	PaymentStatus string  `csv:"payment_status"`
	CreatedAt     string  `csv:"created_at"`
}

func (s *AdminAPI) exportOrdersCSV(c echo.Context) error {
	db := webserver.GetDB(c).Model(&domain.Order{})
	if status := c.QueryParam("status"); status != "" {
		db = db.Where("status = ?", status)
	}
	var orders []domain.Order
	if err := db.Order("created_at DESC").Limit(10000).Find(&orders).Error; err != nil {
		return webserver.FailInternal(c, err)
	}

	rows := make([]orderCSVRow, 0, len(orders))
	for _, o := range orders {
		count := 0
		for _, item := range o.Items {
			count += item.Quantity
		}
		rows = append(rows, orderCSVRow{
			OrderNo:       o.OrderNo,
			UserId:        o.UserId,
			ItemCount:     count,
			TotalAmount:   o.TotalAmount,
			Status:        o.Status.String(),
			PaymentMethod: o.PaymentMethod,
			PaymentStatus: o.PaymentStatus,
			CreatedAt:     o.CreatedAt.Format(time.RFC3339),
		})
	}

	filename := "orders-" + time.Now().Format("20060102") + ".csv"
	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	c.Response().WriteHeader(http.StatusOK)
	return gocsv.Marshal(rows, c.Response())
}

func (s *AdminAPI) exportProductsXLSX(c echo.Context) error {
	var products []domain.Product
	if err := webserver.GetDB(c).Order("created_at DESC").Limit(10000).Find(&products).Error; err != nil {
		return webserver.FailInternal(c, err)
	}

	const sheet = "Sheet1"
	xlsx := excelize.NewFile()
	headers := []string{"ID", "Name", "Brand", "Price", "Status", "Total Quantity", "Sizes", "Featured"}
	for i, h := range headers {
		xlsx.SetCellValue(sheet, fmt.Sprintf("%s1", excelize.ToAlphaString(i)), h)
	}
	for r, p := range products {
		sizes := ""
		for i, sq := range p.Sizes {
			if i > 0 {
				sizes += " "
			}
			sizes += sq.Size + ":" + strconv.Itoa(sq.Quantity)
		}
		row := r + 2
		xlsx.SetCellValue(sheet, fmt.Sprintf("A%d", row), strconv.FormatInt(p.ID, 10))
		xlsx.SetCellValue(sheet, fmt.Sprintf("B%d", row), p.Name)
		xlsx.SetCellValue(sheet, fmt.Sprintf("C%d", row), p.Brand)
		xlsx.SetCellValue(sheet, fmt.Sprintf("D%d", row), p.Price)
		xlsx.SetCellValue(sheet, fmt.Sprintf("E%d", row), p.Status)
		xlsx.SetCellValue(sheet, fmt.Sprintf("F%d", row), p.TotalQuantity)
		xlsx.SetCellValue(sheet, fmt.Sprintf("G%d", row), sizes)
		xlsx.SetCellValue(sheet, fmt.Sprintf("H%d", row), p.Featured)
	}

	filename := "products-" + time.Now().Format("20060102") + ".xlsx"
	c.Response().Header().Set(echo.HeaderContentType,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	c.Response().WriteHeader(http.StatusOK)
	return xlsx.Write(c.Response())
}
