package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/talkincode/toughmall/internal/checkout"
	"github.com/talkincode/toughmall/internal/domain"
	"github.com/talkincode/toughmall/pkg/common"
)

// initEventSubscribers wires the best-effort side effects of order
// placement: an admin notification row and an operator mail. Both run
// outside the placement transaction and are allowed to fail.
func (a *Application) initEventSubscribers() {
	if err := a.bus.Subscribe(checkout.TopicOrderCreated, a.onOrderCreated); err != nil {
		zap.L().Error("failed to subscribe order.created", zap.Error(err))
	}
}

func (a *Application) onOrderCreated(order *domain.Order) {
	notif := domain.Notification{
		ID:        common.UUIDint64(),
		Kind:      domain.NotifyOrderCreated,
		Title:     fmt.Sprintf("New order %s", order.OrderNo),
		Body:      fmt.Sprintf("Order %s placed, %d item(s), total %.2f", order.OrderNo, len(order.Items), order.TotalAmount),
		RefId:     order.ID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := a.gormDB.Create(&notif).Error; err != nil {
		zap.L().Warn("failed to create order notification", zap.String("order_no", order.OrderNo), zap.Error(err))
	}

	a.notifyLowStock(order)

	if a.settings != nil && !a.settings.GetBool(SettingsShop, ShopOrderMailNotify) {
		return
	}
	a.sendOrderMail(order)
}

// notifyLowStock flags products whose total stock dropped under the
// configured threshold.
func (a *Application) notifyLowStock(order *domain.Order) {
	level := int(a.settings.GetInt64(SettingsShop, ShopLowStockLevel))
	if level <= 0 {
		return
	}
	for _, item := range order.Items {
		var p domain.Product
		if err := a.gormDB.First(&p, item.ProductId).Error; err != nil {
			continue
		}
		if p.TotalQuantity >= level {
			continue
		}
		a.gormDB.Create(&domain.Notification{
			ID:        common.UUIDint64(),
			Kind:      domain.NotifyLowStock,
			Title:     fmt.Sprintf("Low stock: %s", p.Name),
			Body:      fmt.Sprintf("Product %s has %d unit(s) left", p.Name, p.TotalQuantity),
			RefId:     p.ID,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		})
	}
}

// sendOrderMail dispatches the operator mail on the worker pool so the
// request path never waits on SMTP.
func (a *Application) sendOrderMail(order *domain.Order) {
	mcfg := a.appConfig.Mail
	if mcfg.SmtpHost == "" || mcfg.AdminTo == "" || a.mailPool == nil {
		return
	}

	orderNo := order.OrderNo
	total := order.TotalAmount
	err := a.mailPool.Submit(func() {
		m := gomail.NewMessage()
		m.SetHeader("From", mcfg.From)
		m.SetHeader("To", mcfg.AdminTo)
		m.SetHeader("Subject", fmt.Sprintf("[ToughMall] New order %s", orderNo))
		m.SetBody("text/plain", fmt.Sprintf("Order %s placed, total %.2f", orderNo, total))

		d := gomail.NewDialer(mcfg.SmtpHost, mcfg.SmtpPort, mcfg.Username, mcfg.Passwd)
		if err := d.DialAndSend(m); err != nil {
			zap.L().Warn("order mail send failed", zap.String("order_no", orderNo), zap.Error(err))
		}
	})
	if err != nil {
		zap.L().Warn("order mail submit failed", zap.Error(err))
	}
}
