// Package pricing 价格服务单元测试
package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dumeirei/hotel-ops-backend/internal/common/config"
	"github.com/dumeirei/hotel-ops-backend/internal/models"
)

func newTestPricingService() *PricingService {
	return NewPricingService(config.BillingConfig{
		TaxRate:         0.12,
		LateCheckoutFee: 25.0,
		PeakMultiplier:  1.2,
		PeakMonths:      []int{7, 8, 12},
	})
}

func TestPricingService_PriceOf(t *testing.T) {
	svc := newTestPricingService()

	assert.Equal(t, 50.0, svc.PriceOf("Spa"))
	assert.Equal(t, 30.0, svc.PriceOf("Dining"))
	assert.Equal(t, 20.0, svc.PriceOf("Room Service"))
	assert.Equal(t, 15.0, svc.PriceOf("Laundry"))
	assert.Equal(t, 10.0, svc.PriceOf("Gym Access"))

	// 未收录的服务按 0 计
	assert.Equal(t, 0.0, svc.PriceOf("Helicopter"))
	assert.Equal(t, 0.0, svc.PriceOf(""))
}

func TestPricingService_IsKnownService(t *testing.T) {
	svc := newTestPricingService()

	assert.True(t, svc.IsKnownService("Spa"))
	assert.False(t, svc.IsKnownService("spa"))
	assert.False(t, svc.IsKnownService("Helicopter"))
}

func TestPricingService_NightlyRate_OffPeak(t *testing.T) {
	svc := newTestPricingService()
	march := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	assert.Equal(t, 80.0, svc.NightlyRate(models.RoomTypeStandard, march))
	assert.Equal(t, 120.0, svc.NightlyRate(models.RoomTypeDeluxe, march))
	assert.Equal(t, 180.0, svc.NightlyRate(models.RoomTypeSuite, march))
	assert.Equal(t, 250.0, svc.NightlyRate(models.RoomTypeExecutive, march))
}

func TestPricingService_NightlyRate_Peak(t *testing.T) {
	svc := newTestPricingService()

	july := time.Date(2026, 7, 1, 14, 0, 0, 0, time.UTC)
	august := time.Date(2026, 8, 15, 14, 0, 0, 0, time.UTC)
	december := time.Date(2026, 12, 31, 14, 0, 0, 0, time.UTC)

	assert.InDelta(t, 96.0, svc.NightlyRate(models.RoomTypeStandard, july), 0.001)
	assert.InDelta(t, 144.0, svc.NightlyRate(models.RoomTypeDeluxe, august), 0.001)
	assert.InDelta(t, 300.0, svc.NightlyRate(models.RoomTypeExecutive, december), 0.001)
}

func TestPricingService_NightlyRate_UnknownType(t *testing.T) {
	svc := newTestPricingService()
	march := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	july := time.Date(2026, 7, 10, 14, 0, 0, 0, time.UTC)

	// 未知房型按标准间计价，旺季同样上浮
	assert.Equal(t, 80.0, svc.NightlyRate("Penthouse", march))
	assert.InDelta(t, 96.0, svc.NightlyRate("Penthouse", july), 0.001)
}

func TestPricingService_ServiceTotal(t *testing.T) {
	svc := newTestPricingService()

	total := svc.ServiceTotal([]string{"Spa", "Dining", "Unknown"})
	assert.InDelta(t, 80.0, total, 0.001)

	assert.Zero(t, svc.ServiceTotal(nil))
}

func TestPricingService_KnownServices(t *testing.T) {
	svc := newTestPricingService()

	names := svc.KnownServices()
	assert.Len(t, names, 5)
	assert.Contains(t, names, "Spa")
	assert.Contains(t, names, "Gym Access")
}

func TestPricingService_AllServices(t *testing.T) {
	svc := newTestPricingService()

	services := svc.AllServices()
	assert.Len(t, services, 5)

	// 按名称排序
	assert.Equal(t, "Dining", services[0].Name)
	assert.Equal(t, "Spa", services[4].Name)
	assert.InDelta(t, 50.0, services[4].Price, 0.001)
}
