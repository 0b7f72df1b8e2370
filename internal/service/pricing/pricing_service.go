// Package pricing 提供房价与增值服务价格计算
package pricing

import (
	"sort"
	"time"

	"github.com/dumeirei/hotel-ops-backend/internal/common/config"
	"github.com/dumeirei/hotel-ops-backend/internal/models"
)

// 增值服务价目表
var serviceCatalog = map[string]float64{
	"Spa":          50,
	"Dining":       30,
	"Room Service": 20,
	"Laundry":      15,
	"Gym Access":   10,
}

// 房型基础夜价
var nightlyRates = map[string]float64{
	models.RoomTypeStandard:  80,
	models.RoomTypeDeluxe:    120,
	models.RoomTypeSuite:     180,
	models.RoomTypeExecutive: 250,
}

// PricingService 价格服务
type PricingService struct {
	cfg config.BillingConfig
}

// NewPricingService 创建价格服务
func NewPricingService(cfg config.BillingConfig) *PricingService {
	return &PricingService{cfg: cfg}
}

// PriceOf 查询增值服务价格，未收录的服务按 0 计
func (s *PricingService) PriceOf(serviceName string) float64 {
	return serviceCatalog[serviceName]
}

// KnownServices 获取价目表中全部服务名称
func (s *PricingService) KnownServices() []string {
	names := make([]string, 0, len(serviceCatalog))
	for name := range serviceCatalog {
		names = append(names, name)
	}
	return names
}

// ServicePrice 服务名称与价格
type ServicePrice struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// AllServices 获取完整价目表，按名称排序
func (s *PricingService) AllServices() []ServicePrice {
	names := s.KnownServices()
	sort.Strings(names)

	services := make([]ServicePrice, 0, len(names))
	for _, name := range names {
		services = append(services, ServicePrice{Name: name, Price: serviceCatalog[name]})
	}
	return services
}

// IsKnownService 判断服务是否在价目表中
func (s *PricingService) IsKnownService(serviceName string) bool {
	_, ok := serviceCatalog[serviceName]
	return ok
}

// NightlyRate 计算指定房型在入住日期的夜价，旺季月份上浮
// 未知房型按标准间计价
func (s *PricingService) NightlyRate(roomType string, checkIn time.Time) float64 {
	rate, ok := nightlyRates[roomType]
	if !ok {
		rate = nightlyRates[models.RoomTypeStandard]
	}
	if s.isPeakMonth(checkIn.Month()) {
		rate *= s.cfg.PeakMultiplier
	}
	return rate
}

func (s *PricingService) isPeakMonth(month time.Month) bool {
	for _, m := range s.cfg.PeakMonths {
		if time.Month(m) == month {
			return true
		}
	}
	return false
}

// ServiceTotal 累加一组增值服务的价格
func (s *PricingService) ServiceTotal(serviceNames []string) float64 {
	var total float64
	for _, name := range serviceNames {
		total += s.PriceOf(name)
	}
	return total
}
