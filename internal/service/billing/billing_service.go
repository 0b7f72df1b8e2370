// Package billing 提供账单计算与出账服务
package billing

import (
	"context"
	"math"
	"sync"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-ops-backend/internal/common/errors"
	"github.com/dumeirei/hotel-ops-backend/internal/common/logger"
	"github.com/dumeirei/hotel-ops-backend/internal/common/metrics"
	"github.com/dumeirei/hotel-ops-backend/internal/common/utils"
	"github.com/dumeirei/hotel-ops-backend/internal/models"
	"github.com/dumeirei/hotel-ops-backend/internal/repository"
	"github.com/dumeirei/hotel-ops-backend/internal/service/pricing"
)

// BillingService 账单服务
type BillingService struct {
	db              *gorm.DB
	billRepo        *repository.BillRepository
	reservationRepo *repository.ReservationRepository
	pricingService  *pricing.PricingService
	taxRate         float64
	lateCheckoutFee float64

	// 同一结算主体的出账互斥
	subjectMu sync.Mutex
	subjects  map[string]*sync.Mutex
}

// NewBillingService 创建账单服务
func NewBillingService(
	db *gorm.DB,
	billRepo *repository.BillRepository,
	reservationRepo *repository.ReservationRepository,
	pricingService *pricing.PricingService,
	taxRate, lateCheckoutFee float64,
) *BillingService {
	return &BillingService{
		db:              db,
		billRepo:        billRepo,
		reservationRepo: reservationRepo,
		pricingService:  pricingService,
		taxRate:         taxRate,
		lateCheckoutFee: lateCheckoutFee,
		subjects:        make(map[string]*sync.Mutex),
	}
}

// BillBreakdown 账单金额明细
type BillBreakdown struct {
	SubjectType   string   `json:"subject_type"`
	SubjectName   string   `json:"subject_name"`
	BaseCharge    float64  `json:"base_charge"`
	ServiceCharge float64  `json:"service_charge"`
	Tax           float64  `json:"tax"`
	DiscountPct   float64  `json:"discount_pct"`
	Discount      float64  `json:"discount"`
	Total         float64  `json:"total"`
	MemberCount   int      `json:"member_count"`
	Services      []string `json:"services,omitempty"`
}

// SplitResult 团体分摊结果
type SplitResult struct {
	GroupName   string  `json:"group_name"`
	Total       float64 `json:"total"`
	MemberCount int     `json:"member_count"`
	PerPerson   float64 `json:"per_person"`
}

// lockSubject 获取结算主体的互斥锁
func (s *BillingService) lockSubject(subjectType, subjectName string) *sync.Mutex {
	key := subjectType + ":" + subjectName
	s.subjectMu.Lock()
	defer s.subjectMu.Unlock()
	mu, ok := s.subjects[key]
	if !ok {
		mu = &sync.Mutex{}
		s.subjects[key] = mu
	}
	return mu
}

// validateDiscount 校验折扣比例，必须为有限非负数
func validateDiscount(pct float64) error {
	if math.IsNaN(pct) || math.IsInf(pct, 0) || pct < 0 {
		return errors.ErrDiscountInvalid
	}
	return nil
}

// baseCharge 计算一组预订的房费，含延迟退房附加费
func (s *BillingService) baseCharge(reservations []*models.Reservation) float64 {
	var base float64
	for _, r := range reservations {
		base += s.pricingService.NightlyRate(r.RoomType, r.CheckIn) * float64(r.Nights())
		if r.LateCheckout {
			base += s.lateCheckoutFee
		}
	}
	return base
}

// compute 按固定顺序计算账单金额
func (s *BillingService) compute(subjectType, subjectName string, reservations []*models.Reservation, services []string, discountPct float64) *BillBreakdown {
	base := s.baseCharge(reservations)
	serviceCharge := s.pricingService.ServiceTotal(services)
	tax := (base + serviceCharge) * s.taxRate
	discount := (base + serviceCharge + tax) * discountPct / 100

	members := make(map[string]struct{})
	for _, r := range reservations {
		members[r.GuestName] = struct{}{}
	}

	return &BillBreakdown{
		SubjectType:   subjectType,
		SubjectName:   subjectName,
		BaseCharge:    base,
		ServiceCharge: serviceCharge,
		Tax:           tax,
		DiscountPct:   discountPct,
		Discount:      discount,
		Total:         base + serviceCharge + tax - discount,
		MemberCount:   len(members),
		Services:      services,
	}
}

// guestReservations 获取散客的全部预订
func (s *BillingService) guestReservations(ctx context.Context, guestName string) ([]*models.Reservation, error) {
	if guestName == "" {
		return nil, errors.ErrBillSubjectEmpty
	}
	reservations, err := s.reservationRepo.ListByGuest(ctx, guestName)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if len(reservations) == 0 {
		return nil, errors.ErrReservationNotFound
	}
	return reservations, nil
}

// groupReservations 获取团体的全部预订
func (s *BillingService) groupReservations(ctx context.Context, groupName string) ([]*models.Reservation, error) {
	if groupName == "" {
		return nil, errors.ErrBillSubjectEmpty
	}
	reservations, err := s.reservationRepo.ListByGroup(ctx, groupName)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if len(reservations) == 0 {
		return nil, errors.ErrGroupEmpty
	}
	return reservations, nil
}

// PreviewGuest 预览散客账单，不落库
func (s *BillingService) PreviewGuest(ctx context.Context, guestName string, services []string, discountPct float64) (*BillBreakdown, error) {
	if err := validateDiscount(discountPct); err != nil {
		return nil, err
	}
	reservations, err := s.guestReservations(ctx, guestName)
	if err != nil {
		return nil, err
	}
	return s.compute(models.BillSubjectGuest, guestName, reservations, services, discountPct), nil
}

// PreviewGroup 预览团体账单，不落库
func (s *BillingService) PreviewGroup(ctx context.Context, groupName string, services []string, discountPct float64) (*BillBreakdown, error) {
	if err := validateDiscount(discountPct); err != nil {
		return nil, err
	}
	reservations, err := s.groupReservations(ctx, groupName)
	if err != nil {
		return nil, err
	}
	return s.compute(models.BillSubjectGroup, groupName, reservations, services, discountPct), nil
}

// GenerateGuest 生成散客账单，同一客人只能出账一次
func (s *BillingService) GenerateGuest(ctx context.Context, guestName string, services []string, discountPct float64) (*models.Bill, error) {
	if err := validateDiscount(discountPct); err != nil {
		return nil, err
	}
	reservations, err := s.guestReservations(ctx, guestName)
	if err != nil {
		return nil, err
	}
	return s.generate(ctx, s.compute(models.BillSubjectGuest, guestName, reservations, services, discountPct), reservations)
}

// GenerateGroup 生成团体账单，同一团体只能出账一次
func (s *BillingService) GenerateGroup(ctx context.Context, groupName string, services []string, discountPct float64) (*models.Bill, error) {
	if err := validateDiscount(discountPct); err != nil {
		return nil, err
	}
	reservations, err := s.groupReservations(ctx, groupName)
	if err != nil {
		return nil, err
	}
	return s.generate(ctx, s.compute(models.BillSubjectGroup, groupName, reservations, services, discountPct), reservations)
}

// generate 落库出账，进程内互斥加数据库唯一约束双重保护
// 出账成功后在同一事务内将成员预订标记为已出账
func (s *BillingService) generate(ctx context.Context, breakdown *BillBreakdown, reservations []*models.Reservation) (*models.Bill, error) {
	mu := s.lockSubject(breakdown.SubjectType, breakdown.SubjectName)
	mu.Lock()
	defer mu.Unlock()

	exists, err := s.billRepo.ExistsBySubject(ctx, breakdown.SubjectType, breakdown.SubjectName)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if exists {
		return nil, errors.ErrDuplicateBill
	}

	lines := make([]models.BillLine, 0, len(breakdown.Services))
	for _, name := range breakdown.Services {
		lines = append(lines, models.BillLine{
			ServiceName: name,
			Price:       s.pricingService.PriceOf(name),
		})
	}

	bill := &models.Bill{
		BillNo:        utils.GenerateBillNo("B"),
		SubjectType:   breakdown.SubjectType,
		SubjectName:   breakdown.SubjectName,
		BaseCharge:    breakdown.BaseCharge,
		ServiceCharge: breakdown.ServiceCharge,
		Tax:           breakdown.Tax,
		DiscountPct:   breakdown.DiscountPct,
		Discount:      breakdown.Discount,
		Total:         breakdown.Total,
		MemberCount:   breakdown.MemberCount,
		Lines:         lines,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repository.NewBillRepository(tx).Create(ctx, bill); err != nil {
			return err
		}

		reservationRepo := repository.NewReservationRepository(tx)
		for _, r := range reservations {
			if err := reservationRepo.UpdateFields(ctx, r.ID, map[string]interface{}{
				"payment_status": models.PaymentStatusBilled,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	metrics.GetMetrics().RecordBill(bill.SubjectType)
	logger.Info("账单已生成",
		logger.BillNo(bill.BillNo),
		logger.GuestName(bill.SubjectName),
	)

	return bill, nil
}

// SplitGroup 团体消费人均分摊
// 按现有预订和所选服务实时计算，不依赖已生成的账单，份数为预订数
func (s *BillingService) SplitGroup(ctx context.Context, groupName string, services []string, discountPct float64) (*SplitResult, error) {
	if err := validateDiscount(discountPct); err != nil {
		return nil, err
	}

	reservations, err := s.groupReservations(ctx, groupName)
	if err != nil {
		return nil, err
	}

	breakdown := s.compute(models.BillSubjectGroup, groupName, reservations, services, discountPct)
	shares := len(reservations)

	return &SplitResult{
		GroupName:   groupName,
		Total:       breakdown.Total,
		MemberCount: shares,
		PerPerson:   breakdown.Total / float64(shares),
	}, nil
}

// GetBill 根据 ID 获取账单
func (s *BillingService) GetBill(ctx context.Context, id int64) (*models.Bill, error) {
	bill, err := s.billRepo.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrBillNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return bill, nil
}

// ListBills 获取账单列表
func (s *BillingService) ListBills(ctx context.Context, offset, limit int, filters map[string]interface{}) ([]*models.Bill, int64, error) {
	bills, total, err := s.billRepo.List(ctx, offset, limit, filters)
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}
	return bills, total, nil
}

// ServiceCatalog 获取增值服务价目表
func (s *BillingService) ServiceCatalog() []pricing.ServicePrice {
	return s.pricingService.AllServices()
}

// GuestServiceHistory 获取散客已出账的服务消费记录
func (s *BillingService) GuestServiceHistory(ctx context.Context, guestName string) ([]*models.BillLine, error) {
	if guestName == "" {
		return nil, errors.ErrBillSubjectEmpty
	}
	lines, err := s.billRepo.ListLinesByGuest(ctx, guestName)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return lines, nil
}
