package repository

import (
	"context"
	"errors"
	"time"

	"github.com/seanlynch0199/MMIS6191-Roses-CloversProperties/internal/model"
	"gorm.io/gorm"
)

// LeaseFilter narrows a lease listing; zero fields mean "no constraint".
type LeaseFilter struct {
	Status     string
	PropertyID uint
	TenantID   uint
}

// LeaseUpdate is a partial update; nil fields leave the stored value
// untouched.
type LeaseUpdate struct {
	PropertyID    *uint    `json:"propertyId"`
	TenantID      *uint    `json:"tenantId"`
	StartDate     *string  `json:"startDate"`
	EndDate       *string  `json:"endDate"`
	MonthlyRent   *float64 `json:"monthlyRent"`
	DepositAmount *float64 `json:"depositAmount"`
	Status        *string  `json:"status"`
	PaymentDueDay *int     `json:"paymentDueDay"`
	Notes         *string  `json:"notes"`
}

// LeaseRepository provides CRUD access to leases and keeps the referenced
// property's availability flag in step with active-lease transitions.
type LeaseRepository struct {
	db *gorm.DB

	// now is replaceable in tests so status derivation is deterministic.
	now func() time.Time
}

func NewLeaseRepository(db *gorm.DB) *LeaseRepository {
	return &LeaseRepository{db: db, now: time.Now}
}

// List returns leases matching the filter, newest start date first, with the
// property and tenant display names attached.
func (r *LeaseRepository) List(ctx context.Context, f LeaseFilter) ([]model.Lease, error) {
	query := r.db.WithContext(ctx).Model(&model.Lease{})

	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.PropertyID != 0 {
		query = query.Where("property_id = ?", f.PropertyID)
	}
	if f.TenantID != 0 {
		query = query.Where("tenant_id = ?", f.TenantID)
	}

	leases := []model.Lease{}
	if err := query.Order("start_date DESC, id DESC").Find(&leases).Error; err != nil {
		return nil, err
	}
	if err := r.attachNames(ctx, leases); err != nil {
		return nil, err
	}
	return leases, nil
}

// Get returns the lease with the given id or ErrNotFound.
func (r *LeaseRepository) Get(ctx context.Context, id uint) (*model.Lease, error) {
	var l model.Lease
	if err := r.db.WithContext(ctx).First(&l, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	leases := []model.Lease{l}
	if err := r.attachNames(ctx, leases); err != nil {
		return nil, err
	}
	return &leases[0], nil
}

// Create validates and persists a new lease. The existence checks, the
// overlap check and the insert run in one transaction so a concurrent delete
// of the referenced property or tenant fails the write instead of leaving a
// dangling reference. An empty status is derived from the dates. Creating an
// active lease marks the property unavailable.
func (r *LeaseRepository) Create(ctx context.Context, l *model.Lease) error {
	if err := r.validateLease(l, true); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Property{}).Where("id = ?", l.PropertyID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return invalidf("propertyId", "property %d not found", l.PropertyID)
		}

		if err := tx.Model(&model.Tenant{}).Where("id = ?", l.TenantID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return invalidf("tenantId", "tenant %d not found", l.TenantID)
		}

		if err := tx.Model(&model.Lease{}).
			Where("property_id = ? AND status IN ? AND NOT (end_date < ? OR start_date > ?)",
				l.PropertyID, []string{model.LeaseStatusActive, model.LeaseStatusUpcoming}, l.StartDate, l.EndDate).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrLeaseOverlap
		}

		if err := tx.Create(l).Error; err != nil {
			return err
		}

		if l.Status == model.LeaseStatusActive {
			if err := tx.Model(&model.Property{}).Where("id = ?", l.PropertyID).
				Update("available", false).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Update applies the non-nil fields of u and returns the updated lease. The
// same existence and overlap checks as Create run against the updated record.
// When the lease enters or leaves active status, or an active lease moves to
// another property, the affected properties' availability flags follow.
func (r *LeaseRepository) Update(ctx context.Context, id uint, u LeaseUpdate) (*model.Lease, error) {
	var updated *model.Lease
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var l model.Lease
		if err := tx.First(&l, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		wasActive := l.Status == model.LeaseStatusActive
		oldPropertyID := l.PropertyID

		applyLeaseUpdate(&l, u)
		if err := r.validateLease(&l, false); err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&model.Property{}).Where("id = ?", l.PropertyID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return invalidf("propertyId", "property %d not found", l.PropertyID)
		}

		if err := tx.Model(&model.Tenant{}).Where("id = ?", l.TenantID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return invalidf("tenantId", "tenant %d not found", l.TenantID)
		}

		// Overlap check against other leases on the same property.
		if err := tx.Model(&model.Lease{}).
			Where("property_id = ? AND id != ? AND status IN ? AND NOT (end_date < ? OR start_date > ?)",
				l.PropertyID, l.ID, []string{model.LeaseStatusActive, model.LeaseStatusUpcoming}, l.StartDate, l.EndDate).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrLeaseOverlap
		}

		if err := tx.Save(&l).Error; err != nil {
			return err
		}

		isActive := l.Status == model.LeaseStatusActive
		moved := l.PropertyID != oldPropertyID
		if wasActive && (!isActive || moved) {
			if err := tx.Model(&model.Property{}).Where("id = ?", oldPropertyID).
				Update("available", true).Error; err != nil {
				return err
			}
		}
		if isActive && (!wasActive || moved) {
			if err := tx.Model(&model.Property{}).Where("id = ?", l.PropertyID).
				Update("available", false).Error; err != nil {
				return err
			}
		}

		updated = &l
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := r.attachNamesOne(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the lease. Deleting an active lease frees the property.
func (r *LeaseRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var l model.Lease
		if err := tx.First(&l, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := tx.Delete(&model.Lease{}, id).Error; err != nil {
			return err
		}

		if l.Status == model.LeaseStatusActive {
			if err := tx.Model(&model.Property{}).Where("id = ?", l.PropertyID).
				Update("available", true).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// RefreshStatuses rolls lease statuses forward by date: upcoming leases whose
// window has opened become active, and active or upcoming leases past their
// end date become ended. Run at startup.
func (r *LeaseRepository) RefreshStatuses(ctx context.Context) error {
	today := r.now().Format(model.DateLayout)

	err := r.db.WithContext(ctx).Model(&model.Lease{}).
		Where("status = ? AND start_date <= ? AND end_date >= ?", model.LeaseStatusUpcoming, today, today).
		Update("status", model.LeaseStatusActive).Error
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Model(&model.Lease{}).
		Where("status IN ? AND end_date < ?", []string{model.LeaseStatusActive, model.LeaseStatusUpcoming}, today).
		Update("status", model.LeaseStatusEnded).Error
}

func applyLeaseUpdate(l *model.Lease, u LeaseUpdate) {
	if u.PropertyID != nil {
		l.PropertyID = *u.PropertyID
	}
	if u.TenantID != nil {
		l.TenantID = *u.TenantID
	}
	if u.StartDate != nil {
		l.StartDate = *u.StartDate
	}
	if u.EndDate != nil {
		l.EndDate = *u.EndDate
	}
	if u.MonthlyRent != nil {
		l.MonthlyRent = *u.MonthlyRent
	}
	if u.DepositAmount != nil {
		l.DepositAmount = u.DepositAmount
	}
	if u.Status != nil {
		l.Status = *u.Status
	}
	if u.PaymentDueDay != nil {
		l.PaymentDueDay = *u.PaymentDueDay
	}
	if u.Notes != nil {
		l.Notes = u.Notes
	}
}

// validateLease checks field invariants. When derive is true an empty status
// is filled in from the lease dates, the way a newly created lease gets its
// initial status.
func (r *LeaseRepository) validateLease(l *model.Lease, derive bool) error {
	if l.PropertyID == 0 {
		return invalidf("propertyId", "property is required")
	}
	if l.TenantID == 0 {
		return invalidf("tenantId", "tenant is required")
	}
	if l.StartDate == "" {
		return invalidf("startDate", "start date is required")
	}
	if l.EndDate == "" {
		return invalidf("endDate", "end date is required")
	}

	start, err := time.Parse(model.DateLayout, l.StartDate)
	if err != nil {
		return invalidf("startDate", "invalid date format (use YYYY-MM-DD)")
	}
	end, err := time.Parse(model.DateLayout, l.EndDate)
	if err != nil {
		return invalidf("endDate", "invalid date format (use YYYY-MM-DD)")
	}
	if !end.After(start) {
		return invalidf("endDate", "end date must be after start date")
	}

	if l.MonthlyRent <= 0 {
		return invalidf("monthlyRent", "monthly rent must be greater than zero")
	}
	if l.PaymentDueDay == 0 {
		l.PaymentDueDay = 1
	}
	if l.PaymentDueDay < 1 || l.PaymentDueDay > 28 {
		return invalidf("paymentDueDay", "payment due day must be between 1 and 28")
	}

	if l.Status == "" && derive {
		l.Status = r.statusForDates(l.StartDate, l.EndDate)
	}
	if !model.ValidLeaseStatus(l.Status) {
		return invalidf("status", "unknown lease status %q", l.Status)
	}
	return nil
}

func (r *LeaseRepository) statusForDates(startDate, endDate string) string {
	today := r.now().Format(model.DateLayout)
	switch {
	case startDate > today:
		return model.LeaseStatusUpcoming
	case endDate < today:
		return model.LeaseStatusEnded
	default:
		return model.LeaseStatusActive
	}
}

func (r *LeaseRepository) attachNamesOne(ctx context.Context, l *model.Lease) error {
	leases := []model.Lease{*l}
	if err := r.attachNames(ctx, leases); err != nil {
		return err
	}
	*l = leases[0]
	return nil
}

// attachNames fills the display-only propertyName/tenantName fields with one
// lookup per referenced table.
func (r *LeaseRepository) attachNames(ctx context.Context, leases []model.Lease) error {
	if len(leases) == 0 {
		return nil
	}

	propertyIDs := make([]uint, 0, len(leases))
	tenantIDs := make([]uint, 0, len(leases))
	for _, l := range leases {
		propertyIDs = append(propertyIDs, l.PropertyID)
		tenantIDs = append(tenantIDs, l.TenantID)
	}

	var properties []model.Property
	if err := r.db.WithContext(ctx).Select("id", "name").Find(&properties, propertyIDs).Error; err != nil {
		return err
	}
	propertyNames := make(map[uint]string, len(properties))
	for _, p := range properties {
		propertyNames[p.ID] = p.Name
	}

	var tenants []model.Tenant
	if err := r.db.WithContext(ctx).Select("id", "first_name", "last_name").Find(&tenants, tenantIDs).Error; err != nil {
		return err
	}
	tenantNames := make(map[uint]string, len(tenants))
	for _, t := range tenants {
		tenantNames[t.ID] = t.FirstName + " " + t.LastName
	}

	for i := range leases {
		if name, ok := propertyNames[leases[i].PropertyID]; ok {
			leases[i].PropertyName = &name
		}
		if name, ok := tenantNames[leases[i].TenantID]; ok {
			leases[i].TenantName = &name
		}
	}
	return nil
}
