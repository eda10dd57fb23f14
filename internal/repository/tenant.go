package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/seanlynch0199/MMIS6191-Roses-CloversProperties/internal/model"
	"gorm.io/gorm"
)

// TenantUpdate is a partial update; nil fields leave the stored value
// untouched.
type TenantUpdate struct {
	FirstName             *string `json:"firstName"`
	LastName              *string `json:"lastName"`
	Email                 *string `json:"email"`
	Phone                 *string `json:"phone"`
	DateOfBirth           *string `json:"dateOfBirth"`
	EmergencyContactName  *string `json:"emergencyContactName"`
	EmergencyContactPhone *string `json:"emergencyContactPhone"`
	Notes                 *string `json:"notes"`
}

// TenantRepository provides CRUD access to tenants.
type TenantRepository struct {
	db *gorm.DB
}

func NewTenantRepository(db *gorm.DB) *TenantRepository {
	return &TenantRepository{db: db}
}

// List returns all tenants ordered by last then first name.
func (r *TenantRepository) List(ctx context.Context) ([]model.Tenant, error) {
	tenants := []model.Tenant{}
	err := r.db.WithContext(ctx).
		Order("last_name ASC, first_name ASC, id ASC").
		Find(&tenants).Error
	if err != nil {
		return nil, err
	}
	return tenants, nil
}

// Get returns the tenant with the given id or ErrNotFound.
func (r *TenantRepository) Get(ctx context.Context, id uint) (*model.Tenant, error) {
	var t model.Tenant
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Create validates and persists a new tenant. A duplicate email surfaces as
// ErrDuplicateEmail via the unique index, never as a second record.
func (r *TenantRepository) Create(ctx context.Context, t *model.Tenant) error {
	if err := validateTenant(t); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return translateTenantError(err)
	}
	return nil
}

// Update applies the non-nil fields of u and returns the updated tenant.
func (r *TenantRepository) Update(ctx context.Context, id uint, u TenantUpdate) (*model.Tenant, error) {
	t, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if u.FirstName != nil {
		t.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		t.LastName = *u.LastName
	}
	if u.Email != nil {
		t.Email = *u.Email
	}
	if u.Phone != nil {
		t.Phone = u.Phone
	}
	if u.DateOfBirth != nil {
		t.DateOfBirth = u.DateOfBirth
	}
	if u.EmergencyContactName != nil {
		t.EmergencyContactName = u.EmergencyContactName
	}
	if u.EmergencyContactPhone != nil {
		t.EmergencyContactPhone = u.EmergencyContactPhone
	}
	if u.Notes != nil {
		t.Notes = u.Notes
	}

	if err := validateTenant(t); err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Save(t).Error; err != nil {
		return nil, translateTenantError(err)
	}
	return t, nil
}

// Delete removes the tenant. Deletion is blocked while active or upcoming
// leases still reference them.
func (r *TenantRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var leaseCount int64
		if err := tx.Model(&model.Lease{}).
			Where("tenant_id = ? AND status IN ?", id, []string{model.LeaseStatusActive, model.LeaseStatusUpcoming}).
			Count(&leaseCount).Error; err != nil {
			return err
		}
		if leaseCount > 0 {
			return ErrTenantHasLeases
		}

		// Only ended or terminated leases remain; they go with the tenant
		// so the foreign key cannot block the delete.
		if err := tx.Where("tenant_id = ?", id).Delete(&model.Lease{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&model.Tenant{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func validateTenant(t *model.Tenant) error {
	if t.FirstName == "" {
		return invalidf("firstName", "first name is required")
	}
	if t.LastName == "" {
		return invalidf("lastName", "last name is required")
	}
	if t.Email == "" {
		return invalidf("email", "email is required")
	}
	if !strings.Contains(t.Email, "@") {
		return invalidf("email", "email must contain @")
	}
	return nil
}

func translateTenantError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateEmail
	}
	return err
}
