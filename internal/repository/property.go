package repository

import (
	"context"
	"errors"

	"github.com/seanlynch0199/MMIS6191-Roses-CloversProperties/internal/model"
	"gorm.io/gorm"
)

// PropertyFilter narrows a property listing. Nil / zero fields mean "no
// constraint"; set fields combine with logical AND.
type PropertyFilter struct {
	Available   *bool
	MinBedrooms *int
	Type        string
	Search      string
	MinRent     *float64
	MaxRent     *float64
}

// PropertyUpdate is a partial update; nil fields leave the stored value
// untouched.
type PropertyUpdate struct {
	Name          *string   `json:"name"`
	AddressLine1  *string   `json:"addressLine1"`
	AddressLine2  *string   `json:"addressLine2"`
	City          *string   `json:"city"`
	State         *string   `json:"state"`
	Zip           *string   `json:"zip"`
	PropertyType  *string   `json:"propertyType"`
	Bedrooms      *int      `json:"bedrooms"`
	Bathrooms     *float64  `json:"bathrooms"`
	SquareFeet    *int      `json:"squareFeet"`
	YearBuilt     *int      `json:"yearBuilt"`
	MonthlyRent   *float64  `json:"monthlyRent"`
	DepositAmount *float64  `json:"depositAmount"`
	Available     *bool     `json:"available"`
	AvailableDate *string   `json:"availableDate"`
	Description   *string   `json:"description"`
	Amenities     *[]string `json:"amenities"`
	ImageURL      *string   `json:"imageUrl"`
}

// PropertyRepository provides CRUD access to properties.
type PropertyRepository struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

// List returns properties matching the filter, available first and cheapest
// first within each group so repeated calls stay stable.
func (r *PropertyRepository) List(ctx context.Context, f PropertyFilter) ([]model.Property, error) {
	query := r.db.WithContext(ctx).Model(&model.Property{})

	if f.Available != nil {
		query = query.Where("available = ?", *f.Available)
	}
	if f.MinBedrooms != nil {
		query = query.Where("bedrooms >= ?", *f.MinBedrooms)
	}
	if f.Type != "" {
		query = query.Where("property_type = ?", f.Type)
	}
	if f.MinRent != nil {
		query = query.Where("monthly_rent >= ?", *f.MinRent)
	}
	if f.MaxRent != nil {
		query = query.Where("monthly_rent <= ?", *f.MaxRent)
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		query = query.Where("name LIKE ? OR address_line1 LIKE ? OR city LIKE ?", pattern, pattern, pattern)
	}

	properties := []model.Property{}
	if err := query.Order("available DESC, monthly_rent ASC, id ASC").Find(&properties).Error; err != nil {
		return nil, err
	}
	return properties, nil
}

// Get returns the property with the given id or ErrNotFound.
func (r *PropertyRepository) Get(ctx context.Context, id uint) (*model.Property, error) {
	var p model.Property
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Create validates and persists a new property. The caller's struct gets the
// assigned id and timestamps filled in.
func (r *PropertyRepository) Create(ctx context.Context, p *model.Property) error {
	if err := validateProperty(p); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(p).Error
}

// Update applies the non-nil fields of u to the stored record and returns the
// updated property. An empty update is a no-op that returns the record as-is.
func (r *PropertyRepository) Update(ctx context.Context, id uint, u PropertyUpdate) (*model.Property, error) {
	p, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	applyPropertyUpdate(p, u)
	if err := validateProperty(p); err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Save(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes the property. Deletion is blocked while active or upcoming
// leases still reference it.
func (r *PropertyRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var leaseCount int64
		if err := tx.Model(&model.Lease{}).
			Where("property_id = ? AND status IN ?", id, []string{model.LeaseStatusActive, model.LeaseStatusUpcoming}).
			Count(&leaseCount).Error; err != nil {
			return err
		}
		if leaseCount > 0 {
			return ErrPropertyHasLeases
		}

		// Only ended or terminated leases remain; they go with the
		// property so the foreign key cannot block the delete.
		if err := tx.Where("property_id = ?", id).Delete(&model.Lease{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&model.Property{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func applyPropertyUpdate(p *model.Property, u PropertyUpdate) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.AddressLine1 != nil {
		p.AddressLine1 = *u.AddressLine1
	}
	if u.AddressLine2 != nil {
		p.AddressLine2 = u.AddressLine2
	}
	if u.City != nil {
		p.City = *u.City
	}
	if u.State != nil {
		p.State = *u.State
	}
	if u.Zip != nil {
		p.Zip = *u.Zip
	}
	if u.PropertyType != nil {
		p.PropertyType = *u.PropertyType
	}
	if u.Bedrooms != nil {
		p.Bedrooms = *u.Bedrooms
	}
	if u.Bathrooms != nil {
		p.Bathrooms = *u.Bathrooms
	}
	if u.SquareFeet != nil {
		p.SquareFeet = u.SquareFeet
	}
	if u.YearBuilt != nil {
		p.YearBuilt = u.YearBuilt
	}
	if u.MonthlyRent != nil {
		p.MonthlyRent = *u.MonthlyRent
	}
	if u.DepositAmount != nil {
		p.DepositAmount = u.DepositAmount
	}
	if u.Available != nil {
		p.Available = *u.Available
	}
	if u.AvailableDate != nil {
		p.AvailableDate = u.AvailableDate
	}
	if u.Description != nil {
		p.Description = u.Description
	}
	if u.Amenities != nil {
		p.Amenities = *u.Amenities
	}
	if u.ImageURL != nil {
		p.ImageURL = u.ImageURL
	}
}

func validateProperty(p *model.Property) error {
	if p.Name == "" {
		return invalidf("name", "name is required")
	}
	if p.AddressLine1 == "" {
		return invalidf("addressLine1", "address is required")
	}
	if p.City == "" {
		return invalidf("city", "city is required")
	}
	if p.State == "" {
		return invalidf("state", "state is required")
	}
	if p.Zip == "" {
		return invalidf("zip", "zip is required")
	}
	if !model.ValidPropertyType(p.PropertyType) {
		return invalidf("propertyType", "unknown property type %q", p.PropertyType)
	}
	if p.Bedrooms < 0 {
		return invalidf("bedrooms", "bedrooms must not be negative")
	}
	if p.Bathrooms < 0.5 {
		return invalidf("bathrooms", "bathrooms must be at least 0.5")
	}
	if p.MonthlyRent <= 0 {
		return invalidf("monthlyRent", "monthly rent must be greater than zero")
	}
	if p.SquareFeet != nil && *p.SquareFeet <= 0 {
		return invalidf("squareFeet", "square footage must be greater than zero")
	}
	if p.DepositAmount != nil && *p.DepositAmount < 0 {
		return invalidf("depositAmount", "deposit must not be negative")
	}
	return nil
}
