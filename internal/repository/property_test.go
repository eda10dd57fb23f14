package repository

import (
	"context"
	"testing"

	"github.com/seanlynch0199/MMIS6191-Roses-CloversProperties/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertyCreateGetRoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewPropertyRepository(db)
	ctx := context.Background()

	desc := "Sunny two-bed near the park"
	sqft := 850
	p := &model.Property{
		Name:         "Oak Flat",
		AddressLine1: "12 Oak St",
		City:         "Springfield",
		State:        "IL",
		Zip:          "62704",
		PropertyType: model.PropertyTypeApartment,
		Bedrooms:     2,
		Bathrooms:    1.5,
		SquareFeet:   &sqft,
		MonthlyRent:  1200,
		Available:    true,
		Description:  &desc,
		Amenities:    []string{"dishwasher", "parking"},
	}
	require.NoError(t, repo.Create(ctx, p))
	require.NotZero(t, p.ID)
	require.False(t, p.CreatedAt.IsZero())

	got, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Name, got.Name)
	assert.Equal(t, p.Bathrooms, got.Bathrooms)
	assert.Equal(t, []string{"dishwasher", "parking"}, got.Amenities)
	assert.Equal(t, &sqft, got.SquareFeet)
	assert.Equal(t, &desc, got.Description)
}

func TestPropertyGetUnknownID(t *testing.T) {
	db := newTestDB(t)
	repo := NewPropertyRepository(db)

	_, err := repo.Get(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPropertyCreateValidation(t *testing.T) {
	db := newTestDB(t)
	repo := NewPropertyRepository(db)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*model.Property)
		field  string
	}{
		{"missing name", func(p *model.Property) { p.Name = "" }, "name"},
		{"missing city", func(p *model.Property) { p.City = "" }, "city"},
		{"bad type", func(p *model.Property) { p.PropertyType = "castle" }, "propertyType"},
		{"negative bedrooms", func(p *model.Property) { p.Bedrooms = -1 }, "bedrooms"},
		{"tiny bathrooms", func(p *model.Property) { p.Bathrooms = 0.25 }, "bathrooms"},
		{"zero rent", func(p *model.Property) { p.MonthlyRent = 0 }, "monthlyRent"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := &model.Property{
				Name:         "Oak Flat",
				AddressLine1: "12 Oak St",
				City:         "Springfield",
				State:        "IL",
				Zip:          "62704",
				PropertyType: model.PropertyTypeApartment,
				Bedrooms:     2,
				Bathrooms:    1,
				MonthlyRent:  1200,
			}
			tc.mutate(p)

			err := repo.Create(ctx, p)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestPropertyListFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewPropertyRepository(db)
	ctx := context.Background()

	seedProperty(t, db, func(p *model.Property) {
		p.Name = "Oak Flat"
		p.MonthlyRent = 1200
		p.Bedrooms = 2
	})
	seedProperty(t, db, func(p *model.Property) {
		p.Name = "Clover House"
		p.PropertyType = model.PropertyTypeHouse
		p.MonthlyRent = 2400
		p.Bedrooms = 4
		p.Available = false
	})
	seedProperty(t, db, func(p *model.Property) {
		p.Name = "Rose Studio"
		p.PropertyType = model.PropertyTypeStudio
		p.MonthlyRent = 800
		p.Bedrooms = 0
	})

	all, err := repo.List(ctx, PropertyFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
	// Available first, cheapest first within the group.
	assert.Equal(t, "Rose Studio", all[0].Name)
	assert.Equal(t, "Oak Flat", all[1].Name)
	assert.Equal(t, "Clover House", all[2].Name)

	available := true
	got, err := repo.List(ctx, PropertyFilter{Available: &available})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	minBeds := 2
	got, err = repo.List(ctx, PropertyFilter{MinBedrooms: &minBeds})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = repo.List(ctx, PropertyFilter{Type: model.PropertyTypeStudio})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Rose Studio", got[0].Name)

	minRent, maxRent := 1000.0, 2000.0
	got, err = repo.List(ctx, PropertyFilter{MinRent: &minRent, MaxRent: &maxRent})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Oak Flat", got[0].Name)

	got, err = repo.List(ctx, PropertyFilter{Search: "clover"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Clover House", got[0].Name)

	// Filters AND together.
	got, err = repo.List(ctx, PropertyFilter{Available: &available, MinBedrooms: &minBeds})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Oak Flat", got[0].Name)
}

func TestPropertyUpdatePartial(t *testing.T) {
	db := newTestDB(t)
	repo := NewPropertyRepository(db)
	ctx := context.Background()

	p := seedProperty(t, db)

	newRent := 1350.0
	got, err := repo.Update(ctx, p.ID, PropertyUpdate{MonthlyRent: &newRent})
	require.NoError(t, err)
	assert.Equal(t, 1350.0, got.MonthlyRent)
	assert.Equal(t, p.Name, got.Name)
	assert.Equal(t, p.Bedrooms, got.Bedrooms)
}

func TestPropertyUpdateEmptyIsNoOp(t *testing.T) {
	db := newTestDB(t)
	repo := NewPropertyRepository(db)
	ctx := context.Background()

	p := seedProperty(t, db)

	got, err := repo.Update(ctx, p.ID, PropertyUpdate{})
	require.NoError(t, err)
	assert.Equal(t, p.Name, got.Name)
	assert.Equal(t, p.MonthlyRent, got.MonthlyRent)
	assert.Equal(t, p.Bedrooms, got.Bedrooms)
	assert.Equal(t, p.Available, got.Available)
}

func TestPropertyUpdateValidatesResult(t *testing.T) {
	db := newTestDB(t)
	repo := NewPropertyRepository(db)

	p := seedProperty(t, db)

	badRent := -5.0
	_, err := repo.Update(context.Background(), p.ID, PropertyUpdate{MonthlyRent: &badRent})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "monthlyRent", verr.Field)
}

func TestPropertyDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewPropertyRepository(db)
	ctx := context.Background()

	p := seedProperty(t, db)
	require.NoError(t, repo.Delete(ctx, p.ID))

	_, err := repo.Get(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, p.ID), ErrNotFound)
}

func TestPropertyDeleteRemovesEndedLeases(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	p := seedProperty(t, db)
	tn := seedTenant(t, db, "ada@example.com")

	lease := &model.Lease{
		PropertyID:  p.ID,
		TenantID:    tn.ID,
		StartDate:   "2020-01-01",
		EndDate:     "2021-01-01",
		MonthlyRent: 900,
		Status:      model.LeaseStatusEnded,
	}
	require.NoError(t, NewLeaseRepository(db).Create(ctx, lease))

	require.NoError(t, NewPropertyRepository(db).Delete(ctx, p.ID))

	leases, err := NewLeaseRepository(db).List(ctx, LeaseFilter{})
	require.NoError(t, err)
	assert.Empty(t, leases)
}

func TestPropertyDeleteBlockedByLease(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	p := seedProperty(t, db)
	tn := seedTenant(t, db, "ada@example.com")

	lease := &model.Lease{
		PropertyID:  p.ID,
		TenantID:    tn.ID,
		StartDate:   "2025-01-01",
		EndDate:     "2026-01-01",
		MonthlyRent: 1200,
		Status:      model.LeaseStatusActive,
	}
	require.NoError(t, NewLeaseRepository(db).Create(ctx, lease))

	err := NewPropertyRepository(db).Delete(ctx, p.ID)
	assert.ErrorIs(t, err, ErrPropertyHasLeases)

	// The property is still there.
	_, err = NewPropertyRepository(db).Get(ctx, p.ID)
	assert.NoError(t, err)
}
