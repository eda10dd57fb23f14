package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/seanlynch0199/MMIS6191-Roses-CloversProperties/internal/model"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Property{}, &model.Tenant{}, &model.Lease{}))
	return db
}

func seedProperty(t *testing.T, db *gorm.DB, mutate ...func(*model.Property)) *model.Property {
	t.Helper()

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
		Available:    true,
	}
	for _, m := range mutate {
		m(p)
	}
	require.NoError(t, NewPropertyRepository(db).Create(context.Background(), p))
	return p
}

func seedTenant(t *testing.T, db *gorm.DB, email string) *model.Tenant {
	t.Helper()

	tn := &model.Tenant{
		FirstName: "Ada",
		LastName:  "Byrne",
		Email:     email,
	}
	require.NoError(t, NewTenantRepository(db).Create(context.Background(), tn))
	return tn
}
