package repository

import (
	"context"

	"github.com/seanlynch0199/MMIS6191-Roses-CloversProperties/internal/model"
	"gorm.io/gorm"
)

// StatsRepository derives the dashboard aggregate from current table state.
// Nothing is cached; the dashboard renders rarely and the counts are small.
type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// Dashboard computes property/tenant/lease counts and the monthly revenue.
// Revenue sums monthly rent over active leases only; the amount comes from
// each lease record, not from the property's current listed rent.
func (r *StatsRepository) Dashboard(ctx context.Context) (*model.DashboardStats, error) {
	db := r.db.WithContext(ctx)
	var stats model.DashboardStats

	if err := db.Model(&model.Property{}).Count(&stats.TotalProperties).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Property{}).Where("available = ?", true).
		Count(&stats.AvailableProperties).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Tenant{}).Count(&stats.TotalTenants).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Lease{}).Count(&stats.TotalLeases).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Lease{}).Where("status = ?", model.LeaseStatusActive).
		Count(&stats.ActiveLeases).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Lease{}).Where("status = ?", model.LeaseStatusUpcoming).
		Count(&stats.UpcomingLeases).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Lease{}).Where("status = ?", model.LeaseStatusActive).
		Select("COALESCE(SUM(monthly_rent), 0)").Scan(&stats.MonthlyRevenue).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
