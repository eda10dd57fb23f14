package model

// DashboardStats is the aggregate view computed from current repository
// state on every request. MonthlyRevenue sums monthly rent over leases with
// status "active" only.
type DashboardStats struct {
	TotalProperties     int64   `json:"totalProperties"`
	AvailableProperties int64   `json:"availableProperties"`
	TotalTenants        int64   `json:"totalTenants"`
	TotalLeases         int64   `json:"totalLeases"`
	ActiveLeases        int64   `json:"activeLeases"`
	UpcomingLeases      int64   `json:"upcomingLeases"`
	MonthlyRevenue      float64 `json:"monthlyRevenue"`
}
