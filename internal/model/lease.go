package model

import "time"

// Lease statuses. Only active leases count toward occupancy and revenue.
const (
	LeaseStatusUpcoming   = "upcoming"
	LeaseStatusActive     = "active"
	LeaseStatusEnded      = "ended"
	LeaseStatusTerminated = "terminated"
)

var leaseStatuses = map[string]bool{
	LeaseStatusUpcoming:   true,
	LeaseStatusActive:     true,
	LeaseStatusEnded:      true,
	LeaseStatusTerminated: true,
}

// ValidLeaseStatus reports whether s is one of the accepted lease statuses.
func ValidLeaseStatus(s string) bool {
	return leaseStatuses[s]
}

// DateLayout is the wire format for lease start/end dates.
const DateLayout = "2006-01-02"

// Lease binds one property to one tenant for a date range. MonthlyRent is
// copied at creation and may diverge from the property's current rent.
type Lease struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	PropertyID    uint      `json:"propertyId" gorm:"index;not null"`
	TenantID      uint      `json:"tenantId" gorm:"index;not null"`
	StartDate     string    `json:"startDate" gorm:"type:varchar(10);not null"`
	EndDate       string    `json:"endDate" gorm:"type:varchar(10);not null"`
	MonthlyRent   float64   `json:"monthlyRent" gorm:"not null"`
	DepositAmount *float64  `json:"depositAmount,omitempty"`
	Status        string    `json:"status" gorm:"type:varchar(20);index;not null"`
	PaymentDueDay int       `json:"paymentDueDay" gorm:"default:1"`
	Notes         *string   `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	// Never populated; these exist so migration creates restrict foreign
	// keys and the database rejects a dangling lease outright.
	Property *Property `json:"-" gorm:"constraint:OnDelete:RESTRICT"`
	Tenant   *Tenant   `json:"-" gorm:"constraint:OnDelete:RESTRICT"`

	// Joined fields for display, populated by lease list/get queries.
	PropertyName *string `json:"propertyName,omitempty" gorm:"-"`
	TenantName   *string `json:"tenantName,omitempty" gorm:"-"`
}
