package model

import "time"

// Tenant represents a prospective or current renter stored in the database.
// Email is unique across all tenants; the unique index is what turns a
// duplicate create into a conflict instead of a second record.
type Tenant struct {
	ID                    uint      `json:"id" gorm:"primaryKey"`
	FirstName             string    `json:"firstName" gorm:"type:varchar(100);not null"`
	LastName              string    `json:"lastName" gorm:"type:varchar(100);not null"`
	Email                 string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Phone                 *string   `json:"phone,omitempty" gorm:"type:varchar(30)"`
	DateOfBirth           *string   `json:"dateOfBirth,omitempty" gorm:"type:varchar(10)"`
	EmergencyContactName  *string   `json:"emergencyContactName,omitempty" gorm:"type:varchar(200)"`
	EmergencyContactPhone *string   `json:"emergencyContactPhone,omitempty" gorm:"type:varchar(30)"`
	Notes                 *string   `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt             time.Time `json:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt"`
}
