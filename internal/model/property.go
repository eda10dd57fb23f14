package model

import "time"

// Property types accepted by the API.
const (
	PropertyTypeApartment = "apartment"
	PropertyTypeHouse     = "house"
	PropertyTypeDuplex    = "duplex"
	PropertyTypeCondo     = "condo"
	PropertyTypeTownhouse = "townhouse"
	PropertyTypeStudio    = "studio"
)

var propertyTypes = map[string]bool{
	PropertyTypeApartment: true,
	PropertyTypeHouse:     true,
	PropertyTypeDuplex:    true,
	PropertyTypeCondo:     true,
	PropertyTypeTownhouse: true,
	PropertyTypeStudio:    true,
}

// ValidPropertyType reports whether t is one of the accepted property types.
func ValidPropertyType(t string) bool {
	return propertyTypes[t]
}

// Property represents a rentable unit stored in the database
type Property struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"type:varchar(200);not null"`
	AddressLine1  string    `json:"addressLine1" gorm:"type:varchar(255);not null"`
	AddressLine2  *string   `json:"addressLine2,omitempty" gorm:"type:varchar(255)"`
	City          string    `json:"city" gorm:"type:varchar(100);not null"`
	State         string    `json:"state" gorm:"type:varchar(50);not null"`
	Zip           string    `json:"zip" gorm:"type:varchar(20);not null"`
	PropertyType  string    `json:"propertyType" gorm:"type:varchar(20);not null"`
	Bedrooms      int       `json:"bedrooms" gorm:"not null"`
	Bathrooms     float64   `json:"bathrooms" gorm:"not null"`
	SquareFeet    *int      `json:"squareFeet,omitempty"`
	YearBuilt     *int      `json:"yearBuilt,omitempty"`
	MonthlyRent   float64   `json:"monthlyRent" gorm:"not null"`
	DepositAmount *float64  `json:"depositAmount,omitempty"`
	Available     bool      `json:"available" gorm:"index"`
	AvailableDate *string   `json:"availableDate,omitempty" gorm:"type:varchar(10)"`
	Description   *string   `json:"description,omitempty" gorm:"type:text"`
	Amenities     []string  `json:"amenities,omitempty" gorm:"serializer:json"`
	ImageURL      *string   `json:"imageUrl,omitempty" gorm:"type:varchar(500)"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
