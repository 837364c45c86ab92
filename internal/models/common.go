// internal/models/common.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields. The ID is assigned before insert and
// never changes afterwards.
type BaseModel struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// Enums

type UserType string

const (
	UserTypeAdmin    UserType = "ADMIN"
	UserTypeCustomer UserType = "CUSTOMER"
)

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
)

// Gender is the closed set of audiences a product is sold for.
type Gender string

const (
	GenderMen    Gender = "MEN"
	GenderWomen  Gender = "WOMEN"
	GenderUnisex Gender = "UNISEX"
)

func (g Gender) IsValid() bool {
	switch g {
	case GenderMen, GenderWomen, GenderUnisex:
		return true
	}
	return false
}

// Category is the closed set of product categories.
type Category string

const (
	CategoryTshirt     Category = "TSHIRT"
	CategoryShirt      Category = "SHIRT"
	CategoryShort      Category = "SHORT"
	CategoryDenim      Category = "DENIM"
	CategoryOfficewear Category = "OFFICEWEAR"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryTshirt, CategoryShirt, CategoryShort, CategoryDenim, CategoryOfficewear:
		return true
	}
	return false
}
