// internal/models/product.go
package models

import (
	"github.com/lib/pq"
)

// Product is a single catalog record. ImageURLs holds the durable image
// store URLs and is non-empty from creation onwards; the service boundary
// enforces that, not the database.
type Product struct {
	BaseModel
	Title       string         `json:"title" gorm:"size:255;not null"`
	Description string         `json:"description" gorm:"type:text"`
	Gender      Gender         `json:"gender" gorm:"type:varchar(10);not null;index"`
	Category    Category       `json:"category" gorm:"type:varchar(20);not null;index"`
	Size        string         `json:"size" gorm:"size:50;not null"`
	Price       float64        `json:"price" gorm:"type:decimal(10,2);not null"`
	Stock       int            `json:"stock" gorm:"default:0"`
	ImageURLs   pq.StringArray `json:"imageUrls" gorm:"type:text[]"`
}
