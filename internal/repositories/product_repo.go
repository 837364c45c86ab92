// internal/repositories/product_repo.go
package repositories

import (
	"errors"

	"github.com/google/uuid"

	"github.com/bovita/catalog-backend/internal/models"
)

// ErrNotFound is returned when an id does not resolve to an existing record.
var ErrNotFound = errors.New("record not found")

// ProductFilter holds the optional equality filters for catalog queries.
// A nil field imposes no constraint.
type ProductFilter struct {
	Gender   *models.Gender
	Category *models.Category
}

// ProductRepository defines the persistence contract for catalog records.
// Filtered queries are ordered by creation time descending.
type ProductRepository interface {
	Create(product *models.Product) error
	FindByID(id uuid.UUID) (*models.Product, error)
	FindFiltered(filter ProductFilter, offset, limit int) ([]models.Product, error)
	Count(filter ProductFilter) (int64, error)
	UpdateFields(id uuid.UUID, updates map[string]interface{}) (*models.Product, error)
	Delete(id uuid.UUID) error
}
