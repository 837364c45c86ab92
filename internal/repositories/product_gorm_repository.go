// internal/repositories/product_gorm_repository.go
package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bovita/catalog-backend/internal/models"
)

// GORMProductRepository is the GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{db: db}
}

func (r *GORMProductRepository) applyFilter(query *gorm.DB, filter ProductFilter) *gorm.DB {
	if filter.Gender != nil {
		query = query.Where("gender = ?", *filter.Gender)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	return query
}

func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *GORMProductRepository) FindByID(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product %s: %w", id, err)
	}
	return &product, nil
}

func (r *GORMProductRepository) FindFiltered(filter ProductFilter, offset, limit int) ([]models.Product, error) {
	var products []models.Product
	query := r.applyFilter(r.db.Model(&models.Product{}), filter)
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return products, nil
}

func (r *GORMProductRepository) Count(filter ProductFilter) (int64, error) {
	var total int64
	query := r.applyFilter(r.db.Model(&models.Product{}), filter)
	if err := query.Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return total, nil
}

// UpdateFields applies a partial-field update. Only the columns named in
// updates are written; everything else keeps its stored value.
func (r *GORMProductRepository) UpdateFields(id uuid.UUID, updates map[string]interface{}) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product %s: %w", id, err)
	}

	if len(updates) > 0 {
		if err := r.db.Model(&product).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update product %s: %w", id, err)
		}
	}

	// Reload so the caller sees exactly what is stored
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload product %s: %w", id, err)
	}
	return &product, nil
}

func (r *GORMProductRepository) Delete(id uuid.UUID) error {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
