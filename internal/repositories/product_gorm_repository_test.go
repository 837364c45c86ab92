// internal/repositories/product_gorm_repository_test.go
package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bovita/catalog-backend/internal/models"
)

func setupTestRepo(t *testing.T) *GORMProductRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+uuid.New().String()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}))

	return NewGORMProductRepository(db)
}

func seedProduct(t *testing.T, repo *GORMProductRepository, gender models.Gender, category models.Category, createdAt time.Time) *models.Product {
	t.Helper()

	product := &models.Product{
		Title:     fmt.Sprintf("%s %s", gender, category),
		Gender:    gender,
		Category:  category,
		Size:      "M",
		Price:     19.99,
		ImageURLs: pq.StringArray{"https://cdn.example.com/products/seed"},
	}
	product.CreatedAt = createdAt
	require.NoError(t, repo.Create(product))
	return product
}

func TestCreate_AssignsID(t *testing.T) {
	repo := setupTestRepo(t)

	product := &models.Product{
		Title:    "Basic Tee",
		Gender:   models.GenderUnisex,
		Category: models.CategoryTshirt,
		Size:     "L",
		Price:    9.99,
	}
	require.NoError(t, repo.Create(product))

	assert.NotEqual(t, uuid.Nil, product.ID)

	stored, err := repo.FindByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Basic Tee", stored.Title)
}

func TestFindByID_NotFound(t *testing.T) {
	repo := setupTestRepo(t)

	_, err := repo.FindByID(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindFiltered_OrdersNewestFirst(t *testing.T) {
	repo := setupTestRepo(t)

	base := time.Now().Add(-time.Hour)
	oldest := seedProduct(t, repo, models.GenderMen, models.CategoryShirt, base)
	middle := seedProduct(t, repo, models.GenderMen, models.CategoryShirt, base.Add(10*time.Minute))
	newest := seedProduct(t, repo, models.GenderMen, models.CategoryShirt, base.Add(20*time.Minute))

	products, err := repo.FindFiltered(ProductFilter{}, 0, 10)
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, newest.ID, products[0].ID)
	assert.Equal(t, middle.ID, products[1].ID)
	assert.Equal(t, oldest.ID, products[2].ID)
}

func TestFindFiltered_ByGenderAndCategory(t *testing.T) {
	repo := setupTestRepo(t)

	now := time.Now()
	seedProduct(t, repo, models.GenderMen, models.CategoryDenim, now)
	seedProduct(t, repo, models.GenderWomen, models.CategoryDenim, now)
	seedProduct(t, repo, models.GenderWomen, models.CategoryShirt, now)

	women := models.GenderWomen
	denim := models.CategoryDenim

	products, err := repo.FindFiltered(ProductFilter{Gender: &women}, 0, 10)
	require.NoError(t, err)
	assert.Len(t, products, 2)

	products, err = repo.FindFiltered(ProductFilter{Gender: &women, Category: &denim}, 0, 10)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, models.GenderWomen, products[0].Gender)
	assert.Equal(t, models.CategoryDenim, products[0].Category)

	total, err := repo.Count(ProductFilter{Gender: &women})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestFindFiltered_UnknownValueMatchesNothing(t *testing.T) {
	repo := setupTestRepo(t)
	seedProduct(t, repo, models.GenderMen, models.CategoryDenim, time.Now())

	unknown := models.Gender("KIDS")
	products, err := repo.FindFiltered(ProductFilter{Gender: &unknown}, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestFindFiltered_Pagination(t *testing.T) {
	repo := setupTestRepo(t)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 25; i++ {
		seedProduct(t, repo, models.GenderUnisex, models.CategoryTshirt, base.Add(time.Duration(i)*time.Minute))
	}

	pageOne, err := repo.FindFiltered(ProductFilter{}, 0, 10)
	require.NoError(t, err)
	assert.Len(t, pageOne, 10)

	pageThree, err := repo.FindFiltered(ProductFilter{}, 20, 10)
	require.NoError(t, err)
	assert.Len(t, pageThree, 5)

	pageFour, err := repo.FindFiltered(ProductFilter{}, 30, 10)
	require.NoError(t, err)
	assert.Empty(t, pageFour)

	total, err := repo.Count(ProductFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
}

func TestUpdateFields_PartialUpdateKeepsUnnamedColumns(t *testing.T) {
	repo := setupTestRepo(t)
	product := seedProduct(t, repo, models.GenderMen, models.CategoryOfficewear, time.Now())

	updated, err := repo.UpdateFields(product.ID, map[string]interface{}{
		"title": "Pressed Slacks",
		"price": 89.50,
	})
	require.NoError(t, err)

	assert.Equal(t, "Pressed Slacks", updated.Title)
	assert.Equal(t, 89.50, updated.Price)
	assert.Equal(t, models.GenderMen, updated.Gender)
	assert.Equal(t, "M", updated.Size)
	assert.Equal(t, pq.StringArray{"https://cdn.example.com/products/seed"}, updated.ImageURLs)
}

func TestUpdateFields_ReplacesImageURLs(t *testing.T) {
	repo := setupTestRepo(t)
	product := seedProduct(t, repo, models.GenderWomen, models.CategoryShort, time.Now())

	replacement := pq.StringArray{
		"https://cdn.example.com/products/new_a",
		"https://cdn.example.com/products/new_b",
	}
	updated, err := repo.UpdateFields(product.ID, map[string]interface{}{
		"image_urls": replacement,
	})
	require.NoError(t, err)
	assert.Equal(t, replacement, updated.ImageURLs)
}

func TestUpdateFields_NotFound(t *testing.T) {
	repo := setupTestRepo(t)

	_, err := repo.UpdateFields(uuid.New(), map[string]interface{}{"title": "ghost"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	repo := setupTestRepo(t)
	product := seedProduct(t, repo, models.GenderMen, models.CategoryDenim, time.Now())

	require.NoError(t, repo.Delete(product.ID))

	_, err := repo.FindByID(product.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Delete(product.ID), ErrNotFound)
}
