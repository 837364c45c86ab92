// internal/services/catalog_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/bovita/catalog-backend/internal/models"
	"github.com/bovita/catalog-backend/internal/repositories"
	"github.com/bovita/catalog-backend/internal/utils"
)

const defaultUploadConcurrency = 4

// CatalogService implements the four catalog operations. Handlers stay
// thin: every contract decision (authorization, validation, upload
// ordering) lives here.
type CatalogService struct {
	repo              repositories.ProductRepository
	images            ImageStore
	uploadConcurrency int
}

type CreateProductRequest struct {
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description"`
	Gender      models.Gender   `json:"gender" validate:"required,oneof=MEN WOMEN UNISEX"`
	Category    models.Category `json:"category" validate:"required,oneof=TSHIRT SHIRT SHORT DENIM OFFICEWEAR"`
	Size        string          `json:"size" validate:"required"`
	Price       *float64        `json:"price" validate:"required"`
	Stock       *int            `json:"stock"`
}

// UpdateProductRequest is a partial patch: nil means "leave the stored
// value alone", non-nil means "write this value as-is".
type UpdateProductRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Gender      *models.Gender   `json:"gender"`
	Category    *models.Category `json:"category"`
	Size        *string          `json:"size"`
	Price       *float64         `json:"price"`
	Stock       *int             `json:"stock"`
}

type ListProductsParams struct {
	Gender   string
	Category string
	utils.PaginationParams
}

func NewCatalogService(repo repositories.ProductRepository, images ImageStore, uploadConcurrency int) *CatalogService {
	if uploadConcurrency < 1 {
		uploadConcurrency = defaultUploadConcurrency
	}
	return &CatalogService{
		repo:              repo,
		images:            images,
		uploadConcurrency: uploadConcurrency,
	}
}

// requireAdmin is the single authorization predicate consulted by every
// mutating operation.
func requireAdmin(role models.UserType) error {
	if role != models.UserTypeAdmin {
		return ErrForbidden
	}
	return nil
}

// CreateProduct validates the draft, uploads every image, then persists the
// record. Validation happens before any side effect; an upload failure
// aborts the whole operation and no record is created. Images already
// uploaded in a failed batch are not rolled back — that inconsistency
// window is accepted and reconciled out of band.
func (s *CatalogService) CreateProduct(ctx context.Context, role models.UserType, req *CreateProductRequest, images []ImagePayload) (*models.Product, error) {
	if err := requireAdmin(role); err != nil {
		return nil, err
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if len(images) == 0 {
		return nil, fmt.Errorf("%w: at least one image is required", ErrInvalidInput)
	}

	imageURLs, err := s.uploadImages(ctx, images)
	if err != nil {
		return nil, err
	}

	stock := 0
	if req.Stock != nil {
		stock = *req.Stock
	}

	product := &models.Product{
		Title:       req.Title,
		Description: req.Description,
		Gender:      req.Gender,
		Category:    req.Category,
		Size:        req.Size,
		Price:       *req.Price,
		Stock:       stock,
		ImageURLs:   imageURLs,
	}

	if err := s.repo.Create(product); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	return product, nil
}

// UpdateProduct applies a partial patch. New images, when supplied, replace
// the stored imageUrls wholesale; the replaced objects stay in the image
// store (accepted leak, reconciled out of band). Without new images the
// stored imageUrls are untouched.
func (s *CatalogService) UpdateProduct(ctx context.Context, role models.UserType, id uuid.UUID, req *UpdateProductRequest, images []ImagePayload) (*models.Product, error) {
	if err := requireAdmin(role); err != nil {
		return nil, err
	}

	if req.Gender != nil && !req.Gender.IsValid() {
		return nil, fmt.Errorf("%w: invalid gender value", ErrInvalidInput)
	}
	if req.Category != nil && !req.Category.IsValid() {
		return nil, fmt.Errorf("%w: invalid category value", ErrInvalidInput)
	}

	if _, err := s.repo.FindByID(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: product %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Gender != nil {
		updates["gender"] = *req.Gender
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Size != nil {
		updates["size"] = *req.Size
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Stock != nil {
		updates["stock"] = *req.Stock
	}

	if len(images) > 0 {
		imageURLs, err := s.uploadImages(ctx, images)
		if err != nil {
			return nil, err
		}
		updates["image_urls"] = imageURLs
	}

	product, err := s.repo.UpdateFields(id, updates)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: product %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	return product, nil
}

// GetProduct returns a single record by id.
func (s *CatalogService) GetProduct(id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: product %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return product, nil
}

// ListProducts returns one page of records ordered by creation time
// descending, plus the total count matching the filter. A page beyond the
// available range yields an empty slice, not an error.
func (s *CatalogService) ListProducts(params ListProductsParams) ([]models.Product, int64, error) {
	var filter repositories.ProductFilter
	if params.Gender != "" {
		gender := models.Gender(params.Gender)
		filter.Gender = &gender
	}
	if params.Category != "" {
		category := models.Category(params.Category)
		filter.Category = &category
	}

	total, err := s.repo.Count(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	products, err := s.repo.FindFiltered(filter, params.Offset(), params.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	return products, total, nil
}

// DeleteProduct removes the record and its images. Object deletes are
// best-effort: a failed destroy is logged with the product id and key,
// then skipped, and the record is deleted regardless.
func (s *CatalogService) DeleteProduct(ctx context.Context, role models.UserType, id uuid.UUID) error {
	if err := requireAdmin(role); err != nil {
		return err
	}

	product, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: product %s", ErrNotFound, id)
		}
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	for _, url := range product.ImageURLs {
		key := s.images.KeyFromURL(url)
		if key == "" {
			continue
		}
		if err := s.images.Destroy(ctx, key); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"product_id": id,
				"key":        key,
			}).Warn("Failed to delete product image, continuing")
		}
	}

	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: product %s", ErrNotFound, id)
		}
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	return nil
}

// uploadImages pushes every payload to the image store with bounded
// concurrency. All uploads must succeed; the first failure cancels the
// rest and fails the batch. URLs come back in input order.
func (s *CatalogService) uploadImages(ctx context.Context, images []ImagePayload) (pq.StringArray, error) {
	urls := make([]string, len(images))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.uploadConcurrency)

	for i, img := range images {
		g.Go(func() error {
			url, err := s.images.Upload(ctx, img)
			if err != nil {
				return fmt.Errorf("upload %s: %w", img.Filename, err)
			}
			urls[i] = url
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	return pq.StringArray(urls), nil
}
