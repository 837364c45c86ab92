// internal/handlers/product.go
package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/bovita/catalog-backend/internal/i18n"
	"github.com/bovita/catalog-backend/internal/middleware"
	"github.com/bovita/catalog-backend/internal/models"
	"github.com/bovita/catalog-backend/internal/services"
	"github.com/bovita/catalog-backend/internal/utils"
)

type ProductHandler struct {
	catalogService *services.CatalogService
}

func NewProductHandler(catalogService *services.CatalogService) *ProductHandler {
	return &ProductHandler{
		catalogService: catalogService,
	}
}

// GET /products
func (h *ProductHandler) ListProducts(c *gin.Context) {
	params := services.ListProductsParams{
		Gender:           c.Query("gender"),
		Category:         c.Query("category"),
		PaginationParams: utils.GetPaginationParams(c),
	}

	products, total, err := h.catalogService.ListProducts(params)
	if err != nil {
		h.respondServiceError(c, "ListProducts", err)
		return
	}

	result := utils.CreatePaginationResult(products, total, params.PaginationParams)
	utils.PaginatedResponse(c, result)
}

// GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	product, err := h.catalogService.GetProduct(id)
	if err != nil {
		h.respondServiceError(c, "GetProduct", err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"product": product,
	})
}

// POST /products (multipart/form-data with one or more "images" files)
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	req, images, err := h.parseCreateForm(c)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	product, err := h.catalogService.CreateProduct(c.Request.Context(), middleware.CallerRole(c), req, images)
	if err != nil {
		h.respondServiceError(c, "CreateProduct", err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductCreated),
		"product": product,
	})
}

// PUT /products/:id (multipart/form-data; all fields optional, new "images"
// files replace the stored set wholesale)
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	req, images, err := h.parseUpdateForm(c)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	product, err := h.catalogService.UpdateProduct(c.Request.Context(), middleware.CallerRole(c), id, req, images)
	if err != nil {
		h.respondServiceError(c, "UpdateProduct", err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductUpdated),
		"product": product,
	})
}

// DELETE /products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	if err := h.catalogService.DeleteProduct(c.Request.Context(), middleware.CallerRole(c), id); err != nil {
		h.respondServiceError(c, "DeleteProduct", err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductDeleted),
	})
}

func (h *ProductHandler) parseCreateForm(c *gin.Context) (*services.CreateProductRequest, []services.ImagePayload, error) {
	req := &services.CreateProductRequest{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Gender:      models.Gender(c.PostForm("gender")),
		Category:    models.Category(c.PostForm("category")),
		Size:        c.PostForm("size"),
	}

	if raw, ok := c.GetPostForm("price"); ok {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, nil, errors.New("invalid price value")
		}
		req.Price = &price
	}

	if raw, ok := c.GetPostForm("stock"); ok {
		stock, err := strconv.Atoi(raw)
		if err != nil {
			return nil, nil, errors.New("invalid stock value")
		}
		req.Stock = &stock
	}

	images, err := readImageFiles(c)
	if err != nil {
		return nil, nil, err
	}

	return req, images, nil
}

func (h *ProductHandler) parseUpdateForm(c *gin.Context) (*services.UpdateProductRequest, []services.ImagePayload, error) {
	req := &services.UpdateProductRequest{}

	if raw, ok := c.GetPostForm("title"); ok {
		req.Title = &raw
	}
	if raw, ok := c.GetPostForm("description"); ok {
		req.Description = &raw
	}
	if raw, ok := c.GetPostForm("gender"); ok {
		gender := models.Gender(raw)
		req.Gender = &gender
	}
	if raw, ok := c.GetPostForm("category"); ok {
		category := models.Category(raw)
		req.Category = &category
	}
	if raw, ok := c.GetPostForm("size"); ok {
		req.Size = &raw
	}
	if raw, ok := c.GetPostForm("price"); ok {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, nil, errors.New("invalid price value")
		}
		req.Price = &price
	}
	if raw, ok := c.GetPostForm("stock"); ok {
		stock, err := strconv.Atoi(raw)
		if err != nil {
			return nil, nil, errors.New("invalid stock value")
		}
		req.Stock = &stock
	}

	images, err := readImageFiles(c)
	if err != nil {
		return nil, nil, err
	}

	return req, images, nil
}

// readImageFiles reads every "images" file out of the multipart form. A
// request without a multipart body or without files yields an empty slice;
// the service decides whether that is acceptable.
func readImageFiles(c *gin.Context) ([]services.ImagePayload, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}

	files := form.File["images"]
	payloads := make([]services.ImagePayload, 0, len(files))
	for _, fileHeader := range files {
		payload, err := readImageFile(fileHeader)
		if err != nil {
			return nil, err
		}
		payloads = append(payloads, payload)
	}

	return payloads, nil
}

func readImageFile(fileHeader *multipart.FileHeader) (services.ImagePayload, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return services.ImagePayload{}, errors.New("failed to read uploaded file " + fileHeader.Filename)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return services.ImagePayload{}, errors.New("failed to read uploaded file " + fileHeader.Filename)
	}

	return services.ImagePayload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// Upstream and unexpected faults are logged with context and surfaced as a
// generic server error without internal detail.
func (h *ProductHandler) respondServiceError(c *gin.Context, operation string, err error) {
	switch {
	case errors.Is(err, services.ErrForbidden):
		utils.ForbiddenResponse(c, "")
	case errors.Is(err, services.ErrInvalidInput):
		utils.BadRequestResponse(c, err.Error(), nil)
	case errors.Is(err, services.ErrNotFound):
		utils.NotFoundResponse(c, "product")
	default:
		logrus.WithError(err).WithFields(logrus.Fields{
			"operation": operation,
			"path":      c.Request.URL.Path,
		}).Error("Catalog operation failed")
		utils.InternalErrorResponse(c, "")
	}
}
