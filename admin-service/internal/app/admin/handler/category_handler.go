package handler

import (
	"net/http"

	"shopadmin/admin-service/internal/app/admin/entity"
	"shopadmin/admin-service/internal/app/admin/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CategoryHandler обрабатывает HTTP запросы для категорий и их товаров
type CategoryHandler struct {
	categoryService service.CategoryServiceInterface
	productService  service.ProductServiceInterface
	validator       *validator.Validate
}

func NewCategoryHandler(categoryService service.CategoryServiceInterface, productService service.ProductServiceInterface) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		productService:  productService,
		validator:       newValidator(),
	}
}

// List обрабатывает GET /categories
func (h *CategoryHandler) List(c *gin.Context) {
	var query entity.CategoryListQuery
	if !bindQuery(c, h.validator, &query) {
		return
	}

	page, err := h.categoryService.List(c.Request.Context(), query)
	if err != nil {
		writeServiceError(c, err, "Failed to list categories")
		return
	}

	c.JSON(http.StatusOK, page)
}

// Create обрабатывает POST /categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req entity.CreateCategoryRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, err, "Failed to create category")
		return
	}

	c.JSON(http.StatusCreated, category)
}

// Get обрабатывает GET /categories/:id
func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	category, err := h.categoryService.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err, "Failed to get category")
		return
	}

	c.JSON(http.StatusOK, category)
}

// Update обрабатывает PUT /categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req entity.UpdateCategoryRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	category, err := h.categoryService.Update(c.Request.Context(), id, &req)
	if err != nil {
		writeServiceError(c, err, "Failed to update category")
		return
	}

	c.JSON(http.StatusOK, category)
}

// Delete обрабатывает DELETE /categories/:id (только admin)
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.categoryService.Delete(c.Request.Context(), id); err != nil {
		writeServiceError(c, err, "Failed to delete category")
		return
	}

	c.Status(http.StatusNoContent)
}

// BulkDelete обрабатывает POST /categories/bulk-delete (только admin)
func (h *CategoryHandler) BulkDelete(c *gin.Context) {
	var req entity.BulkDeleteRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	deleted, err := h.categoryService.BulkDelete(c.Request.Context(), req.IDs)
	if err != nil {
		writeServiceError(c, err, "Failed to delete categories")
		return
	}

	writeBulkDeleted(c, deleted)
}

// Restore обрабатывает POST /categories/:id/restore (только admin)
func (h *CategoryHandler) Restore(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	category, err := h.categoryService.Restore(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err, "Failed to restore category")
		return
	}

	c.JSON(http.StatusOK, category)
}

// ListProducts обрабатывает GET /categories/:id/products
func (h *CategoryHandler) ListProducts(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	products, err := h.productService.ListByCategory(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err, "Failed to list category products")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": products})
}

// CreateProduct обрабатывает POST /categories/:id/products
// Товар создаётся сразу прикреплённым к категории из пути
func (h *CategoryHandler) CreateProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req entity.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	// категория из пути засчитывается как обязательная
	if len(req.CategoryIDs) == 0 {
		req.CategoryIDs = []uuid.UUID{id}
	}
	if err := h.validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, formatValidationError(err))
		return
	}

	product, err := h.productService.CreateInCategory(c.Request.Context(), id, &req)
	if err != nil {
		writeServiceError(c, err, "Failed to create product", service.ErrBrandNotFound)
		return
	}

	c.JSON(http.StatusCreated, product)
}
