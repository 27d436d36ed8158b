package handler

import (
	"bytes"
	"net/http"

	"shopadmin/admin-service/internal/app/admin/entity"
	"shopadmin/admin-service/internal/app/admin/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ProductHandler обрабатывает HTTP запросы для товаров
type ProductHandler struct {
	productService service.ProductServiceInterface
	validator      *validator.Validate
}

func NewProductHandler(productService service.ProductServiceInterface) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		validator:      newValidator(),
	}
}

// bindListQuery фильтры списка товаров, brand_id разбирается отдельно
func (h *ProductHandler) bindListQuery(c *gin.Context) (entity.ProductListQuery, bool) {
	var query entity.ProductListQuery
	if !bindQuery(c, h.validator, &query) {
		return query, false
	}

	if raw := c.Query("brand_id"); raw != "" {
		brandID, err := uuid.Parse(raw)
		if err != nil {
			writeError(c, http.StatusBadRequest, "Invalid brand_id")
			return query, false
		}
		query.BrandID = &brandID
	}

	return query, true
}

// List обрабатывает GET /products
func (h *ProductHandler) List(c *gin.Context) {
	query, ok := h.bindListQuery(c)
	if !ok {
		return
	}

	page, err := h.productService.List(c.Request.Context(), query)
	if err != nil {
		writeServiceError(c, err, "Failed to list products")
		return
	}

	c.JSON(http.StatusOK, page)
}

// Search обрабатывает GET /products/search?q=
func (h *ProductHandler) Search(c *gin.Context) {
	results, err := h.productService.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		writeServiceError(c, err, "Failed to search products")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": results})
}

// Export обрабатывает GET /products/export
// Выгружает в xlsx все товары по фильтрам списка, без пагинации
func (h *ProductHandler) Export(c *gin.Context) {
	query, ok := h.bindListQuery(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.productService.Export(c.Request.Context(), query, &buf); err != nil {
		writeServiceError(c, err, "Failed to export products")
		return
	}

	c.Header("Content-Disposition", "attachment; filename=products.xlsx")
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// Create обрабатывает POST /products
func (h *ProductHandler) Create(c *gin.Context) {
	var req entity.CreateProductRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	product, err := h.productService.Create(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, err, "Failed to create product", service.ErrBrandNotFound, service.ErrCategoryNotFound)
		return
	}

	c.JSON(http.StatusCreated, product)
}

// Get обрабатывает GET /products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	product, err := h.productService.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err, "Failed to get product")
		return
	}

	c.JSON(http.StatusOK, product)
}

// Update обрабатывает PUT /products/:id
// Новая цена не меняет позиции уже созданных заказов
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req entity.UpdateProductRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	product, err := h.productService.Update(c.Request.Context(), id, &req)
	if err != nil {
		writeServiceError(c, err, "Failed to update product", service.ErrBrandNotFound, service.ErrCategoryNotFound)
		return
	}

	c.JSON(http.StatusOK, product)
}

// Delete обрабатывает DELETE /products/:id (только admin)
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		writeServiceError(c, err, "Failed to delete product")
		return
	}

	c.Status(http.StatusNoContent)
}

// BulkDelete обрабатывает POST /products/bulk-delete (только admin)
func (h *ProductHandler) BulkDelete(c *gin.Context) {
	var req entity.BulkDeleteRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	deleted, err := h.productService.BulkDelete(c.Request.Context(), req.IDs)
	if err != nil {
		writeServiceError(c, err, "Failed to delete products")
		return
	}

	writeBulkDeleted(c, deleted)
}

// Restore обрабатывает POST /products/:id/restore (только admin)
func (h *ProductHandler) Restore(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	product, err := h.productService.Restore(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err, "Failed to restore product")
		return
	}

	c.JSON(http.StatusOK, product)
}
