package handler

import (
	"net/http"

	"shopadmin/admin-service/internal/app/admin/entity"
	"shopadmin/admin-service/internal/app/admin/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// BrandHandler обрабатывает HTTP запросы для брендов
type BrandHandler struct {
	brandService service.BrandServiceInterface
	validator    *validator.Validate
}

func NewBrandHandler(brandService service.BrandServiceInterface) *BrandHandler {
	return &BrandHandler{
		brandService: brandService,
		validator:    newValidator(),
	}
}

// List обрабатывает GET /brands
func (h *BrandHandler) List(c *gin.Context) {
	var query entity.BrandListQuery
	if !bindQuery(c, h.validator, &query) {
		return
	}

	page, err := h.brandService.List(c.Request.Context(), query)
	if err != nil {
		writeServiceError(c, err, "Failed to list brands")
		return
	}

	c.JSON(http.StatusOK, page)
}

// Create обрабатывает POST /brands
func (h *BrandHandler) Create(c *gin.Context) {
	var req entity.CreateBrandRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	brand, err := h.brandService.Create(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, err, "Failed to create brand")
		return
	}

	c.JSON(http.StatusCreated, brand)
}

// Get обрабатывает GET /brands/:id
func (h *BrandHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	brand, err := h.brandService.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err, "Failed to get brand")
		return
	}

	c.JSON(http.StatusOK, brand)
}

// Update обрабатывает PUT /brands/:id
func (h *BrandHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req entity.UpdateBrandRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	brand, err := h.brandService.Update(c.Request.Context(), id, &req)
	if err != nil {
		writeServiceError(c, err, "Failed to update brand")
		return
	}

	c.JSON(http.StatusOK, brand)
}

// Delete обрабатывает DELETE /brands/:id (только admin)
func (h *BrandHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.brandService.Delete(c.Request.Context(), id); err != nil {
		writeServiceError(c, err, "Failed to delete brand")
		return
	}

	c.Status(http.StatusNoContent)
}

// BulkDelete обрабатывает POST /brands/bulk-delete (только admin)
func (h *BrandHandler) BulkDelete(c *gin.Context) {
	var req entity.BulkDeleteRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	deleted, err := h.brandService.BulkDelete(c.Request.Context(), req.IDs)
	if err != nil {
		writeServiceError(c, err, "Failed to delete brands")
		return
	}

	writeBulkDeleted(c, deleted)
}

// Restore обрабатывает POST /brands/:id/restore (только admin)
func (h *BrandHandler) Restore(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	brand, err := h.brandService.Restore(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err, "Failed to restore brand")
		return
	}

	c.JSON(http.StatusOK, brand)
}
