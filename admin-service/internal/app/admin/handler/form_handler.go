package handler

import (
	"net/http"

	"shopadmin/admin-service/internal/app/admin/entity"
	"shopadmin/admin-service/internal/app/admin/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// FormHandler реакции форм на изменение полей.
// Клиент присылает текущее состояние поля или строки, в ответ получает пересчитанное.
type FormHandler struct {
	formService service.FormServiceInterface
	validator   *validator.Validate
}

func NewFormHandler(formService service.FormServiceInterface) *FormHandler {
	return &FormHandler{
		formService: formService,
		validator:   newValidator(),
	}
}

// Slug обрабатывает POST /forms/slug
func (h *FormHandler) Slug(c *gin.Context) {
	var req entity.SlugRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	c.JSON(http.StatusOK, h.formService.Slug(&req))
}

// OrderDefaults обрабатывает GET /forms/order/defaults
func (h *FormHandler) OrderDefaults(c *gin.Context) {
	c.JSON(http.StatusOK, h.formService.Defaults())
}

// ProductSelected обрабатывает POST /forms/order/product-selected
func (h *FormHandler) ProductSelected(c *gin.Context) {
	var req entity.ProductSelectedRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	c.JSON(http.StatusOK, h.formService.ProductSelected(c.Request.Context(), &req))
}

// QuantityChanged обрабатывает POST /forms/order/quantity-changed
func (h *FormHandler) QuantityChanged(c *gin.Context) {
	var req entity.QuantityChangedRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	line, err := h.formService.QuantityChanged(&req)
	if err != nil {
		writeServiceError(c, err, "Failed to recalculate line")
		return
	}

	c.JSON(http.StatusOK, line)
}

// Summary обрабатывает POST /forms/order/summary
func (h *FormHandler) Summary(c *gin.Context) {
	var req entity.OrderSummaryRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	c.JSON(http.StatusOK, h.formService.Summary(&req))
}
