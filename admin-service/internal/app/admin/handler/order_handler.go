package handler

import (
	"net/http"

	"shopadmin/admin-service/internal/app/admin/entity"
	"shopadmin/admin-service/internal/app/admin/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// OrderHandler обрабатывает HTTP запросы для заказов
type OrderHandler struct {
	orderService service.OrderServiceInterface
	validator    *validator.Validate
}

func NewOrderHandler(orderService service.OrderServiceInterface) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		validator:    newValidator(),
	}
}

// List обрабатывает GET /orders
// В ответе дополнительно сумма заказов текущей страницы
func (h *OrderHandler) List(c *gin.Context) {
	var query entity.OrderListQuery
	if !bindQuery(c, h.validator, &query) {
		return
	}

	page, err := h.orderService.List(c.Request.Context(), query)
	if err != nil {
		writeServiceError(c, err, "Failed to list orders")
		return
	}

	c.JSON(http.StatusOK, page)
}

// Create обрабатывает POST /orders
// Номер заказа генерируется сервером, цены позиций берутся из товаров
func (h *OrderHandler) Create(c *gin.Context) {
	var req entity.CreateOrderRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, err, "Failed to create order", service.ErrCustomerNotFound, service.ErrProductNotFound)
		return
	}

	c.JSON(http.StatusCreated, service.ToOrderResponse(order))
}

// Get обрабатывает GET /orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err, "Failed to get order")
		return
	}

	c.JSON(http.StatusOK, service.ToOrderResponse(order))
}

// Update обрабатывает PUT /orders/:id
func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req entity.UpdateOrderRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	order, err := h.orderService.Update(c.Request.Context(), id, &req)
	if err != nil {
		writeServiceError(c, err, "Failed to update order", service.ErrCustomerNotFound, service.ErrProductNotFound)
		return
	}

	c.JSON(http.StatusOK, service.ToOrderResponse(order))
}

// Delete обрабатывает DELETE /orders/:id (только admin)
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.orderService.Delete(c.Request.Context(), id); err != nil {
		writeServiceError(c, err, "Failed to delete order")
		return
	}

	c.Status(http.StatusNoContent)
}

// BulkDelete обрабатывает POST /orders/bulk-delete (только admin)
func (h *OrderHandler) BulkDelete(c *gin.Context) {
	var req entity.BulkDeleteRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	deleted, err := h.orderService.BulkDelete(c.Request.Context(), req.IDs)
	if err != nil {
		writeServiceError(c, err, "Failed to delete orders")
		return
	}

	writeBulkDeleted(c, deleted)
}

// Restore обрабатывает POST /orders/:id/restore (только admin)
func (h *OrderHandler) Restore(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.Restore(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err, "Failed to restore order")
		return
	}

	c.JSON(http.StatusOK, service.ToOrderResponse(order))
}
