package handler

import (
	"net/http"

	"shopadmin/admin-service/internal/app/admin/entity"
	"shopadmin/admin-service/internal/app/admin/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// CustomerHandler обрабатывает HTTP запросы для покупателей
type CustomerHandler struct {
	customerService service.CustomerServiceInterface
	validator       *validator.Validate
}

func NewCustomerHandler(customerService service.CustomerServiceInterface) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		validator:       newValidator(),
	}
}

func (h *CustomerHandler) List(c *gin.Context) {
	var query entity.CustomerListQuery
	if !bindQuery(c, h.validator, &query) {
		return
	}

	page, err := h.customerService.List(c.Request.Context(), query)
	if err != nil {
		writeServiceError(c, err, "Failed to list customers")
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *CustomerHandler) Create(c *gin.Context) {
	var req entity.CreateCustomerRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	customer, err := h.customerService.Create(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, err, "Failed to create customer")
		return
	}

	c.JSON(http.StatusCreated, customer)
}

func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	customer, err := h.customerService.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err, "Failed to get customer")
		return
	}

	c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req entity.UpdateCustomerRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	customer, err := h.customerService.Update(c.Request.Context(), id, &req)
	if err != nil {
		writeServiceError(c, err, "Failed to update customer")
		return
	}

	c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.customerService.Delete(c.Request.Context(), id); err != nil {
		writeServiceError(c, err, "Failed to delete customer")
		return
	}

	c.Status(http.StatusNoContent)
}
