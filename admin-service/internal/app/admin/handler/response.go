package handler

import (
	"errors"
	"net/http"

	"shopadmin/admin-service/internal/app/admin/entity"
	"shopadmin/admin-service/internal/app/admin/service"
	"shopadmin/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// errorStatuses соответствие ошибок бизнес-логики HTTP статусам
var errorStatuses = []struct {
	err    error
	status int
}{
	{service.ErrBrandNotFound, http.StatusNotFound},
	{service.ErrCategoryNotFound, http.StatusNotFound},
	{service.ErrProductNotFound, http.StatusNotFound},
	{service.ErrCustomerNotFound, http.StatusNotFound},
	{service.ErrOrderNotFound, http.StatusNotFound},
	{service.ErrUnknownOptions, http.StatusNotFound},
	{service.ErrParentCategoryNotFound, http.StatusUnprocessableEntity},
	{service.ErrCategoryCycle, http.StatusUnprocessableEntity},
	{service.ErrEmptySlug, http.StatusUnprocessableEntity},
	{service.ErrNegativeQuantity, http.StatusUnprocessableEntity},
	{service.ErrAlreadyExists, http.StatusConflict},
	{service.ErrDuplicateOrderNumber, http.StatusConflict},
	{service.ErrActivityUnavailable, http.StatusServiceUnavailable},
}

func writeError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"error":   http.StatusText(status),
		"message": message,
	})
}

// writeServiceError отвечает статусом по ошибке сервиса.
// references - ошибки "связанная сущность не найдена", для них ответ 422, а не 404.
// Неизвестные ошибки логируются, клиент получает fallback.
func writeServiceError(c *gin.Context, err error, fallback string, references ...error) {
	for _, ref := range references {
		if errors.Is(err, ref) {
			writeError(c, http.StatusUnprocessableEntity, err.Error())
			return
		}
	}

	for _, mapping := range errorStatuses {
		if errors.Is(err, mapping.err) {
			writeError(c, mapping.status, err.Error())
			return
		}
	}

	logger.FromContext(c.Request.Context()).Error().Err(err).Str("path", c.FullPath()).Msg(fallback)
	writeError(c, http.StatusInternalServerError, fallback)
}

// parseID разбирает :id из пути, при ошибке сам пишет ответ
func parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		writeError(c, http.StatusBadRequest, "Invalid "+param)
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON читает и валидирует тело запроса
func bindJSON(c *gin.Context, v *validator.Validate, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		writeError(c, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := v.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, formatValidationError(err))
		return false
	}
	return true
}

// bindQuery читает и валидирует параметры строки запроса
func bindQuery(c *gin.Context, v *validator.Validate, query interface{}) bool {
	if err := c.ShouldBindQuery(query); err != nil {
		writeError(c, http.StatusBadRequest, "Invalid query parameters")
		return false
	}
	if err := v.Struct(query); err != nil {
		writeError(c, http.StatusBadRequest, formatValidationError(err))
		return false
	}
	return true
}

func writeBulkDeleted(c *gin.Context, deleted int64) {
	c.JSON(http.StatusOK, entity.BulkDeleteResponse{Deleted: deleted})
}
