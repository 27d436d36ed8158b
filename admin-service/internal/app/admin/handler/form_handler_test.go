package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"shopadmin/admin-service/internal/app/admin/derive"
	"shopadmin/admin-service/internal/app/admin/entity"
	"shopadmin/admin-service/internal/app/admin/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupFormRouter(formService service.FormServiceInterface) *gin.Engine {
	h := NewFormHandler(formService)

	router := gin.New()
	router.POST("/forms/slug", h.Slug)
	router.GET("/forms/order/defaults", h.OrderDefaults)
	router.POST("/forms/order/product-selected", h.ProductSelected)
	router.POST("/forms/order/quantity-changed", h.QuantityChanged)
	router.POST("/forms/order/summary", h.Summary)

	return router
}

// Реальный FormService: реакции формы чистые, кроме поиска цены
func TestFormHandler_Slug(t *testing.T) {
	router := setupFormRouter(service.NewFormService(nil))

	tests := []struct {
		name string
		body string
		want string
	}{
		{"create derives", `{"operation":"create","name":"Hello World"}`, `{"slug":"hello-world","changed":true}`},
		{"update leaves slug", `{"operation":"update","name":"Hello World"}`, `{"changed":false}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, jsonRequest(http.MethodPost, "/forms/slug", tt.body))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, tt.want, rec.Body.String())
		})
	}
}

func TestFormHandler_Slug_UnknownOperation(t *testing.T) {
	router := setupFormRouter(service.NewFormService(nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, jsonRequest(http.MethodPost, "/forms/slug", `{"operation":"delete","name":"x"}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "operation is oneof", decodeMessage(t, rec))
}

func TestFormHandler_OrderDefaults(t *testing.T) {
	router := setupFormRouter(service.NewFormService(nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/forms/order/defaults", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"status":"pending",
		"lines":[{"product_id":null,"quantity":1,"unit_price":"0","total_price":"0"}]
	}`, rec.Body.String())
}

func TestFormHandler_QuantityChanged(t *testing.T) {
	router := setupFormRouter(service.NewFormService(nil))
	productID := uuid.New()

	body := `{"line":{"product_id":"` + productID.String() + `","quantity":1,"unit_price":"10.50","total_price":"10.5"},"quantity":3}`

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, jsonRequest(http.MethodPost, "/forms/order/quantity-changed", body))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_price":"31.5"`)
	assert.Contains(t, rec.Body.String(), `"quantity":3`)
}

func TestFormHandler_QuantityChanged_Negative(t *testing.T) {
	router := setupFormRouter(service.NewFormService(nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, jsonRequest(http.MethodPost, "/forms/order/quantity-changed", `{"line":{"quantity":1},"quantity":-2}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "quantity is gte", decodeMessage(t, rec))
}

func TestFormHandler_QuantityChanged_ServiceRejects(t *testing.T) {
	// Arrange
	formService := new(MockFormService)
	formService.On("QuantityChanged", mock.Anything).Return(derive.Line{}, service.ErrNegativeQuantity)
	router := setupFormRouter(formService)

	// Act
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, jsonRequest(http.MethodPost, "/forms/order/quantity-changed", `{"line":{"quantity":1},"quantity":0}`))

	// Assert
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestFormHandler_ProductSelected(t *testing.T) {
	// Arrange
	formService := new(MockFormService)
	productID := uuid.New()
	line := derive.Line{
		ProductID:  &productID,
		Quantity:   2,
		UnitPrice:  decimal.RequireFromString("4.25"),
		TotalPrice: decimal.RequireFromString("8.5"),
	}
	formService.On("ProductSelected", mock.Anything, mock.MatchedBy(func(req *entity.ProductSelectedRequest) bool {
		return req.ProductID != nil && *req.ProductID == productID && req.Line.Quantity == 2
	})).Return(line)
	router := setupFormRouter(formService)

	body := `{"line":{"quantity":2},"product_id":"` + productID.String() + `"}`

	// Act
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, jsonRequest(http.MethodPost, "/forms/order/product-selected", body))

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_price":"8.5"`)
	formService.AssertExpectations(t)
}

func TestFormHandler_Summary(t *testing.T) {
	router := setupFormRouter(service.NewFormService(nil))

	// строка без товара не влияет на сумму
	body := `{"lines":[
		{"product_id":"` + uuid.NewString() + `","quantity":2,"unit_price":"10","total_price":"0"},
		{"product_id":"` + uuid.NewString() + `","quantity":1,"unit_price":"0.5","total_price":"0"},
		{"product_id":null,"quantity":4,"unit_price":"3","total_price":"12"}
	]}`

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, jsonRequest(http.MethodPost, "/forms/order/summary", body))

	assert.Equal(t, http.StatusOK, rec.Code)

	var response entity.OrderSummaryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.True(t, response.TotalPrice.Equal(decimal.RequireFromString("20.5")))
	require.Len(t, response.Lines, 3)
	assert.True(t, response.Lines[0].TotalPrice.Equal(decimal.RequireFromString("20")))
	assert.True(t, response.Lines[2].TotalPrice.IsZero())
}

func TestFormHandler_Summary_Empty(t *testing.T) {
	router := setupFormRouter(service.NewFormService(nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, jsonRequest(http.MethodPost, "/forms/order/summary", `{}`))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"lines":[],"total_price":"0"}`, rec.Body.String())
}
