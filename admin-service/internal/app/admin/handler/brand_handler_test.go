package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"shopadmin/admin-service/internal/app/admin/entity"
	"shopadmin/admin-service/internal/app/admin/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupBrandRouter() (*gin.Engine, *MockBrandService) {
	mockService := new(MockBrandService)
	h := NewBrandHandler(mockService)

	router := gin.New()
	router.GET("/brands", h.List)
	router.POST("/brands", h.Create)
	router.GET("/brands/:id", h.Get)
	router.PUT("/brands/:id", h.Update)
	router.DELETE("/brands/:id", h.Delete)
	router.POST("/brands/:id/restore", h.Restore)

	return router, mockService
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestBrandHandler_Create_Success(t *testing.T) {
	// Arrange
	router, mockService := setupBrandRouter()

	brand := &entity.Brand{ID: uuid.New(), Name: "Acme Corp", Slug: "acme-corp", URL: "https://acme.example", IsVisible: true}
	mockService.On("Create", mock.Anything, mock.MatchedBy(func(req *entity.CreateBrandRequest) bool {
		return req.Name == "Acme Corp" && req.URL == "https://acme.example"
	})).Return(brand, nil)

	req := jsonRequest(http.MethodPost, "/brands", `{"name":"Acme Corp","url":"https://acme.example"}`)
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusCreated, rec.Code)

	var response entity.Brand
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "acme-corp", response.Slug)
	mockService.AssertExpectations(t)
}

func TestBrandHandler_Create_ValidationError(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"missing name", `{"url":"https://acme.example"}`, "name is required"},
		{"bad url", `{"name":"Acme","url":"not a url"}`, "url is url"},
		{"bad color", `{"name":"Acme","url":"https://acme.example","primary_hex":"red"}`, "primary_hex is hexcolor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, mockService := setupBrandRouter()

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, jsonRequest(http.MethodPost, "/brands", tt.body))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.message, decodeMessage(t, rec))
			mockService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestBrandHandler_Create_Duplicate(t *testing.T) {
	// Arrange
	router, mockService := setupBrandRouter()
	mockService.On("Create", mock.Anything, mock.Anything).Return(nil, service.ErrAlreadyExists)

	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, jsonRequest(http.MethodPost, "/brands", `{"name":"Acme","url":"https://acme.example"}`))

	// Assert
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestBrandHandler_Create_EmptySlug(t *testing.T) {
	// Arrange
	router, mockService := setupBrandRouter()
	mockService.On("Create", mock.Anything, mock.Anything).Return(nil, service.ErrEmptySlug)

	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, jsonRequest(http.MethodPost, "/brands", `{"name":"!!!","url":"https://acme.example"}`))

	// Assert
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestBrandHandler_Get_InvalidID(t *testing.T) {
	router, mockService := setupBrandRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/brands/not-a-uuid", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid id", decodeMessage(t, rec))
	mockService.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestBrandHandler_Get_NotFound(t *testing.T) {
	// Arrange
	router, mockService := setupBrandRouter()
	id := uuid.New()
	mockService.On("Get", mock.Anything, id).Return(nil, service.ErrBrandNotFound)

	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/brands/"+id.String(), nil))

	// Assert
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "brand not found", decodeMessage(t, rec))
}

func TestBrandHandler_Get_InternalError(t *testing.T) {
	// Arrange
	router, mockService := setupBrandRouter()
	id := uuid.New()
	mockService.On("Get", mock.Anything, id).Return(nil, errors.New("connection refused"))

	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/brands/"+id.String(), nil))

	// Assert
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to get brand", decodeMessage(t, rec))
}

func TestBrandHandler_List_InvalidDirection(t *testing.T) {
	router, mockService := setupBrandRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/brands?direction=sideways", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "direction is oneof", decodeMessage(t, rec))
	mockService.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestBrandHandler_List_VisibilityFilter(t *testing.T) {
	// Arrange
	router, mockService := setupBrandRouter()

	page := &entity.PageResponse[entity.Brand]{Data: []entity.Brand{}, Page: 1, PerPage: 15}
	mockService.On("List", mock.Anything, mock.MatchedBy(func(q entity.BrandListQuery) bool {
		return q.Visible != nil && !*q.Visible && q.Search == "acme"
	})).Return(page, nil)

	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/brands?is_visible=false&search=acme", nil))

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)
	mockService.AssertExpectations(t)
}

func TestBrandHandler_Delete(t *testing.T) {
	// Arrange
	router, mockService := setupBrandRouter()
	id := uuid.New()
	mockService.On("Delete", mock.Anything, id).Return(nil)

	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/brands/"+id.String(), nil))

	// Assert
	assert.Equal(t, http.StatusNoContent, rec.Code)
	mockService.AssertExpectations(t)
}

func TestBrandHandler_Restore(t *testing.T) {
	// Arrange
	router, mockService := setupBrandRouter()
	id := uuid.New()
	mockService.On("Restore", mock.Anything, id).Return(&entity.Brand{ID: id, Name: "Acme"}, nil)

	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/brands/"+id.String()+"/restore", nil))

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)
	mockService.AssertExpectations(t)
}
