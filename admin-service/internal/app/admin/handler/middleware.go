package handler

import (
	"errors"
	"net/http"
	"strings"

	"shopadmin/admin-service/internal/app/admin/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Роли с доступом к админке
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
)

// JWTClaims структура claims для JWT токена
// Токены выпускает сервис авторизации, здесь они только проверяются
type JWTClaims struct {
	UserID      string   `json:"user_id"`
	Email       string   `json:"email"`
	RoleID      int      `json:"role_id"`
	RoleName    string   `json:"role_name"`
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}

// AuthMiddleware проверяет JWT токен в запросах для Gin
type AuthMiddleware struct {
	jwtSecret string
}

// NewAuthMiddleware создает новый middleware для аутентификации
func NewAuthMiddleware(jwtSecret string) *AuthMiddleware {
	return &AuthMiddleware{
		jwtSecret: jwtSecret,
	}
}

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":   "Unauthorized",
		"message": message,
	})
}

// Authenticate проверяет JWT токен и добавляет данные администратора в контекст
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			unauthorized(c, "Invalid authorization header format")
			return
		}

		token, err := jwt.ParseWithClaims(parts[1], &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(m.jwtSecret), nil
		})
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				unauthorized(c, "Token has expired")
				return
			}
			unauthorized(c, "Invalid token")
			return
		}

		claims, ok := token.Claims.(*JWTClaims)
		if !ok || !token.Valid {
			unauthorized(c, "Invalid token claims")
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			unauthorized(c, "Invalid user ID in token")
			return
		}

		c.Set("user_id", userID)
		c.Set("email", claims.Email)
		c.Set("role_id", claims.RoleID)
		c.Set("role_name", claims.RoleName)
		c.Set("permissions", claims.Permissions)

		// автор изменений для журнала действий
		c.Request = c.Request.WithContext(service.WithActor(c.Request.Context(), userID.String()))

		c.Next()
	}
}

// RequireRole проверяет, что у пользователя есть требуемая роль
func (m *AuthMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleName, exists := c.Get("role_name")
		if !exists {
			unauthorized(c, "Unauthorized")
			return
		}

		roleNameStr, ok := roleName.(string)
		if !ok {
			unauthorized(c, "Invalid role data")
			return
		}

		for _, role := range roles {
			if roleNameStr == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":   "Forbidden",
			"message": "Insufficient permissions",
		})
	}
}
