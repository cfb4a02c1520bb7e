package handler

import (
	"net/http"
	"strings"

	"netracare-go/internal/auth"

	"github.com/gin-gonic/gin"
)

// ключ контекста gin для ID аутентифицированного пользователя
const contextUserIDKey = "userID"

// AuthMiddleware проверяет Bearer токен и кладет ID пользователя в контекст
func AuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Отсутствует заголовок Authorization"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Неверный формат заголовка Authorization"})
			return
		}

		userID, err := tokens.Parse(parts[1])
		if err != nil {
			status := http.StatusUnauthorized
			message := "Недействительный токен"
			if err == auth.ErrTokenExpired {
				message = "Срок действия токена истек"
			}
			c.AbortWithStatusJSON(status, gin.H{"error": message})
			return
		}

		c.Set(contextUserIDKey, userID)
		c.Next()
	}
}

// currentUserID извлекает ID пользователя из контекста запроса
func currentUserID(c *gin.Context) uint {
	value, ok := c.Get(contextUserIDKey)
	if !ok {
		return 0
	}
	userID, ok := value.(uint)
	if !ok {
		return 0
	}
	return userID
}

// CORSMiddleware разрешает кросс-доменные запросы от веб клиента
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
