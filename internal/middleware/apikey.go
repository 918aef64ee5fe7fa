package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/barbersoft/agenda-api/internal/config"
)

// APIKeyAuth compara o header x-api-key com a chave estática configurada.
// Sem chave configurada no processo, toda requisição é recusada.
func APIKeyAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("x-api-key")

		if key == "" || cfg.APIKey == "" ||
			subtle.ConstantTimeCompare([]byte(key), []byte(cfg.APIKey)) != 1 {

			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Não autorizado",
			})
			return
		}

		c.Next()
	}
}
