package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"
	apperrors "github.com/lk2023060901/search-api/internal/pkg/errors"
	"github.com/lk2023060901/search-api/internal/pkg/logger"
	"github.com/lk2023060901/search-api/internal/pkg/response"
	"go.uber.org/zap"
)

// TokenAuth 共享密钥认证中间件：请求头 header 的值必须等于 token
func TokenAuth(header, token string, log *logger.Logger) gin.HandlerFunc {
	expected := []byte(token)

	return func(c *gin.Context) {
		values := c.Request.Header.Values(header)
		if len(values) == 0 {
			response.AbortWithCode(c, apperrors.ErrAuthMissingToken)
			return
		}

		if subtle.ConstantTimeCompare([]byte(values[0]), expected) != 1 {
			log.Warn("invalid access token", zap.String("ip", c.ClientIP()))
			response.AbortWithCode(c, apperrors.ErrAuthInvalidToken)
			return
		}

		c.Next()
	}
}
