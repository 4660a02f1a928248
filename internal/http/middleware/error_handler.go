package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/hvacsite/internal/http/response"
	"github.com/ignatzorin/hvacsite/internal/logger"
	"github.com/ignatzorin/hvacsite/internal/pkg/apperror"
)

// ErrorHandler отвечает конвертом на ошибки, добавленные через c.Error,
// если обработчик сам ничего не записал.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		LogRequestError(c, err)
		response.Error(c, err, "")
	}
}

// Recovery превращает panic в обработчике в 500 с конвертом.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Component("http").WithFields(logrus.Fields{
			"panic":  recovered,
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		}).Error("panic в обработчике")
		response.Error(c, nil, "")
		c.Abort()
	})
}

// LogRequestError пишет ошибку запроса. Ошибки валидации не считаются сбоем сервера.
func LogRequestError(c *gin.Context, err error) {
	entry := logger.Component("http").WithFields(logrus.Fields{
		"error":  err.Error(),
		"path":   c.Request.URL.Path,
		"method": c.Request.Method,
	})
	if apperror.IsValidation(err) {
		entry.Debug("запрос не прошёл проверку")
		return
	}
	entry.Error("ошибка запроса")
}

// RequestLogger пишет строку о каждом запросе через общий логгер.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Component("http").WithFields(logrus.Fields{
			"status":  c.Writer.Status(),
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"ip":      c.ClientIP(),
			"latency": time.Since(start).String(),
		}).Debug("request")
	}
}
