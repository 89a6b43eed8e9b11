// Package gateway реализует HTTP-шлюз к сервису заказов.
package gateway

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// NewRouter собирает gin-движок с маршрутами заказов и границей трансляции ошибок.
func NewRouter(orders OrdersAPI, logger *log.Entry) *gin.Engine {
	if logger == nil {
		logger = log.WithField("component", "gateway")
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger), ErrorBoundary(logger))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	handlers := NewOrderHandlers(orders)
	group := router.Group("/orders")
	{
		group.POST("", handlers.CreateOrder)
		group.GET("", handlers.FindAllOrders)
		group.GET("/:id", handlers.FindOneOrder)
		group.PATCH("/:id", handlers.ChangeOrderStatus)
	}

	return router
}

func requestLogger(logger *log.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.WithFields(log.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		}).Debug("http request")
	}
}
