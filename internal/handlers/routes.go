package handlers

import (
	"io"
	"net/http"
	"time"

	_ "birthday-tracker-api/docs"
	"birthday-tracker-api/internal/middleware"
	"birthday-tracker-api/pkg/lambda"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RouterConfig holds configuration for setting up routes
type RouterConfig struct {
	BirthdayHandler *BirthdayHandler
	ServiceName     string
	Version         string
}

// SetupRoutes configures the local server routes. /birthdays accepts every
// method so the dispatcher decides what is allowed.
func SetupRoutes(router *gin.Engine, config *RouterConfig) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"service":   config.ServiceName,
			"version":   config.Version,
			"timestamp": time.Now().UTC(),
		})
	})

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.Any("/birthdays", GinHandler(config.BirthdayHandler.Handle))
}

// GinHandler adapts a dispatcher to gin
func GinHandler(handle lambda.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: ErrMalformedInput.Error()})
			return
		}

		headers := make(map[string]string, len(c.Request.Header))
		for name := range c.Request.Header {
			headers[name] = c.Request.Header.Get(name)
		}

		query := make(map[string]string)
		for name, values := range c.Request.URL.Query() {
			if len(values) > 0 {
				query[name] = values[0]
			}
		}

		resp := handle(c.Request.Context(), &lambda.Request{
			Method:      c.Request.Method,
			Path:        c.Request.URL.Path,
			Headers:     headers,
			QueryParams: query,
			Body:        body,
			RequestID:   c.GetString(middleware.RequestIDKey),
		})

		contentType := resp.Headers["Content-Type"]
		for name, value := range resp.Headers {
			if name != "Content-Type" {
				c.Header(name, value)
			}
		}
		c.Data(resp.StatusCode, contentType, resp.Body)
	}
}
