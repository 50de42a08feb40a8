package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// NewServer creates the HTTP server with all routes configured.
func NewServer(handler *Handler, apiToken string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	// Faults must never cross the boundary unhandled: recover into the same
	// {ok:false, error} shape every other failure path uses.
	r.Use(gin.CustomRecovery(func(c *gin.Context, _ interface{}) {
		c.JSON(http.StatusInternalServerError, ErrorResponse{OK: false, Error: "internal error"})
	}))

	// CORS middleware for API endpoints
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	setupRoutes(r, handler, apiToken)

	return r
}

func setupRoutes(r *gin.Engine, handler *Handler, apiToken string) {
	// Submission endpoint; does its own token check so that auth failures
	// come back in the uniform response shape.
	r.POST("/links", handler.SubmitLinks)

	// Health and status endpoints
	r.GET("/health", handler.GetHealth)
	r.GET("/stats", handler.GetStats)

	// Management endpoints behind the same token
	api := r.Group("/api")
	api.Use(authMiddleware(apiToken))
	{
		api.POST("/links/status", handler.UpdateLinkStatus)
	}

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service":     "LinkTrack",
			"description": "Course link discovery, reconciliation and notification service",
			"endpoints": map[string]string{
				"submit": "/links (POST, requires Bearer token or ?token=)",
				"status": "/api/links/status (POST, requires Bearer token)",
				"health": "/health",
				"stats":  "/stats",
			},
		})
	})

	// Favicon handler (return 204 to avoid 404s)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}

func authMiddleware(apiToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiToken == "" {
			c.JSON(http.StatusInternalServerError, ErrorResponse{OK: false, Error: "API token not set"})
			c.Abort()
			return
		}

		provided := ""
		authHeader := c.GetHeader("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			provided = authHeader[7:]
		}
		if provided == "" {
			provided = c.Query("token")
		}

		if provided == "" || provided != apiToken {
			c.JSON(http.StatusUnauthorized, ErrorResponse{OK: false, Error: "unauthorized"})
			c.Abort()
			return
		}

		c.Next()
	}
}
