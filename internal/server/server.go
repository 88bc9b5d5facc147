package server

import (
	"log/slog"
	"time"

	"ctchen222/signup-form/internal/api/controller"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("server")

const headerRequestID = "X-Request-ID"

// Server is the gin engine of the stub registration API.
type Server struct {
	engine *gin.Engine
}

// NewServer wires the routes.
func NewServer(rc *controller.RegistrationController) *Server {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Recovery(), tracing(), requestLog())

	engine.GET("/healthz", rc.Health)
	api := engine.Group("/api")
	api.POST("/register", rc.Register)

	return &Server{engine: engine}
}

// Engine returns the http.Handler of the server.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// tracing continues the caller's trace and tags the span with the request id.
func tracing() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := otel.GetTextMapPropagator().Extract(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))

		requestID := c.GetHeader(headerRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Header(headerRequestID, requestID)

		ctx, span := tracer.Start(ctx, "server."+c.FullPath(), trace.WithAttributes(
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.url", c.Request.URL.String()),
			attribute.String("http.request_id", requestID),
		))
		defer span.End()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		status := c.Writer.Status()
		span.SetAttributes(attribute.Int("http.status_code", status))
		if status >= 500 {
			span.SetStatus(codes.Error, "Server error")
		}
	}
}

func requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.InfoContext(c.Request.Context(), "request handled",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"request_id", c.Writer.Header().Get(headerRequestID),
			"duration", time.Since(start),
		)
	}
}
