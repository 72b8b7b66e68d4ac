package router

import (
	"github.com/gin-gonic/gin"

	"hia/internal/domain"
	"hia/internal/handler"
	"hia/internal/middleware"
	"hia/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authSvc service.AuthService,
	allowedOrigins []string,
	authH *handler.AuthHandler,
	analysisH *handler.AnalysisHandler,
	chatH *handler.ChatHandler,
	appH *handler.ApplicationHandler,
	adminH *handler.AdminHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authH.Register)
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.RefreshToken)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	// Report analysis
	reports := protected.Group("/reports")
	reports.POST("/analyze", analysisH.Analyze)
	reports.GET("", analysisH.History)

	// Health chat
	chats := protected.Group("/chats")
	chats.POST("", chatH.Create)
	chats.GET("", chatH.List)
	chats.GET("/:id/messages", chatH.Messages)
	chats.POST("/:id/messages", chatH.SendMessage)
	chats.DELETE("/:id", chatH.Delete)

	// Healthcare assistant applications
	applications := protected.Group("/applications")
	applications.POST("", appH.Submit)
	applications.GET("/me", appH.GetOwn)

	// Admin surface
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(authSvc))
	admin.Use(middleware.RequireRole(domain.RoleAdmin))
	admin.GET("/applications", appH.List)
	admin.POST("/applications/:id/decide", appH.Decide)
	admin.GET("/applications/:id/documents", appH.Documents)
	admin.GET("/users", adminH.ListUsers)
	admin.GET("/users/:id", adminH.GetUser)
	admin.PATCH("/users/:id/role", adminH.UpdateUserRole)
	admin.DELETE("/users/:id", adminH.DeleteUser)
	admin.GET("/reports/export/csv", adminH.ExportReportsCSV)
	admin.GET("/reports/export/xlsx", adminH.ExportReportsXLSX)

	return r
}
