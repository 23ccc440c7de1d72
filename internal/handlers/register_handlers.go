package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/oluto/oluto-backend/cmd/docs"
	portssvc "github.com/oluto/oluto-backend/internal/core/ports/services"
	"github.com/oluto/oluto-backend/internal/middleware"
	"github.com/oluto/oluto-backend/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Register public authentication routes
	registerAuthRoutes(r, cfg, services)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// API tokens are checked first; a valid x-api-key skips the JWT check.
	v1 := r.Group("/api/v1",
		middleware.APITokenAuth(services.APIToken),
		middleware.AuthMiddleware(cfg.JWTSecret),
	)

	registerUserRoutes(v1, services.User)
	registerAPITokenRoutes(v1, services.APIToken)
	registerBusinessRoutes(v1, services)
}

// registerBusinessRoutes registers business management routes and nests every
// business-scoped resource under /businesses/:business_id.
func registerBusinessRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newBusinessHandler(services.Business)

	businesses := rg.Group("/businesses")
	{
		businesses.POST("", h.createBusiness)
		businesses.GET("", h.listUserBusinesses)
	}

	specific := rg.Group("/businesses/:business_id")
	{
		specific.GET("", h.getBusiness)
		specific.POST("/activate", h.activateBusiness)
		specific.POST("/deactivate", h.deactivateBusiness)

		members := specific.Group("/users")
		{
			members.GET("", h.listBusinessUsers)
			members.POST("", h.addUserToBusiness)
			members.PUT("/:user_id/role", h.updateUserBusinessRole)
			members.DELETE("/:user_id", h.removeUserFromBusiness)
		}

		RegisterAccountRoutes(specific, services.Account, services.Journal)
		registerContactRoutes(specific, services.Contact)
		registerInvoiceRoutes(specific, services.Invoice)
		registerBillRoutes(specific, services.Bill)
		registerPaymentRoutes(specific, services.Payment)
		registerJournalRoutes(specific, services.Journal)
		registerReportingRoutes(specific, services.Reporting)
	}
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
