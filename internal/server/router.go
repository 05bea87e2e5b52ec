package server

import (
  "strings"
  "github.com/gin-gonic/gin"
  "github.com/gin-contrib/cors"
  "go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
  "github.com/recipebox/recipebox-backend/internal/handlers"
  "github.com/recipebox/recipebox-backend/internal/middleware"
)

type RouterConfig struct {
  ServiceName         string
  AllowOrigins        []string
  AuthHandler         *handlers.AuthHandler
  AuthMiddleware      *middleware.AuthMiddleware
  RecipeHandler       *handlers.RecipeHandler
  TagHandler          *handlers.TagHandler
  IngredientHandler   *handlers.IngredientHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  serviceName := strings.TrimSpace(cfg.ServiceName)
  if serviceName == "" {
    serviceName = "recipebox"
  }
  router.Use(otelgin.Middleware(serviceName))

  // Cors
  allowOrigins := cfg.AllowOrigins
  if len(allowOrigins) == 0 {
    allowOrigins = []string{
      "http://localhost:80",
      "http://localhost:3000",
      "http://localhost:5174",
    }
  }
  router.Use(cors.New(cors.Config{
    AllowOrigins:     allowOrigins,
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

// ===============
// || Public    ||
// ===============
  router.GET("/healthcheck", handlers.HealthCheck)
  api := router.Group("/api")
  {
    api.POST("/register", cfg.AuthHandler.Register)
    api.POST("/login", cfg.AuthHandler.Login)
    // Unauthenticated, unscoped recipe listing. The only unscoped read path.
    api.GET("/p/recipes", cfg.RecipeHandler.PublicList)
  }

// ===============
// || Protected ||
// ===============
  protected := api.Group("/")
  protected.Use(cfg.AuthMiddleware.RequireAuth())
  // Auth
  protected.POST("/refresh", cfg.AuthHandler.Refresh)
  protected.POST("/logout", cfg.AuthHandler.Logout)
  // Recipes
  protected.POST("/recipes", cfg.RecipeHandler.Create)
  protected.GET("/recipes", cfg.RecipeHandler.List)
  protected.GET("/recipes/:id", cfg.RecipeHandler.Get)
  protected.PATCH("/recipes/:id", cfg.RecipeHandler.Update)
  protected.DELETE("/recipes/:id", cfg.RecipeHandler.Delete)
  protected.PATCH("/recipes/:id/image", cfg.RecipeHandler.UploadImage)
  // Tags
  protected.GET("/tags", cfg.TagHandler.List)
  protected.PATCH("/tags/:id", cfg.TagHandler.Update)
  protected.DELETE("/tags/:id", cfg.TagHandler.Delete)
  // Ingredients
  protected.GET("/ingredients", cfg.IngredientHandler.List)
  protected.PATCH("/ingredients/:id", cfg.IngredientHandler.Update)
  protected.DELETE("/ingredients/:id", cfg.IngredientHandler.Delete)

  return router
}
