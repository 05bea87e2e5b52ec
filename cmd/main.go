package main

import (
  "context"
  "strings"
  "time"
  "github.com/recipebox/recipebox-backend/internal/clients/redis"
  "github.com/recipebox/recipebox-backend/internal/db"
  "github.com/recipebox/recipebox-backend/internal/handlers"
  "github.com/recipebox/recipebox-backend/internal/logger"
  "github.com/recipebox/recipebox-backend/internal/middleware"
  "github.com/recipebox/recipebox-backend/internal/observability"
  "github.com/recipebox/recipebox-backend/internal/server"
  "github.com/recipebox/recipebox-backend/internal/services"
  "github.com/recipebox/recipebox-backend/internal/repos"
  "github.com/recipebox/recipebox-backend/internal/utils"
)

func main() {
  mode := utils.GetEnv("APP_ENV", "development", nil)
  log, err := logger.New(mode)
  if err != nil {
    panic(err)
  }
  defer log.Sync()

  ctx := context.Background()
  shutdownTracing := observability.InitOTel(ctx, log, observability.OtelConfig{
    ServiceName: "recipebox",
    Environment: mode,
    Version:     utils.GetEnv("APP_VERSION", "dev", log),
  })
  defer func() {
    shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()
    if err := shutdownTracing(shutdownCtx); err != nil {
      log.Warn("Tracing shutdown failed", "error", err)
    }
  }()

  jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "", log)
  if jwtSecretKey == "" {
    log.Fatal("JWT_SECRET_KEY is required")
  }
  accessTTL := time.Duration(utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)) * time.Second
  refreshTTL := time.Duration(utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)) * time.Second

  // DB
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Fatal("Failed to initialize PostgresService", "error", err)
  }
  if err := postgresService.AutoMigrateAll(); err != nil {
    log.Fatal("Failed to migrate database", "error", err)
  }
  gdb := postgresService.DB()

  // Repos
  userRepo := repos.NewUserRepo(gdb, log)
  userTokenRepo := repos.NewUserTokenRepo(gdb, log)
  tagRepo := repos.NewTagRepo(gdb, log)
  ingredientRepo := repos.NewIngredientRepo(gdb, log)
  recipeRepo := repos.NewRecipeRepo(gdb, log)

  // Optional infrastructure. The API runs without either, with image upload
  // and public-listing caching degraded.
  var cache redis.Cache
  if c, err := redis.NewCache(log); err != nil {
    log.Warn("Redis cache unavailable, public listing served uncached", "error", err)
  } else {
    cache = c
    defer cache.Close()
  }
  var bucketService services.BucketService
  if bs, err := services.NewBucketService(log); err != nil {
    log.Warn("Bucket storage unavailable, image upload disabled", "error", err)
  } else {
    bucketService = bs
  }

  // Services
  authService := services.NewAuthService(gdb, log, userRepo, userTokenRepo, jwtSecretKey, accessTTL, refreshTTL)
  recipeService := services.NewRecipeService(gdb, log, recipeRepo, tagRepo, ingredientRepo, bucketService)
  tagService := services.NewTagService(gdb, log, tagRepo)
  ingredientService := services.NewIngredientService(gdb, log, ingredientRepo)
  publicCacheTTL := time.Duration(utils.GetEnvAsInt("PUBLIC_CACHE_TTL", 30, log)) * time.Second
  publicService := services.NewPublicRecipeService(gdb, log, recipeRepo, cache, publicCacheTTL)

  // Handlers
  authHandler := handlers.NewAuthHandler(authService)
  recipeHandler := handlers.NewRecipeHandler(log, recipeService, publicService)
  tagHandler := handlers.NewTagHandler(tagService)
  ingredientHandler := handlers.NewIngredientHandler(ingredientService)
  authMiddleware := middleware.NewAuthMiddleware(log, authService)

  var allowOrigins []string
  if raw := strings.TrimSpace(utils.GetEnv("CORS_ALLOW_ORIGINS", "", log)); raw != "" {
    for _, origin := range strings.Split(raw, ",") {
      if origin = strings.TrimSpace(origin); origin != "" {
        allowOrigins = append(allowOrigins, origin)
      }
    }
  }

  router := server.NewRouter(server.RouterConfig{
    ServiceName:       "recipebox",
    AllowOrigins:      allowOrigins,
    AuthHandler:       authHandler,
    AuthMiddleware:    authMiddleware,
    RecipeHandler:     recipeHandler,
    TagHandler:        tagHandler,
    IngredientHandler: ingredientHandler,
  })

  port := utils.GetEnv("PORT", "8080", log)
  log.Info("Starting server...", "port", port)
  if err := router.Run(":" + port); err != nil {
    log.Fatal("Server exited", "error", err)
  }
}
