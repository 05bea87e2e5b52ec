package db

import (
  "fmt"
  "gorm.io/driver/postgres"
  "gorm.io/gorm"
  "github.com/recipebox/recipebox-backend/internal/types"
  "github.com/recipebox/recipebox-backend/internal/utils"
  "github.com/recipebox/recipebox-backend/internal/logger"
)

type PostgresService struct {
  db *gorm.DB
  log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
  serviceLog := log.With("service", "PostgresService")

  log.Info("Loading environment variables...")
  postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
  postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
  postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
  postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
  postgresName := utils.GetEnv("POSTGRES_NAME", "recipebox", log)
  postgresSSLMode := utils.GetEnv("POSTGRES_SSLMODE", "disable", log)

  dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName, postgresSSLMode)

  log.Info("Connecting to Postgres...")
  db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
    DisableForeignKeyConstraintWhenMigrating: true,
  })
  if err != nil {
    log.Error("Failed to connect to Postgres", "error", err)
    return nil, fmt.Errorf("Failed to connect to Postgres: %w", err)
  }

  return &PostgresService{db: db, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
  s.log.Info("Auto migrating postgres tables...")
  err := s.db.AutoMigrate(
    &types.User{},
    &types.UserToken{},
    &types.Tag{},
    &types.Ingredient{},
    &types.Recipe{},
  )
  if err != nil {
    s.log.Error("Auto migration failed for postgres tables", "error", err)
    return err
  }
  s.log.Info("Configuring foreign key relationships for postgres tables...")
  stmts := []string{
    `ALTER TABLE "user_token" DROP CONSTRAINT IF EXISTS "fk_user_token_user_id"`,
    `ALTER TABLE "user_token" ADD CONSTRAINT "fk_user_token_user_id" FOREIGN KEY ("user_id") REFERENCES "user"("id") ON DELETE CASCADE`,
    `ALTER TABLE "recipe_tag" DROP CONSTRAINT IF EXISTS "fk_recipe_tag_recipe_id"`,
    `ALTER TABLE "recipe_tag" ADD CONSTRAINT "fk_recipe_tag_recipe_id" FOREIGN KEY ("recipe_id") REFERENCES "recipe"("id") ON DELETE CASCADE`,
    `ALTER TABLE "recipe_ingredient" DROP CONSTRAINT IF EXISTS "fk_recipe_ingredient_recipe_id"`,
    `ALTER TABLE "recipe_ingredient" ADD CONSTRAINT "fk_recipe_ingredient_recipe_id" FOREIGN KEY ("recipe_id") REFERENCES "recipe"("id") ON DELETE CASCADE`,
  }
  for _, stmt := range stmts {
    if err := s.db.Exec(stmt).Error; err != nil {
      return fmt.Errorf("Failed to configure foreign keys: %w", err)
    }
  }
  return nil
}

func (s *PostgresService) DB() *gorm.DB {
  return s.db
}
