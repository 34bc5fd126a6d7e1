package db

import (
	"context"
	"fmt"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"multipart-uploader/internal/domain/entities"

	// registers the Go migrations with goose
	_ "multipart-uploader/migrations"
)

// RunMigrations applies every registered goose migration to a Postgres database.
func RunMigrations(ctx context.Context, database *gorm.DB) error {
	sqlDB, err := database.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}

	goose.SetBaseFS(nil)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, sqlDB, "."); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// AutoMigrate creates the schema from the gorm models. Used for databases
// goose does not target, such as the SQLite used in tests.
func AutoMigrate(database *gorm.DB) error {
	return database.AutoMigrate(
		&entities.UploadedFile{},
	)
}
