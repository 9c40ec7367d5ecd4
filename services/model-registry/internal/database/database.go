package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"maas-platform/services/model-registry/internal/config"
	"maas-platform/services/model-registry/internal/models"
)

// Database wraps the GORM database connection.
type Database struct {
	*gorm.DB
}

// New opens a PostgreSQL connection and configures the pool.
func New(cfg config.DatabaseConfig) (*Database, error) {
	gormConfig := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxConnections)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return &Database{DB: db}, nil
}

// Migrate runs automatic migration for the registry schema.
func (db *Database) Migrate() error {
	return db.AutoMigrate(
		&models.Model{},
		&models.Tag{},
		&models.ModelMetadata{},
	)
}

// Close closes the underlying connection pool.
func (db *Database) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
