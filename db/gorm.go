package db

import (
	"fmt"
	"time"

	"melodex/config"
	"melodex/logger"
	"melodex/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormDB is the GORM connection. It owns schema migration; the repositories
// run raw SQL against the plain connection in database.go.
var GormDB *gorm.DB

// ConnectGormDB establishes the GORM database connection.
func ConnectGormDB(cfg *config.Config) error {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

	var err error
	GormDB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		// Dangling references after song deletion are part of the contract,
		// so no FK constraints are emitted.
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect database with GORM: %w", err)
	}

	sqlDB, err := GormDB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	logger.Info("Successfully connected to the database with GORM")
	return nil
}

// Migrate creates or updates the catalog schema.
func Migrate() error {
	if GormDB == nil {
		return fmt.Errorf("GORM connection not initialized")
	}

	err := GormDB.AutoMigrate(
		&model.User{},
		&model.Artist{},
		&model.Song{},
		&model.Album{},
		&model.Playlist{},
		&model.PlaylistSong{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate catalog schema: %w", err)
	}

	logger.Info("Catalog schema migration completed")
	return nil
}

// CloseGormDB closes the GORM database connection.
func CloseGormDB() error {
	if GormDB == nil {
		return nil
	}

	sqlDB, err := GormDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
