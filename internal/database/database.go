package database

import (
	"fmt"
	"strings"
	"time"

	"votebox/backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Connect opens the database, runs migrations and stores the handle in DB.
// DSNs starting with "file:" select the embedded sqlite driver, anything
// else is handed to postgres. It aborts the process when either step fails.
func Connect(dsn string) *gorm.DB {
	var err error

	if strings.HasPrefix(dsn, "file:") {
		DB, err = OpenSQLite(dsn)
	} else {
		DB, err = Open(postgres.Open(dsn))
	}
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}

	logrus.Info("Database connection established.")

	if err := Migrate(DB); err != nil {
		logrus.Fatalf("Failed to migrate database: %v", err)
	}

	logrus.Info("Database migrated successfully.")
	return DB
}

// Open wraps gorm.Open with the logger settings shared by every dialector.
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	gormLogger := logger.New(
		logrus.StandardLogger(),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond, // Slow SQL threshold
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

// OpenSQLite opens an sqlite database on a single connection, which
// serialises transactions and keeps ":memory:" databases alive.
func OpenSQLite(dsn string) (*gorm.DB, error) {
	db, err := Open(sqlite.Open(dsn))
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// Migrate creates or updates the tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.Room{}, &models.User{})
}
