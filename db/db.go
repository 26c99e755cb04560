package db

import (
	"log"
	"os"
	"sync/atomic"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	DB *gorm.DB

	shuttingDown atomic.Bool
)

// GetDB hands out the shared connection pool. It returns nil once Close has
// been called so in-flight background jobs stop picking up new work during
// shutdown.
func GetDB() *gorm.DB {
	if shuttingDown.Load() {
		return nil
	}
	return DB
}

// Init establishes the DB connection with an explicitly bounded pool.
// Migrations only run when Migrate is called.
func Init() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: Error loading .env file. Using environment variables directly.")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	db, err := gorm.Open(postgres.Open(dbURL), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
	})
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("Failed to access connection pool: ", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	DB = db
	log.Println("✅ Database connection established successfully!")
}

// Close drains the pool and makes GetDB reject further checkouts.
func Close() {
	shuttingDown.Store(true)
	if DB == nil {
		return
	}
	if sqlDB, err := DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Println("Warning: error closing database pool:", err)
		}
	}
}
