package repositories

import (
	"log"

	"github.com/devpatel-io/inklens/internal/config"
	"github.com/devpatel-io/inklens/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectDatabase opens the postgres connection and runs the schema
// migration once. Handlers never issue DDL.
func ConnectDatabase() {
	dsn := config.Envs.DB_URL
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := Migrate(db); err != nil {
		log.Fatal("Migration failed:", err)
	}
	DB = db
	log.Println("Successfully connected to database")
}

// Migrate creates or updates all tables. Shared with the test setup so
// tests run against the same schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.HistoryRecord{},
		&models.Preference{},
		&models.TwoFactorState{},
	)
}
