package database

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"ecommerce/internal/models"
)

// Connect opens the SQLite database at path with foreign-key enforcement on
// and constraint errors translated into gorm's typed sentinels, so handlers
// can tell a uniqueness conflict apart from an infrastructure failure.
func Connect(path string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on", path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return db, nil
}

// Migrate creates or updates the four tables plus the order_products
// association table. Cascade behavior is declared explicitly on the model
// tags; nothing is left to driver defaults.
func Migrate(db *gorm.DB) error {
	log.Println("Migrate: ensuring schema")
	return db.AutoMigrate(
		&models.Customer{},
		&models.Product{},
		&models.Order{},
		&models.CustomerAccount{},
	)
}
