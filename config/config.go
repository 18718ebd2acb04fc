package config

import (
	"fmt"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/gfrancav/assocupom/internal/models"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
}

func LoadConfig() (*Config, error) {
	return &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
	}, nil
}

func InitDatabase(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	// TranslateError maps unique-constraint violations to
	// gorm.ErrDuplicatedKey, which handlers turn into domain conflicts.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates the schema and seeds the category reference data.
// Shared with the test setup, which runs on an in-memory database.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Category{},
		&models.Resident{},
		&models.Merchant{},
		&models.Coupon{},
		&models.Reservation{},
	)
	if err != nil {
		return err
	}

	seedCategories(db)

	return nil
}

func seedCategories(db *gorm.DB) {
	names := []string{
		"Alimentação",
		"Vestuário",
		"Saúde",
		"Beleza",
		"Educação",
		"Entretenimento",
		"Serviços",
		"Tecnologia",
		"Esportes",
		"Casa e Decoração",
		"Automotivo",
		"Pet Shop",
		"Outros",
	}

	for _, name := range names {
		var existing models.Category
		result := db.Where("name = ?", name).First(&existing)
		if result.Error != nil {
			db.Create(&models.Category{Name: name})
		}
	}
}
