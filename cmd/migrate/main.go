// cmd/migrate/main.go
package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/phalkmin/WP-AutoInsight/internal/database/seed"
	"github.com/phalkmin/WP-AutoInsight/internal/models"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// Define command-line flags
	migrateCmd := flag.Bool("migrate", false, "Run schema migrations")
	seedCmd := flag.Bool("seed", false, "Seed default settings and categories")
	dsn := flag.String("dsn", os.Getenv("POSTGRES_URI"), "PostgreSQL connection string")

	flag.Parse()

	if !(*migrateCmd || *seedCmd) {
		flag.Usage()
		os.Exit(1)
	}

	// Connect to the database
	db, err := gorm.Open(postgres.Open(*dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		log.Fatalf("Failed to connect to the database: %v", err)
	}

	if *migrateCmd {
		log.Println("Running migrations...")
		err := db.AutoMigrate(
			&models.Category{},
			&models.Attachment{},
			&models.Post{},
			&models.Setting{},
			&models.GenerationLog{},
		)
		if err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		log.Println("Migrations completed successfully")
	}

	if *seedCmd {
		log.Println("Seeding defaults...")
		if err := seed.SeedAll(db); err != nil {
			log.Fatalf("Seeding failed: %v", err)
		}
		log.Println("Seeding completed successfully")
	}
}
