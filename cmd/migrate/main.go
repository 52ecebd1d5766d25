package main

import (
	"log"

	"promptito-be/internal/config"
	"promptito-be/internal/model"
	"promptito-be/pkg/database"
	"promptito-be/pkg/i18n"
)

func main() {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, cfg.Database.Verbose, database.DefaultPoolConfig())
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Step 1: Setting up extensions...")
	// gen_random_uuid() defaults need pgcrypto on Postgres < 13.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		log.Printf("Warn: Failed to create pgcrypto extension: %v. Continuing...", err)
	}

	log.Println("Step 2: Running AutoMigrate...")
	models := []interface{}{
		&model.UserProfile{},
		&model.PromptDraft{},
		&model.Prompt{},
		&model.Favorite{},
		&model.Report{},
		&model.SkillPack{},
		&model.Agent{},
		&model.NotificationType{},
		&model.Notification{},
		&model.NotificationPreference{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	log.Println("Step 3: Seeding notification types...")
	if err := SeedNotificationTypes(db, i18n.MustDefault().For(i18n.DefaultLocale)); err != nil {
		log.Fatalf("Error: %v", err)
	}

	log.Println("Migration completed.")
}
