package main

import (
	"fmt"
	"log"

	"promptito-be/internal/model"
	"promptito-be/pkg/events"
	"promptito-be/pkg/i18n"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SeedNotificationTypes makes sure every event that produces a notification
// has a type row. Existing rows keep their edited templates.
func SeedNotificationTypes(db *gorm.DB, tr i18n.Translator) error {
	web := datatypes.JSON([]byte(`["web"]`))
	types := []model.NotificationType{
		{
			Code:        events.PromptFavorited,
			DisplayName: "Prompt Favorited",
			Template:    tr.T("notifications.promptFavorited"),
			TargetType:  model.TargetOwner,
			Priority:    "LOW",
			Channels:    web,
			IsActive:    true,
		},
		{
			Code:        events.PromptForked,
			DisplayName: "Prompt Forked",
			Template:    tr.T("notifications.promptForked"),
			TargetType:  model.TargetOwner,
			Priority:    "LOW",
			Channels:    web,
			IsActive:    true,
		},
		{
			Code:        events.PromptReported,
			DisplayName: "Prompt Reported",
			Template:    tr.T("notifications.promptReported"),
			TargetType:  model.TargetAdmin,
			Priority:    "HIGH",
			Channels:    datatypes.JSON([]byte(`["web", "email"]`)),
			IsActive:    true,
		},
		{
			Code:        events.PromptHidden,
			DisplayName: "Prompt Hidden",
			Template:    tr.T("notifications.promptHidden"),
			TargetType:  model.TargetOwner,
			Priority:    "HIGH",
			Channels:    datatypes.JSON([]byte(`["web", "email"]`)),
			IsActive:    true,
		},
		{
			Code:        events.PromptRestored,
			DisplayName: "Prompt Restored",
			Template:    tr.T("notifications.promptRestored"),
			TargetType:  model.TargetOwner,
			Priority:    "MEDIUM",
			Channels:    web,
			IsActive:    true,
		},
	}

	for _, t := range types {
		if err := db.Where("code = ?", t.Code).FirstOrCreate(&t).Error; err != nil {
			return fmt.Errorf("seed notification type %s: %w", t.Code, err)
		}
	}
	log.Printf("Seeded %d notification types.", len(types))
	return nil
}
