package initializers

import (
	"log"

	"github.com/rentplatform/rentplatform-api/models"
)

func SyncDatabase() {
	DB.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Order{},
		&models.PromotionCode{},
		&models.Announcement{},
	)
	log.Println("Database synced successfully.")
}
