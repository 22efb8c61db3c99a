package main

import (
	"giglink_backend/database"
	"giglink_backend/internal/app"
	"giglink_backend/internal/logger"
)

func main() {
	if err := database.AutoMigrate(); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}
	app.Run()
}
