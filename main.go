package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"ecommerce/internal/config"
	"ecommerce/internal/database"
	"ecommerce/internal/handlers"
)

func main() {
	config.Load()

	if config.AppEnv.GinMode != "" {
		gin.SetMode(config.AppEnv.GinMode)
	}

	db, err := database.Connect(config.AppEnv.DBPath)
	if err != nil {
		log.Fatal(err)
	}
	log.Println("SQLite connected:", config.AppEnv.DBPath)

	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	r := gin.Default()
	handlers.RegisterRoutes(r, db)

	if err := r.Run(":" + config.AppEnv.Port); err != nil {
		log.Fatal(err)
	}
}
