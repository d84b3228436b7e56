package main

import (
	"context"
	"os"
	"time"

	"membership-app/config"
	"membership-app/database"
	routes "membership-app/internal/app/http"
	"membership-app/internal/notify"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()
	database.InitDB()

	sender := notify.NewSMTPSender(config.SMTP_HOST, config.SMTP_PORT, config.SMTP_FROM, config.SMTP_PASSWORD)
	notify.Setup(database.DB, sender, config.SMTP_FROM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	worker := notify.NewWorker(database.DB, notify.NewMailer(database.DB, sender, config.SMTP_FROM))
	go worker.Start(ctx)

	r := gin.Default()

	// ✅ Add CORS middleware BEFORE registering routes
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{os.Getenv("CORS_ORIGIN")},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r)

	r.Run(":" + config.PORT)
}
