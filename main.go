package main

import (
	"context"
	"time"

	"github.com/davidobi-dev/threadcart-backend/internal/config"
	"github.com/davidobi-dev/threadcart-backend/internal/handlers"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.Load()

	db := connectDB(cfg)

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	handlers.SetupRoutes(router, db)

	logrus.Infof("Starting server on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
	}
}

// connectDB returns nil on failure so the server can still come up and
// answer health checks while reporting 503 on API routes.
func connectDB(cfg config.Config) *mongo.Database {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logrus.Errorf("Failed to create MongoDB client: %v", err)
		return nil
	}
	if err := client.Ping(ctx, nil); err != nil {
		logrus.Errorf("Failed to reach MongoDB: %v", err)
		return nil
	}

	logrus.Info("Connected to MongoDB")
	return client.Database(cfg.DBName)
}
