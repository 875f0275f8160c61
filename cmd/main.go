package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"time"

	"flatfeud/backend/internal/api/handler"
	"flatfeud/backend/internal/archiver"
	"flatfeud/backend/internal/complaint"
	"flatfeud/backend/internal/models"
	"flatfeud/backend/internal/punishment"
	"flatfeud/backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies() (*gorm.DB, *redis.Client) {
	// 1. PostgreSQL
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		envOr("DB_HOST", "localhost"),
		envOr("DB_USER", "user"),
		envOr("DB_PASSWORD", "password"),
		envOr("DB_NAME", "flatfeuddb"),
		envOr("DB_PORT", "5432"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	// 2. Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     envOr("REDIS_ADDR", "localhost:6379"),
		Password: "",
		DB:       0,
	})

	// Перевірка з'єднання Redis
	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	// 3. Міграції (Створення таблиць)
	err = db.AutoMigrate(
		&models.User{},
		&models.Complaint{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	log.Println("Starting FlatFeud Backend...")

	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: Error loading .env file")
	}

	// 1. Ініціалізація залежностей
	db, rdb := setupDependencies()
	s := storage.NewStorageService(db, rdb)

	// 2. Ініціалізація сервісів
	picker := punishment.NewPicker(rand.NewSource(time.Now().UnixNano()))
	complaints := complaint.NewService(s, picker)
	sweeper := archiver.NewService(s)

	// 3. Запуск основних Goroutines
	go sweeper.Run() // Щоденне архівування скарг

	// 4. Налаштування Gin та роутингу
	r := gin.Default()
	h := handler.NewHandler(complaints, s)

	// Роути
	auth := r.Group("/api/auth")
	auth.POST("/register", h.Register)
	auth.POST("/login", h.Login)

	api := r.Group("/api/complaints", handler.AuthRequired())
	api.POST("", h.FileComplaint)
	api.GET("", h.ListComplaints)
	api.GET("/best-flatmate", h.BestFlatmate)
	api.GET("/trending", h.Trending)
	api.GET("/leaderboard", h.Leaderboard)
	api.GET("/stats", h.TypeStats)
	api.POST("/:id/vote", h.VoteComplaint)
	api.PUT("/:id/resolve", h.ResolveComplaint)

	stats := r.Group("/api/stats")
	stats.GET("/leaderboard", h.KarmaLeaderboard)
	stats.GET("/flat", h.FlatStats)

	// Запуск HTTP-сервера
	server := &http.Server{
		Addr:           ":" + envOr("PORT", "8080"),
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}
