package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	"flatfeud/backend/internal/archiver"
	"flatfeud/backend/internal/punishment"
	"flatfeud/backend/internal/storage"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	storageSvc := storage.NewStorageService(db, nil) // No redis needed for admin CLI

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "sweep":
		count, err := archiver.NewService(storageSvc).Sweep()
		if err != nil {
			log.Fatalf("Error running archival sweep: %v", err)
		}
		fmt.Printf("Archived %d complaints.\n", count)
	case "grant-karma":
		if len(os.Args) != 4 {
			fmt.Println("Usage: admin grant-karma <user_id> <points>")
			os.Exit(1)
		}
		userID := os.Args[2]
		points, err := strconv.Atoi(os.Args[3])
		if err != nil {
			fmt.Println("Invalid points. Please provide an integer.")
			os.Exit(1)
		}
		if err := grantKarma(storageSvc, userID, points); err != nil {
			log.Fatalf("Error granting karma: %v", err)
		}
		fmt.Printf("Granted %d karma points to user %s.\n", points, userID)
	case "punish":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin punish <complaint_id>")
			os.Exit(1)
		}
		complaintID := os.Args[2]
		assigned, err := forcePunishment(storageSvc, complaintID)
		if err != nil {
			log.Fatalf("Error assigning punishment: %v", err)
		}
		if !assigned {
			fmt.Printf("Complaint %s already has a punishment.\n", complaintID)
			return
		}
		fmt.Printf("Punishment assigned to complaint %s.\n", complaintID)
	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}

func grantKarma(s storage.Storage, userID string, points int) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}
	user.KarmaPoints += points
	return s.SaveUser(user)
}

func forcePunishment(s storage.Storage, complaintID string) (bool, error) {
	if _, err := s.GetComplaintByID(complaintID); err != nil {
		return false, err
	}
	picker := punishment.NewPicker(rand.NewSource(time.Now().UnixNano()))
	return s.AssignPunishmentIfAbsent(complaintID, picker.Pick())
}
