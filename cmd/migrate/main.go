package main

import (
	"context"
	"log"
	"time"

	"clinic-assistant-be/internal/config"
	"clinic-assistant-be/internal/entity"
	"clinic-assistant-be/internal/model"
	"clinic-assistant-be/internal/repository/implementation"
	"clinic-assistant-be/pkg/database"
	"clinic-assistant-be/pkg/dialog"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

// Slot grid seeded for every bookable service. Mornings and afternoons,
// one slot per hour, closed over lunch.
var slotTimes = []string{
	"09:00", "10:00", "11:00",
	"13:00", "14:00", "15:00", "16:00",
}

func main() {
	// 1. Load Configuration (reads .env, falls back to system env)
	cfg := config.Load()

	dsn := cfg.Database.Connection
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting GORM Migration...")

	// 3. Pre-Migration: Extensions (Things GORM AutoMigrate doesn't do)
	log.Println("Step 1: Setting up Extensions...")

	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
		`CREATE EXTENSION IF NOT EXISTS vector;`,
	}

	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate All Models
	log.Println("Step 2: Running AutoMigrate...")

	models := []interface{}{
		&model.CorpusChunk{},
		&model.Slot{},
		&model.Appointment{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 5. Seed the slot calendar. SeedBulk skips existing identities, so
	// re-running the migration never duplicates or resets anything.
	windowDays := cfg.Booking.SeedWindowDays
	log.Printf("Step 3: Seeding slot calendar (%d days)...", windowDays)

	slotRepo := implementation.NewSlotRepository(db)

	var slots []*entity.Slot
	now := time.Now()
	for d := 0; d < windowDays; d++ {
		date := now.AddDate(0, 0, d).Format("2006-01-02")
		for _, service := range dialog.CanonicalServices {
			for _, t := range slotTimes {
				slots = append(slots, &entity.Slot{
					Id:        uuid.New(),
					Date:      date,
					Time:      t,
					Service:   service,
					CreatedAt: now,
				})
			}
		}
	}

	if err := slotRepo.SeedBulk(context.Background(), slots); err != nil {
		log.Fatalf("Error: Slot seeding failed: %v", err)
	}

	// 6. Summary
	green := color.New(color.FgGreen, color.Bold)
	cyan := color.New(color.FgCyan)

	green.Println("\n✅ Migration complete")
	cyan.Println("   Tables:   corpus_chunks, available_slots, appointments")
	cyan.Printf("   Services: %d\n", len(dialog.CanonicalServices))
	cyan.Printf("   Slots:    %d candidates over %d days (existing kept)\n", len(slots), windowDays)
}
