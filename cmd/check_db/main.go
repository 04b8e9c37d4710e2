package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"halloffame-backend/internal/database"
)

// 테이블별 행 수를 출력하는 점검 유틸리티
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	db, err := database.Connect(database.LoadConfig())
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer database.Close(db)

	fmt.Println("✅ Connected to database")
	fmt.Println()

	tables := []string{
		"schools",
		"categories",
		"achievement_types",
		"persons",
		"achievements",
		"cca_records",
		"comments",
		"milestones",
		"boards",
		"canvas_messages",
	}

	for _, table := range tables {
		var count int64
		if err := db.Table(table).Count(&count).Error; err != nil {
			fmt.Printf("❌ %-20s error: %v\n", table, err)
			continue
		}
		fmt.Printf("   %-20s %d rows\n", table, count)
	}
}
