package main

import (
	"log"

	"halloffame-backend/internal/config"
	"halloffame-backend/internal/database"
	"halloffame-backend/internal/server"
)

func main() {
	// 설정 로드
	cfg := config.Load()

	// 데이터베이스 연결
	db, err := database.Connect(database.LoadConfig())
	if err != nil {
		log.Fatalf("❌ Database connection failed: %v", err)
	}
	defer database.Close(db)

	// Ping 테스트
	if err := database.Ping(db); err != nil {
		log.Fatalf("❌ Database ping failed: %v", err)
	}
	log.Printf("✅ Database connected successfully")

	// 스키마 마이그레이션 + 고정 조회 데이터 시드
	if err := database.Migrate(db); err != nil {
		log.Fatalf("❌ Database migration failed: %v", err)
	}

	// 서버 생성 및 설정
	srv := server.New(cfg, db)
	srv.SetupMiddleware()
	srv.SetupRoutes()

	// 서버 시작
	if err := srv.Start(); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
