package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"halloffame-backend/internal/model"
)

// Config 데이터베이스 설정
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	TimeZone string

	MaxOpenConns int // 풀 상한 (초과 요청은 큐 대기)
	MaxIdleConns int
}

// LoadConfig 환경변수에서 DB 설정 로드
func LoadConfig() *Config {
	return &Config{
		Host:         getEnv("DB_HOST", "localhost"),
		Port:         getEnv("DB_PORT", "5432"),
		User:         getEnv("DB_USER", "postgres"),
		Password:     getEnv("DB_PASSWORD", ""),
		DBName:       getEnv("DB_NAME", "halloffame"),
		SSLMode:      getEnv("DB_SSLMODE", "disable"),
		TimeZone:     getEnv("DB_TIMEZONE", "Asia/Singapore"),
		MaxOpenConns: 10,
		MaxIdleConns: 5,
	}
}

// Connect 데이터베이스 연결 수립
func Connect(cfg *Config) (*gorm.DB, error) {
	// PostgreSQL DSN 생성
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode, cfg.TimeZone,
	)

	// GORM 로거 설정
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	// GORM 연결
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// 커넥션 풀 설정
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	return db, nil
}

// Migrate 테이블 스키마 자동 업데이트 + 고정 조회 데이터 시드
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.School{},
		&model.Category{},
		&model.AchievementType{},
		&model.Person{},
		&model.Achievement{},
		&model.CCARecord{},
		&model.Comment{},
		&model.Milestone{},
		&model.Board{},
		&model.CanvasMessage{},
	); err != nil {
		log.Printf("⚠️ AutoMigrate warning: %v", err)
	}

	// 복합 조회용 인덱스는 AutoMigrate가 만들지 않으므로 직접 생성
	sql := `CREATE INDEX IF NOT EXISTS idx_canvas_messages_board_created ON canvas_messages (board_id, created_at);
	CREATE INDEX IF NOT EXISTS idx_achievements_person_public ON achievements (person_id, is_public);
	CREATE INDEX IF NOT EXISTS idx_comments_person_created ON comments (person_id, created_at DESC);`

	if err := db.Exec(sql).Error; err != nil {
		log.Printf("⚠️ Manual index creation warning: %v", err)
	}

	return seedLookups(db)
}

// seedLookups 고정 조회 테이블 채우기 (있으면 건드리지 않음)
func seedLookups(db *gorm.DB) error {
	categories := []model.Category{
		{Slug: model.CategoryStudent.String(), Name: "Student"},
		{Slug: model.CategoryStaff.String(), Name: "Staff"},
		{Slug: model.CategoryAlumni.String(), Name: "Alumni"},
	}
	for _, cat := range categories {
		if err := db.Where(model.Category{Slug: cat.Slug}).FirstOrCreate(&cat).Error; err != nil {
			return fmt.Errorf("failed to seed category %s: %w", cat.Slug, err)
		}
	}

	types := []model.AchievementType{
		{Slug: model.AchievementTypeAcademic.String(), Name: "Academic"},
		{Slug: model.AchievementTypeSports.String(), Name: "Sports"},
		{Slug: model.AchievementTypeArts.String(), Name: "Arts"},
		{Slug: model.AchievementTypeLeadership.String(), Name: "Leadership"},
		{Slug: model.AchievementTypeService.String(), Name: "Community Service"},
	}
	for _, t := range types {
		if err := db.Where(model.AchievementType{Slug: t.Slug}).FirstOrCreate(&t).Error; err != nil {
			return fmt.Errorf("failed to seed achievement type %s: %w", t.Slug, err)
		}
	}

	return nil
}

// Ping 데이터베이스 연결 테스트
func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	return nil
}

// Close 데이터베이스 연결 종료
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

// getEnv 환경변수 조회 (기본값 지원)
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
