package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"

	"halloffame-backend/internal/database"
	"halloffame-backend/internal/model"
)

// 개발용 시드 데이터 삽입 유틸리티.
// 이미 존재하는 행은 건너뛰므로 여러 번 실행해도 안전하다.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	db, err := database.Connect(database.LoadConfig())
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		log.Fatal("Migration failed:", err)
	}

	// 학교
	schools := []model.School{
		{Name: "Raffles Institution", ShortName: ptr("RI")},
		{Name: "Hwa Chong Institution", ShortName: ptr("HCI")},
		{Name: "Victoria School", ShortName: ptr("VS")},
	}
	for i := range schools {
		if err := db.Where(model.School{Name: schools[i].Name}).FirstOrCreate(&schools[i]).Error; err != nil {
			log.Fatal("Failed to seed school:", err)
		}
	}
	log.Printf("✅ Seeded %d schools", len(schools))

	var studentCat model.Category
	if err := db.Where("slug = ?", model.CategoryStudent.String()).First(&studentCat).Error; err != nil {
		log.Fatal("Student category missing:", err)
	}

	// 인물 + 업적 + CCA
	person := model.Person{
		Name:       "Tan Wei Ming",
		CategoryID: studentCat.ID,
		SchoolID:   schools[0].ID,
		Bio:        ptr("National mathematics olympiad champion."),
		IsFeatured: true,
		Status:     model.PersonStatusActive.String(),
	}
	if err := db.Where(model.Person{
		Name:       person.Name,
		CategoryID: person.CategoryID,
		SchoolID:   person.SchoolID,
	}).FirstOrCreate(&person).Error; err != nil {
		log.Fatal("Failed to seed person:", err)
	}

	achievedOn := time.Date(2024, 7, 12, 0, 0, 0, 0, time.UTC)
	achievement := model.Achievement{
		PersonID:   person.ID,
		Title:      "SMO Open Gold Medal",
		AchievedOn: &achievedOn,
		IsPublic:   true,
		IsFeatured: true,
	}
	if err := db.Where(model.Achievement{
		PersonID: person.ID,
		Title:    achievement.Title,
	}).FirstOrCreate(&achievement).Error; err != nil {
		log.Fatal("Failed to seed achievement:", err)
	}

	cca := model.CCARecord{
		PersonID:  person.ID,
		Name:      "Math Club",
		Position:  ptr("President"),
		IsCurrent: true,
	}
	if err := db.Where(model.CCARecord{
		PersonID: person.ID,
		Name:     cca.Name,
	}).FirstOrCreate(&cca).Error; err != nil {
		log.Fatal("Failed to seed CCA record:", err)
	}
	log.Printf("✅ Seeded demo person %d", person.ID)

	// 마일스톤
	milestone := model.Milestone{
		Year:     1965,
		Title:    "School founded",
		Category: ptr("founding"),
		Era:      ptr("early-years"),
	}
	if err := db.Where(model.Milestone{Year: milestone.Year, Title: milestone.Title}).
		FirstOrCreate(&milestone).Error; err != nil {
		log.Fatal("Failed to seed milestone:", err)
	}

	// 캔버스 보드
	board := model.Board{
		BoardKey: "ALUMNI-WALL",
		Title:    "Alumni Wall",
		Width:    4000,
		Height:   3000,
	}
	if err := db.Where(model.Board{BoardKey: board.BoardKey}).FirstOrCreate(&board).Error; err != nil {
		log.Fatal("Failed to seed board:", err)
	}
	log.Printf("✅ Seeded board %s", board.BoardKey)

	log.Println("🎉 Demo seed complete")
}

func ptr(s string) *string {
	return &s
}
