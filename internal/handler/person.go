package handler

import (
	"errors"
	"log"
	"sync"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"halloffame-backend/internal/model"
)

// PersonHandler 인물 상세 핸들러
type PersonHandler struct {
	db *gorm.DB
}

// NewPersonHandler PersonHandler 생성
func NewPersonHandler(db *gorm.DB) *PersonHandler {
	return &PersonHandler{db: db}
}

// PersonDetailResponse 인물 상세 응답
type PersonDetailResponse struct {
	Person       model.Person        `json:"person"`
	Achievements []model.Achievement `json:"achievements"`
	CCARecords   []model.CCARecord   `json:"cca_records"`
}

// GetPerson 인물 상세 조회.
// 헤더 / 공개 업적 / CCA 기록을 동시에 읽어 하나로 합친다.
// 비활성(INACTIVE) 인물은 존재하지 않는 것으로 취급한다.
func (h *PersonHandler) GetPerson(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid person id",
		})
	}
	personID := int64(id)

	var (
		wg sync.WaitGroup

		person    model.Person
		personErr error

		achievements    []model.Achievement
		achievementsErr error

		ccaRecords []model.CCARecord
		ccaErr     error
	)

	wg.Add(3)

	go func() {
		defer wg.Done()
		personErr = h.db.
			Preload("Category").
			Preload("School").
			Where("id = ? AND status = ?", personID, model.PersonStatusActive.String()).
			First(&person).Error
	}()

	go func() {
		defer wg.Done()
		// 공개 업적만, 명시 순서 → 달성일 → id
		achievementsErr = h.db.
			Preload("Type").
			Where("person_id = ? AND is_public = ?", personID, true).
			Order("display_order ASC, achieved_on ASC NULLS LAST, id ASC").
			Find(&achievements).Error
	}()

	go func() {
		defer wg.Done()
		// 진행 중(is_current)이 먼저, 그다음 종료일 최신순
		ccaErr = h.db.
			Where("person_id = ?", personID).
			Order("is_current DESC, ended_on DESC NULLS LAST, id ASC").
			Find(&ccaRecords).Error
	}()

	wg.Wait()

	if personErr != nil {
		if errors.Is(personErr, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "person not found",
			})
		}
		log.Printf("[Person] Failed to fetch person %d: %v", personID, personErr)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to fetch person",
		})
	}
	if achievementsErr != nil || ccaErr != nil {
		log.Printf("[Person] Failed to fetch person %d relations: ach=%v cca=%v",
			personID, achievementsErr, ccaErr)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to fetch person",
		})
	}

	return c.JSON(PersonDetailResponse{
		Person:       person,
		Achievements: achievements,
		CCARecords:   ccaRecords,
	})
}
