package handler

import (
	"log"
	"strings"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"halloffame-backend/internal/model"
)

// LookupHandler 고정 조회 테이블 핸들러 (학교/분류/업적 유형)
type LookupHandler struct {
	db *gorm.DB
}

// NewLookupHandler LookupHandler 생성
func NewLookupHandler(db *gorm.DB) *LookupHandler {
	return &LookupHandler{db: db}
}

// GetSchools 학교 목록 조회
func (h *LookupHandler) GetSchools(c *fiber.Ctx) error {
	var schools []model.School
	if err := h.db.Order("name ASC").Find(&schools).Error; err != nil {
		log.Printf("[Lookup] Failed to list schools: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list schools",
		})
	}

	return c.JSON(fiber.Map{
		"schools": schools,
		"total":   len(schools),
	})
}

// GetCategories 분류 목록 조회
func (h *LookupHandler) GetCategories(c *fiber.Ctx) error {
	var categories []model.Category
	if err := h.db.Order("id ASC").Find(&categories).Error; err != nil {
		log.Printf("[Lookup] Failed to list categories: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list categories",
		})
	}

	return c.JSON(fiber.Map{
		"categories": categories,
		"total":      len(categories),
	})
}

// GetAchievementTypes 업적 유형 목록 조회
func (h *LookupHandler) GetAchievementTypes(c *fiber.Ctx) error {
	var types []model.AchievementType
	if err := h.db.Order("id ASC").Find(&types).Error; err != nil {
		log.Printf("[Lookup] Failed to list achievement types: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list achievement types",
		})
	}

	return c.JSON(fiber.Map{
		"types": types,
		"total": len(types),
	})
}

// CreateSchoolRequest 학교 등록 요청
type CreateSchoolRequest struct {
	Name      string  `json:"name"`
	ShortName *string `json:"short_name,omitempty"`
}

// CreateSchool 학교 등록 (관리자 전용)
func (h *LookupHandler) CreateSchool(c *fiber.Ctx) error {
	var req CreateSchoolRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "school name is required",
		})
	}
	if utf8.RuneCountInString(req.Name) > 100 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "school name must be less than 100 characters",
		})
	}

	school := model.School{
		Name:      req.Name,
		ShortName: req.ShortName,
	}

	if err := h.db.Create(&school).Error; err != nil {
		if isUniqueViolation(err) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "school already exists",
			})
		}
		log.Printf("[Lookup] Failed to create school: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to create school",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"school": school,
	})
}
