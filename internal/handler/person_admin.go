package handler

import (
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"halloffame-backend/internal/model"
)

// PersonAdminHandler 인물 심층 생성(deep-create) 핸들러
type PersonAdminHandler struct {
	db *gorm.DB
}

// NewPersonAdminHandler PersonAdminHandler 생성
func NewPersonAdminHandler(db *gorm.DB) *PersonAdminHandler {
	return &PersonAdminHandler{db: db}
}

// AchievementInput 업적 하위 항목
type AchievementInput struct {
	TypeID       *int64          `json:"type_id,omitempty"`
	Title        string          `json:"title"`
	Description  *string         `json:"description,omitempty"`
	AchievedOn   string          `json:"achieved_on,omitempty"` // "2006-01-02"
	Metrics      json.RawMessage `json:"metrics,omitempty"`
	IsPublic     *bool           `json:"is_public,omitempty"` // 생략 시 true
	IsFeatured   bool            `json:"is_featured,omitempty"`
	DisplayOrder int             `json:"display_order,omitempty"`
}

// CCAInput CCA 하위 항목
type CCAInput struct {
	Name        string  `json:"name"`
	Position    *string `json:"position,omitempty"`
	StartedOn   string  `json:"started_on,omitempty"`
	EndedOn     string  `json:"ended_on,omitempty"`
	IsCurrent   bool    `json:"is_current,omitempty"`
	Description *string `json:"description,omitempty"`
}

// DeepCreateRequest 인물 + 업적 + CCA 일괄 생성 요청
type DeepCreateRequest struct {
	Name           string             `json:"name"`
	CategoryID     int64              `json:"category_id"`
	SchoolID       int64              `json:"school_id"`
	Bio            *string            `json:"bio,omitempty"`
	PhotoURL       *string            `json:"photo_url,omitempty"`
	GraduationYear *int               `json:"graduation_year,omitempty"`
	IsFeatured     bool               `json:"is_featured,omitempty"`
	Achievements   []AchievementInput `json:"achievements,omitempty"`
	CCARecords     []CCAInput         `json:"cca_records,omitempty"`
}

// filterAchievements 유효/무효 업적 분리. 제목 없는 항목은 건너뛴다.
// 건너뛴 항목의 원본 인덱스를 돌려주어 호출자가 확인할 수 있게 한다.
func filterAchievements(inputs []AchievementInput) (valid []AchievementInput, skipped []int) {
	for i, in := range inputs {
		if strings.TrimSpace(in.Title) == "" {
			skipped = append(skipped, i)
			continue
		}
		valid = append(valid, in)
	}
	return valid, skipped
}

// filterCCARecords 유효/무효 CCA 분리. 이름 없는 항목은 건너뛴다.
func filterCCARecords(inputs []CCAInput) (valid []CCAInput, skipped []int) {
	for i, in := range inputs {
		if strings.TrimSpace(in.Name) == "" {
			skipped = append(skipped, i)
			continue
		}
		valid = append(valid, in)
	}
	return valid, skipped
}

// parseDate "2006-01-02" 형식 날짜 파싱 (빈 문자열/실패 시 nil)
func parseDate(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return &t
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t
	}
	return nil
}

// CreateFull 인물 + 유효 하위 항목 전부를 단일 트랜잭션으로 생성.
// DB 실패 시 전체 롤백 — 인물만 남는 부분 상태는 만들지 않는다.
// 무효 하위 항목은 실패가 아니라 건너뛰기로 처리하고 응답에 보고한다.
func (h *PersonAdminHandler) CreateFull(c *fiber.Ctx) error {
	var req DeepCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "name is required",
		})
	}
	if req.CategoryID <= 0 || req.SchoolID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "category_id and school_id are required",
		})
	}

	validAchievements, skippedAchievements := filterAchievements(req.Achievements)
	validCCAs, skippedCCAs := filterCCARecords(req.CCARecords)

	person := model.Person{
		Name:           req.Name,
		CategoryID:     req.CategoryID,
		SchoolID:       req.SchoolID,
		Bio:            req.Bio,
		PhotoURL:       req.PhotoURL,
		GraduationYear: req.GraduationYear,
		IsFeatured:     req.IsFeatured,
		Status:         model.PersonStatusActive.String(),
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&person).Error; err != nil {
			return err
		}

		for _, in := range validAchievements {
			isPublic := true
			if in.IsPublic != nil {
				isPublic = *in.IsPublic
			}

			var metrics *string
			if len(in.Metrics) > 0 && json.Valid(in.Metrics) {
				s := string(in.Metrics)
				metrics = &s
			}

			achievement := model.Achievement{
				PersonID:     person.ID,
				TypeID:       in.TypeID,
				Title:        strings.TrimSpace(in.Title),
				Description:  in.Description,
				AchievedOn:   parseDate(in.AchievedOn),
				Metrics:      metrics,
				IsPublic:     isPublic,
				IsFeatured:   in.IsFeatured,
				DisplayOrder: in.DisplayOrder,
			}
			if err := tx.Create(&achievement).Error; err != nil {
				return err
			}
		}

		for _, in := range validCCAs {
			record := model.CCARecord{
				PersonID:    person.ID,
				Name:        strings.TrimSpace(in.Name),
				Position:    in.Position,
				StartedOn:   parseDate(in.StartedOn),
				EndedOn:     parseDate(in.EndedOn),
				IsCurrent:   in.IsCurrent,
				Description: in.Description,
			}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		if isUniqueViolation(err) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "person already exists for this category and school",
			})
		}
		if isForeignKeyViolation(err) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid category, school or achievement type reference",
			})
		}
		log.Printf("[PersonAdmin] Deep-create failed for %s: %v", req.Name, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to create person",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"person_id":            person.ID,
		"achievements_created": len(validAchievements),
		"cca_created":          len(validCCAs),
		"skipped_achievements": skippedAchievements,
		"skipped_cca":          skippedCCAs,
	})
}

// SetStatusRequest 인물 상태 변경 요청
type SetStatusRequest struct {
	Status string `json:"status"` // ACTIVE, INACTIVE
}

// SetStatus 인물 소프트 비활성화/복구 (하드 삭제 경로 없음)
func (h *PersonAdminHandler) SetStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid person id",
		})
	}

	var req SetStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	status := strings.ToUpper(strings.TrimSpace(req.Status))
	if status != model.PersonStatusActive.String() && status != model.PersonStatusInactive.String() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "status must be ACTIVE or INACTIVE",
		})
	}

	result := h.db.Model(&model.Person{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		log.Printf("[PersonAdmin] Failed to update status for person %d: %v", id, result.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to update person",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "person not found",
		})
	}

	return c.JSON(fiber.Map{
		"person_id": int64(id),
		"status":    status,
	})
}
