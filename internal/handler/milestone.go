package handler

import (
	"log"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"halloffame-backend/internal/model"
)

// MilestoneHandler 연혁 타임라인 핸들러.
// 쓰기 경로는 라우팅 단계의 관리자 게이트 뒤에 있어 인증 실패 요청은
// 여기까지 오지 않는다.
type MilestoneHandler struct {
	db *gorm.DB
}

// NewMilestoneHandler MilestoneHandler 생성
func NewMilestoneHandler(db *gorm.DB) *MilestoneHandler {
	return &MilestoneHandler{db: db}
}

// MilestoneRequest 마일스톤 생성/수정 요청
type MilestoneRequest struct {
	Year        int     `json:"year"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	Era         *string `json:"era,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
}

// validate 공통 입력 검증
func (r *MilestoneRequest) validate() string {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return "title is required"
	}
	if utf8.RuneCountInString(r.Title) > 200 {
		return "title must be less than 200 characters"
	}
	if r.Year < 1800 || r.Year > 2200 {
		return "year is out of range"
	}
	return ""
}

// GetMilestones 타임라인 조회.
// 연도 범위 / 분류 / 시대 / 자유 텍스트(제목+설명 부분 일치) 필터 지원.
func (h *MilestoneHandler) GetMilestones(c *fiber.Ctx) error {
	query := h.db.Model(&model.Milestone{})

	if v := c.Query("yearFrom"); v != "" {
		if year, err := strconv.Atoi(v); err == nil {
			query = query.Where("year >= ?", year)
		}
	}
	if v := c.Query("yearTo"); v != "" {
		if year, err := strconv.Atoi(v); err == nil {
			query = query.Where("year <= ?", year)
		}
	}
	if v := strings.TrimSpace(c.Query("category")); v != "" {
		query = query.Where("category = ?", v)
	}
	if v := strings.TrimSpace(c.Query("era")); v != "" {
		query = query.Where("era = ?", v)
	}
	if v := strings.TrimSpace(c.Query("q")); v != "" {
		pattern := "%" + escapeLike(v) + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	var milestones []model.Milestone
	if err := query.Order("year ASC, id ASC").Find(&milestones).Error; err != nil {
		log.Printf("[Milestone] Failed to list milestones: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list milestones",
		})
	}

	return c.JSON(fiber.Map{
		"milestones": milestones,
		"total":      len(milestones),
	})
}

// CreateMilestone 마일스톤 생성 (관리자 전용)
func (h *MilestoneHandler) CreateMilestone(c *fiber.Ctx) error {
	var req MilestoneRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if msg := req.validate(); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": msg,
		})
	}

	milestone := model.Milestone{
		Year:        req.Year,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Era:         req.Era,
		ImageURL:    req.ImageURL,
	}

	if err := h.db.Create(&milestone).Error; err != nil {
		log.Printf("[Milestone] Failed to create milestone: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to create milestone",
		})
	}

	return c.JSON(fiber.Map{
		"milestone": milestone,
	})
}

// UpdateMilestone 마일스톤 수정 (관리자 전용)
func (h *MilestoneHandler) UpdateMilestone(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid milestone id",
		})
	}

	var req MilestoneRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if msg := req.validate(); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": msg,
		})
	}

	updates := map[string]interface{}{
		"year":        req.Year,
		"title":       req.Title,
		"description": req.Description,
		"category":    req.Category,
		"era":         req.Era,
		"image_url":   req.ImageURL,
	}

	result := h.db.Model(&model.Milestone{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		log.Printf("[Milestone] Failed to update milestone %d: %v", id, result.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to update milestone",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "milestone not found",
		})
	}

	var milestone model.Milestone
	if err := h.db.First(&milestone, id).Error; err != nil {
		log.Printf("[Milestone] Failed to reload milestone %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to update milestone",
		})
	}

	return c.JSON(fiber.Map{
		"milestone": milestone,
	})
}

// DeleteMilestone 마일스톤 삭제 (관리자 전용)
func (h *MilestoneHandler) DeleteMilestone(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid milestone id",
		})
	}

	result := h.db.Delete(&model.Milestone{}, id)
	if result.Error != nil {
		log.Printf("[Milestone] Failed to delete milestone %d: %v", id, result.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to delete milestone",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "milestone not found",
		})
	}

	return c.JSON(fiber.Map{
		"deleted": true,
	})
}

// escapeLike ILIKE 패턴 메타문자 이스케이프
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
