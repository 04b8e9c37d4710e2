package handler

import (
	"errors"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"halloffame-backend/internal/model"
)

const (
	maxCommentLen     = 2000
	anonymousName     = "Anonymous"
	maxDisplayNameLen = 100
)

// CommentHandler 인물별 방명록 핸들러 (추가 전용, 수정/삭제 경로 없음)
type CommentHandler struct {
	db *gorm.DB
}

// NewCommentHandler CommentHandler 생성
func NewCommentHandler(db *gorm.DB) *CommentHandler {
	return &CommentHandler{db: db}
}

// CreateCommentRequest 댓글 작성 요청
type CreateCommentRequest struct {
	DisplayName string `json:"display_name,omitempty"`
	IsAnonymous bool   `json:"is_anonymous,omitempty"`
	Content     string `json:"content"`
}

// resolveDisplayName 표시 이름 결정.
// 익명 플래그가 켜져 있으면 입력된 이름이 있어도 "Anonymous"로 덮어쓴다 —
// 저장과 응답 모두에 적용된다.
func resolveDisplayName(displayName string, isAnonymous bool) string {
	if isAnonymous {
		return anonymousName
	}
	name := strings.TrimSpace(displayName)
	if name == "" {
		return anonymousName
	}
	return name
}

// findActivePerson 활성 인물 존재 확인
func (h *CommentHandler) findActivePerson(personID int64) error {
	var person model.Person
	return h.db.Select("id").
		Where("id = ? AND status = ?", personID, model.PersonStatusActive.String()).
		First(&person).Error
}

// GetComments 댓글 목록 조회 (최신순)
func (h *CommentHandler) GetComments(c *fiber.Ctx) error {
	id, err := c.ParamsInt("personId")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid person id",
		})
	}
	personID := int64(id)

	if err := h.findActivePerson(personID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "person not found",
			})
		}
		log.Printf("[Comment] Person lookup failed for %d: %v", personID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to fetch comments",
		})
	}

	limit, offset := coercePagination(c.Query("limit"), c.Query("offset"))

	var total int64
	if err := h.db.Model(&model.Comment{}).Where("person_id = ?", personID).Count(&total).Error; err != nil {
		log.Printf("[Comment] Failed to count comments for %d: %v", personID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to fetch comments",
		})
	}

	var comments []model.Comment
	if err := h.db.Where("person_id = ?", personID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error; err != nil {
		log.Printf("[Comment] Failed to fetch comments for %d: %v", personID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to fetch comments",
		})
	}

	return c.JSON(fiber.Map{
		"comments": comments,
		"total":    total,
		"limit":    limit,
		"offset":   offset,
	})
}

// CreateComment 댓글 작성.
// 서버가 찍은 타임스탬프가 포함된 생성 행을 그대로 돌려주므로
// 클라이언트는 재조회 없이 목록 앞에 붙일 수 있다.
func (h *CommentHandler) CreateComment(c *fiber.Ctx) error {
	id, err := c.ParamsInt("personId")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid person id",
		})
	}
	personID := int64(id)

	var req CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	req.Content = strings.TrimSpace(req.Content)
	if req.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "content is required",
		})
	}
	// 한도는 문자 수 기준이다 — 멀티바이트 문자를 바이트로 세면 안 된다
	if utf8.RuneCountInString(req.Content) > maxCommentLen {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "content must be at most 2000 characters",
		})
	}
	if utf8.RuneCountInString(req.DisplayName) > maxDisplayNameLen {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "display name must be at most 100 characters",
		})
	}

	if err := h.findActivePerson(personID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "person not found",
			})
		}
		log.Printf("[Comment] Person lookup failed for %d: %v", personID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to create comment",
		})
	}

	comment := model.Comment{
		PersonID:    personID,
		DisplayName: resolveDisplayName(req.DisplayName, req.IsAnonymous),
		IsAnonymous: req.IsAnonymous,
		Content:     req.Content,
	}

	if err := h.db.Create(&comment).Error; err != nil {
		if isForeignKeyViolation(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "person not found",
			})
		}
		log.Printf("[Comment] Failed to create comment for %d: %v", personID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to create comment",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"comment": comment,
	})
}
