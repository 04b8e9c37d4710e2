package handler

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"halloffame-backend/internal/model"
)

const maxCanvasTextLen = 500

// CanvasMessageHandler 캔버스 메시지 생성 핸들러
type CanvasMessageHandler struct {
	db  *gorm.DB
	hub *CanvasHub
}

// NewCanvasMessageHandler CanvasMessageHandler 생성
func NewCanvasMessageHandler(db *gorm.DB, hub *CanvasHub) *CanvasMessageHandler {
	return &CanvasMessageHandler{db: db, hub: hub}
}

// CreateMessageRequest 캔버스 메시지 생성 요청
type CreateMessageRequest struct {
	BoardKey   string `json:"board_key"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	Text       string `json:"text"`
	AuthorName string `json:"author_name"`
	Color      string `json:"color,omitempty"`
}

// CreateMessage 캔버스 메시지 생성.
// 보드 존재 확인 → 트랜잭션 INSERT → 커밋 → 브로드캐스트 순서가 고정이다:
// 커밋 전에는 어떤 룸 멤버도 메시지를 관측할 수 없다.
func (h *CanvasMessageHandler) CreateMessage(c *fiber.Ctx) error {
	var req CreateMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	boardKey := strings.ToUpper(strings.TrimSpace(req.BoardKey))
	if boardKey == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "board_key is required",
		})
	}

	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "text is required",
		})
	}
	// 문자 수 기준 한도
	if utf8.RuneCountInString(req.Text) > maxCanvasTextLen {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "text must be at most 500 characters",
		})
	}

	req.AuthorName = strings.TrimSpace(req.AuthorName)
	if req.AuthorName == "" {
		req.AuthorName = "Anonymous"
	}
	if req.Color == "" {
		req.Color = "yellow"
	}

	// 보드 존재 확인
	var board model.Board
	if err := h.db.Where("board_key = ?", boardKey).First(&board).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "board not found",
			})
		}
		log.Printf("[CanvasMessage] Board lookup failed for %s: %v", boardKey, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to create message",
		})
	}

	// 월드 좌표는 보드 크기 안이어야 한다
	if req.X < 0 || req.Y < 0 || req.X > board.Width || req.Y > board.Height {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "coordinates are outside board dimensions",
		})
	}

	message := model.CanvasMessage{
		BoardID:    board.ID,
		X:          req.X,
		Y:          req.Y,
		Text:       req.Text,
		AuthorName: req.AuthorName,
		Color:      req.Color,
	}

	// 트랜잭션 INSERT — 커밋 실패 시 브로드캐스트는 일어나지 않는다
	if err := h.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&message).Error
	}); err != nil {
		if isForeignKeyViolation(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "board not found",
			})
		}
		log.Printf("[CanvasMessage] Failed to insert message on %s: %v", boardKey, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to create message",
		})
	}

	// 커밋 이후: 스냅샷 캐시 추가 + 룸 브로드캐스트
	if h.hub != nil {
		if h.hub.redisClient != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			if err := h.hub.redisClient.AppendMessage(ctx, boardKey, &message); err != nil {
				log.Printf("[CanvasMessage] Failed to append to snapshot cache: %v", err)
			}
			cancel()
		}
		h.hub.BroadcastNewMessage(boardKey, &message)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": message,
	})
}
