package handler

import (
	"errors"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"halloffame-backend/internal/model"
)

// 보드 월드 크기 기본값/상한
const (
	defaultBoardWidth  = 4000
	defaultBoardHeight = 3000
	maxBoardDimension  = 20000
	maxBoardKeyLen     = 60
)

// BoardHandler 캔버스 보드 핸들러
type BoardHandler struct {
	db *gorm.DB
}

// NewBoardHandler BoardHandler 생성
func NewBoardHandler(db *gorm.DB) *BoardHandler {
	return &BoardHandler{db: db}
}

// CreateBoardRequest 보드 생성 요청
type CreateBoardRequest struct {
	Title    string `json:"title"`
	BoardKey string `json:"board_key,omitempty"` // 생략 시 제목에서 유도
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
}

// DeriveBoardKey 제목에서 보드 키 유도: 대문자화, ASCII 영숫자 외 문자
// 연속은 하이픈 하나로 치환. 키는 URL 구성 요소라 ASCII만 남긴다 —
// ASCII 영숫자가 전혀 없는 제목은 빈 키가 되고 호출자가 거부한다.
// 같은 제목이면 항상 같은 키가 나온다.
func DeriveBoardKey(title string) string {
	var b strings.Builder
	pendingHyphen := false

	for _, r := range strings.ToUpper(strings.TrimSpace(title)) {
		isUpper := r >= 'A' && r <= 'Z'
		isDigit := r >= '0' && r <= '9'
		if isUpper || isDigit {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		} else {
			pendingHyphen = true
		}
	}

	// ASCII 영숫자/하이픈만 남아 있으므로 바이트 절단이 룬을 쪼개지 않는다
	key := b.String()
	if len(key) > maxBoardKeyLen {
		key = strings.TrimRight(key[:maxBoardKeyLen], "-")
	}
	return key
}

// validBoardKey 명시적 키 형태 검사 (대문자화 이후 기준)
func validBoardKey(key string) bool {
	if key == "" || len(key) > maxBoardKeyLen {
		return false
	}
	for _, r := range key {
		isUpper := r >= 'A' && r <= 'Z'
		isDigit := r >= '0' && r <= '9'
		if !isUpper && !isDigit && r != '-' {
			return false
		}
	}
	return !strings.HasPrefix(key, "-") && !strings.HasSuffix(key, "-")
}

// GetBoards 보드 목록 조회
func (h *BoardHandler) GetBoards(c *fiber.Ctx) error {
	var boards []model.Board
	if err := h.db.Order("created_at ASC, id ASC").Find(&boards).Error; err != nil {
		log.Printf("[Board] Failed to list boards: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list boards",
		})
	}

	return c.JSON(fiber.Map{
		"boards": boards,
		"total":  len(boards),
	})
}

// CreateBoard 보드 생성. 키 미지정 시 제목에서 유도한다.
func (h *BoardHandler) CreateBoard(c *fiber.Ctx) error {
	var req CreateBoardRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "title is required",
		})
	}
	if utf8.RuneCountInString(req.Title) > 100 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "title must be less than 100 characters",
		})
	}

	// 키 결정: 명시 키는 대문자 정규화, 생략 시 제목에서 유도
	key := strings.ToUpper(strings.TrimSpace(req.BoardKey))
	if key == "" {
		key = DeriveBoardKey(req.Title)
		if key == "" {
			// 키를 직접 주지 않은 사용자에게 키 형식 에러를 돌려주지 않는다
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "title has no letters or digits to derive a board key from; provide board_key",
			})
		}
	}
	if !validBoardKey(key) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "board key must contain only letters, digits and hyphens",
		})
	}

	width := req.Width
	height := req.Height
	if width <= 0 {
		width = defaultBoardWidth
	}
	if height <= 0 {
		height = defaultBoardHeight
	}
	if width > maxBoardDimension || height > maxBoardDimension {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "board dimensions are too large",
		})
	}

	board := model.Board{
		BoardKey: key,
		Title:    req.Title,
		Width:    width,
		Height:   height,
	}

	if err := h.db.Create(&board).Error; err != nil {
		if isUniqueViolation(err) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "board key already exists",
			})
		}
		log.Printf("[Board] Failed to create board %s: %v", key, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to create board",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"board": board,
	})
}

// isUniqueViolation PostgreSQL 고유 제약 위반 여부
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// isForeignKeyViolation PostgreSQL 외래 키 위반 여부
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return errors.Is(err, gorm.ErrForeignKeyViolated)
}
