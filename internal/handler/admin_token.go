package handler

import (
	"github.com/gofiber/fiber/v2"

	"halloffame-backend/internal/auth"
)

// AdminTokenHandler 공유 비밀값 → 단기 관리자 토큰 교환 핸들러
type AdminTokenHandler struct {
	gate auth.AdminGate
}

// NewAdminTokenHandler AdminTokenHandler 생성
func NewAdminTokenHandler(gate auth.AdminGate) *AdminTokenHandler {
	return &AdminTokenHandler{gate: gate}
}

// IssueTokenRequest 토큰 발급 요청
type IssueTokenRequest struct {
	Secret string `json:"secret"`
}

// IssueToken 공유 비밀값 검증 후 관리자 토큰 발급.
// 비밀값은 본문 또는 X-Admin-Key 헤더 둘 다 받는다.
func (h *AdminTokenHandler) IssueToken(c *fiber.Ctx) error {
	var req IssueTokenRequest
	if err := c.BodyParser(&req); err != nil && c.Get("X-Admin-Key") == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	secret := req.Secret
	if secret == "" {
		secret = c.Get("X-Admin-Key")
	}
	if secret == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "missing admin credential",
		})
	}

	token, expiresAt, err := h.gate.IssueToken(secret)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "invalid admin key",
		})
	}

	return c.JSON(fiber.Map{
		"token":      token,
		"expires_at": expiresAt,
	})
}
