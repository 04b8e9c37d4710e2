package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// AdminMiddleware 관리자 쓰기 엔드포인트 인증 미들웨어.
// X-Admin-Key 헤더 또는 Bearer 관리자 토큰 중 하나를 받는다.
// DB 접근 전에 실행되므로 실패한 요청은 커넥션을 빌리지 않는다.
func AdminMiddleware(gate AdminGate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1순위: X-Admin-Key 헤더
		if key := c.Get("X-Admin-Key"); key != "" {
			if err := gate.CheckSecret(key); err != nil {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "invalid admin key",
				})
			}
			return c.Next()
		}

		// 2순위: Bearer 관리자 토큰
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing admin credential",
			})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid authorization header format",
			})
		}

		if err := gate.CheckToken(parts[1]); err != nil {
			if errors.Is(err, ErrExpiredToken) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "token expired",
					"code":  "TOKEN_EXPIRED",
				})
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid token",
			})
		}

		return c.Next()
	}
}
