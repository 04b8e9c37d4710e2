package auth

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckSecret(t *testing.T) {
	gate := NewStaticKeyGate("super-secret", "signing-key", time.Hour)

	assert.NoError(t, gate.CheckSecret("super-secret"))
	assert.ErrorIs(t, gate.CheckSecret("wrong"), ErrInvalidCredential)
	assert.ErrorIs(t, gate.CheckSecret(""), ErrInvalidCredential)
}

func TestCheckSecretEmptyConfigNeverPasses(t *testing.T) {
	gate := NewStaticKeyGate("", "signing-key", time.Hour)
	// 비밀값 미설정 상태에서 빈 헤더로 통과하면 안 된다
	assert.ErrorIs(t, gate.CheckSecret(""), ErrInvalidCredential)
}

func TestIssueAndCheckToken(t *testing.T) {
	gate := NewStaticKeyGate("super-secret", "signing-key", time.Hour)

	token, expiresAt, err := gate.IssueToken("super-secret")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	assert.NoError(t, gate.CheckToken(token))
}

func TestIssueTokenRejectsWrongSecret(t *testing.T) {
	gate := NewStaticKeyGate("super-secret", "signing-key", time.Hour)

	_, _, err := gate.IssueToken("wrong")
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestCheckTokenExpired(t *testing.T) {
	gate := NewStaticKeyGate("super-secret", "signing-key", -time.Minute)

	token, _, err := gate.IssueToken("super-secret")
	require.NoError(t, err)

	assert.ErrorIs(t, gate.CheckToken(token), ErrExpiredToken)
}

func TestCheckTokenWrongKey(t *testing.T) {
	issuer := NewStaticKeyGate("super-secret", "key-a", time.Hour)
	verifier := NewStaticKeyGate("super-secret", "key-b", time.Hour)

	token, _, err := issuer.IssueToken("super-secret")
	require.NoError(t, err)

	assert.ErrorIs(t, verifier.CheckToken(token), ErrInvalidToken)
}

func TestCheckTokenGarbage(t *testing.T) {
	gate := NewStaticKeyGate("super-secret", "signing-key", time.Hour)
	assert.ErrorIs(t, gate.CheckToken("not.a.token"), ErrInvalidToken)
}

func TestAdminMiddleware(t *testing.T) {
	gate := NewStaticKeyGate("super-secret", "signing-key", time.Hour)

	app := fiber.New()
	app.Post("/protected", AdminMiddleware(gate), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	t.Run("admin key passes", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/protected", nil)
		req.Header.Set("X-Admin-Key", "super-secret")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("wrong admin key rejected", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/protected", nil)
		req.Header.Set("X-Admin-Key", "nope")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("bearer token passes", func(t *testing.T) {
		token, _, err := gate.IssueToken("super-secret")
		require.NoError(t, err)

		req := httptest.NewRequest("POST", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("no credential rejected", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/protected", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("malformed authorization header rejected", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/protected", nil)
		req.Header.Set("Authorization", "Basic abc123")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}
