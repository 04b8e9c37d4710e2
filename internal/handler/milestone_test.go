package handler

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"halloffame-backend/internal/auth"
)

func TestMilestoneRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     MilestoneRequest
		wantErr string
	}{
		{"valid", MilestoneRequest{Year: 1965, Title: "School founded"}, ""},
		{"missing title", MilestoneRequest{Year: 1965}, "title is required"},
		{"blank title", MilestoneRequest{Year: 1965, Title: "   "}, "title is required"},
		{"title too long", MilestoneRequest{Year: 1965, Title: strings.Repeat("a", 201)}, "title must be less than 200 characters"},
		{"year too early", MilestoneRequest{Year: 1700, Title: "Founded"}, "year is out of range"},
		{"year too late", MilestoneRequest{Year: 2300, Title: "Founded"}, "year is out of range"},
		{"zero year", MilestoneRequest{Title: "Founded"}, "year is out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantErr, tt.req.validate())
		})
	}
}

func TestMilestoneRequestValidateTrimsTitle(t *testing.T) {
	req := MilestoneRequest{Year: 2000, Title: "  Hall opened  "}
	require.Empty(t, req.validate())
	assert.Equal(t, "Hall opened", req.Title)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `back\\slash`, escapeLike(`back\slash`))
	assert.Equal(t, "plain", escapeLike("plain"))
}

// 관리자 게이트가 DB 접근 전에 요청을 막는지 확인한다.
// 핸들러 DB가 nil이므로, 게이트를 통과한 요청은 본문 검증 단계까지만 도달해야 한다.
func TestMilestoneAdminGate(t *testing.T) {
	gate := auth.NewStaticKeyGate("correct-secret", "signing-key", time.Hour)

	app := fiber.New()
	h := NewMilestoneHandler(nil)
	admin := app.Group("/api", auth.AdminMiddleware(gate))
	admin.Post("/milestones", h.CreateMilestone)

	t.Run("no credential", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/milestones", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("wrong key", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/milestones", nil)
		req.Header.Set("X-Admin-Key", "wrong-secret")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("wrong bearer token", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/milestones", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("correct key reaches handler", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/milestones", strings.NewReader(`{"year":0,"title":""}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Admin-Key", "correct-secret")
		resp, err := app.Test(req)
		require.NoError(t, err)
		// 게이트 통과 → 본문 검증에서 400 (DB 접근 전)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("valid admin token reaches handler", func(t *testing.T) {
		token, _, err := gate.IssueToken("correct-secret")
		require.NoError(t, err)

		req := httptest.NewRequest("POST", "/api/milestones", strings.NewReader(`{"year":0,"title":""}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}
