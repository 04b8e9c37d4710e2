package handler

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveBoardKey(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Alumni Wall", "ALUMNI-WALL"},
		{"alumni wall", "ALUMNI-WALL"},
		{"  Alumni   Wall  ", "ALUMNI-WALL"},
		{"Class of '99", "CLASS-OF-99"},
		{"Sports!!!Day", "SPORTS-DAY"},
		{"2025 Graduation", "2025-GRADUATION"},
		{"---", ""},
		// 키는 URL 구성 요소라 ASCII만 남는다
		{"가나다 Wall", "WALL"},
		{"한글 전용 제목", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DeriveBoardKey(tt.title), "title=%q", tt.title)
	}
}

func TestDeriveBoardKeyIdempotent(t *testing.T) {
	// 같은 제목에서 몇 번을 유도해도 같은 키가 나와야 한다
	key := DeriveBoardKey("Alumni Wall")
	require.Equal(t, "ALUMNI-WALL", key)
	assert.Equal(t, key, DeriveBoardKey("Alumni Wall"))

	// 유도된 키를 다시 넣어도 형태 검사를 통과한다
	assert.True(t, validBoardKey(key))
}

func TestValidBoardKey(t *testing.T) {
	assert.True(t, validBoardKey("ALUMNI-WALL"))
	assert.True(t, validBoardKey("A1"))
	assert.False(t, validBoardKey(""))
	assert.False(t, validBoardKey("alumni-wall")) // 소문자는 정규화 이후 기준으로 무효
	assert.False(t, validBoardKey("-LEADING"))
	assert.False(t, validBoardKey("TRAILING-"))
	assert.False(t, validBoardKey("HAS SPACE"))
	assert.False(t, validBoardKey(strings.Repeat("A", maxBoardKeyLen+1)))
}

func TestCreateBoardRejectsBadInput(t *testing.T) {
	app := fiber.New()
	h := NewBoardHandler(nil) // 검증 실패는 DB 접근 전에 끝난다
	app.Post("/api/boards", h.CreateBoard)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"malformed json", "{", fiber.StatusBadRequest},
		{"missing title", `{}`, fiber.StatusBadRequest},
		{"blank title", `{"title":"   "}`, fiber.StatusBadRequest},
		{"oversized dimensions", `{"title":"Wall","width":999999}`, fiber.StatusBadRequest},
		{"bad explicit key", `{"title":"Wall","board_key":"no spaces allowed?"}`, fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/boards", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

// 키를 유도할 수 없는 제목은 키 형식 에러가 아니라 제목 기준 에러를 받는다.
// 사용자는 키를 준 적이 없기 때문이다.
func TestCreateBoardUnderivableTitle(t *testing.T) {
	app := fiber.New()
	h := NewBoardHandler(nil)
	app.Post("/api/boards", h.CreateBoard)

	req := httptest.NewRequest("POST", "/api/boards", strings.NewReader(`{"title":"한글 게시판"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "derive a board key")
	assert.NotContains(t, string(body), "must contain only")
}
