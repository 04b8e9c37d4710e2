package handler

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDiskFull = errors.New("disk full")

func TestFilterAchievements(t *testing.T) {
	inputs := []AchievementInput{
		{Title: "SMO Gold"},
		{Title: ""},            // 제목 없음 → 건너뜀
		{Title: "   "},         // 공백만 → 건너뜀
		{Title: "Debate Cup"},
	}

	valid, skipped := filterAchievements(inputs)

	require.Len(t, valid, 2)
	assert.Equal(t, "SMO Gold", valid[0].Title)
	assert.Equal(t, "Debate Cup", valid[1].Title)
	assert.Equal(t, []int{1, 2}, skipped)
}

func TestFilterAchievementsAllValid(t *testing.T) {
	valid, skipped := filterAchievements([]AchievementInput{{Title: "A"}, {Title: "B"}})
	assert.Len(t, valid, 2)
	assert.Empty(t, skipped)
}

func TestFilterCCARecords(t *testing.T) {
	inputs := []CCAInput{
		{Name: "Math Club"},
		{Name: ""},
		{Name: "Choir"},
	}

	valid, skipped := filterCCARecords(inputs)

	require.Len(t, valid, 2)
	assert.Equal(t, "Math Club", valid[0].Name)
	assert.Equal(t, "Choir", valid[1].Name)
	assert.Equal(t, []int{1}, skipped)
}

func TestParseDate(t *testing.T) {
	got := parseDate("2024-07-12")
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2024, 7, 12, 0, 0, 0, 0, time.UTC), *got)

	// RFC3339도 허용
	got = parseDate("2024-07-12T08:30:00Z")
	require.NotNil(t, got)
	assert.Equal(t, 8, got.Hour())

	assert.Nil(t, parseDate(""))
	assert.Nil(t, parseDate("   "))
	assert.Nil(t, parseDate("12/07/2024"))
}

func TestCreateFullRejectsBadInput(t *testing.T) {
	app := fiber.New()
	h := NewPersonAdminHandler(nil) // 검증 실패는 DB 접근 전에 끝난다
	app.Post("/api/admin/persons/full", h.CreateFull)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", "{"},
		{"missing name", `{"category_id":1,"school_id":1}`},
		{"blank name", `{"name":"  ","category_id":1,"school_id":1}`},
		{"missing category", `{"name":"Tan Wei Ming","school_id":1}`},
		{"missing school", `{"name":"Tan Wei Ming","category_id":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/admin/persons/full", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		})
	}
}

// 하위 항목 INSERT가 실패하면 인물만 남는 부분 상태 없이 전부 롤백된다.
func TestCreateFullRollsBackOnInsertFailure(t *testing.T) {
	db, mock := newMockDB(t)

	app := fiber.New()
	h := NewPersonAdminHandler(db)
	app.Post("/api/admin/persons/full", h.CreateFull)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "persons"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`INSERT INTO "achievements"`).
		WillReturnError(errDiskFull)
	mock.ExpectRollback()

	body := `{"name":"Tan Wei Ming","category_id":1,"school_id":1,` +
		`"achievements":[{"title":"SMO Gold"}]}`
	req := httptest.NewRequest("POST", "/api/admin/persons/full", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}
