package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoercePagination(t *testing.T) {
	tests := []struct {
		name       string
		limit      string
		offset     string
		wantLimit  int
		wantOffset int
	}{
		{"defaults", "", "", defaultPageLimit, 0},
		{"valid", "50", "10", 50, 10},
		{"garbage limit", "abc", "10", defaultPageLimit, 10},
		{"garbage offset", "50", "xyz", 50, 0},
		{"negative limit", "-5", "-3", defaultPageLimit, 0},
		{"zero limit", "0", "0", defaultPageLimit, 0},
		{"over cap", "9999", "0", maxPageLimit, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, offset := coercePagination(tt.limit, tt.offset)
			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}

// 디렉터리 정렬이 대표 우선 → 공개 업적 수 내림차순 → id 오름차순으로
// SQL에 박혀 나가는지 확인한다.
func TestGetDirectoryOrdering(t *testing.T) {
	db, mock := newMockDB(t)

	app := fiber.New()
	h := NewHofHandler(db)
	app.Get("/api/hof", h.GetDirectory)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "persons" WHERE persons\.status = \$1`).
		WithArgs("ACTIVE").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	mock.ExpectQuery(`ORDER BY persons\.is_featured DESC,\(SELECT COUNT\(\*\) FROM achievements a WHERE a\.person_id = persons\.id AND a\.is_public = true\) DESC,persons\.id ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	mock.ExpectQuery(`SELECT \* FROM "categories"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "slug", "name"}))
	mock.ExpectQuery(`SELECT \* FROM "schools"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	req := httptest.NewRequest("GET", "/api/hof", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}
