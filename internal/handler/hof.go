package handler

import (
	"errors"
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"halloffame-backend/internal/model"
)

// 페이지네이션 기본값. 잘못된 파라미터는 거부하지 않고 이 값으로 보정한다.
const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// publicAchievementCount 정렬용 공개 업적 수 상관 서브쿼리
const publicAchievementCount = "(SELECT COUNT(*) FROM achievements a WHERE a.person_id = persons.id AND a.is_public = true)"

// HofHandler 명예의 전당 디렉터리 핸들러
type HofHandler struct {
	db *gorm.DB
}

// NewHofHandler HofHandler 생성
func NewHofHandler(db *gorm.DB) *HofHandler {
	return &HofHandler{db: db}
}

// HofEntryResponse 디렉터리 행
type HofEntryResponse struct {
	ID               int64              `json:"id"`
	Name             string             `json:"name"`
	CategorySlug     string             `json:"category_slug"`
	CategoryName     string             `json:"category_name"`
	SchoolName       string             `json:"school_name"`
	PhotoURL         *string            `json:"photo_url,omitempty"`
	GraduationYear   *int               `json:"graduation_year,omitempty"`
	IsFeatured       bool               `json:"is_featured"`
	AchievementCount int64              `json:"achievement_count"`
	TopAchievement   *model.Achievement `json:"top_achievement,omitempty"`
}

// hofRow 디렉터리 질의 스캔 대상
type hofRow struct {
	model.Person
	AchievementCount int64
}

// coercePagination limit/offset 파라미터 보정.
// 파싱 실패나 범위 밖 값은 에러 대신 기본값으로 대체한다.
func coercePagination(limitStr, offsetStr string) (int, int) {
	limit := defaultPageLimit
	if v, err := strconv.Atoi(limitStr); err == nil && v > 0 {
		limit = v
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	offset := 0
	if v, err := strconv.Atoi(offsetStr); err == nil && v > 0 {
		offset = v
	}

	return limit, offset
}

// GetDirectory 디렉터리 조회.
// 정렬: featured 우선 → 공개 업적 수 내림차순 → id 오름차순(결정성).
// 각 행에는 대표 업적 하나가 실린다 (featured 우선 → display_order → id).
func (h *HofHandler) GetDirectory(c *fiber.Ctx) error {
	limit, offset := coercePagination(c.Query("limit"), c.Query("offset"))

	query := h.db.Model(&model.Person{}).
		Where("persons.status = ?", model.PersonStatusActive.String())

	// 분류 필터: 숫자 id 또는 슬러그
	if category := strings.TrimSpace(c.Query("category")); category != "" {
		if id, err := strconv.ParseInt(category, 10, 64); err == nil {
			query = query.Where("persons.category_id = ?", id)
		} else {
			query = query.Joins("JOIN categories ON categories.id = persons.category_id").
				Where("categories.slug = ?", strings.ToUpper(category))
		}
	}

	if school := strings.TrimSpace(c.Query("school")); school != "" {
		if id, err := strconv.ParseInt(school, 10, 64); err == nil {
			query = query.Where("persons.school_id = ?", id)
		}
	}

	if c.Query("featuredOnly") == "true" {
		query = query.Where("persons.is_featured = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Printf("[Hof] Failed to count directory: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to query directory",
		})
	}

	var rows []hofRow
	err := query.
		Select("persons.*, " + publicAchievementCount + " AS achievement_count").
		Order("persons.is_featured DESC").
		Order(publicAchievementCount + " DESC").
		Order("persons.id ASC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		log.Printf("[Hof] Failed to query directory: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to query directory",
		})
	}

	categoryByID, schoolByID, err := h.loadLookupMaps()
	if err != nil {
		log.Printf("[Hof] Failed to load lookups: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to query directory",
		})
	}

	entries := make([]HofEntryResponse, len(rows))
	for i, row := range rows {
		entry := HofEntryResponse{
			ID:               row.ID,
			Name:             row.Name,
			PhotoURL:         row.PhotoURL,
			GraduationYear:   row.GraduationYear,
			IsFeatured:       row.IsFeatured,
			AchievementCount: row.AchievementCount,
		}
		if cat, ok := categoryByID[row.CategoryID]; ok {
			entry.CategorySlug = cat.Slug
			entry.CategoryName = cat.Name
		}
		if school, ok := schoolByID[row.SchoolID]; ok {
			entry.SchoolName = school.Name
		}

		// 대표 업적: 집계가 아니라 단일 상위 선택
		var top model.Achievement
		err := h.db.Where("person_id = ? AND is_public = ?", row.ID, true).
			Order("is_featured DESC, display_order ASC, id ASC").
			First(&top).Error
		if err == nil {
			entry.TopAchievement = &top
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[Hof] Failed to pick top achievement for person %d: %v", row.ID, err)
		}

		entries[i] = entry
	}

	return c.JSON(fiber.Map{
		"entries": entries,
		"total":   total,
		"limit":   limit,
		"offset":  offset,
	})
}

// loadLookupMaps 분류/학교 id → 행 맵 적재
func (h *HofHandler) loadLookupMaps() (map[int64]model.Category, map[int64]model.School, error) {
	var categories []model.Category
	if err := h.db.Find(&categories).Error; err != nil {
		return nil, nil, err
	}
	var schools []model.School
	if err := h.db.Find(&schools).Error; err != nil {
		return nil, nil, err
	}

	categoryByID := make(map[int64]model.Category, len(categories))
	for _, cat := range categories {
		categoryByID[cat.ID] = cat
	}
	schoolByID := make(map[int64]model.School, len(schools))
	for _, s := range schools {
		schoolByID[s.ID] = s
	}

	return categoryByID, schoolByID, nil
}
