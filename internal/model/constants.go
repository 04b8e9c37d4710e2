package model

// PersonStatus 인물 상태
type PersonStatus string

const (
	PersonStatusActive   PersonStatus = "ACTIVE"
	PersonStatusInactive PersonStatus = "INACTIVE" // 소프트 비활성화 (하드 삭제 없음)
)

func (s PersonStatus) String() string {
	return string(s)
}

// CategorySlug 고정 분류 슬러그
type CategorySlug string

const (
	CategoryStudent CategorySlug = "STUDENT"
	CategoryStaff   CategorySlug = "STAFF"
	CategoryAlumni  CategorySlug = "ALUMNI"
)

func (c CategorySlug) String() string {
	return string(c)
}

// AchievementTypeSlug 고정 업적 유형 슬러그
type AchievementTypeSlug string

const (
	AchievementTypeAcademic   AchievementTypeSlug = "ACADEMIC"
	AchievementTypeSports     AchievementTypeSlug = "SPORTS"
	AchievementTypeArts       AchievementTypeSlug = "ARTS"
	AchievementTypeLeadership AchievementTypeSlug = "LEADERSHIP"
	AchievementTypeService    AchievementTypeSlug = "SERVICE"
)

func (a AchievementTypeSlug) String() string {
	return string(a)
}
