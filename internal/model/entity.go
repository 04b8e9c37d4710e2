package model

import (
	"time"
)

// School 학교 (고정 조회 테이블)
type School struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	ShortName *string   `gorm:"type:varchar(20)" json:"short_name,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	Persons []Person `gorm:"foreignKey:SchoolID" json:"persons,omitempty"`
}

func (School) TableName() string {
	return "schools"
}

// Category 인물 분류 (STUDENT / STAFF / ALUMNI)
type Category struct {
	ID   int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Slug string `gorm:"type:varchar(20);uniqueIndex;not null" json:"slug"`
	Name string `gorm:"type:varchar(50);not null" json:"name"`

	// Relations
	Persons []Person `gorm:"foreignKey:CategoryID" json:"persons,omitempty"`
}

func (Category) TableName() string {
	return "categories"
}

// AchievementType 업적 유형 (고정 조회 테이블)
type AchievementType struct {
	ID   int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Slug string `gorm:"type:varchar(30);uniqueIndex;not null" json:"slug"`
	Name string `gorm:"type:varchar(50);not null" json:"name"`
}

func (AchievementType) TableName() string {
	return "achievement_types"
}

// Person 명예의 전당 인물
type Person struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name           string    `gorm:"type:varchar(100);not null;uniqueIndex:uniq_person_identity,priority:1" json:"name"`
	CategoryID     int64     `gorm:"not null;uniqueIndex:uniq_person_identity,priority:2" json:"category_id"`
	SchoolID       int64     `gorm:"not null;uniqueIndex:uniq_person_identity,priority:3" json:"school_id"`
	Bio            *string   `gorm:"type:text" json:"bio,omitempty"`
	PhotoURL       *string   `gorm:"type:text" json:"photo_url,omitempty"`
	GraduationYear *int      `json:"graduation_year,omitempty"`
	IsFeatured     bool      `gorm:"default:false;index" json:"is_featured"`
	Status         string    `gorm:"type:varchar(20);default:'ACTIVE'" json:"status"` // ACTIVE, INACTIVE
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Category     Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	School       School        `gorm:"foreignKey:SchoolID" json:"school,omitempty"`
	Achievements []Achievement `gorm:"foreignKey:PersonID;constraint:OnDelete:CASCADE" json:"achievements,omitempty"`
	CCARecords   []CCARecord   `gorm:"foreignKey:PersonID;constraint:OnDelete:CASCADE" json:"cca_records,omitempty"`
	Comments     []Comment     `gorm:"foreignKey:PersonID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
}

func (Person) TableName() string {
	return "persons"
}

// Achievement 업적
type Achievement struct {
	ID           int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	PersonID     int64      `gorm:"not null;index" json:"person_id"`
	TypeID       *int64     `json:"type_id,omitempty"`
	Title        string     `gorm:"type:varchar(200);not null" json:"title"`
	Description  *string    `gorm:"type:text" json:"description,omitempty"`
	AchievedOn   *time.Time `json:"achieved_on,omitempty"`
	Metrics      *string    `gorm:"type:jsonb" json:"metrics,omitempty"` // 자유 형식 측정값 (JSONB)
	IsPublic     bool       `gorm:"default:true" json:"is_public"`
	IsFeatured   bool       `gorm:"default:false" json:"is_featured"`
	DisplayOrder int        `gorm:"default:0" json:"display_order"` // 정렬 동점 제어 전용
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	Person Person           `gorm:"foreignKey:PersonID" json:"person,omitempty"`
	Type   *AchievementType `gorm:"foreignKey:TypeID" json:"type,omitempty"`
}

func (Achievement) TableName() string {
	return "achievements"
}

// CCARecord 과외 활동 기록 (CCA)
type CCARecord struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	PersonID    int64      `gorm:"not null;index" json:"person_id"`
	Name        string     `gorm:"type:varchar(100);not null" json:"name"`
	Position    *string    `gorm:"type:varchar(100)" json:"position,omitempty"`
	StartedOn   *time.Time `json:"started_on,omitempty"`
	EndedOn     *time.Time `json:"ended_on,omitempty"`
	IsCurrent   bool       `gorm:"default:false" json:"is_current"`
	Description *string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	Person Person `gorm:"foreignKey:PersonID" json:"person,omitempty"`
}

func (CCARecord) TableName() string {
	return "cca_records"
}

// Comment 인물별 방명록 댓글 (작성 후 수정/삭제 불가)
type Comment struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	PersonID    int64     `gorm:"not null;index" json:"person_id"`
	DisplayName string    `gorm:"type:varchar(100);not null" json:"display_name"`
	IsAnonymous bool      `gorm:"default:false" json:"is_anonymous"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	// Relations
	Person Person `gorm:"foreignKey:PersonID" json:"person,omitempty"`
}

func (Comment) TableName() string {
	return "comments"
}

// Milestone 연혁 타임라인 이벤트 (인물 데이터와 독립)
type Milestone struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Year        int       `gorm:"not null;index" json:"year"`
	Title       string    `gorm:"type:varchar(200);not null" json:"title"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	Category    *string   `gorm:"type:varchar(50)" json:"category,omitempty"`
	Era         *string   `gorm:"type:varchar(50)" json:"era,omitempty"`
	ImageURL    *string   `gorm:"type:text" json:"image_url,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Milestone) TableName() string {
	return "milestones"
}

// Board 가상 캔버스 보드
type Board struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	BoardKey  string    `gorm:"type:varchar(60);uniqueIndex;not null" json:"board_key"` // 항상 대문자
	Title     string    `gorm:"type:varchar(100);not null" json:"title"`
	Width     int       `gorm:"not null;default:4000" json:"width"`
	Height    int       `gorm:"not null;default:3000" json:"height"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	Messages []CanvasMessage `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"messages,omitempty"`
}

func (Board) TableName() string {
	return "boards"
}

// CanvasMessage 캔버스 위 좌표 고정 노트 (작성 후 수정 불가, 1회 브로드캐스트)
type CanvasMessage struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	BoardID    int64     `gorm:"not null;index" json:"board_id"`
	X          int       `gorm:"not null" json:"x"`
	Y          int       `gorm:"not null" json:"y"`
	Text       string    `gorm:"type:varchar(500);not null" json:"text"`
	AuthorName string    `gorm:"type:varchar(100);not null" json:"author_name"`
	Color      string    `gorm:"type:varchar(20);default:'yellow'" json:"color"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	// Relations
	Board Board `gorm:"foreignKey:BoardID" json:"board,omitempty"`
}

func (CanvasMessage) TableName() string {
	return "canvas_messages"
}
