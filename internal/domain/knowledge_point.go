package domain

import (
	"strings"
	"time"
)

// Importance 重要度：低/中/高/必考。
type Importance string

const (
	ImportanceLow       Importance = "低"
	ImportanceMedium    Importance = "中"
	ImportanceHigh      Importance = "高"
	ImportanceMandatory Importance = "必考"
)

// Difficulty 难度：易/较易/中/较难/难。
type Difficulty string

const (
	DifficultyEasy       Difficulty = "易"
	DifficultyFairlyEasy Difficulty = "较易"
	DifficultyMedium     Difficulty = "中"
	DifficultyFairlyHard Difficulty = "较难"
	DifficultyHard       Difficulty = "难"
)

var (
	importances  = []Importance{ImportanceLow, ImportanceMedium, ImportanceHigh, ImportanceMandatory}
	difficulties = []Difficulty{DifficultyEasy, DifficultyFairlyEasy, DifficultyMedium, DifficultyFairlyHard, DifficultyHard}
)

func ParseImportance(label string) (Importance, error) {
	label = strings.TrimSpace(label)
	for _, v := range importances {
		if string(v) == label {
			return v, nil
		}
	}
	return "", &EnumError{Field: "importance", Value: label}
}

func ParseDifficulty(label string) (Difficulty, error) {
	label = strings.TrimSpace(label)
	for _, v := range difficulties {
		if string(v) == label {
			return v, nil
		}
	}
	return "", &EnumError{Field: "difficulty", Value: label}
}

// KnowledgePoint 表示用户的一条考研知识点。
// UserID 对应原表中的 id 列 (归属用户)，KPID 是知识点自身的自增主键。
type KnowledgePoint struct {
	KPID       uint       `gorm:"column:kp_id;primaryKey;autoIncrement"`
	UserID     uint       `gorm:"column:id;not null;index:idx_id_subject,priority:1;uniqueIndex:idx_id_pointname,priority:1"`
	Subject    string     `gorm:"type:varchar(50);not null;index:idx_id_subject,priority:2"`
	PointName  string     `gorm:"type:varchar(100);not null;uniqueIndex:idx_id_pointname,priority:2"`
	Category   string     `gorm:"type:varchar(50);not null"`
	Importance Importance `gorm:"type:varchar(20);not null;default:中"`
	Difficulty Difficulty `gorm:"type:varchar(20);not null;default:中"`
	ExamPoints *string    `gorm:"type:varchar(200)"` // 考点，如：选择题、计算题
	Content    *string    `gorm:"type:text"`
	CreateTime time.Time  `gorm:"not null;index"`
	UpdateTime time.Time  `gorm:"not null"`

	User *User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (KnowledgePoint) TableName() string {
	return "knowledge_point"
}
