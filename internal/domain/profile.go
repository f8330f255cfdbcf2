package domain

import "strings"

// Grade 表示年级，取值是封闭的字符串集合。
type Grade string

const (
	GradeFreshman  Grade = "大一"
	GradeSophomore Grade = "大二"
	GradeJunior    Grade = "大三"
	GradeSenior    Grade = "大四"
	GradeGraduated Grade = "已毕业"
)

var grades = []Grade{GradeFreshman, GradeSophomore, GradeJunior, GradeSenior, GradeGraduated}

// ParseGrade 把输入的标签解析成 Grade，不在集合内时返回 ErrInvalidEnum。
func ParseGrade(label string) (Grade, error) {
	label = strings.TrimSpace(label)
	for _, g := range grades {
		if string(g) == label {
			return g, nil
		}
	}
	return "", &EnumError{Field: "grade", Value: label}
}

// UserProfile 是 User 的一对一扩展，主键与 User.ID 相同。
type UserProfile struct {
	ID                  uint     `gorm:"primaryKey;autoIncrement:false"`
	Username            string   `gorm:"type:varchar(50);not null;uniqueIndex"`
	Avatar              *string  `gorm:"type:varchar(500)"` // 相对于上传根目录的文件路径，不是 URL
	Grade               *Grade   `gorm:"type:varchar(20)"`
	PostgraduateSession *string  `gorm:"type:varchar(20)"` // 考研届数，如 2026届
	School              *string  `gorm:"type:varchar(100)"`
	Major               *string  `gorm:"type:varchar(100)"`
	TargetSchool        *string  `gorm:"type:varchar(100)"`
	TargetMajor         *string  `gorm:"type:varchar(100)"`
	TargetScore         *float64 `gorm:"type:double"`

	// 删除 user_login 中的用户时级联删除资料
	User *User `gorm:"foreignKey:Username;references:Username;constraint:OnDelete:CASCADE" json:"-"`
}

func (UserProfile) TableName() string {
	return "user_profile"
}
