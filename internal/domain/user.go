// Package domain 定义了学习助手中使用的实体 (数据库模型) 和枚举。
package domain

// User 表示登录表中的一个账号。
// 密码默认以明文保存 (历史行为)，可通过 PASSWORD_SCHEME=bcrypt 切换为哈希。
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"type:varchar(50);index" json:"username"` // 业务上唯一，数据库不强制
	Password string `gorm:"type:varchar(255);index" json:"password"`
}

// TableName 沿用原有的表名 user_login。
func (User) TableName() string {
	return "user_login"
}
