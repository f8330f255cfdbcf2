package service

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher 决定密码如何落库以及登录时如何比对。
// 更换实现不改变登录接口的输入输出。
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(stored, password string) bool
}

// PlainPasswordHasher 保持历史行为：明文存储，区分大小写的精确比较。
// 仅为兼容旧数据保留，生产环境应使用 BcryptPasswordHasher。
type PlainPasswordHasher struct{}

func (PlainPasswordHasher) Hash(password string) (string, error) {
	return password, nil
}

func (PlainPasswordHasher) Compare(stored, password string) bool {
	return stored == password
}

// BcryptPasswordHasher 使用 bcrypt 加盐哈希
type BcryptPasswordHasher struct {
	Cost int
}

func (h BcryptPasswordHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to generate hash from password: %w", err)
	}
	return string(bytes), nil
}

func (BcryptPasswordHasher) Compare(stored, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}

// NewPasswordHasher 按配置名称返回实现，空字符串等同于 "plain"
func NewPasswordHasher(scheme string) (PasswordHasher, error) {
	switch scheme {
	case "", "plain":
		return PlainPasswordHasher{}, nil
	case "bcrypt":
		return BcryptPasswordHasher{}, nil
	default:
		return nil, fmt.Errorf("unknown password scheme %q", scheme)
	}
}
