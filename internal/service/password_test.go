package service_test

import (
	"testing"

	"github.com/kano20041101/xuexizhushou/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPasswordHasher(t *testing.T) {
	h, err := service.NewPasswordHasher("")
	require.NoError(t, err)
	assert.IsType(t, service.PlainPasswordHasher{}, h)

	h, err = service.NewPasswordHasher("bcrypt")
	require.NoError(t, err)
	assert.IsType(t, service.BcryptPasswordHasher{}, h)

	_, err = service.NewPasswordHasher("md5")
	assert.Error(t, err)
}

func TestPlainPasswordHasher(t *testing.T) {
	h := service.PlainPasswordHasher{}
	stored, err := h.Hash("secret")
	require.NoError(t, err)
	assert.Equal(t, "secret", stored, "legacy scheme stores the password as is")
	assert.True(t, h.Compare(stored, "secret"))
	assert.False(t, h.Compare(stored, "Secret"))
}

func TestBcryptPasswordHasher(t *testing.T) {
	h := service.BcryptPasswordHasher{Cost: 4}
	stored, err := h.Hash("secret")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", stored)
	assert.True(t, h.Compare(stored, "secret"))
	assert.False(t, h.Compare(stored, "secret "))
	assert.False(t, h.Compare("not-a-hash", "secret"))
}
