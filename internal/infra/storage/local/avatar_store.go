// Package local 把上传的头像保存在本地磁盘的上传根目录下。
package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// AvatarDir 是头像在上传根目录下的子目录
const AvatarDir = "avatars"

// AvatarStore 负责头像文件的写入与删除。
// 返回和接收的路径都是 "<publicPrefix>/avatars/<uuid><ext>" 形式的相对路径，
// 静态文件服务把 publicPrefix 映射到 root。
type AvatarStore struct {
	root         string
	publicPrefix string
}

// NewAvatarStore 创建 AvatarStore，root 为磁盘上的上传根目录
func NewAvatarStore(root string) *AvatarStore {
	prefix := path.Base(filepath.ToSlash(filepath.Clean(root)))
	if prefix == "." || prefix == "/" {
		prefix = "uploads"
	}
	return &AvatarStore{root: root, publicPrefix: prefix}
}

// PublicPrefix 返回静态路由使用的前缀，例如 "uploads"
func (s *AvatarStore) PublicPrefix() string {
	return s.publicPrefix
}

// Root 返回磁盘上的上传根目录
func (s *AvatarStore) Root() string {
	return s.root
}

// EnsureDirs 创建上传目录
func (s *AvatarStore) EnsureDirs() error {
	return os.MkdirAll(filepath.Join(s.root, AvatarDir), 0755)
}

// SaveAvatar 以 uuid + 原扩展名为文件名流式写入 r，返回相对路径
func (s *AvatarStore) SaveAvatar(ctx context.Context, originalName string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ext := strings.ToLower(filepath.Ext(originalName))
	name := uuid.New().String() + ext

	if err := s.EnsureDirs(); err != nil {
		return "", fmt.Errorf("创建头像目录失败: %w", err)
	}
	fullPath := filepath.Join(s.root, AvatarDir, name)
	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("创建文件失败: %w", err)
	}
	if _, err := io.Copy(dst, r); err != nil {
		dst.Close()
		os.Remove(fullPath)
		return "", fmt.Errorf("保存文件失败: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("保存文件失败: %w", err)
	}

	rel := path.Join(s.publicPrefix, AvatarDir, name)
	logrus.WithFields(logrus.Fields{"path": rel, "original": originalName}).Debug("Avatar stored")
	return rel, nil
}

// Remove 删除一个已保存的头像，文件不存在不算错误
func (s *AvatarStore) Remove(relPath string) error {
	full, err := s.resolve(relPath)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("删除头像 %s 失败: %w", relPath, err)
	}
	return nil
}

// ListAvatarsOlderThan 列出修改时间早于 cutoff 的头像文件 (相对路径)。
// 刚写入、所在事务尚未提交的文件不会被列出。
func (s *AvatarStore) ListAvatarsOlderThan(cutoff time.Time) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.root, AvatarDir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		paths = append(paths, path.Join(s.publicPrefix, AvatarDir, e.Name()))
	}
	return paths, nil
}

// resolve 把相对路径映射回磁盘路径，只接受头像目录下的文件名
func (s *AvatarStore) resolve(relPath string) (string, error) {
	clean := path.Clean(strings.TrimPrefix(relPath, "/"))
	dir, name := path.Split(clean)
	if name == "" || strings.TrimSuffix(dir, "/") != path.Join(s.publicPrefix, AvatarDir) {
		return "", fmt.Errorf("头像路径不合法: %s", relPath)
	}
	return filepath.Join(s.root, AvatarDir, name), nil
}
