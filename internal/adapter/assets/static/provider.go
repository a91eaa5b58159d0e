// Package staticassets resolves image keys against a directory of files on
// disk. Keys map to <root>/<key>.png; a missing file is a nil handle, which
// consumers treat as "render without it".
package staticassets

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"driftworld/internal/app/ports"
)

type Provider struct {
	Root string
}

func (p Provider) GetImage(key string) *ports.ImageHandle {
	rel := key
	if filepath.Ext(rel) == "" {
		rel += ".png"
	}
	path, err := secureJoin(p.Root, rel)
	if err != nil {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return nil
	}
	return &ports.ImageHandle{Key: key, Path: path}
}

var ErrInvalidAssetPath = errors.New("invalid asset filepath")

func secureJoin(root, rel string) (string, error) {
	rel = strings.TrimSpace(rel)
	if rel == "" {
		return "", ErrInvalidAssetPath
	}
	if filepath.IsAbs(rel) {
		return "", ErrInvalidAssetPath
	}
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	target := filepath.Clean(filepath.Join(rootAbs, rel))
	prefix := rootAbs + string(filepath.Separator)
	if target != rootAbs && !strings.HasPrefix(target, prefix) {
		return "", ErrInvalidAssetPath
	}
	return target, nil
}

var _ ports.AssetSystem = Provider{}
