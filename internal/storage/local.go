// File: internal/storage/local.go
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// 測試可覆寫的進入點
var (
	uuidNewString = uuid.NewString
	osMkdirAll    = os.MkdirAll
	osCreate      = func(name string) (io.WriteCloser, error) { return os.Create(name) }
	osRemove      = os.Remove
)

// Local 將上傳檔案存於本機目錄，檔名以 uuid 隨機產生並保留副檔名
type Local struct {
	dir string
}

// NewLocal 建立 Local storage，目錄不存在時自動建立
func NewLocal(dir string) (*Local, error) {
	if err := osMkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("NewLocal: %w", err)
	}
	return &Local{dir: dir}, nil
}

// Save 寫入上傳檔案並回傳儲存名稱
func (l *Local) Save(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("Save: %w", err)
	}
	defer src.Close()

	name := uuidNewString() + filepath.Ext(file.Filename)
	dst, err := osCreate(filepath.Join(l.dir, name))
	if err != nil {
		return "", fmt.Errorf("Save: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("Save: %w", err)
	}
	return name, nil
}

// Delete 依名稱移除檔案
func (l *Local) Delete(name string) error {
	if err := osRemove(filepath.Join(l.dir, name)); err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	return nil
}
