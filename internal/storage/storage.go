// File: internal/storage/storage.go
package storage

import "mime/multipart"

// Storage 定義上傳檔案的儲存介面
// Save 存入檔案並回傳儲存名稱，Delete 依名稱移除
// 測試時以 FakeStorage 取代實際磁碟
type Storage interface {
	Save(file *multipart.FileHeader) (string, error)
	Delete(name string) error
}

type FakeStorage struct {
	SaveFn   func(file *multipart.FileHeader) (string, error)
	DeleteFn func(name string) error
}

// Save 執行 Fake 設定或 panic
func (f *FakeStorage) Save(file *multipart.FileHeader) (string, error) {
	if f.SaveFn != nil {
		return f.SaveFn(file)
	}
	panic("unexpected Save")
}

// Delete 執行 Fake 設定或 panic
func (f *FakeStorage) Delete(name string) error {
	if f.DeleteFn != nil {
		return f.DeleteFn(name)
	}
	panic("unexpected Delete")
}
