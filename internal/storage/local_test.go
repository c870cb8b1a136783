package storage

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func restore() {
	uuidNewString = uuid.NewString
	osMkdirAll = os.MkdirAll
	osCreate = func(name string) (io.WriteCloser, error) { return os.Create(name) }
	osRemove = os.Remove
}

// newFileHeader 以 multipart 表單組出 *multipart.FileHeader
func newFileHeader(t *testing.T, field, filename, content string) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1 << 20))
	return req.MultipartForm.File[field][0]
}

func TestLocalSaveAndDelete(t *testing.T) {
	t.Cleanup(restore)
	dir := t.TempDir()
	uuidNewString = func() string { return "fixed-name" }

	l, err := NewLocal(dir)
	require.NoError(t, err)

	fh := newFileHeader(t, "avatar", "me.png", "image-bytes")
	name, err := l.Save(fh)
	require.NoError(t, err)
	require.Equal(t, "fixed-name.png", name)

	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	require.Equal(t, "image-bytes", string(data))

	require.NoError(t, l.Delete(name))
	_, err = os.Stat(filepath.Join(dir, name))
	require.True(t, os.IsNotExist(err))
}

func TestLocalSaveRandomNameKeepsExt(t *testing.T) {
	t.Cleanup(restore)
	l, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	fh := newFileHeader(t, "image", "poster.jpg", "x")
	name, err := l.Save(fh)
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(name, ".jpg"))
	require.NotEqual(t, "poster.jpg", name)
}

func TestLocalErrors(t *testing.T) {
	t.Cleanup(restore)

	osMkdirAll = func(string, os.FileMode) error { return os.ErrPermission }
	_, err := NewLocal("dir")
	require.Error(t, err)
	restore()

	l, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	osCreate = func(string) (io.WriteCloser, error) { return nil, os.ErrPermission }
	fh := newFileHeader(t, "f", "a.png", "x")
	_, err = l.Save(fh)
	require.Error(t, err)
	restore()

	require.Error(t, l.Delete("missing.png"))
}

func TestFakeStorage(t *testing.T) {
	f := &FakeStorage{
		SaveFn:   func(*multipart.FileHeader) (string, error) { return "n", nil },
		DeleteFn: func(string) error { return nil },
	}
	name, err := f.Save(nil)
	require.NoError(t, err)
	require.Equal(t, "n", name)
	require.NoError(t, f.Delete("n"))

	empty := &FakeStorage{}
	require.Panics(t, func() { _, _ = empty.Save(nil) })
	require.Panics(t, func() { _ = empty.Delete("n") })
}
