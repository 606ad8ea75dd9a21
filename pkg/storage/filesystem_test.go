package storage

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadHeader(t *testing.T, filename, contentType string, payload []byte) *multipart.FileHeader {
	t.Helper()

	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	part, err := writer.CreatePart(map[string][]string{
		"Content-Disposition": {`form-data; name="imagem"; filename="` + filename + `"`},
		"Content-Type":        {contentType},
	})
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/posts", buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	files := req.MultipartForm.File["imagem"]
	require.Len(t, files, 1)
	return files[0]
}

func TestImageStoreSaveUpload(t *testing.T) {
	dir := t.TempDir()
	store, err := NewImageStore(dir, 1<<20, []string{"image/png"})
	require.NoError(t, err)

	file := uploadHeader(t, "foto.PNG", "image/png", []byte("fake-image-bytes"))
	name, err := store.SaveUpload(file)
	require.NoError(t, err)

	assert.NotEqual(t, "foto.PNG", name)
	assert.Equal(t, ".png", filepath.Ext(name))

	content, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, []byte("fake-image-bytes"), content)
}

func TestImageStoreRejectsUnsupportedType(t *testing.T) {
	store, err := NewImageStore(t.TempDir(), 1<<20, []string{"image/png"})
	require.NoError(t, err)

	file := uploadHeader(t, "nota.pdf", "application/pdf", []byte("%PDF-1.4"))
	_, err = store.SaveUpload(file)
	assert.Error(t, err)
}

func TestImageStoreRejectsOversizedFile(t *testing.T) {
	store, err := NewImageStore(t.TempDir(), 4, []string{"image/png"})
	require.NoError(t, err)

	file := uploadHeader(t, "foto.png", "image/png", []byte("more-than-four-bytes"))
	_, err = store.SaveUpload(file)
	assert.Error(t, err)
}

func TestImageStoreDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewImageStore(dir, 1<<20, nil)
	require.NoError(t, err)

	file := uploadHeader(t, "foto.png", "image/png", []byte("fake"))
	name, err := store.SaveUpload(file)
	require.NoError(t, err)

	require.NoError(t, store.Delete(name))
	_, err = os.Stat(filepath.Join(dir, name))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, store.Delete("missing.png"))
}
