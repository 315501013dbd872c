package utils_test

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelshare/config"
	"travelshare/utils"
)

func multipartImage(t *testing.T, field, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File[field][0]
}

func TestSaveImage(t *testing.T) {
	dir := t.TempDir()
	config.SetForTesting(config.AppConfig{JWTSecret: "x", UploadDir: dir})

	fh := multipartImage(t, "photo", "me.JPG", []byte("fake image bytes"))
	path, err := utils.SaveImage(fh, "avatars", 1024)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, "/static/uploads/avatars/"))
	assert.True(t, strings.HasSuffix(path, ".jpg"))

	rel := strings.TrimPrefix(path, "/static/uploads/")
	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(rel)))
	assert.NoError(t, err)

	// Deletion reconstructs the on-disk path from the public one.
	utils.RemoveUpload(path)
	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(rel)))
	assert.True(t, os.IsNotExist(err))
}

func TestSaveImage_RejectsBadTypeAndSize(t *testing.T) {
	config.SetForTesting(config.AppConfig{JWTSecret: "x", UploadDir: t.TempDir()})

	fh := multipartImage(t, "photo", "script.gif", []byte("gif"))
	_, err := utils.SaveImage(fh, "avatars", 1024)
	assert.ErrorIs(t, err, utils.ErrBadImageType)

	big := bytes.Repeat([]byte("a"), 2048)
	fh = multipartImage(t, "photo", "big.png", big)
	_, err = utils.SaveImage(fh, "avatars", 1)
	assert.ErrorIs(t, err, utils.ErrImageTooLarge)
}
