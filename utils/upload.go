package utils

import (
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"travelshare/config"
)

// Upload validation failures, surfaced to the user as 400s.
var (
	ErrBadImageType  = errors.New("only .jpg, .jpeg and .png files are accepted")
	ErrImageTooLarge = errors.New("image exceeds the size limit")
)

var allowedImageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}

// SaveImage stores an uploaded image under the public upload directory
// with a generated random filename and returns its public path
// (/static/uploads/<subdir>/<name>). maxKB caps the accepted size.
func SaveImage(fh *multipart.FileHeader, subdir string, maxKB int) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedImageExts[ext] {
		return "", ErrBadImageType
	}
	maxBytes := int64(maxKB) * 1024
	if fh.Size > maxBytes {
		return "", ErrImageTooLarge
	}

	cfg := config.Get()
	dir := filepath.Join(cfg.UploadDir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := uuid.NewString() + ext
	dstPath := filepath.Join(dir, name)

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	// The declared header size is client-controlled; enforce the cap on the
	// actual bytes as well.
	written, err := io.Copy(dst, &io.LimitedReader{R: src, N: maxBytes + 1})
	if err != nil {
		_ = os.Remove(dstPath)
		return "", err
	}
	if written > maxBytes {
		_ = os.Remove(dstPath)
		return "", ErrImageTooLarge
	}

	return "/static/uploads/" + subdir + "/" + name, nil
}

// RemoveUpload deletes a stored image given its public path, reconstructing
// the on-disk location relative to the upload directory. Best-effort.
func RemoveUpload(publicPath string) {
	rel, ok := strings.CutPrefix(publicPath, "/static/uploads/")
	if !ok || rel == "" || strings.Contains(rel, "..") {
		return
	}
	cfg := config.Get()
	if err := os.Remove(filepath.Join(cfg.UploadDir, filepath.FromSlash(rel))); err != nil && !os.IsNotExist(err) {
		if Sugar != nil {
			Sugar.Warnf("failed to remove upload %s: %v", publicPath, err)
		}
	}
}
