package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ObjectStore сохраняет загруженный файл и возвращает его публичный URL.
// size может быть 0, если длина заранее не известна.
type ObjectStore interface {
	Put(ctx context.Context, folder, originalName, contentType string, size int64, r io.Reader) (string, error)
}

// objectKey строит уникальный ключ вида folder/<uuid>_<unixnano>.<ext>.
func objectKey(folder, originalName string) string {
	ext := strings.ToLower(filepath.Ext(sanitizeFilename(originalName)))
	name := fmt.Sprintf("%s_%d%s", uuid.NewString(), time.Now().UnixNano(), ext)
	folder = strings.Trim(sanitizeFolder(folder), "/")
	if folder == "" {
		return name
	}
	return folder + "/" + name
}

// publicURL склеивает базовый URL хранилища и ключ объекта.
func publicURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}

// sanitizeFilename удаляет потенциально опасные символы.
func sanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.ReplaceAll(name, "..", "")
	if name == "" || name == "." || name == "/" {
		name = "file"
	}
	return name
}

func sanitizeFolder(folder string) string {
	folder = strings.ReplaceAll(folder, "..", "")
	folder = strings.ReplaceAll(folder, "\\", "/")
	return folder
}
