package wizard

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// DefaultMaxUploadSize максимальный размер технического задания (10 MB)
const DefaultMaxUploadSize int64 = 10 * 1024 * 1024

// Допустимые MIME типы технического задания
const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeDOC  = "application/msword"
	MimeText = "text/plain"
)

var allowedMimeTypes = map[string]bool{
	MimePDF:  true,
	MimeDOCX: true,
	MimeDOC:  true,
	MimeText: true,
}

// Браузер иногда не передает тип файла; тогда тип берется по расширению
var mimeByExtension = map[string]string{
	".pdf":  MimePDF,
	".docx": MimeDOCX,
	".doc":  MimeDOC,
	".txt":  MimeText,
}

// UploadFile файл, выбранный пользователем на шаге 1
type UploadFile struct {
	Name     string
	MimeType string
	Size     int64
	Content  io.Reader
}

// AcceptedMimeTypes типы файлов, принимаемые на шаге 1
func AcceptedMimeTypes() []string {
	return []string{MimePDF, MimeDOC, MimeDOCX, MimeText}
}

// NormalizeMimeType убирает параметры типа и подставляет тип по расширению
func NormalizeMimeType(declared, fileName string) string {
	mimeType := strings.ToLower(strings.TrimSpace(declared))
	if idx := strings.Index(mimeType, ";"); idx >= 0 {
		mimeType = strings.TrimSpace(mimeType[:idx])
	}
	if mimeType == "" || mimeType == "application/octet-stream" {
		if byExt, ok := mimeByExtension[strings.ToLower(filepath.Ext(fileName))]; ok {
			return byExt
		}
	}
	return mimeType
}

// ValidateUpload проверяет тип и размер файла до любого сетевого вызова
func ValidateUpload(file UploadFile, maxSize int64) error {
	if maxSize <= 0 {
		maxSize = DefaultMaxUploadSize
	}

	mimeType := NormalizeMimeType(file.MimeType, file.Name)
	if !allowedMimeTypes[mimeType] {
		return fmt.Errorf("%w: %q", ErrUnsupportedFileType, mimeType)
	}
	if file.Size > maxSize {
		return fmt.Errorf("%w: %d bytes", ErrFileTooLarge, file.Size)
	}
	if file.Size == 0 {
		return ErrEmptyFile
	}
	return nil
}
