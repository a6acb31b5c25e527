package wizard

import "errors"

// Доменные ошибки мастера консультации
var (
	ErrProcessing          = errors.New("wizard is already processing")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file too large")
	ErrEmptyFile           = errors.New("file is empty")
	ErrInvalidStep         = errors.New("invalid wizard step")
	ErrStepLocked          = errors.New("wizard step is not reachable yet")
	ErrCriterionNotFound   = errors.New("criterion not found")
	ErrInvalidWeight       = errors.New("invalid attribution weight")
	ErrCompanyNotFound     = errors.New("company not found")
	ErrCompanyNameRequired = errors.New("company name is required")
	ErrUnknownProjectField = errors.New("unknown project field")
	ErrNoDocumentType      = errors.New("no document type selected")
	ErrUnknownDocumentType = errors.New("unknown document type")
	ErrNoCompanySelected   = errors.New("no company selected")
	ErrNoDocumentGenerated = errors.New("no document could be generated")
	ErrUploadFailed        = errors.New("document upload failed")
	ErrMatchingFailed      = errors.New("company matching failed")
)

// userMessager реализуется ошибками backend, несущими сообщение для пользователя
type userMessager interface {
	UserMessage() string
}

// UserMessage возвращает сообщение backend из цепочки ошибок или fallback
func UserMessage(err error, fallback string) string {
	var um userMessager
	if errors.As(err, &um) && um.UserMessage() != "" {
		return um.UserMessage()
	}
	return fallback
}
