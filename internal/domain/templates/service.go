package templates

import (
	"context"
	"io"

	"panelserver/internal/domain/repositories"
)

// Template шаблон документа
type Template = repositories.Template

// FilterAll значение фильтра типа без ограничения
const FilterAll = "all"

// Service интерфейс каталога шаблонов документов
type Service interface {
	List(ctx context.Context, filter Filter) ([]Template, error)
	Get(ctx context.Context, id string) (*Template, error)
	Upload(ctx context.Context, upload Upload) (*Template, error)
	Preview(ctx context.Context, id string) (*Preview, error)
	Delete(ctx context.Context, id string) error
	Types() []TypeOption
}

// Remote внешнее хранилище файлов шаблонов
type Remote interface {
	UploadTemplate(ctx context.Context, upload Upload) (*Template, error)
	GetTemplate(ctx context.Context, id string) (*Preview, error)
	DeleteTemplate(ctx context.Context, id string) error
}

// TypeOption тип шаблона для списка выбора
type TypeOption struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Upload форма загрузки шаблона
type Upload struct {
	Name        string
	Type        string
	Description string
	FileName    string
	Size        int64
	Content     io.Reader
}

// Preview данные окна предпросмотра
type Preview struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	FileName    string `json:"fileName"`
	PreviewHTML string `json:"previewHtml"`
}

// Available true, если есть HTML для показа
func (p Preview) Available() bool {
	return p.PreviewHTML != ""
}
