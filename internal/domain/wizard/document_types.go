package wizard

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed document_types.yaml
var documentTypesYAML []byte

// DocumentType тип генерируемого документа консультации
type DocumentType struct {
	Key         string `yaml:"key" json:"key"`
	Icon        string `yaml:"icon" json:"icon"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Prefix      string `yaml:"prefix" json:"prefix"`
	Format      string `yaml:"format" json:"format"`
}

// DocumentCatalog упорядоченный каталог типов документов
type DocumentCatalog struct {
	types []DocumentType
	byKey map[string]int
}

// LoadDocumentCatalog читает встроенный каталог типов документов
func LoadDocumentCatalog() (*DocumentCatalog, error) {
	return ParseDocumentCatalog(documentTypesYAML)
}

// ParseDocumentCatalog разбирает каталог из YAML
func ParseDocumentCatalog(data []byte) (*DocumentCatalog, error) {
	var types []DocumentType
	if err := yaml.Unmarshal(data, &types); err != nil {
		return nil, fmt.Errorf("failed to parse document catalog: %w", err)
	}
	if len(types) == 0 {
		return nil, fmt.Errorf("document catalog is empty")
	}

	byKey := make(map[string]int, len(types))
	for i, t := range types {
		if t.Key == "" {
			return nil, fmt.Errorf("document type #%d has no key", i+1)
		}
		if _, dup := byKey[t.Key]; dup {
			return nil, fmt.Errorf("duplicate document type %q", t.Key)
		}
		byKey[t.Key] = i
	}

	return &DocumentCatalog{types: types, byKey: byKey}, nil
}

// All возвращает все типы в порядке отображения
func (c *DocumentCatalog) All() []DocumentType {
	return append([]DocumentType(nil), c.types...)
}

// Get возвращает тип по ключу
func (c *DocumentCatalog) Get(key string) (DocumentType, bool) {
	idx, ok := c.byKey[key]
	if !ok {
		return DocumentType{}, false
	}
	return c.types[idx], true
}

// Ordered возвращает выбранные типы в порядке каталога, без повторов
func (c *DocumentCatalog) Ordered(keys []string) ([]DocumentType, error) {
	selected := make(map[string]bool, len(keys))
	for _, key := range keys {
		if _, ok := c.byKey[key]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownDocumentType, key)
		}
		selected[key] = true
	}

	ordered := make([]DocumentType, 0, len(selected))
	for _, t := range c.types {
		if selected[t.Key] {
			ordered = append(ordered, t)
		}
	}
	return ordered, nil
}
