package templates

import (
	"strings"

	"golang.org/x/text/cases"
)

// Filter фильтр каталога: тип (all или точное совпадение) и подстрока названия
type Filter struct {
	Type   string `json:"type"`
	Search string `json:"search"`
}

// Apply возвращает шаблоны, подходящие под оба условия
func (f Filter) Apply(list []Template) []Template {
	fold := cases.Fold()
	term := fold.String(strings.TrimSpace(f.Search))

	out := make([]Template, 0, len(list))
	for _, t := range list {
		if f.Type != "" && f.Type != FilterAll && t.Type != f.Type {
			continue
		}
		if term != "" && !strings.Contains(fold.String(t.Name), term) {
			continue
		}
		out = append(out, t)
	}
	return out
}
