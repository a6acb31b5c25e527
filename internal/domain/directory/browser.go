package directory

import (
	"fmt"
	"sync"
)

// Browser состояние страницы справочника одной сессии: загруженный список,
// текущий фильтр и номер страницы. Отфильтрованный список всегда
// вычисляется заново и не меняет загруженный.
type Browser struct {
	mu       sync.Mutex
	all      []CompanyRecord
	loaded   bool
	filter   Filter
	page     int
	pageSize int
}

// NewBrowser создает пустое состояние справочника
func NewBrowser(pageSize int) *Browser {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Browser{page: 1, pageSize: pageSize}
}

// Replace заменяет загруженный список; фильтр сохраняется, страница ограничивается
func (b *Browser) Replace(companies []CompanyRecord) Page {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.all = append([]CompanyRecord(nil), companies...)
	b.loaded = true
	return b.currentLocked()
}

// Loaded true, если список уже получен
func (b *Browser) Loaded() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loaded
}

// SetFilter применяет фильтр и возвращается на первую страницу
func (b *Browser) SetFilter(f Filter) Page {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.filter = f
	b.page = 1
	return b.currentLocked()
}

// ClearFilters сбрасывает фильтр
func (b *Browser) ClearFilters() Page {
	return b.SetFilter(Filter{})
}

// ChangePage переходит на страницу в пределах [1, число страниц]
func (b *Browser) ChangePage(page int) Page {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.page = page
	return b.currentLocked()
}

// Current возвращает текущую страницу
func (b *Browser) Current() Page {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.currentLocked()
}

// Filter текущий фильтр
func (b *Browser) Filter() Filter {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.filter
}

// Filtered возвращает весь отфильтрованный список (для экспорта)
func (b *Browser) Filtered() []CompanyRecord {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.filter.Apply(b.all)
}

// Options значения выпадающих списков фильтра
func (b *Browser) Options() (domains, certifications []string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return DistinctDomains(b.all), DistinctCertifications(b.all)
}

// Find ищет компанию в загруженном списке
func (b *Browser) Find(id string) (CompanyRecord, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, c := range b.all {
		if c.ID == id {
			return c, nil
		}
	}
	return CompanyRecord{}, fmt.Errorf("%w: %s", ErrCompanyNotFound, id)
}

func (b *Browser) currentLocked() Page {
	filtered := b.filter.Apply(b.all)
	p := Paginate(filtered, b.page, b.pageSize)
	b.page = p.Number
	return p
}
