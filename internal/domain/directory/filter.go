package directory

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultPageSize размер страницы справочника
const DefaultPageSize = 20

// Filter критерии фильтрации справочника; пустое поле не ограничивает выборку
type Filter struct {
	Search        string `json:"search"`
	Domain        string `json:"domain"`
	Certification string `json:"certification"`
}

// IsEmpty true, если ни один критерий не задан
func (f Filter) IsEmpty() bool {
	return strings.TrimSpace(f.Search) == "" && f.Domain == "" && f.Certification == ""
}

// Apply возвращает компании, удовлетворяющие всем трем условиям.
// Исходный список не изменяется.
func (f Filter) Apply(companies []CompanyRecord) []CompanyRecord {
	// cases.Caser хранит состояние, поэтому создается на каждый вызов
	fold := cases.Fold()
	term := fold.String(strings.TrimSpace(f.Search))

	out := make([]CompanyRecord, 0, len(companies))
	for _, c := range companies {
		if term != "" &&
			!strings.Contains(fold.String(c.Name), term) &&
			!strings.Contains(fold.String(c.Location), term) &&
			!strings.Contains(fold.String(c.Domain), term) {
			continue
		}
		if f.Domain != "" && c.Domain != f.Domain {
			continue
		}
		if f.Certification != "" && !c.HasCertification(f.Certification) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Page страница отфильтрованного списка
type Page struct {
	Items      []CompanyRecord
	Number     int
	TotalPages int
	Total      int
	// Start и End номера первой и последней записи, с единицы
	Start int
	End   int
}

// HasPrev есть ли предыдущая страница
func (p Page) HasPrev() bool { return p.Number > 1 }

// HasNext есть ли следующая страница
func (p Page) HasNext() bool { return p.Number < p.TotalPages }

// TotalPages число страниц; пустой список считается одной страницей
func TotalPages(total, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	if total <= 0 {
		return 1
	}
	return (total + size - 1) / size
}

// ClampPage ограничивает номер страницы диапазоном [1, TotalPages]
func ClampPage(page, total, size int) int {
	last := TotalPages(total, size)
	switch {
	case page < 1:
		return 1
	case page > last:
		return last
	default:
		return page
	}
}

// Paginate вырезает страницу [size*(page-1), min(size*page, total))
func Paginate(companies []CompanyRecord, page, size int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	total := len(companies)
	page = ClampPage(page, total, size)

	start := (page - 1) * size
	end := start + size
	if end > total {
		end = total
	}

	p := Page{
		Items:      companies[start:end],
		Number:     page,
		TotalPages: TotalPages(total, size),
		Total:      total,
		End:        end,
	}
	if total > 0 {
		p.Start = start + 1
	}
	return p
}

// DistinctDomains домены компаний без повторов, по-французски отсортированные
func DistinctDomains(companies []CompanyRecord) []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range companies {
		if d := strings.TrimSpace(c.Domain); d != "" && !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	collate.New(language.French).SortStrings(out)
	return out
}

// DistinctCertifications сертификаты компаний без повторов
func DistinctCertifications(companies []CompanyRecord) []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range companies {
		for _, cert := range c.Certifications {
			if cert = strings.TrimSpace(cert); cert != "" && !seen[cert] {
				seen[cert] = true
				out = append(out, cert)
			}
		}
	}
	collate.New(language.French).SortStrings(out)
	return out
}
