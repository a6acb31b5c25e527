package view

import (
	"fmt"
	"html/template"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf16"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"panelserver/internal/domain/directory"
	"panelserver/internal/domain/repositories"
)

// avatarColors палитра аватаров компаний
var avatarColors = []string{
	"#4285F4", "#34A853", "#FBBC05", "#EA4335",
	"#673AB7", "#3F51B5", "#2196F3", "#03A9F4",
	"#00BCD4", "#009688", "#4CAF50", "#8BC34A",
	"#CDDC39", "#FFC107", "#FF9800", "#FF5722",
}

// ColorFor стабильный цвет аватара по идентификатору
func ColorFor(id string) string {
	sum := 0
	for _, unit := range utf16.Encode([]rune(id)) {
		sum += int(unit)
	}
	return avatarColors[sum%len(avatarColors)]
}

// Initials первые буквы слов названия, не более двух, в верхнем регистре
func Initials(name string) string {
	var b strings.Builder
	for _, part := range strings.Split(name, " ") {
		for _, r := range part {
			b.WriteRune(r)
			break
		}
	}
	upper := []rune(strings.ToUpper(b.String()))
	if len(upper) > 2 {
		upper = upper[:2]
	}
	return string(upper)
}

// ScoreClass CSS класс оценки соответствия
func ScoreClass(score int) string {
	switch {
	case score >= 80:
		return "high"
	case score >= 60:
		return "medium"
	default:
		return "low"
	}
}

var (
	slugSpaces  = regexp.MustCompile(`\s+`)
	slugInvalid = regexp.MustCompile(`[^\w-]+`)
	slugDashes  = regexp.MustCompile(`--+`)
)

// Slugify строка для URL: без диакритики, строчные, слова через дефис
func Slugify(text string) string {
	stripper := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(stripper, text)
	if err != nil {
		plain = text
	}
	slug := strings.TrimSpace(strings.ToLower(plain))
	slug = slugSpaces.ReplaceAllString(slug, "-")
	slug = slugInvalid.ReplaceAllString(slug, "")
	return slugDashes.ReplaceAllString(slug, "-")
}

// FormatNumber число с разделителем разрядов по-французски
func FormatNumber(n int) string {
	return message.NewPrinter(language.French).Sprintf("%d", n)
}

var sizeUnits = strings.NewReplacer(" B", " o", " kB", " ko", " MB", " Mo", " GB", " Go", " TB", " To")

// FileSize размер файла: 1,5 Mo
func FileSize(size int64) string {
	if size < 0 {
		size = 0
	}
	return strings.Replace(sizeUnits.Replace(humanize.Bytes(uint64(size))), ".", ",", 1)
}

var frenchMagnitudes = []humanize.RelTimeMagnitude{
	{D: time.Minute, Format: "À l'instant", DivBy: time.Second},
	{D: 2 * time.Minute, Format: "%s 1 minute", DivBy: 1},
	{D: time.Hour, Format: "%s %d minutes", DivBy: time.Minute},
	{D: 2 * time.Hour, Format: "%s 1 heure", DivBy: 1},
	{D: humanize.Day, Format: "%s %d heures", DivBy: time.Hour},
	{D: 2 * humanize.Day, Format: "%s 1 jour", DivBy: 1},
	{D: humanize.Week, Format: "%s %d jours", DivBy: humanize.Day},
	{D: 2 * humanize.Week, Format: "%s 1 semaine", DivBy: 1},
	{D: humanize.Month, Format: "%s %d semaines", DivBy: humanize.Week},
	{D: 2 * humanize.Month, Format: "%s 1 mois", DivBy: 1},
	{D: humanize.Year, Format: "%s %d mois", DivBy: humanize.Month},
	{D: 2 * humanize.Year, Format: "%s 1 an", DivBy: 1},
	{D: humanize.LongTime, Format: "%s %d ans", DivBy: humanize.Year},
}

// RelativeTime относительное время по-французски: "il y a 5 minutes"
func RelativeTime(then, now time.Time) string {
	return humanize.CustomRelTime(then, now, "il y a", "dans", frenchMagnitudes)
}

// FormatDate дата в формате DD/MM/YYYY
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "Date invalide"
	}
	return t.Format("02/01/2006")
}

// Truncate обрезает текст до length символов с многоточием
func Truncate(text string, length int) string {
	r := []rune(text)
	if len(r) <= length {
		return text
	}
	return string(r[:length]) + "..."
}

// FuncMap функции, доступные в шаблонах
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"color":       ColorFor,
		"initials":    Initials,
		"scoreClass":  ScoreClass,
		"slug":        Slugify,
		"number":      FormatNumber,
		"fileSize":    FileSize,
		"date":        FormatDate,
		"truncate":    Truncate,
		"domainClass": directory.DomainClass,
		"orDefault": func(v, def string) string {
			if strings.TrimSpace(v) == "" {
				return def
			}
			return v
		},
		"add": func(a, b int) int { return a + b },
		"contains": func(list []string, v string) bool {
			for _, item := range list {
				if item == v {
					return true
				}
			}
			return false
		},
		"ms": func(d time.Duration) int64 { return d.Milliseconds() },
		"percent": func(v int) string {
			return fmt.Sprintf("%d%%", v)
		},
		"statusClass": StatusClass,
		"projectStatuses": func() []string {
			return []string{repositories.ProjectStatusActive, repositories.ProjectStatusPending, repositories.ProjectStatusCompleted}
		},
	}
}
