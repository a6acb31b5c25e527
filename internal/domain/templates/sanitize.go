package templates

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
)

// Элементы, которые удаляются из предпросмотра вместе с содержимым
const strippedElements = "script, style, iframe, frame, frameset, object, embed, link, meta, base, form"

var urlAttributes = map[string]bool{
	"href":       true,
	"src":        true,
	"action":     true,
	"formaction": true,
	"xlink:href": true,
	"background": true,
}

// SanitizePreview очищает HTML предпросмотра от скриптов, стилей, фреймов,
// обработчиков событий и ссылок javascript:
func SanitizePreview(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("failed to parse preview html: %w", err)
	}

	doc.Find(strippedElements).Remove()
	doc.Find("*").Each(func(_ int, sel *goquery.Selection) {
		for _, node := range sel.Nodes {
			kept := node.Attr[:0]
			for _, attr := range node.Attr {
				key := strings.ToLower(attr.Key)
				if strings.HasPrefix(key, "on") {
					continue
				}
				if urlAttributes[key] && isScriptURL(attr.Val) {
					continue
				}
				kept = append(kept, attr)
			}
			node.Attr = kept
		}
	})

	html, err := doc.Find("body").Html()
	if err != nil {
		return "", fmt.Errorf("failed to render preview html: %w", err)
	}
	return strings.TrimSpace(html), nil
}

// isScriptURL распознает javascript:, vbscript: и data:text/html,
// в том числе с пробелами и управляющими символами внутри схемы
func isScriptURL(value string) bool {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, value)

	return strings.HasPrefix(cleaned, "javascript:") ||
		strings.HasPrefix(cleaned, "vbscript:") ||
		strings.HasPrefix(cleaned, "data:text/html")
}
