package utils

import (
	"net/url"
	"regexp"
	"strings"
)

var invalidFileNameChars = regexp.MustCompile(`[\/\?<>\\:\*\|"]`)

func StringNotEmptyCoalesce(args ...string) string {
	for _, elem := range args {
		if len(elem) > 0 {
			return elem
		}
	}

	return ""
}

// SanitizeFileName заменяет символы, недопустимые в именах файлов и в Content-Disposition
func SanitizeFileName(name string) string {
	return invalidFileNameChars.ReplaceAllString(name, "_")
}

// ContainsFold проверка вхождения любой из подстрок без учета регистра
func ContainsFold(s string, substrs ...string) bool {
	s = strings.ToLower(s)

	for _, sub := range substrs {
		if strings.Contains(s, strings.ToLower(sub)) {
			return true
		}
	}

	return false
}

// ResolveReference делает относительную ссылку абсолютной относительно base.
// Абсолютные ссылки и пустые строки возвращаются как есть.
func ResolveReference(base, ref string) string {
	if ref == "" || !strings.HasPrefix(ref, "/") || strings.HasPrefix(ref, "//") {
		return ref
	}

	b, err := url.Parse(base)
	if err != nil || b.Host == "" {
		return ref
	}

	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}

	return b.ResolveReference(r).String()
}
