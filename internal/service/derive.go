package service

import (
	"strings"
	"unicode"
)

// CombineName собирает отображаемое имя из имени и фамилии.
func CombineName(firstName, lastName string) string {
	return strings.TrimSpace(firstName) + " " + strings.TrimSpace(lastName)
}

// BucketExperience переводит диапазон стажа из формы в число лет.
// Неизвестные значения, включая пустую строку, дают 0.
func BucketExperience(r string) int {
	switch r {
	case "0-2":
		return 1
	case "3-5":
		return 4
	case "5-10":
		return 7
	case "10+":
		return 12
	default:
		return 0
	}
}

// SplitLocation делит "город, страна" по первой запятой.
func SplitLocation(location string) (city, country string) {
	city, country, _ = strings.Cut(location, ",")
	return strings.TrimSpace(city), strings.TrimSpace(country)
}

var imageExtensions = []string{"jpg", "png", "webp", "jpeg"}

// ImageCandidates перебирает варианты имени файла картинки товара.
// Существование файлов не проверяется.
func ImageCandidates(name string) []string {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	lower := strings.ToLower(name)
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || r == '-' {
			return r
		}
		return -1
	}, lower)
	words := strings.Fields(stripped)

	variants := []string{
		strings.Join(words, "-"),
		strings.Join(words, "_"),
		strings.Join(words, ""),
		strings.Join(strings.Fields(lower), "-"),
		strings.Join(strings.Fields(name), "-"),
		strings.Join(strings.Fields(name), "_"),
	}

	seen := make(map[string]struct{}, len(variants)*len(imageExtensions))
	out := make([]string, 0, len(variants)*len(imageExtensions))
	for _, v := range variants {
		if v == "" {
			continue
		}
		for _, ext := range imageExtensions {
			path := "/images/products/" + v + "." + ext
			if _, ok := seen[path]; ok {
				continue
			}
			seen[path] = struct{}{}
			out = append(out, path)
		}
	}
	return out
}
