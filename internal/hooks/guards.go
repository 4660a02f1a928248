package hooks

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MinSearchLength минимальная длина поисковой строки, с которой идёт запрос.
const MinSearchLength = 3

// hasID: запрос по идентификатору выполняется только с непустым id.
func hasID(id string) bool {
	return strings.TrimSpace(id) != ""
}

// canSearch: короткие строки поиска не отправляются в Gateway.
func canSearch(term string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(term)) >= MinSearchLength
}

// parseID разбирает id. Неверный формат означает "не найдено", а не ошибку.
func parseID(id string) (uuid.UUID, bool) {
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	return parsed, err == nil
}
