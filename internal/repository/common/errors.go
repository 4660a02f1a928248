package common

import "errors"

// Общие ошибки для всех репозиториев
var (
	ErrInvalidInput = errors.New("invalid input")
)
