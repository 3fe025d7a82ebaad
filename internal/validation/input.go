package validation

import (
	"fmt"
	"path"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Константы валидации
const (
	MaxProjectTitleLength  = 200
	MaxProjectClientLength = 100
	MaxContactNameLength   = 100
	MaxContactMessageLength = 5000
	MaxSummarizeTextLength = 5000
)

var (
	objectKeyRegex = regexp.MustCompile(`[^a-zA-Z0-9._-]`)
	emailRegex     = regexp.MustCompile(`^[a-z0-9._+-]+@[a-z0-9.-]+\.[a-z]{2,}$`)
)

// Расширения видеофайлов, которые принимает загрузка.
var allowedVideoExt = map[string]string{
	".mp4": "video/mp4",
	".mov": "video/quicktime",
}

// ValidateNonEmpty проверяет, что строка не пустая.
func ValidateNonEmpty(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s не может быть пустым", fieldName)
	}
	return nil
}

// ValidateLength проверяет длину строки.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s должен быть не менее %d символов", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s должен быть не более %d символов", fieldName, max)
	}
	return nil
}

// ValidateEmail проверяет формат email.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email обязателен")
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("некорректный формат email")
	}
	return nil
}

// SanitizeObjectKey приводит имя файла к безопасному ключу хранилища.
func SanitizeObjectKey(filename string) string {
	name := path.Base(filename)
	name = objectKeyRegex.ReplaceAllString(name, "_")
	if name == "" || name == "." {
		name = "video"
	}
	return name
}

// VideoContentType возвращает MIME-тип для допустимого видеофайла.
// Принимаются только mp4 и mov.
func VideoContentType(filename string) (string, error) {
	ext := strings.ToLower(path.Ext(filename))
	ct, ok := allowedVideoExt[ext]
	if !ok {
		return "", fmt.Errorf("допустимы только файлы mp4 и mov")
	}
	return ct, nil
}

// Truncate обрезает строку до max символов (рун), не байт.
func Truncate(value string, max int) string {
	if utf8.RuneCountInString(value) <= max {
		return value
	}
	return string([]rune(value)[:max])
}
