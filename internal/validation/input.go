package validation

import (
	"errors"
	"html"
	"regexp"
	"unicode/utf8"

	"github.com/dnevnikapp/diary-backend/internal/messages"
)

// Ошибки валидации учётных данных. Текст каждой ошибки — готовое
// пользовательское сообщение соответствующей категории.
var (
	ErrEmptyFields = errors.New(messages.HasEmptyFields)
	ErrBadUsername = errors.New(messages.InvalidUsernameFormat)
	ErrBadPassword = errors.New(messages.InvalidPasswordFormat)
	ErrBadEmail    = errors.New(messages.InvalidEmailFormat)
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9]{4,8}$`)
	emailRegex    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// ValidateLoginInput проверяет поля формы входа.
// Пустые поля проверяются первыми и дают отдельную ошибку.
func ValidateLoginInput(username, password string) error {
	if hasEmptyFields(username, password) {
		return ErrEmptyFields
	}
	if !usernameRegex.MatchString(username) {
		return ErrBadUsername
	}
	if !isValidPassword(password) {
		return ErrBadPassword
	}
	return nil
}

// ValidateRegistrationInput проверяет поля формы регистрации.
func ValidateRegistrationInput(username, password, email string) error {
	if hasEmptyFields(username, password, email) {
		return ErrEmptyFields
	}
	if !usernameRegex.MatchString(username) {
		return ErrBadUsername
	}
	if !isValidPassword(password) {
		return ErrBadPassword
	}
	if !emailRegex.MatchString(email) {
		return ErrBadEmail
	}
	return nil
}

// hasEmptyFields возвращает true, если хотя бы одно поле пустое.
func hasEmptyFields(inputs ...string) bool {
	for _, in := range inputs {
		if in == "" {
			return true
		}
	}
	return false
}

// isValidPassword проверяет пароль: 4–8 символов из допустимого набора,
// минимум одна заглавная, одна строчная, одна цифра и один спецсимвол
// из набора !@#$%^&*.
func isValidPassword(password string) bool {
	length := len(password)
	if length < 4 || length > 8 {
		return false
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, ch := range password {
		switch {
		case ch >= 'A' && ch <= 'Z':
			hasUpper = true
		case ch >= 'a' && ch <= 'z':
			hasLower = true
		case ch >= '0' && ch <= '9':
			hasDigit = true
		case isPasswordSymbol(ch):
			hasSymbol = true
		default:
			// Символ вне допустимого набора.
			return false
		}
	}

	return hasUpper && hasLower && hasDigit && hasSymbol
}

// isPasswordSymbol проверяет принадлежность фиксированному набору
// спецсимволов.
func isPasswordSymbol(ch rune) bool {
	switch ch {
	case '!', '@', '#', '$', '%', '^', '&', '*':
		return true
	}
	return false
}

// Sanitize экранирует HTML-символы во входной строке, чтобы
// пользовательский ввод нельзя было отразить в отрендеренной странице.
func Sanitize(input string) string {
	return html.EscapeString(input)
}

// ExceedsMaxLength проверяет, превышает ли строка максимальную длину
// в символах (не байтах).
func ExceedsMaxLength(s string, maxLength int) bool {
	return utf8.RuneCountInString(s) > maxLength
}
